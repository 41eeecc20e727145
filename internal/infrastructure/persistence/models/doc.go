// Package models contains the GORM models behind the enrollment and lead
// repositories. Domain entities carry no ORM tags; each model converts to its
// entity with ToDomain and back with a <Model>FromDomain constructor.
//
// Files:
// - base.go: BaseModel (id and timestamps)
// - enrollment.go: business owners, employees, benefit plans, FICA calculations, applications
// - lead.go: marketing leads
package models
