// Package report renders the application summary PDF: one page with the
// business, the plan selection, the FICA estimate and the employee roster.
package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	appenrollment "github.com/RobertWLight/BSC/internal/application/enrollment"
	"github.com/RobertWLight/BSC/internal/domain/enrollment"
	"github.com/RobertWLight/BSC/internal/domain/shared/valueobject"
	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// PDFRenderer renders application summaries with fpdf
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// RenderApplicationSummary renders the summary into memory
func (PDFRenderer) RenderApplicationSummary(s *appenrollment.ApplicationSummary) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteApplicationSummary(s, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var _ appenrollment.SummaryRenderer = PDFRenderer{}

// FormatCurrency renders d as US dollars, e.g. "$1,234.50"
func FormatCurrency(d decimal.Decimal) string {
	return valueobject.NewMoneyUSD(d).FormatUS()
}

// WriteApplicationSummary writes the summary PDF to w
func WriteApplicationSummary(s *appenrollment.ApplicationSummary, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 18)
	pdf.SetCompression(false)
	pdf.AliasNbPages("{nb}")
	pdf.SetTitle("Application Summary", false)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-14)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 6, "Generated "+s.GeneratedAt.UTC().Format("2006-01-02 15:04 MST")+"   Page "+fmt.Sprint(pdf.PageNo())+" of {nb}", "", 0, "C", false, 0, "")
	})

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	marginL, _, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	drawHeader(pdf, contentW, s.Application)
	drawSection(pdf, contentW, "BUSINESS", [][2]string{
		{"Business", tr(s.Owner.BusinessName)},
		{"Owner", tr(s.Owner.FullName())},
		{"Email", tr(s.Owner.Email)},
		{"Type / Industry", string(s.Owner.BusinessType) + " / " + string(s.Owner.Industry)},
		{"Years in business", fmt.Sprint(s.Owner.YearsInBusiness)},
		{"Address", tr(addressLine(s.Owner))},
	})
	drawSection(pdf, contentW, "PLAN SELECTION", [][2]string{
		{"Health plan", tr(planLine(s.HealthPlan))},
		{"Life plan", tr(planLine(s.LifePlan))},
		{"Employees enrolled", fmt.Sprint(s.Application.TotalEmployees)},
		{"Estimated savings", FormatCurrency(s.Application.EstimatedSavings)},
	})
	if c := s.LatestCalculation; c != nil {
		drawSection(pdf, contentW, "FICA ESTIMATE", [][2]string{
			{"Total salaries", FormatCurrency(c.TotalEmployeeSalaries)},
			{"Current FICA tax", FormatCurrency(c.CurrentFicaTax)},
			{"Projected FICA savings", FormatCurrency(c.ProjectedFicaSavings)},
			{"Total benefit cost", FormatCurrency(c.TotalBenefitCost)},
			{"Net savings", FormatCurrency(c.NetSavings)},
			{"Calculated", c.CalculationDate.UTC().Format("2006-01-02")},
		})
	}
	drawRoster(pdf, contentW, s.Employees, tr)

	if pdf.Err() {
		return fmt.Errorf("failed to render summary: %w", pdf.Error())
	}
	return pdf.Output(w)
}

func drawHeader(pdf *fpdf.Fpdf, contentW float64, app *enrollment.Application) {
	pdf.SetFillColor(30, 30, 30)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW*0.6, 10, "  APPLICATION SUMMARY", "", 0, "L", true, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW*0.4, 10, "Status: "+strings.ToUpper(string(app.Status))+"  ", "", 1, "R", true, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 6, "Application "+app.ID.String(), "", 1, "L", false, 0, "")
	if app.SubmittedAt != nil {
		pdf.CellFormat(contentW, 5, "Submitted "+app.SubmittedAt.UTC().Format("2006-01-02 15:04 MST"), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)
}

func drawSection(pdf *fpdf.Fpdf, contentW float64, title string, rows [][2]string) {
	labelW := contentW * 0.35

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 6, title, "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		pdf.CellFormat(labelW, 6, row[0], "L", 0, "L", false, 0, "")
		pdf.CellFormat(contentW-labelW, 6, row[1], "R", 1, "L", false, 0, "")
	}
	pdf.CellFormat(contentW, 0, "", "T", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func drawRoster(pdf *fpdf.Fpdf, contentW float64, employees []enrollment.Employee, tr func(string) string) {
	nameW := contentW * 0.34
	titleW := contentW * 0.30
	salaryW := contentW * 0.18
	coverW := contentW - nameW - titleW - salaryW

	pdf.SetFillColor(30, 30, 30)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 8.5)
	pdf.CellFormat(nameW, 7, "Employee", "1", 0, "L", true, 0, "")
	pdf.CellFormat(titleW, 7, "Job title", "1", 0, "L", true, 0, "")
	pdf.CellFormat(salaryW, 7, "Annual salary", "1", 0, "R", true, 0, "")
	pdf.CellFormat(coverW, 7, "Current cover", "1", 1, "C", true, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Helvetica", "", 8.5)
	total := decimal.Zero
	for i, e := range employees {
		fill := i%2 == 1
		pdf.SetFillColor(248, 248, 248)
		pdf.CellFormat(nameW, 6, tr(e.FullName()), "LR", 0, "L", fill, 0, "")
		pdf.CellFormat(titleW, 6, tr(e.JobTitle), "LR", 0, "L", fill, 0, "")
		pdf.CellFormat(salaryW, 6, FormatCurrency(e.AnnualSalary), "LR", 0, "R", fill, 0, "")
		pdf.CellFormat(coverW, 6, coverage(e), "LR", 1, "C", fill, 0, "")
		total = total.Add(e.AnnualSalary)
	}

	pdf.SetFont("Helvetica", "B", 8.5)
	pdf.CellFormat(nameW+titleW, 7, fmt.Sprintf("%d employees", len(employees)), "1", 0, "L", false, 0, "")
	pdf.CellFormat(salaryW, 7, FormatCurrency(total), "1", 0, "R", false, 0, "")
	pdf.CellFormat(coverW, 7, "", "1", 1, "C", false, 0, "")
}

func planLine(p *enrollment.BenefitPlan) string {
	if p == nil {
		return "None selected"
	}
	return p.Name + " (" + FormatCurrency(p.MonthlyPremiumPerEmployee) + "/employee/month)"
}

func coverage(e enrollment.Employee) string {
	var parts []string
	if e.HasCurrentHealthInsurance {
		parts = append(parts, "Health")
	}
	if e.HasCurrentLifeInsurance {
		parts = append(parts, "Life")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " + ")
}

func addressLine(o *enrollment.BusinessOwner) string {
	cityLine := strings.TrimSpace(strings.Join(nonEmpty(o.City, o.State), ", ") + " " + o.ZipCode)
	return strings.Join(nonEmpty(o.Address, cityLine), ", ")
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
