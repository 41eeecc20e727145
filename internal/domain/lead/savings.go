package lead

import (
	"github.com/RobertWLight/BSC/internal/domain/shared/valueobject"
)

// SavingsPerEmployee is the estimated annual saving per enrolled employee
const SavingsPerEmployee int64 = 1100

// SavingsRange is the potential annual savings window for a company size
type SavingsRange struct {
	MinEmployees int64
	MaxEmployees int64
	Min          valueobject.Money
	Max          valueobject.Money
}

// SavingsRangeFor computes [min, max] employees x $1,100 for a bucket.
// ok is false for buckets outside the fixed table.
func SavingsRangeFor(b EmployeeBucket) (SavingsRange, bool) {
	lo, hi, ok := b.Bounds()
	if !ok {
		return SavingsRange{Min: valueobject.ZeroUSD(), Max: valueobject.ZeroUSD()}, false
	}
	perEmployee := valueobject.NewMoneyUSDFromInt(SavingsPerEmployee)
	return SavingsRange{
		MinEmployees: lo,
		MaxEmployees: hi,
		Min:          perEmployee.MultiplyByInt(lo),
		Max:          perEmployee.MultiplyByInt(hi),
	}, true
}

// String renders the range as "$6,600–$11,000"
func (r SavingsRange) String() string {
	return r.Min.FormatUS() + "–" + r.Max.FormatUS()
}
