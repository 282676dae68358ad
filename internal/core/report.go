package core

type (
	// CostRecordView is a single line of a monthly report. Sum carries the
	// amount converted into the report currency; Currency keeps the code
	// the cost was originally entered in.
	CostRecordView struct {
		Sum         float64   `json:"sum"`
		Currency    Currency  `json:"currency"`
		Category    string    `json:"category"`
		Description string    `json:"description"`
		Date        DateParts `json:"Date"`
	}

	// ReportTotal is the grand total of a monthly report in the requested
	// currency.
	ReportTotal struct {
		Currency Currency `json:"currency"`
		Total    float64  `json:"total"`
	}

	// MonthlyReport is the itemized report for a specific year and month.
	MonthlyReport struct {
		Year  int              `json:"year"`
		Month int              `json:"month"` // 1-12
		Costs []CostRecordView `json:"costs"`
		Total ReportTotal      `json:"total"`
	}

	// CategoryTotals maps category name to its converted monthly total.
	CategoryTotals map[string]float64

	// YearTotals holds one converted total per month, January first.
	// Months with no records stay 0.
	YearTotals [12]float64
)
