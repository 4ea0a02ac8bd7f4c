package models

// ReviewStats aggregates the reviews left for a company.
type ReviewStats struct {
	CompanyID     int     `json:"companyId"`
	TotalReviews  int     `json:"totalReviews"`
	AverageRating float64 `json:"averageRating"`
	CultureRating float64 `json:"cultureRating,omitempty"`
	BalanceRating float64 `json:"workLifeBalanceRating,omitempty"`
	SalaryRating  float64 `json:"salaryRating,omitempty"`
}

// ReviewEligibility tells whether the caller may review a company.
type ReviewEligibility struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
}
