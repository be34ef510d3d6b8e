package model

// MinimumAge is the youngest age a household query may describe. The
// microdata panel indexes adults from 16 upward.
const MinimumAge = 16

// Recognized income source variables. These match the panel's column
// names and the simulation engine's person-level input variables.
const (
	SourceEmploymentIncome      = "employment_income"
	SourceSelfEmploymentIncome  = "self_employment_income"
	SourcePrivatePensionIncome  = "private_pension_income"
	SourceStatePension          = "state_pension"
	SourceSavingsInterestIncome = "savings_interest_income"
	SourceDividendIncome        = "dividend_income"
	SourcePropertyIncome        = "property_income"
)

// IncomeSources lists the seven recognized income source variables in
// panel column order.
var IncomeSources = []string{
	SourceEmploymentIncome,
	SourceSelfEmploymentIncome,
	SourcePrivatePensionIncome,
	SourceStatePension,
	SourceSavingsInterestIncome,
	SourceDividendIncome,
	SourcePropertyIncome,
}

// KnownIncomeSource reports whether name is one of the seven recognized
// income source variables.
func KnownIncomeSource(name string) bool {
	for _, s := range IncomeSources {
		if s == name {
			return true
		}
	}
	return false
}

type ForecastRequest struct {
	Age                 int            `json:"age"`
	IsMarried           bool           `json:"is_married"`
	IncomeSource        string         `json:"income_source"`
	IncomeAmount        float64        `json:"income_amount"`
	NumChildren         int            `json:"num_children"`
	CustomGrowthFactors *GrowthFactors `json:"custom_growth_factors,omitempty"`
}

// GrowthFactors carries user-supplied year-over-year growth rates, in
// percent, one per macro series. Nil fields leave that series at the
// built-in Autumn values.
type GrowthFactors struct {
	EmploymentIncomeYoY   *float64 `json:"employment_income_yoy,omitempty"`
	MixedIncomeYoY        *float64 `json:"mixed_income_yoy,omitempty"`
	NonLabourIncomeYoY    *float64 `json:"non_labour_income_yoy,omitempty"`
	ConsumerPriceIndexYoY *float64 `json:"consumer_price_index_yoy,omitempty"`
}
