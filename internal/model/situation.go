package model

import "fmt"

// Situation is the simulation engine's input: the simulated people of
// one household with per-year attribute values. The wire format is the
// engine's contract; map keys are serialized as string years, e.g.
// {"people":{"you":{"age":{"2025":30},"employment_income":{"2025":30000}}}}.
type Situation struct {
	People map[string]*Person `json:"people"`
}

// Person keys within a situation.
const (
	PersonYou     = "you"
	PersonPartner = "your partner"
)

// ChildKey returns the situation key for the n-th child, counted from 1.
func ChildKey(n int) string {
	return fmt.Sprintf("child %d", n)
}

// YearSeries maps a calendar year to a monetary amount.
type YearSeries map[int]float64

type Person struct {
	Age map[int]int `json:"age,omitempty"`

	EmploymentIncome      YearSeries `json:"employment_income,omitempty"`
	SelfEmploymentIncome  YearSeries `json:"self_employment_income,omitempty"`
	PrivatePensionIncome  YearSeries `json:"private_pension_income,omitempty"`
	StatePension          YearSeries `json:"state_pension,omitempty"`
	SavingsInterestIncome YearSeries `json:"savings_interest_income,omitempty"`
	DividendIncome        YearSeries `json:"dividend_income,omitempty"`
	PropertyIncome        YearSeries `json:"property_income,omitempty"`
}

// SetIncome assigns an amount for one income source at the given year.
// It reports false for an unrecognized source name.
func (p *Person) SetIncome(source string, year int, amount float64) bool {
	series := p.incomeSeries(source)
	if series == nil {
		return false
	}
	(*series)[year] = amount
	return true
}

// Income returns the amount recorded for one income source at the given
// year, or zero when absent.
func (p *Person) Income(source string, year int) float64 {
	series := p.incomeSeries(source)
	if series == nil {
		return 0
	}
	return (*series)[year]
}

func (p *Person) incomeSeries(source string) *YearSeries {
	var s *YearSeries
	switch source {
	case SourceEmploymentIncome:
		s = &p.EmploymentIncome
	case SourceSelfEmploymentIncome:
		s = &p.SelfEmploymentIncome
	case SourcePrivatePensionIncome:
		s = &p.PrivatePensionIncome
	case SourceStatePension:
		s = &p.StatePension
	case SourceSavingsInterestIncome:
		s = &p.SavingsInterestIncome
	case SourceDividendIncome:
		s = &p.DividendIncome
	case SourcePropertyIncome:
		s = &p.PropertyIncome
	default:
		return nil
	}
	if *s == nil {
		*s = YearSeries{}
	}
	return s
}
