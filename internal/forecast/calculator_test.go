package forecast

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"

	"github.com/pkg/errors"

	"obr-forecast/internal/model"
	"obr-forecast/internal/simulation"
)

// scriptedSimulator returns pre-set incomes in call order and records
// every call. The calculator always simulates base, autumn-compare,
// spring-compare, then optionally custom.
type scriptedSimulator struct {
	results []float64
	err     error
	errAt   int

	calls   int
	years   []int
	reforms []simulation.Reform
}

func (s *scriptedSimulator) Calculate(_ context.Context, _ *model.Situation, reform simulation.Reform, year int) (float64, error) {
	s.calls++
	s.years = append(s.years, year)
	s.reforms = append(s.reforms, reform)
	if s.err != nil && s.calls == s.errAt {
		return 0, s.err
	}
	return s.results[s.calls-1], nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSituation() *model.Situation {
	you := &model.Person{Age: map[int]int{2025: 30}}
	you.SetIncome(model.SourceEmploymentIncome, 2025, 30000)
	return &model.Situation{People: map[string]*model.Person{model.PersonYou: you}}
}

func TestRunBaseline(t *testing.T) {
	sim := &scriptedSimulator{results: []float64{20000, 25000, 26000}}
	calc := NewCalculator(sim, 2025, 2030, discardLogger())

	res, err := calc.Run(context.Background(), testSituation(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sim.calls != 3 {
		t.Fatalf("expected 3 engine calls, got %d", sim.calls)
	}
	wantYears := []int{2025, 2030, 2030}
	for i, y := range wantYears {
		if sim.years[i] != y {
			t.Fatalf("call %d: expected year %d, got %d", i, y, sim.years[i])
		}
	}

	if res.Income2025 != 20000 {
		t.Fatalf("expected income_2025 20000, got %v", res.Income2025)
	}
	if res.Income2030Autumn != 25000 {
		t.Fatalf("expected income_2030_autumn 25000, got %v", res.Income2030Autumn)
	}
	if res.Income2030OBR != 26000 {
		t.Fatalf("expected income_2030_obr 26000, got %v", res.Income2030OBR)
	}
	if res.AbsoluteChangeOBR != 6000 {
		t.Fatalf("expected absolute_change_obr 6000, got %v", res.AbsoluteChangeOBR)
	}
	if res.PercentageChangeOBR != 30 {
		t.Fatalf("expected percentage_change_obr 30, got %v", res.PercentageChangeOBR)
	}
	if res.ForecastDifference != 1000 {
		t.Fatalf("expected forecast_difference 1000, got %v", res.ForecastDifference)
	}
	if res.ForecastPercentageDifference != 4 {
		t.Fatalf("expected forecast_percentage_difference 4, got %v", res.ForecastPercentageDifference)
	}

	if res.Income2030Custom != nil || res.AbsoluteChangeCustom != nil || res.PercentageChangeCustom != nil {
		t.Fatal("expected no custom figures without growth factors")
	}
}

func TestRunWithCustomFactors(t *testing.T) {
	sim := &scriptedSimulator{results: []float64{20000, 25000, 26000, 27500}}
	calc := NewCalculator(sim, 2025, 2030, discardLogger())

	rate := 3.0
	factors := &model.GrowthFactors{EmploymentIncomeYoY: &rate}

	res, err := calc.Run(context.Background(), testSituation(), factors)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sim.calls != 4 {
		t.Fatalf("expected 4 engine calls, got %d", sim.calls)
	}
	if sim.years[3] != 2030 {
		t.Fatalf("expected custom simulation at 2030, got %d", sim.years[3])
	}

	// The fourth reform must carry the compounded employment series.
	got := sim.reforms[3][ParamEmploymentIncome]["year:2026:1"]
	want := 1215.6 * 1.03
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected compounded employment value %v, got %v", want, got)
	}

	if res.Income2030Custom == nil || *res.Income2030Custom != 27500 {
		t.Fatalf("expected income_2030_custom 27500, got %v", res.Income2030Custom)
	}
	if res.AbsoluteChangeCustom == nil || *res.AbsoluteChangeCustom != 7500 {
		t.Fatalf("expected absolute_change_custom 7500, got %v", res.AbsoluteChangeCustom)
	}
	if res.PercentageChangeCustom == nil || *res.PercentageChangeCustom != 37.5 {
		t.Fatalf("expected percentage_change_custom 37.5, got %v", res.PercentageChangeCustom)
	}
}

func TestRunZeroBaseIncome(t *testing.T) {
	sim := &scriptedSimulator{results: []float64{0, 100, 100}}
	calc := NewCalculator(sim, 2025, 2030, discardLogger())

	res, err := calc.Run(context.Background(), testSituation(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.PercentageChangeOBR != 0 {
		t.Fatalf("expected guarded percentage change 0, got %v", res.PercentageChangeOBR)
	}
	if res.AbsoluteChangeOBR != 100 {
		t.Fatalf("expected absolute change 100, got %v", res.AbsoluteChangeOBR)
	}
}

func TestRunRoundsToTwoDecimals(t *testing.T) {
	sim := &scriptedSimulator{results: []float64{1234.5678, 2345.6789, 3456.7891}}
	calc := NewCalculator(sim, 2025, 2030, discardLogger())

	res, err := calc.Run(context.Background(), testSituation(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Income2025 != 1234.57 {
		t.Fatalf("expected income_2025 1234.57, got %v", res.Income2025)
	}
	if res.Income2030Autumn != 2345.68 {
		t.Fatalf("expected income_2030_autumn 2345.68, got %v", res.Income2030Autumn)
	}
	if res.Income2030OBR != 3456.79 {
		t.Fatalf("expected income_2030_obr 3456.79, got %v", res.Income2030OBR)
	}

	// Deltas are derived from the already-rounded figures.
	if math.Abs(res.ForecastDifference-(res.Income2030OBR-res.Income2030Autumn)) > 1e-9 {
		t.Fatalf("forecast_difference %v does not equal rounded income delta %v",
			res.ForecastDifference, res.Income2030OBR-res.Income2030Autumn)
	}
	wantPct := math.Round((res.Income2030OBR-res.Income2025)/res.Income2025*100*100) / 100
	if res.PercentageChangeOBR != wantPct {
		t.Fatalf("expected percentage_change_obr %v, got %v", wantPct, res.PercentageChangeOBR)
	}
}

func TestRunEngineFailure(t *testing.T) {
	sim := &scriptedSimulator{
		results: []float64{20000, 25000, 26000},
		err:     errors.Wrap(simulation.ErrEngine, "engine returned status 500"),
		errAt:   2,
	}
	calc := NewCalculator(sim, 2025, 2030, discardLogger())

	_, err := calc.Run(context.Background(), testSituation(), nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, simulation.ErrEngine) {
		t.Fatalf("expected engine failure to stay identifiable, got %v", err)
	}
	if sim.calls != 2 {
		t.Fatalf("expected no further calls after failure, got %d", sim.calls)
	}
}
