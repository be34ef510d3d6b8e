package forecast

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"obr-forecast/internal/model"
	"obr-forecast/internal/simulation"
)

// Reference base/compare years for the forecast comparison.
const (
	DefaultBaseYear    = 2025
	DefaultCompareYear = 2030
)

// Calculator runs one situation through the engine under each forecast
// variant and derives the comparative figures. Engine calls are
// sequential within a request; the calculator holds no per-request
// state.
type Calculator struct {
	sim         simulation.Simulator
	baseYear    int
	compareYear int
	logger      *slog.Logger
}

func NewCalculator(sim simulation.Simulator, baseYear, compareYear int, logger *slog.Logger) *Calculator {
	if baseYear == 0 {
		baseYear = DefaultBaseYear
	}
	if compareYear == 0 {
		compareYear = DefaultCompareYear
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{sim: sim, baseYear: baseYear, compareYear: compareYear, logger: logger}
}

// Run simulates the situation under Autumn at the base year, then under
// Autumn and Spring at the compare year, and optionally under a custom
// table derived from the given growth factors. Every figure in the
// result is rounded to 2 decimal places; derived deltas are computed
// from the already-rounded figures.
func (c *Calculator) Run(ctx context.Context, situation *model.Situation, factors *model.GrowthFactors) (*model.ForecastResult, error) {
	start := time.Now()
	calculationID := uuid.New().String()

	base, err := c.simulate(ctx, situation, Autumn24, c.baseYear)
	if err != nil {
		return nil, err
	}
	autumn, err := c.simulate(ctx, situation, Autumn24, c.compareYear)
	if err != nil {
		return nil, err
	}
	spring, err := c.simulate(ctx, situation, Spring25, c.compareYear)
	if err != nil {
		return nil, err
	}

	base = round2(base)
	autumn = round2(autumn)
	spring = round2(spring)

	result := &model.ForecastResult{
		Income2025:                   base,
		Income2030OBR:                spring,
		Income2030Autumn:             autumn,
		AbsoluteChangeOBR:            round2(spring - base),
		PercentageChangeOBR:          round2(percentageOf(spring-base, base)),
		ForecastDifference:           round2(spring - autumn),
		ForecastPercentageDifference: round2(percentageOf(spring-autumn, autumn)),
	}

	if factors != nil {
		custom, err := c.simulate(ctx, situation, Custom(factors), c.compareYear)
		if err != nil {
			return nil, err
		}
		custom = round2(custom)
		result.Income2030Custom = ptr(custom)
		result.AbsoluteChangeCustom = ptr(round2(custom - base))
		result.PercentageChangeCustom = ptr(round2(percentageOf(custom-base, base)))
	}

	c.logger.Info("calculation complete",
		"calculation_id", calculationID,
		"duration_ms", time.Since(start).Milliseconds(),
		"base_income", base,
		"custom", factors != nil,
	)
	return result, nil
}

func (c *Calculator) simulate(ctx context.Context, situation *model.Situation, table *Table, year int) (float64, error) {
	income, err := c.sim.Calculate(ctx, situation, table.Reform(), year)
	if err != nil {
		return 0, errors.Wrapf(err, "simulate %s at %d", table.Name, year)
	}
	return income, nil
}

// percentageOf guards the divide-by-zero case: a non-positive base
// yields 0 rather than a special value.
func percentageOf(delta, base float64) float64 {
	if base > 0 {
		return delta / base * 100
	}
	return 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func ptr(v float64) *float64 {
	return &v
}
