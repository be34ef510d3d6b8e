// Package simulation is the boundary to the external tax-benefit
// engine. The engine consumes a situation, a parameter overlay and a
// target year, and returns a single net-income figure for that year.
package simulation

import (
	"context"

	"github.com/pkg/errors"

	"obr-forecast/internal/model"
)

// Variable computed by the engine for every calculation.
const VariableNetIncome = "household_net_income"

// Reform is a parameter overlay in the engine's wire form: parameter
// identifier to period-keyed values, e.g.
// "gov.obr.consumer_price_index" -> {"year:2025:1": 138.1}.
type Reform map[string]map[string]float64

// ErrEngine marks a failure inside or on the way to the engine. The
// handler maps it to a gateway-class response.
var ErrEngine = errors.New("simulation engine failure")

type Simulator interface {
	Calculate(ctx context.Context, situation *model.Situation, reform Reform, year int) (float64, error)
}
