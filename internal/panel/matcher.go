package panel

import (
	"math"
	"math/rand"
	"sync"

	"github.com/pkg/errors"

	"obr-forecast/internal/model"
)

// Typed selection failures; the handler maps these to 4xx responses.
var (
	ErrUnknownIncomeSource  = errors.New("unknown income source")
	ErrNoMatchingHousehold  = errors.New("no household matches the given criteria")
	ErrInsufficientChildren = errors.New("sampled household has fewer children than requested")
)

// DefaultIncomeTolerance is the absolute band, in currency units, around
// the requested income amount when matching panel rows.
const DefaultIncomeTolerance = 15_000

// Matcher selects a representative household for a query: filter the
// panel to comparable rows, then draw one household id weighted by the
// household sampling weight. The filter is deliberately coarse (decade
// age bucket, income within an absolute band) so that the draw stays
// population-representative instead of degenerating to a single exact
// match.
type Matcher struct {
	panel     *Panel
	tolerance float64

	// rand.Rand is not safe for concurrent use; the panel itself
	// needs no lock.
	mu  sync.Mutex
	rng *rand.Rand
}

func NewMatcher(p *Panel, tolerance float64, rng *rand.Rand) *Matcher {
	if tolerance <= 0 {
		tolerance = DefaultIncomeTolerance
	}
	return &Matcher{panel: p, tolerance: tolerance, rng: rng}
}

// Select draws one household matching the query and returns all of its
// person rows.
func (m *Matcher) Select(req *model.ForecastRequest) ([]Row, error) {
	if !model.KnownIncomeSource(req.IncomeSource) {
		return nil, errors.Wrap(ErrUnknownIncomeSource, req.IncomeSource)
	}

	relation := RelationSingle
	if req.IsMarried {
		relation = RelationCouple
	}

	var candidates []int
	var totalWeight float64
	for i, row := range m.panel.rows {
		if row.Age/10 != req.Age/10 {
			continue
		}
		if row.RelationType != relation {
			continue
		}
		if row.BenunitChildren != req.NumChildren {
			continue
		}
		if math.Abs(row.Incomes[req.IncomeSource]-req.IncomeAmount) >= m.tolerance {
			continue
		}
		candidates = append(candidates, i)
		totalWeight += row.Weight
	}

	if len(candidates) == 0 || totalWeight <= 0 {
		return nil, ErrNoMatchingHousehold
	}

	id := m.panel.rows[m.draw(candidates, totalWeight)].HouseholdID
	return m.panel.Household(id), nil
}

// draw picks one candidate row index with probability proportional to
// its household weight.
func (m *Matcher) draw(candidates []int, totalWeight float64) int {
	m.mu.Lock()
	target := m.rng.Float64() * totalWeight
	m.mu.Unlock()

	for _, i := range candidates {
		target -= m.panel.rows[i].Weight
		if target < 0 {
			return i
		}
	}
	return candidates[len(candidates)-1]
}
