// Package panel holds the household microdata panel: a row-per-person
// table loaded once at process start and read-only afterwards. Requests
// filter it, draw one household by sampling weight, and project the
// drawn household into a simulation situation.
package panel

// Relation type tags as they appear in the panel.
const (
	RelationSingle = "SINGLE"
	RelationCouple = "COUPLE"
)

// Row is one person record. Incomes is keyed by the seven recognized
// income source names.
type Row struct {
	PersonID    string
	BenunitID   string
	HouseholdID string

	Age             int
	RelationType    string
	BenunitChildren int

	// Weight is the household sampling weight; it drives the
	// representative draw.
	Weight float64

	// AdultIndex is 1 for the main adult, 2 for the partner, 0 for
	// children. ChildIndex counts children 1..k within a household.
	AdultIndex int
	ChildIndex int

	Incomes map[string]float64
}

// Panel is immutable after construction; no locking is needed for
// concurrent reads.
type Panel struct {
	rows        []Row
	byHousehold map[string][]int
}

func New(rows []Row) *Panel {
	p := &Panel{
		rows:        rows,
		byHousehold: make(map[string][]int),
	}
	for i, r := range rows {
		p.byHousehold[r.HouseholdID] = append(p.byHousehold[r.HouseholdID], i)
	}
	return p
}

// Len returns the number of person rows.
func (p *Panel) Len() int {
	return len(p.rows)
}

// Household returns every person row belonging to a household, in panel
// order.
func (p *Panel) Household(id string) []Row {
	idxs := p.byHousehold[id]
	rows := make([]Row, 0, len(idxs))
	for _, i := range idxs {
		rows = append(rows, p.rows[i])
	}
	return rows
}
