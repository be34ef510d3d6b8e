// Package forecast holds the OBR macro forecast tables and runs a
// situation through the simulation engine under each of them.
package forecast

import (
	"fmt"
	"sort"

	"obr-forecast/internal/simulation"
)

// Macro parameter identifiers, as the simulation engine names them.
const (
	ParamEmploymentIncome   = "gov.obr.employment_income"
	ParamMixedIncome        = "gov.obr.mixed_income"
	ParamNonLabourIncome    = "gov.obr.non_labour_income"
	ParamConsumerPriceIndex = "gov.obr.consumer_price_index"
)

// Parameters lists the four macro series every table carries.
var Parameters = []string{
	ParamEmploymentIncome,
	ParamMixedIncome,
	ParamNonLabourIncome,
	ParamConsumerPriceIndex,
}

// Forecast horizon. Tables carry aggregate values for every year in
// [HorizonStart, HorizonEnd].
const (
	HorizonStart = 2025
	HorizonEnd   = 2034
)

// Series maps a calendar year to a projected aggregate value.
type Series map[int]float64

// Table is one named macro forecast round.
type Table struct {
	Name   string
	Series map[string]Series
}

// Reform renders the table in the engine's parameter-override form.
func (t *Table) Reform() simulation.Reform {
	reform := make(simulation.Reform, len(t.Series))
	for param, series := range t.Series {
		periods := make(map[string]float64, len(series))
		for year, v := range series {
			periods[fmt.Sprintf("year:%d:1", year)] = v
		}
		reform[param] = periods
	}
	return reform
}

func (t *Table) clone(name string) *Table {
	out := &Table{Name: name, Series: make(map[string]Series, len(t.Series))}
	for param, series := range t.Series {
		s := make(Series, len(series))
		for year, v := range series {
			s[year] = v
		}
		out.Series[param] = s
	}
	return out
}

// Autumn 2024 OBR forecast round.
var Autumn24 = &Table{
	Name: "autumn_24",
	Series: map[string]Series{
		ParamEmploymentIncome: {
			2025: 1215.6, 2026: 1246.5, 2027: 1277.7, 2028: 1312.9, 2029: 1352.9,
			2030: 1380.36, 2031: 1407.82, 2032: 1435.28, 2033: 1462.74, 2034: 1490.2,
		},
		ParamMixedIncome: {
			2025: 177.6, 2026: 196.7, 2027: 205.3, 2028: 214.6, 2029: 225.0,
			2030: 232.34, 2031: 239.68, 2032: 247.02, 2033: 254.36, 2034: 261.7,
		},
		ParamNonLabourIncome: {
			2025: 460.8, 2026: 512.7, 2027: 535.0, 2028: 554.0, 2029: 571.8,
			2030: 588.38, 2031: 604.96, 2032: 621.54, 2033: 638.12, 2034: 654.7,
		},
		ParamConsumerPriceIndex: {
			2025: 138.1, 2026: 141.1, 2027: 144.1, 2028: 147.1, 2029: 150.1,
			2030: 152.5, 2031: 154.9, 2032: 157.3, 2033: 159.7, 2034: 162.1,
		},
	},
}

// Spring 2025 OBR forecast round. Carries the Autumn 2024 values until
// the new round is published.
var Spring25 = Autumn24.clone("spring_25")

var registry = map[string]*Table{
	Autumn24.Name: Autumn24,
	Spring25.Name: Spring25,
}

func Get(name string) (*Table, bool) {
	t, ok := registry[name]
	return t, ok
}

// Names returns the built-in table names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
