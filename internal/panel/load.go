package panel

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"obr-forecast/internal/model"
)

var requiredColumns = []string{
	"person_id",
	"benunit_id",
	"household_id",
	"age",
	"relation_type",
	"benunit_count_children",
	"household_weight",
	"adult_index",
	"child_index",
}

// Load reads the microdata panel from a CSV export. The file must carry
// a header row with the linkage/demographic columns plus the seven
// income source columns.
func Load(path string) (*Panel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open panel")
	}
	defer f.Close()

	return Read(f)
}

// Read parses panel rows from r. Split out of Load so tests can feed
// in-memory CSV data.
func Read(r io.Reader) (*Panel, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(err, "read panel header")
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, errors.Errorf("panel is missing column %q", name)
		}
	}
	for _, name := range model.IncomeSources {
		if _, ok := col[name]; !ok {
			return nil, errors.Errorf("panel is missing income column %q", name)
		}
	}

	var rows []Row
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read panel row at line %d", line)
		}

		row, err := parseRow(record, col)
		if err != nil {
			return nil, errors.Wrapf(err, "parse panel row at line %d", line)
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, errors.New("panel contains no rows")
	}
	return New(rows), nil
}

func parseRow(record []string, col map[string]int) (Row, error) {
	row := Row{
		PersonID:     record[col["person_id"]],
		BenunitID:    record[col["benunit_id"]],
		HouseholdID:  record[col["household_id"]],
		RelationType: record[col["relation_type"]],
		Incomes:      make(map[string]float64, len(model.IncomeSources)),
	}

	var err error
	if row.Age, err = atoi(record[col["age"]]); err != nil {
		return Row{}, errors.Wrap(err, "age")
	}
	if row.BenunitChildren, err = atoi(record[col["benunit_count_children"]]); err != nil {
		return Row{}, errors.Wrap(err, "benunit_count_children")
	}
	if row.AdultIndex, err = atoi(record[col["adult_index"]]); err != nil {
		return Row{}, errors.Wrap(err, "adult_index")
	}
	if row.ChildIndex, err = atoi(record[col["child_index"]]); err != nil {
		return Row{}, errors.Wrap(err, "child_index")
	}
	if row.Weight, err = strconv.ParseFloat(record[col["household_weight"]], 64); err != nil {
		return Row{}, errors.Wrap(err, "household_weight")
	}

	for _, source := range model.IncomeSources {
		v, err := strconv.ParseFloat(record[col[source]], 64)
		if err != nil {
			return Row{}, errors.Wrap(err, source)
		}
		row.Incomes[source] = v
	}
	return row, nil
}

// atoi tolerates the float-formatted integers that dataframe exports
// produce, e.g. "35.0" for an age.
func atoi(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
