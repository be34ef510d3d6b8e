package panel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"obr-forecast/internal/model"
)

const panelHeader = "person_id,benunit_id,household_id,age,relation_type,benunit_count_children,household_weight,adult_index,child_index," +
	"employment_income,self_employment_income,private_pension_income,state_pension,savings_interest_income,dividend_income,property_income"

func TestReadPanel(t *testing.T) {
	data := panelHeader + "\n" +
		"p1,b1,hh1,34,SINGLE,0,1.5,1,0,28000,0,0,0,120,500,0\n" +
		"p2,b2,hh2,61,COUPLE,0,2.25,1,0,0,0,14000,9000,300,0,0\n" +
		"p3,b2,hh2,59,COUPLE,0,2.25,2,0,12000,0,0,0,0,0,0\n"

	p, err := Read(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 3, p.Len())

	hh2 := p.Household("hh2")
	require.Len(t, hh2, 2)
	assert.Equal(t, 61, hh2[0].Age)
	assert.Equal(t, RelationCouple, hh2[0].RelationType)
	assert.Equal(t, 2.25, hh2[0].Weight)
	assert.Equal(t, 2, hh2[1].AdultIndex)
	assert.Equal(t, 14000.0, hh2[0].Incomes[model.SourcePrivatePensionIncome])
}

func TestReadPanelFloatFormattedIntegers(t *testing.T) {
	// Dataframe exports often render integer columns as floats.
	data := panelHeader + "\n" +
		"p1,b1,hh1,34.0,SINGLE,0.0,1.5,1.0,0.0,28000,0,0,0,0,0,0\n"

	p, err := Read(strings.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 34, p.Household("hh1")[0].Age)
	assert.Equal(t, 1, p.Household("hh1")[0].AdultIndex)
}

func TestReadPanelMissingColumn(t *testing.T) {
	data := "person_id,age\np1,34\n"

	_, err := Read(strings.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")
}

func TestReadPanelBadNumber(t *testing.T) {
	data := panelHeader + "\n" +
		"p1,b1,hh1,thirty,SINGLE,0,1.5,1,0,28000,0,0,0,0,0,0\n"

	_, err := Read(strings.NewReader(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestReadPanelEmpty(t *testing.T) {
	_, err := Read(strings.NewReader(panelHeader + "\n"))
	assert.Error(t, err)
}
