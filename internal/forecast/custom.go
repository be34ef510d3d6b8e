package forecast

import "obr-forecast/internal/model"

// Custom derives a forecast table from user-supplied year-over-year
// growth rates. Each overridden parameter is compounded forward from its
// Autumn 2025 base value through the end of the horizon; parameters
// without an override keep the Autumn series unmodified.
func Custom(factors *model.GrowthFactors) *Table {
	t := Autumn24.clone("custom")
	compound(t, ParamEmploymentIncome, factors.EmploymentIncomeYoY)
	compound(t, ParamMixedIncome, factors.MixedIncomeYoY)
	compound(t, ParamNonLabourIncome, factors.NonLabourIncomeYoY)
	compound(t, ParamConsumerPriceIndex, factors.ConsumerPriceIndexYoY)
	return t
}

func compound(t *Table, param string, yoy *float64) {
	if yoy == nil {
		return
	}
	current := Autumn24.Series[param][HorizonStart]
	for year := HorizonStart + 1; year <= HorizonEnd; year++ {
		current *= 1 + *yoy/100
		t.Series[param][year] = current
	}
}
