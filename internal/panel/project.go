package panel

import (
	"github.com/pkg/errors"

	"obr-forecast/internal/model"
)

// Project builds the simulation situation from a sampled household. The
// main adult becomes "you" with the query's age, the household's seven
// income values for the base year, and the designated source overwritten
// by the query amount. The partner and children are copied verbatim; the
// income override applies only to the primary person.
func Project(household []Row, req *model.ForecastRequest, baseYear int) (*model.Situation, error) {
	main := findAdult(household, 1)
	if main == nil {
		return nil, errors.Errorf("sampled household has no main adult")
	}

	you := &model.Person{Age: map[int]int{baseYear: req.Age}}
	for _, source := range model.IncomeSources {
		you.SetIncome(source, baseYear, main.Incomes[source])
	}
	you.SetIncome(req.IncomeSource, baseYear, req.IncomeAmount)

	situation := &model.Situation{People: map[string]*model.Person{
		model.PersonYou: you,
	}}

	if req.IsMarried {
		partnerRow := findAdult(household, 2)
		if partnerRow == nil {
			return nil, errors.Errorf("sampled household %s has no partner", main.HouseholdID)
		}
		partner := &model.Person{}
		for _, source := range model.IncomeSources {
			partner.SetIncome(source, baseYear, partnerRow.Incomes[source])
		}
		situation.People[model.PersonPartner] = partner
	}

	for n := 1; n <= req.NumChildren; n++ {
		childRow := findChild(household, n)
		if childRow == nil {
			return nil, errors.Wrapf(ErrInsufficientChildren, "child %d of %d", n, req.NumChildren)
		}
		child := &model.Person{Age: map[int]int{baseYear: childRow.Age}}
		for _, source := range model.IncomeSources {
			child.SetIncome(source, baseYear, childRow.Incomes[source])
		}
		situation.People[model.ChildKey(n)] = child
	}

	return situation, nil
}

func findAdult(household []Row, index int) *Row {
	for i := range household {
		if household[i].AdultIndex == index {
			return &household[i]
		}
	}
	return nil
}

func findChild(household []Row, index int) *Row {
	for i := range household {
		if household[i].ChildIndex == index {
			return &household[i]
		}
	}
	return nil
}
