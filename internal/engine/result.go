package engine

import (
	"time"
)

// Result bundles everything a presentation layer needs for one calculation.
type Result struct {
	Birth      time.Time `json:"birth"`
	Reference  time.Time `json:"reference"`
	Breakdown  Breakdown `json:"breakdown"`
	IsBirthday bool      `json:"is_birthday"`
	Facts      []Fact    `json:"facts"`
}

// Calculate validates the inputs and, only when they pass, computes the breakdown.
func Calculate(birth, reference time.Time) (Result, error) {
	if err := Validate(birth, reference); err != nil {
		return Result{}, err
	}
	b := ComputeBreakdown(birth, reference)
	return Result{
		Birth:      birth,
		Reference:  reference,
		Breakdown:  b,
		IsBirthday: IsBirthday(birth, reference),
		Facts:      FunFacts(b),
	}, nil
}
