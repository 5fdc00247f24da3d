package engine

import (
	"math"
	"math/rand"

	"github.com/tartampluch/go-age/internal/config"
)

// Fact is a decorative figure derived from a Breakdown.
// ID is one of the config.FactX identifiers; the text lives in the message catalogue.
type Fact struct {
	ID    string `json:"id"`
	Value int64  `json:"value"`
	Text  string `json:"text,omitempty"`
}

// Picker returns an index in [0, n).
type Picker func(n int) int

// RandomPicker picks uniformly.
func RandomPicker(n int) int {
	return rand.Intn(n)
}

// FunFacts derives the fun facts of b in display order.
// The 365.25-day year is an approximation and does not match the exact breakdown.
func FunFacts(b Breakdown) []Fact {
	return []Fact{
		{ID: config.FactFullMoons, Value: int64(math.Floor(float64(b.TotalDays) / config.DaysPerYearApprox * config.MonthsPerYear))},
		{ID: config.FactHeartbeats, Value: int64(math.Round(float64(b.TotalSeconds) * config.HeartbeatsPerSec))},
		{ID: config.FactWeeks, Value: int64(math.Floor(float64(b.Years) * config.DaysPerYearApprox / config.DaysPerWeek))},
		{ID: config.FactSunrises, Value: int64(b.Years) * config.SunrisesPerYear},
	}
}

// PickFact selects one fact. A nil picker uses RandomPicker; out of range picks are clamped.
func PickFact(facts []Fact, pick Picker) (Fact, bool) {
	if len(facts) == 0 {
		return Fact{}, false
	}
	if pick == nil {
		pick = RandomPicker
	}
	i := pick(len(facts))
	i = max(0, min(i, len(facts)-1))
	return facts[i], true
}

// FixedPicker always returns i, for reproducible output.
func FixedPicker(i int) Picker {
	return func(int) int { return i }
}
