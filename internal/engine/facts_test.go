package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

func TestFunFacts_Formulas(t *testing.T) {
	b := engine.Breakdown{Years: 24, TotalDays: 8766, TotalSeconds: 8766 * 86400}

	facts := engine.FunFacts(b)
	require.Len(t, facts, 4)

	want := map[string]int64{
		config.FactFullMoons:  288,        // floor(8766 / 365.25 * 12)
		config.FactHeartbeats: 908858880,  // round(757382400 * 1.2)
		config.FactWeeks:      1252,       // floor(24 * 365.25 / 7)
		config.FactSunrises:   24 * 365,
	}
	for _, f := range facts {
		assert.Equal(t, want[f.ID], f.Value, f.ID)
	}
}

func TestPickFact(t *testing.T) {
	facts := engine.FunFacts(engine.Breakdown{Years: 1})

	got, ok := engine.PickFact(facts, engine.FixedPicker(2))
	require.True(t, ok)
	assert.Equal(t, config.FactWeeks, got.ID)

	got, ok = engine.PickFact(facts, engine.FixedPicker(99))
	require.True(t, ok)
	assert.Equal(t, config.FactSunrises, got.ID, "out of range picks are clamped")

	_, ok = engine.PickFact(facts, nil)
	assert.True(t, ok)

	_, ok = engine.PickFact(nil, nil)
	assert.False(t, ok)
}
