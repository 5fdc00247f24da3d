package engine_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

func contact(name string, birth time.Time, yearKnown bool) engine.Contact {
	return engine.Contact{UID: "uid-" + name, Name: name, DateOfBirth: birth, YearKnown: yearKnown}
}

func TestBuildCalendar_YearRange(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	contacts := []engine.Contact{contact("Range Test", time.Date(1990, 12, 31, 0, 0, 0, 0, time.UTC), true)}

	ics, today, err := engine.BuildCalendar(contacts, now, engine.CalendarOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, today)

	icsStr := string(ics)
	assert.Contains(t, icsStr, "BEGIN:VCALENDAR")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20241231")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20251231")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20261231")
	assert.Contains(t, icsStr, "SUMMARY:Birthday: Range Test (35)")
	assert.Equal(t, 3, strings.Count(icsStr, "BEGIN:VEVENT"))
}

func TestBuildCalendar_BabyBornThisYear(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	contacts := []engine.Contact{contact("Baby", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), true)}

	ics, _, err := engine.BuildCalendar(contacts, now, engine.CalendarOptions{
		Summary: func(name string, age int, ageKnown bool) string {
			if age == 0 {
				return fmt.Sprintf("Birthday: %s (Birth)", name)
			}
			return fmt.Sprintf("Birthday: %s (%d)", name, age)
		},
	})
	require.NoError(t, err)

	icsStr := string(ics)
	assert.NotContains(t, icsStr, "DTSTART;VALUE=DATE:20240501", "Should NOT generate event before birth")
	assert.Contains(t, icsStr, "SUMMARY:Birthday: Baby (Birth)")
	assert.Contains(t, icsStr, "SUMMARY:Birthday: Baby (1)")
	assert.Equal(t, 2, strings.Count(icsStr, "BEGIN:VEVENT"))
}

func TestBuildCalendar_UnknownYearHasNoAge(t *testing.T) {
	now := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	contacts := []engine.Contact{contact("Pi", time.Date(config.DefaultLeapYear, 3, 14, 0, 0, 0, 0, time.UTC), false)}

	ics, today, err := engine.BuildCalendar(contacts, now, engine.CalendarOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, today)
	assert.Contains(t, string(ics), "SUMMARY:Birthday: Pi\r\n")
	assert.Equal(t, 3, strings.Count(string(ics), "BEGIN:VEVENT"))
}

func TestBuildCalendar_Reminder(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	contacts := []engine.Contact{contact("Alarm Test", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), true)}

	ics, _, err := engine.BuildCalendar(contacts, now, engine.CalendarOptions{Reminder: "-P1D"})
	require.NoError(t, err)

	icsStr := string(ics)
	assert.Contains(t, icsStr, "BEGIN:VALARM")
	assert.Contains(t, icsStr, "TRIGGER:-P1D")
	assert.Contains(t, icsStr, "ACTION:DISPLAY")
}

func TestBuildCalendar_EmptyReturnsStub(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	unborn := []engine.Contact{contact("Future Baby", time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), true)}

	for _, contacts := range [][]engine.Contact{nil, unborn} {
		ics, today, err := engine.BuildCalendar(contacts, now, engine.CalendarOptions{})
		require.NoError(t, err)
		assert.Equal(t, config.StubVCalendar, string(ics))
		assert.Equal(t, 0, today)
	}
}

func TestValidateReminder(t *testing.T) {
	for _, trigger := range []string{"", "-P1D", "-PT9H", "PT30M", "-P2W"} {
		assert.NoError(t, engine.ValidateReminder(trigger), trigger)
	}
	for _, trigger := range []string{"1 day", "-1D"} {
		err := engine.ValidateReminder(trigger)
		require.Error(t, err, trigger)
		assert.Contains(t, err.Error(), config.ErrReminder)
	}
}
