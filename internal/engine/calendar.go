package engine

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-age/internal/config"
)

// SummaryFunc formats an event title. ageKnown is false when the birth year is unknown.
type SummaryFunc func(name string, age int, ageKnown bool) string

// CalendarOptions tune BuildCalendar.
type CalendarOptions struct {
	// Reminder is an ISO8601 duration (e.g. "-P1D"). Empty disables alarms.
	Reminder string
	// Summary overrides the default English titles.
	Summary SummaryFunc
}

// BuildCalendar renders contacts as an iCalendar feed with one all-day event per
// contact for the previous, current and next year of now.
// It returns the encoded feed and the number of events falling on now's date.
func BuildCalendar(contacts []Contact, now time.Time, opts CalendarOptions) ([]byte, int, error) {
	cal := ical.NewCalendar()

	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986: Suggest a refresh interval
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	// Dates follow the local calendar; only the stamp is UTC.
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	summary := opts.Summary
	if summary == nil {
		summary = defaultSummary
	}

	today := 0
	for _, c := range contacts {
		events, isToday := createEvents(c, now, opts.Reminder, summary)
		if isToday {
			today++
		}
		for _, e := range events {
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
		}
	}

	// An empty VCALENDAR from the encoder is rejected by clients, so serve a stub instead.
	if len(cal.Children) == 0 {
		logGenerated(len(contacts), 0)
		return []byte(config.StubVCalendar), 0, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	logGenerated(len(contacts), len(cal.Children))
	return buf.Bytes(), today, nil
}

// ValidateReminder checks that trigger is an RFC 5545 duration such as "-P1D" or "-PT9H".
// An empty trigger is valid and disables alarms.
func ValidateReminder(trigger string) error {
	if trigger == "" {
		return nil
	}
	prop := ical.NewProp(config.PropTrigger)
	prop.Value = trigger
	if _, err := prop.Duration(); err != nil {
		return fmt.Errorf("%s: %q: %w", config.ErrReminder, trigger, err)
	}
	return nil
}

func logGenerated(contacts, events int) {
	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompEngine,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyFound, contacts),
			slog.Int(config.LogKeyEvents, events),
		),
	)
}

// createEvents skips years before the person was born when the birth year is known.
func createEvents(c Contact, now time.Time, reminder string, summary SummaryFunc) ([]*ical.Event, bool) {
	currentYear := now.Year()
	targetYears := []int{currentYear - 1, currentYear, currentYear + 1}
	loc := now.Location()
	todayYear, todayMonth, todayDay := now.Date()

	var events []*ical.Event
	isToday := false

	for _, y := range targetYears {
		if c.YearKnown && y < c.DateOfBirth.Year() {
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, c.UID, y, config.ICalDomain))

		age := 0
		if c.YearKnown {
			age = y - c.DateOfBirth.Year()
		}
		title := summary(c.Name, age, c.YearKnown)
		event.Props.SetText(config.PropSummary, title)

		eventDate := time.Date(y, c.DateOfBirth.Month(), c.DateOfBirth.Day(), 0, 0, 0, 0, loc)
		if eventDate.Year() == todayYear && eventDate.Month() == todayMonth && eventDate.Day() == todayDay {
			isToday = true
		}

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(eventDate)
		event.Props.Set(dtStartProp)

		if reminder != "" {
			addAlarm(event, reminder, title)
		}

		events = append(events, event)
	}
	return events, isToday
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid "VALUE=TEXT" param
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}

func defaultSummary(name string, age int, ageKnown bool) string {
	switch {
	case !ageKnown:
		return fmt.Sprintf(config.FallbackSummary, name)
	case age == 0:
		return fmt.Sprintf(config.FallbackSummaryBirth, name)
	default:
		return fmt.Sprintf(config.FallbackSummaryAge, name, age)
	}
}
