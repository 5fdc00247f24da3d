// Package render turns age results into terminal text, JSON and user-facing error messages.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/muesli/termenv"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

const (
	colorBirthday = "#e74c3c"
	colorHeadline = "#818cf8"
	colorFact     = "#f472b6"
	colorError    = "#fb7185"
)

// Options configure a Renderer.
type Options struct {
	// Color enables ANSI styling with the profile detected for the writer.
	Color bool
}

// Renderer writes results for humans.
type Renderer struct {
	w   io.Writer
	out *termenv.Output
	cat *Catalog
}

// New creates a Renderer writing to w.
func New(w io.Writer, cat *Catalog, opts Options) *Renderer {
	profile := termenv.Ascii
	if opts.Color {
		profile = termenv.NewOutput(w).EnvColorProfile()
	}
	return &Renderer{
		w:   w,
		out: termenv.NewOutput(w, termenv.WithProfile(profile)),
		cat: cat,
	}
}

func (r *Renderer) style(s, color string) termenv.Style {
	return r.out.String(s).Foreground(r.out.Color(color))
}

// Text writes the greeting, headline, figures table and one fun fact.
func (r *Renderer) Text(res engine.Result, fact engine.Fact) error {
	b := res.Breakdown

	if res.IsBirthday {
		if _, err := fmt.Fprintln(r.w, r.style(r.cat.Msg(config.TKeyBirthday, nil), colorBirthday).Bold()); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(r.w, r.style(r.cat.Headline(b), colorHeadline).Bold()); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(r.w); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', tabwriter.AlignRight)
	rows := []struct {
		key   string
		value string
	}{
		{config.TKeyLblYears, strconv.Itoa(b.Years)},
		{config.TKeyLblMonths, strconv.Itoa(b.Months)},
		{config.TKeyLblDays, strconv.Itoa(b.Days)},
		{config.TKeyLblTotalDays, r.cat.Number(b.TotalDays)},
		{config.TKeyLblTotalHours, r.cat.Number(b.TotalHours)},
		{config.TKeyLblTotalMins, r.cat.Number(b.TotalMinutes)},
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t  %s\n", row.value, r.cat.Msg(row.key, nil)); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if fact.ID == "" {
		return nil
	}
	line := r.cat.Msg(config.TKeyLblFunFact, map[string]any{"Fact": r.cat.FactText(fact)})
	_, err := fmt.Fprintf(r.w, "\n%s\n", r.style(line, colorFact))
	return err
}

// Error writes the user-facing message for err.
func (r *Renderer) Error(err error) error {
	_, werr := fmt.Fprintln(r.w, r.style(r.cat.ErrorMessage(err), colorError).Bold())
	return werr
}

// Contacts writes one row per contact: name, birth date, current age and next birthday.
func (r *Renderer) Contacts(contacts []engine.Contact) error {
	tw := tabwriter.NewWriter(r.w, 0, 0, 2, ' ', 0)
	// No styling here: escape sequences would skew tabwriter's column widths.
	if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n",
		r.cat.Msg(config.TKeyColName, nil),
		r.cat.Msg(config.TKeyColBirth, nil),
		r.cat.Msg(config.TKeyColAge, nil),
		r.cat.Msg(config.TKeyColNext, nil),
	); err != nil {
		return err
	}

	for _, c := range contacts {
		born := c.DateOfBirth.Format(config.DateFormatNoYearD)
		if c.YearKnown {
			born = c.DateOfBirth.Format(config.DateFormatDisplay)
		}

		age := r.cat.Msg(config.TKeyAgeUnknown, nil)
		if c.Age != nil {
			age = r.cat.Msg(config.TKeyContactAge, map[string]any{
				"Years":  c.Age.Breakdown.Years,
				"Months": c.Age.Breakdown.Months,
				"Days":   c.Age.Breakdown.Days,
			})
		}

		next := c.NextOccurrence.Format(config.DateFormatDisplay)
		if c.YearKnown {
			next = fmt.Sprintf("%s (%d)", next, c.AgeNext)
		}

		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", c.Name, born, age, next); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
