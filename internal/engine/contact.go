package engine

import "time"

// Contact is a birthday-bearing entry read from a vCard source.
type Contact struct {
	// UID is a deterministic hash of name and birth date, stable across reloads.
	UID string `json:"uid"`

	Name string `json:"name"`

	// DateOfBirth is the parsed BDAY value. Its year is DefaultLeapYear when YearKnown is false.
	DateOfBirth time.Time `json:"date_of_birth"`

	// YearKnown indicates if the vCard contained a year or just --MM-DD.
	YearKnown bool `json:"year_known"`

	// NextOccurrence is the birthday on or after today. Primary sorting key.
	NextOccurrence time.Time `json:"next_occurrence"`

	// AgeNext is the age turned at NextOccurrence. Zero when the year is unknown.
	AgeNext int `json:"age_next"`

	// Age is the breakdown as of the load date. Nil when the year is unknown
	// or the date fails validation (future or too old).
	Age *Result `json:"age,omitempty"`
}
