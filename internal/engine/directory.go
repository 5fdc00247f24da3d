package engine

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-age/internal/config"
)

// Source selects where contacts are read from.
type Source struct {
	Mode      string // config.SourceModeLocal or config.SourceModeWeb
	LocalPath string // Path to the .vcf file
	WebURL    string // CardDAV or WebDAV URL
	WebUser   string // HTTP Basic Auth Username
	WebPass   string // HTTP Basic Auth Password
}

// Directory loads contacts and computes their ages against the clock's date.
type Directory struct {
	Clock   Clock        // Interface for time mocking.
	Fetcher VCardFetcher // Interface for network abstraction.
}

type loadStats struct{ processed, withBday, today int }

// Load reads every card of src and returns the contacts having a usable BDAY,
// sorted by next occurrence then name.
func (d *Directory) Load(ctx context.Context, src Source) ([]Contact, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompDirectory,
		config.LogKeyMode, src.Mode,
	)
	log.InfoContext(ctx, config.MsgLoadStarted)

	reader, err := d.acquireStream(ctx, src)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	defer func() { _ = reader.Close() }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	contacts, err := d.decode(ctx, reader)
	if err == nil {
		log.Debug("Load finished", config.LogKeyDuration, time.Since(start).Milliseconds())
	}
	return contacts, err
}

// acquireStream opens the appropriate data source based on configuration.
func (d *Directory) acquireStream(ctx context.Context, src Source) (io.ReadCloser, error) {
	switch src.Mode {
	case config.SourceModeLocal:
		if src.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(src.LocalPath)
	case config.SourceModeWeb:
		if src.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if d.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return d.Fetcher.Fetch(ctx, src.WebURL, src.WebUser, src.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, src.Mode)
	}
}

func (d *Directory) decode(ctx context.Context, r io.Reader) ([]Contact, error) {
	today := Today(d.Clock)
	decoder := vcard.NewDecoder(r)
	var stats loadStats
	var contacts []Contact

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Keep going: one broken card must not hide the rest.
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompDirectory,
				config.LogKeyError, err)
			continue
		}

		stats.processed++
		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		parsed, yearKnown, err := parseDate(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompDirectory,
				config.LogKeyValue, bday.Value)
			continue
		}
		stats.withBday++

		// Name Strategy: FN (Formatted) > N (Structured) > Fallback
		name := config.FallbackName
		if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
			name = fn.Value
		} else if n := card.Get(config.VCardN); n != nil && n.Value != "" {
			name = n.Value
		}

		birth := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, today.Location())
		c := newContact(name, birth, yearKnown, today)
		if IsBirthday(birth, today) {
			stats.today++
			slog.Info(config.MsgBdayToday,
				config.LogKeyComponent, config.CompDirectory,
				config.LogKeyName, name,
				config.LogKeyDOB, birth.Format(config.DateFormatFullDash))
		}
		contacts = append(contacts, c)
	}

	sortContacts(contacts)

	slog.Info(config.MsgLoadSuccess,
		config.LogKeyComponent, config.CompDirectory,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.processed),
			slog.Int(config.LogKeyFound, stats.withBday),
			slog.Int(config.LogKeyToday, stats.today),
		),
	)
	return contacts, nil
}

func newContact(name string, birth time.Time, yearKnown bool, today time.Time) Contact {
	// Deterministic UID generation for stability across refreshes
	input := fmt.Sprintf(config.FormatHashInput, name, birth.Format(config.DateFormatFullDash), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))

	next, ageNext := NextBirthday(today, birth, yearKnown)
	c := Contact{
		UID:            fmt.Sprintf("%x", hash[:config.UIDHashLength]),
		Name:           name,
		DateOfBirth:    birth,
		YearKnown:      yearKnown,
		NextOccurrence: next,
		AgeNext:        ageNext,
	}

	if !yearKnown {
		return c
	}
	res, err := Calculate(birth, today)
	if err != nil {
		kind, _ := KindOf(err)
		slog.Debug(config.MsgSkippedAge,
			config.LogKeyComponent, config.CompDirectory,
			config.LogKeyName, name,
			config.LogKeyKind, string(kind))
		return c
	}
	c.Age = &res
	return c
}

// NextBirthday returns the birthday on or after now's date and the age turned then.
// Feb 29 falls on Mar 1 in common years, following time.Date normalization.
func NextBirthday(now, birth time.Time, yearKnown bool) (time.Time, int) {
	loc := now.Location()
	todayStart := DateOf(now)

	candidate := time.Date(now.Year(), birth.Month(), birth.Day(), 0, 0, 0, 0, loc)
	if candidate.Before(todayStart) {
		candidate = time.Date(now.Year()+1, birth.Month(), birth.Day(), 0, 0, 0, 0, loc)
	}

	ageNext := 0
	if yearKnown {
		ageNext = candidate.Year() - birth.Year()
	}
	return candidate, ageNext
}

func sortContacts(contacts []Contact) {
	sort.SliceStable(contacts, func(i, j int) bool {
		a, b := contacts[i], contacts[j]
		if !a.NextOccurrence.Equal(b.NextOccurrence) {
			return a.NextOccurrence.Before(b.NextOccurrence)
		}
		return a.Name < b.Name
	})
}
