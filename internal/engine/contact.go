package engine

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-age/internal/config"
)

// SourceConfig locates the address book birth dates are imported from.
type SourceConfig struct {
	Mode      string // config.SourceModeLocal or config.SourceModeWeb
	LocalPath string // Absolute path to the .vcf file
	WebURL    string // CardDAV or WebDAV URL
	WebUser   string // HTTP Basic Auth Username
	WebPass   string // HTTP Basic Auth Password
}

// BirthdayEntry is a contact with a usable birth date, ready to fill the form.
type BirthdayEntry struct {
	// UID is a unique identifier (hash) used for stability in lists.
	UID string

	// Name is the display name (Formatted Name or Structured Name).
	Name string

	// DateOfBirth is the original parsed date.
	DateOfBirth time.Time

	// YearKnown indicates if the vCard contained a year or just --MM-DD.
	YearKnown bool
}

// Raw returns the entry as form input. The year is left empty when unknown.
func (b BirthdayEntry) Raw() RawTriple {
	raw := RawTriple{
		Day:   fmt.Sprint(b.DateOfBirth.Day()),
		Month: fmt.Sprint(int(b.DateOfBirth.Month())),
	}
	if b.YearKnown {
		raw.Year = fmt.Sprint(b.DateOfBirth.Year())
	}
	return raw
}

// Importer reads contacts from a local file or a remote address book.
type Importer struct {
	Fetcher VCardFetcher // Interface for network abstraction.
}

// ReadContacts returns every contact of the source that carries a parseable BDAY.
// Malformed cards and dates are skipped.
func (im *Importer) ReadContacts(ctx context.Context, cfg SourceConfig) ([]BirthdayEntry, error) {
	reader, err := im.acquireStream(ctx, cfg)
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

	return decodeContacts(ctx, reader)
}

// acquireStream opens the appropriate data source based on configuration.
func (im *Importer) acquireStream(ctx context.Context, cfg SourceConfig) (io.ReadCloser, error) {
	switch cfg.Mode {
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(cfg.LocalPath)
	case config.SourceModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if im.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return im.Fetcher.Fetch(ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}

func decodeContacts(ctx context.Context, r io.Reader) ([]BirthdayEntry, error) {
	dec := vcard.NewDecoder(r)
	log := slog.With(config.LogKeyComponent, config.CompEngine)

	var contacts []BirthdayEntry
	processed := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		card, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Warn(config.MsgSkippedCard, config.LogKeyError, err)
			continue
		}
		processed++

		if entry, ok := cardEntry(card, log); ok {
			contacts = append(contacts, entry)
		}
	}

	log.Info(config.MsgContactsRead,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, processed),
			slog.Int(config.LogKeyFound, len(contacts)),
		),
	)
	return contacts, nil
}

// cardEntry extracts the birthday of a card. Cards without a usable BDAY are skipped.
func cardEntry(card vcard.Card, log *slog.Logger) (BirthdayEntry, bool) {
	bday := card.Value(vcard.FieldBirthday)
	if bday == "" {
		return BirthdayEntry{}, false
	}

	birthDate, yearKnown, err := parseDate(bday)
	if err != nil {
		log.Debug(config.MsgSkippedDate, config.LogKeyValue, bday)
		return BirthdayEntry{}, false
	}

	name := cardName(card)
	return BirthdayEntry{
		UID:         contactUID(name, birthDate),
		Name:        name,
		DateOfBirth: birthDate,
		YearKnown:   yearKnown,
	}, true
}

// cardName prefers FN, then the given and family parts of N.
func cardName(card vcard.Card) string {
	if fn := strings.TrimSpace(card.PreferredValue(vcard.FieldFormattedName)); fn != "" {
		return fn
	}
	if n := card.Name(); n != nil {
		parts := make([]string, 0, 2)
		for _, p := range []string{n.GivenName, n.FamilyName} {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, " ")
		}
	}
	return config.FallbackName
}

func contactUID(name string, birthDate time.Time) string {
	input := fmt.Sprintf(config.FormatHashInput, birthDate.Year(), int(birthDate.Month()), birthDate.Day(), name)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash[:config.UIDHashLength])
}

// bdayLayouts are tried in order. Truncated layouts carry no year.
var bdayLayouts = []struct {
	layout    string
	yearKnown bool
}{
	{config.DateFormatFullDash, true},
	{config.DateFormatFullBasic, true},
	{config.DateFormatRFC3339, true},
	{config.DateFormatFullT, true},
	{config.DateFormatNoYearD, false},
	{config.DateFormatNoYearB, false},
}

// parseDate reads a BDAY value. Dates without a year are anchored on
// config.DefaultLeapYear so that 29 February survives.
func parseDate(value string) (time.Time, bool, error) {
	for _, l := range bdayLayouts {
		t, err := time.Parse(l.layout, value)
		if err != nil {
			continue
		}
		if !l.yearKnown {
			t = time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
		return t, l.yearKnown, nil
	}
	return time.Time{}, false, errors.New(config.ErrDateParse)
}
