package engine

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/tartampluch/go-age/internal/config"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Form supplies the current raw text of each field on demand.
type Form interface {
	Value(f Field) string
}

// Sink is the output side of the form: per-field visual state and the result slots.
type Sink interface {
	MarkValid(f Field)
	MarkInvalid(f Field, message string)
	Render(out Output)
}

// Result is a complete computation for one birth date and one reference timestamp.
type Result struct {
	Birth      DateTriple
	BirthTime  time.Time
	Now        time.Time
	Age        AgeBreakdown
	Duration   DurationStats
	Next       NextAnniversary
	Milestones []Milestone
}

// Output is a Result rendered into the strings written to the display slots.
type Output struct {
	// Age holds the count-up targets for the Years, Months and Days slots.
	Age AgeBreakdown

	Years  string
	Months string
	Days   string

	TotalDays    string
	TotalHours   string
	TotalMinutes string
	TotalSeconds string
	Heartbeats   string
	Breaths      string

	DaysToNextBirthday string

	Milestones []string
}

// Compute runs the calendar arithmetic for a validated triple.
// No partial result is returned on error.
func Compute(birth DateTriple, now time.Time) (*Result, error) {
	birthTime, err := BirthTime(birth, now)
	if err != nil {
		return nil, err
	}

	age := ageBetween(birth, now)
	dur := CalculateDuration(birthTime, now)

	return &Result{
		Birth:      birth,
		BirthTime:  birthTime,
		Now:        now,
		Age:        age,
		Duration:   dur,
		Next:       CalculateNextAnniversary(birth, now),
		Milestones: DeriveMilestones(age.Years, dur.TotalDays),
	}, nil
}

// AgeEngine validates the form and computes the age for it.
type AgeEngine struct {
	Clock Clock // Source of the reference timestamp.

	// Printer formats the grouped counters. Defaults to English.
	Printer *message.Printer

	// FormatError and FormatMilestone let the UI inject localized strings.
	// When nil, the default English text is used.
	FormatError     func(fe *FieldError) string
	FormatMilestone func(m Milestone) string
}

// NewAgeEngine returns an engine on the real clock with English formatting.
func NewAgeEngine() *AgeEngine {
	return &AgeEngine{
		Clock:   RealClock{},
		Printer: message.NewPrinter(language.English),
	}
}

// Validate runs every field validator, marks each field, and reports whether
// the whole form is valid. Fields are always marked day, then month, then year.
func (e *AgeEngine) Validate(form Form, sink Sink) bool {
	return e.validate(form, sink, e.now()).Valid()
}

// Input handles an edit notification for one field. The edited field is
// re-marked, and so is the day when month or year changed and the day parses,
// since its month-aware bound may have moved.
func (e *AgeEngine) Input(f Field, form Form, sink Sink) *FieldError {
	raw := readRaw(form)
	report := Check(raw, e.now().Year())

	e.apply(sink, f, report.Err(f))
	if f != FieldDay {
		if _, ok := parseField(raw.Day); ok {
			e.apply(sink, FieldDay, report.Day)
		}
	}
	return report.Err(f)
}

// Submit validates the form and, when valid, computes and renders the result.
// A single reference timestamp is used for the whole pipeline.
// Computation errors are attached to the day field and nothing is rendered.
func (e *AgeEngine) Submit(form Form, sink Sink) (*Result, error) {
	now := e.now()
	log := slog.With(config.LogKeyComponent, config.CompEngine)

	report := e.validate(form, sink, now)
	if !report.Valid() {
		return nil, ErrFormInvalid
	}

	birth, _ := ParseTriple(readRaw(form))
	res, err := Compute(birth, now)
	if err != nil {
		var fe *FieldError
		if errors.As(err, &fe) {
			sink.MarkInvalid(fe.Field, e.message(fe))
			log = log.With(config.LogKeyField, fe.Field.String())
		}
		log.Debug(config.MsgComputeRejected, config.LogKeyError, err)
		return nil, err
	}

	sink.Render(e.Render(res))

	log.Debug(config.MsgComputed,
		config.LogKeyYears, res.Age.Years,
		config.LogKeyTotalDays, res.Duration.TotalDays,
		config.LogKeyNextDays, res.Next.DaysRemaining,
	)
	return res, nil
}

// Render formats a Result for display.
func (e *AgeEngine) Render(r *Result) Output {
	p := e.Printer
	if p == nil {
		p = message.NewPrinter(language.English)
	}
	grouped := func(n int64) string { return p.Sprintf("%d", n) }

	labels := make([]string, len(r.Milestones))
	for i, m := range r.Milestones {
		labels[i] = m.Label
		if e.FormatMilestone != nil {
			labels[i] = e.FormatMilestone(m)
		}
	}

	return Output{
		Age:                r.Age,
		Years:              strconv.Itoa(r.Age.Years),
		Months:             strconv.Itoa(r.Age.Months),
		Days:               strconv.Itoa(r.Age.Days),
		TotalDays:          grouped(r.Duration.TotalDays),
		TotalHours:         grouped(r.Duration.TotalHours),
		TotalMinutes:       grouped(r.Duration.TotalMinutes),
		TotalSeconds:       grouped(r.Duration.TotalSeconds),
		Heartbeats:         grouped(r.Duration.Heartbeats),
		Breaths:            grouped(r.Duration.Breaths),
		DaysToNextBirthday: strconv.Itoa(r.Next.DaysRemaining),
		Milestones:         labels,
	}
}

func (e *AgeEngine) validate(form Form, sink Sink, now time.Time) Report {
	report := Check(readRaw(form), now.Year())
	for _, f := range Fields {
		e.apply(sink, f, report.Err(f))
	}

	slog.Debug(config.MsgValidated,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyValid, report.Valid(),
	)
	return report
}

func (e *AgeEngine) apply(sink Sink, f Field, fe *FieldError) {
	if fe == nil {
		sink.MarkValid(f)
		return
	}
	sink.MarkInvalid(f, e.message(fe))
}

func (e *AgeEngine) message(fe *FieldError) string {
	if e.FormatError != nil {
		if msg := e.FormatError(fe); msg != "" {
			return msg
		}
	}
	return fe.Message
}

func (e *AgeEngine) now() time.Time {
	if e.Clock == nil {
		return time.Now()
	}
	return e.Clock.Now()
}

func readRaw(form Form) RawTriple {
	return RawTriple{
		Day:   form.Value(FieldDay),
		Month: form.Value(FieldMonth),
		Year:  form.Value(FieldYear),
	}
}
