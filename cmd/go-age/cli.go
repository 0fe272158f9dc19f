package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

// consoleForm serves a fixed triple to the engine.
type consoleForm engine.RawTriple

func (f consoleForm) Value(field engine.Field) string {
	return engine.RawTriple(f).Get(field)
}

// consoleSink prints field errors and result slots.
type consoleSink struct {
	out, errOut io.Writer
	failed      bool
}

func (s *consoleSink) MarkValid(engine.Field) {}

func (s *consoleSink) MarkInvalid(f engine.Field, msg string) {
	s.failed = true
	_, _ = fmt.Fprintf(s.errOut, config.FormatCLIError, f, msg)
}

func (s *consoleSink) Render(out engine.Output) {
	slots := []struct{ label, value string }{
		{config.CLILabelYears, out.Years},
		{config.CLILabelMonths, out.Months},
		{config.CLILabelDays, out.Days},
		{config.CLILabelTotalDays, out.TotalDays},
		{config.CLILabelHours, out.TotalHours},
		{config.CLILabelMinutes, out.TotalMinutes},
		{config.CLILabelSeconds, out.TotalSeconds},
		{config.CLILabelHeartbeats, out.Heartbeats},
		{config.CLILabelBreaths, out.Breaths},
		{config.CLILabelNext, out.DaysToNextBirthday},
		{config.CLILabelMilestones, strings.Join(out.Milestones, config.CLIMilestoneSep)},
	}
	for _, slot := range slots {
		_, _ = fmt.Fprintf(s.out, config.FormatCLISlot, slot.label, slot.value)
	}
}

// parseCLIDate splits a D/M/YYYY argument into raw fields.
// Field contents are left to the engine's validators.
func parseCLIDate(arg string) (engine.RawTriple, error) {
	parts := strings.Split(arg, config.CLIDateSep)
	if len(parts) != config.CLIDateParts {
		return engine.RawTriple{}, fmt.Errorf("%s: "+config.MsgCLIUsageDate, config.ErrCLIDate, arg)
	}
	return engine.RawTriple{Day: parts[0], Month: parts[1], Year: parts[2]}, nil
}

// runCLI computes the age for arg and prints it without starting the UI.
func runCLI(out, errOut io.Writer, arg string, clock engine.Clock) int {
	raw, err := parseCLIDate(arg)
	if err != nil {
		_, _ = fmt.Fprintln(errOut, err)
		return config.ExitCodeError
	}

	e := engine.NewAgeEngine()
	e.Clock = clock

	sink := &consoleSink{out: out, errOut: errOut}
	if _, err := e.Submit(consoleForm(raw), sink); err != nil {
		if !sink.failed || !errors.Is(err, engine.ErrFormInvalid) {
			_, _ = fmt.Fprintf(errOut, config.FormatCLIError, config.ErrCLIComputation, err)
		}
		return config.ExitCodeError
	}
	return config.ExitCodeSuccess
}
