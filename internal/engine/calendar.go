package engine

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-age/internal/config"
)

// BuildCalendar renders the upcoming anniversaries of birth as an iCalendar
// document: one all-day event per year, starting with the current year, each
// with a display alarm the day before. Years before birth are skipped.
// summary receives the age reached at that anniversary; nil uses the English default.
func BuildCalendar(birth DateTriple, now time.Time, summary func(age int) string) ([]byte, error) {
	cal := ical.NewCalendar()

	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.Set(rawProp(config.PropXWRCalName, config.ICalCalName))
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986: Suggest a refresh interval
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	// Birthdays follow the local calendar; only the stamp is UTC.
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	uidBase := birthUID(birth)
	loc := now.Location()

	for y := now.Year(); y < now.Year()+config.ExportYears; y++ {
		if y < birth.Year {
			continue
		}
		age := y - birth.Year

		text := fmt.Sprintf(config.FallbackSummary, age)
		if summary != nil {
			text = summary(age)
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, y, config.ICalDomain))
		event.Props.SetText(config.PropSummary, text)

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(time.Date(y, time.Month(birth.Month), birth.Day, 0, 0, 0, 0, loc))
		event.Props.Set(dtStartProp)
		event.Props.Set(dtStampProp)

		addAlarm(event, config.ICalTrigger, text)
		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	alarm.Props.Set(rawProp(config.PropTrigger, trigger))

	event.Children = append(event.Children, alarm)
}

// rawProp builds a property without a VALUE parameter. SetText would add
// VALUE=TEXT to properties go-ical does not know as text by default.
func rawProp(name, value string) *ical.Prop {
	p := ical.NewProp(name)
	p.Value = value
	return p
}

func birthUID(birth DateTriple) string {
	input := fmt.Sprintf(config.FormatHashInput, birth.Year, birth.Month, birth.Day, config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash[:config.UIDHashLength])
}
