package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

// fieldWidgets is one labelled input with its error line.
type fieldWidgets struct {
	label *widget.Label
	entry *NumericalEntry
	hint  *widget.Label
}

// formView is the age form. It is both the engine's Form (it reads the
// entries) and its Sink (it marks fields and fills the result slots).
type formView struct {
	app     *GoAgeApp
	content fyne.CanvasObject

	fields [3]fieldWidgets // indexed by engine.Field

	years, months, days                              *widget.Label
	totalDays, totalHours, totalMinutes, totalSecond *widget.Label
	heartbeats, breaths, nextBirthday                *widget.Label
	badges                                           *fyne.Container

	results   *fyne.Container
	cards     []*widget.Card
	exportBtn *widget.Button

	last       *engine.Result
	animations []*fyne.Animation
	timers     []*time.Timer
}

// ShowMainWindow opens the form, or focuses it when already shown.
func (app *GoAgeApp) ShowMainWindow() {
	if app.Window != nil {
		app.Window.RequestFocus()
		return
	}

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window = w
	app.form = app.newFormView()

	w.SetContent(app.form.content)
	w.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))
	w.SetMaster()
	w.SetOnClosed(func() { app.Window = nil })
	w.Show()
}

// reloadMainWindow rebuilds the form after a language change, keeping the
// typed values and the last result.
func (app *GoAgeApp) reloadMainWindow() {
	if app.Window == nil || app.form == nil {
		return
	}
	prev := app.form
	next := app.newFormView()

	for _, f := range engine.Fields {
		next.fields[f].entry.SetText(prev.Value(f))
	}
	prev.stopAnimations()
	if prev.last != nil {
		next.last = prev.last
		next.exportBtn.Enable()
		next.show(app.newEngine().Render(prev.last), false)
	}

	app.form = next
	app.Window.SetTitle(app.GetMsg(config.TKeyWinTitle))
	app.Window.SetContent(next.content)
}

func (app *GoAgeApp) newFormView() *formView {
	v := &formView{app: app}

	specs := []struct {
		field  engine.Field
		key    string
		hint   string
		digits int
	}{
		{engine.FieldDay, config.TKeyLblDay, config.EntryDayHint, config.DayDigits},
		{engine.FieldMonth, config.TKeyLblMonth, config.EntryMonthHint, config.MonthDigits},
		{engine.FieldYear, config.TKeyLblYear, config.EntryYearHint, config.YearDigits},
	}

	columns := make([]fyne.CanvasObject, 0, len(specs))
	for _, s := range specs {
		fw := fieldWidgets{
			label: widget.NewLabel(app.GetMsg(s.key)),
			entry: NewNumericalEntry(s.digits),
			hint:  widget.NewLabel(""),
		}
		fw.entry.PlaceHolder = s.hint
		fw.hint.Wrapping = fyne.TextWrapWord
		fw.hint.Hide()

		field := s.field
		fw.entry.OnChanged = func(string) {
			app.newEngine().Input(field, v, v)
		}
		fw.entry.OnSubmitted = func(string) { v.submit() }

		v.fields[field] = fw
		columns = append(columns, container.NewVBox(fw.label, fw.entry, fw.hint))
	}

	calcBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCalculate), theme.ConfirmIcon(), v.submit)
	calcBtn.Importance = widget.HighImportance

	contactsBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnContacts), theme.AccountIcon(), app.ShowContactsWindow)
	settingsBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSettings), theme.SettingsIcon(), app.ShowSettingsWindow)

	v.exportBtn = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnExport), theme.DocumentSaveIcon(), v.exportCalendar)
	v.exportBtn.Disable()

	slot := func() *widget.Label {
		l := widget.NewLabel(config.SlotPlaceholder)
		l.TextStyle = fyne.TextStyle{Bold: true}
		return l
	}
	v.years, v.months, v.days = slot(), slot(), slot()
	v.totalDays, v.totalHours, v.totalMinutes, v.totalSecond = slot(), slot(), slot(), slot()
	v.heartbeats, v.breaths, v.nextBirthday = slot(), slot(), slot()
	v.badges = container.NewGridWithColumns(config.LayoutColumnsDouble)

	row := func(key string, value *widget.Label) fyne.CanvasObject {
		return container.NewBorder(nil, nil, widget.NewLabel(app.GetMsg(key)), nil, value)
	}

	v.cards = []*widget.Card{
		widget.NewCard(app.GetMsg(config.TKeyCardAge), "", container.NewGridWithColumns(config.LayoutColumnsTriple,
			container.NewVBox(v.years, widget.NewLabel(app.GetMsg(config.TKeySlotYears))),
			container.NewVBox(v.months, widget.NewLabel(app.GetMsg(config.TKeySlotMonths))),
			container.NewVBox(v.days, widget.NewLabel(app.GetMsg(config.TKeySlotDays))),
		)),
		widget.NewCard(app.GetMsg(config.TKeyCardDuration), "", container.NewVBox(
			row(config.TKeySlotTotalDays, v.totalDays),
			row(config.TKeySlotHours, v.totalHours),
			row(config.TKeySlotMinutes, v.totalMinutes),
			row(config.TKeySlotSeconds, v.totalSecond),
		)),
		widget.NewCard(app.GetMsg(config.TKeyCardLife), "", container.NewVBox(
			row(config.TKeySlotHeartbeats, v.heartbeats),
			row(config.TKeySlotBreaths, v.breaths),
		)),
		widget.NewCard(app.GetMsg(config.TKeyCardNext), "", row(config.TKeySlotNext, v.nextBirthday)),
		widget.NewCard(app.GetMsg(config.TKeyCardMilestones), "", v.badges),
	}

	cardObjects := make([]fyne.CanvasObject, len(v.cards))
	for i, c := range v.cards {
		cardObjects[i] = c
	}
	v.results = container.NewVBox(cardObjects...)
	v.results.Hide()

	footer := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version))
	footer.Alignment = fyne.TextAlignCenter
	footer.TextStyle = fyne.TextStyle{Italic: true}

	v.content = container.NewBorder(
		container.NewPadded(container.NewVBox(
			container.NewGridWithColumns(config.LayoutColumnsTriple, columns...),
			calcBtn,
			container.NewGridWithColumns(config.LayoutColumnsTriple, contactsBtn, v.exportBtn, settingsBtn),
		)),
		footer, nil, nil,
		container.NewVScroll(container.NewPadded(v.results)),
	)
	return v
}

// Value implements engine.Form.
func (v *formView) Value(f engine.Field) string {
	return v.fields[f].entry.Text
}

// MarkValid implements engine.Sink.
func (v *formView) MarkValid(f engine.Field) {
	fw := v.fields[f]
	fw.label.Importance = widget.SuccessImportance
	fw.label.Refresh()
	fw.hint.SetText("")
	fw.hint.Hide()
}

// MarkInvalid implements engine.Sink.
func (v *formView) MarkInvalid(f engine.Field, msg string) {
	fw := v.fields[f]
	fw.label.Importance = widget.DangerImportance
	fw.label.Refresh()
	fw.hint.Importance = widget.DangerImportance
	fw.hint.SetText(msg)
	fw.hint.Show()
}

// Render implements engine.Sink.
func (v *formView) Render(out engine.Output) {
	v.show(out, v.app.animate())
}

// submit runs the pipeline and publishes the calendar of a successful result.
func (v *formView) submit() {
	res, err := v.app.newEngine().Submit(v, v)
	if err != nil {
		return
	}
	v.last = res
	v.exportBtn.Enable()

	if _, err := v.app.publish(res); err != nil {
		slog.Error(config.ErrICalEncode,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
	}
}

// fill puts a raw triple into the entries and submits it.
func (v *formView) fill(raw engine.RawTriple) {
	for _, f := range engine.Fields {
		v.fields[f].entry.SetText(raw.Get(f))
	}
	v.submit()
}

// show writes the output. With animate, the age counts up and the cards
// appear one after another; otherwise everything is set at once.
func (v *formView) show(out engine.Output, animate bool) {
	v.stopAnimations()

	v.totalDays.SetText(out.TotalDays)
	v.totalHours.SetText(out.TotalHours)
	v.totalMinutes.SetText(out.TotalMinutes)
	v.totalSecond.SetText(out.TotalSeconds)
	v.heartbeats.SetText(out.Heartbeats)
	v.breaths.SetText(out.Breaths)
	v.nextBirthday.SetText(out.DaysToNextBirthday)

	v.badges.RemoveAll()
	for _, label := range out.Milestones {
		badge := widget.NewLabel(label)
		badge.Importance = widget.HighImportance
		v.badges.Add(badge)
	}

	if !animate {
		v.years.SetText(out.Years)
		v.months.SetText(out.Months)
		v.days.SetText(out.Days)
		for _, c := range v.cards {
			c.Show()
		}
		v.results.Show()
		return
	}

	v.countUp(v.years, out.Age.Years)
	v.countUp(v.months, out.Age.Months)
	v.countUp(v.days, out.Age.Days)

	for _, c := range v.cards {
		c.Hide()
	}
	v.results.Show()
	for i, c := range v.cards {
		card := c
		timer := time.AfterFunc(config.ResultRevealDelay+engine.RevealDelay(i), func() {
			fyne.Do(card.Show)
		})
		v.timers = append(v.timers, timer)
	}
}

// displayedValue reads the integer a slot currently shows. The placeholder
// and anything else that does not parse count as zero.
func displayedValue(label *widget.Label) int {
	n, err := strconv.Atoi(label.Text)
	if err != nil {
		return 0
	}
	return n
}

// countUp animates label from the value it shows to target along the easing curve.
func (v *formView) countUp(label *widget.Label, target int) {
	d := config.CountUpDuration
	start := displayedValue(label)
	label.SetText(strconv.Itoa(start))

	anim := fyne.NewAnimation(d, func(progress float32) {
		elapsed := time.Duration(float64(progress) * float64(d))
		label.SetText(strconv.Itoa(engine.Tween(start, target, elapsed, d)))
	})
	anim.Curve = fyne.AnimationLinear
	v.animations = append(v.animations, anim)
	anim.Start()
}

func (v *formView) stopAnimations() {
	for _, a := range v.animations {
		a.Stop()
	}
	for _, t := range v.timers {
		t.Stop()
	}
	v.animations = nil
	v.timers = nil
}

// exportCalendar saves the anniversary calendar of the last result to a file.
func (v *formView) exportCalendar() {
	w := v.app.Window
	if v.last == nil {
		if w != nil {
			dialog.ShowError(errors.New(config.ErrNoResultYet), w)
		}
		return
	}

	data, err := v.app.publish(v.last)
	if err != nil {
		if w != nil {
			dialog.ShowError(err, w)
		}
		return
	}
	if w == nil {
		return
	}

	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer func() { _ = wc.Close() }()

		if _, err := wc.Write(data); err != nil {
			slog.Error(config.ErrExportWrite,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyError, err)
			dialog.ShowError(fmt.Errorf("%s: %w", config.ErrExportWrite, err), w)
			return
		}
		slog.Info(config.MsgExported,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyFile, wc.URI().Path(),
			config.LogKeySizeBytes, len(data))
	}, w)
	d.SetFileName(config.ExportFileName)
	d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtICS}))
	d.Show()
}
