package ui

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

// sortContacts orders the list in place by the given column.
// Ties on birth date fall back to the name.
func sortContacts(list []engine.BirthdayEntry, col int, asc bool) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		var less bool
		switch col {
		case config.ColIDName:
			less = strings.ToLower(a.Name) < strings.ToLower(b.Name)
		default: // config.ColIDDate
			am, ad := a.DateOfBirth.Month(), a.DateOfBirth.Day()
			bm, bd := b.DateOfBirth.Month(), b.DateOfBirth.Day()
			switch {
			case am != bm:
				less = am < bm
			case ad != bd:
				less = ad < bd
			default:
				less = strings.ToLower(a.Name) < strings.ToLower(b.Name)
			}
		}
		if !asc {
			return !less
		}
		return less
	})
}

// contactDate formats the birth date of an entry; unknown years use the vCard form --MM-DD.
func contactDate(c engine.BirthdayEntry, format string) string {
	if !c.YearKnown {
		return c.DateOfBirth.Format(config.DateFormatNoYear)
	}
	return c.DateOfBirth.Format(format)
}

// ShowContactsWindow lists the imported birth dates. Selecting one fills the
// form and computes the age. If the window is already open, it requests focus.
func (app *GoAgeApp) ShowContactsWindow() {
	if app.contactsWindow != nil {
		app.contactsWindow.RequestFocus()
		return
	}

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinContacts))
	app.contactsWindow = w
	w.Resize(fyne.NewSize(config.ContactsWinWidth, config.ContactsWinHeight))

	slog.Info(config.LogMsgOpenWin, config.LogKeyComponent, config.CompUI)

	var displayContacts []engine.BirthdayEntry
	currentSortCol := config.ColIDDate
	sortAsc := true

	format := app.GetMsg(config.TKeyFormatDate)
	if format == config.TKeyFormatDate {
		format = config.DateFormatDisplay
	}

	table := widget.NewTable(
		func() (int, int) {
			return len(displayContacts), config.ColCount
		},
		func() fyne.CanvasObject {
			return widget.NewLabel(config.TablePlaceholder)
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			if id.Row >= len(displayContacts) {
				return
			}
			c := displayContacts[id.Row]
			switch id.Col {
			case config.ColIDName:
				label.SetText(c.Name)
			case config.ColIDDate:
				label.SetText(contactDate(c, format))
			}
		},
	)

	refreshTable := func() {
		sortContacts(displayContacts, currentSortCol, sortAsc)
		slog.Debug(config.LogMsgSorted,
			config.LogKeyComponent, config.CompUI,
			config.LogKeySortCol, currentSortCol,
			config.LogKeySortAsc, sortAsc)
		table.Refresh()
	}

	table.ShowHeaderRow = true
	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton(config.HeaderPlaceholder, func() {})
	}
	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		btn := o.(*widget.Button)

		text := app.GetMsg(config.TKeyColName)
		if id.Col == config.ColIDDate {
			text = app.GetMsg(config.TKeyColDate)
		}
		if id.Col == currentSortCol {
			if sortAsc {
				text += config.SortIconAsc
			} else {
				text += config.SortIconDesc
			}
		}
		btn.SetText(text)

		btn.OnTapped = func() {
			if currentSortCol == id.Col {
				sortAsc = !sortAsc
			} else {
				currentSortCol = id.Col
				sortAsc = true
			}
			refreshTable()
		}
	}
	table.SetColumnWidth(config.ColIDName, config.ColWidthName)
	table.SetColumnWidth(config.ColIDDate, config.ColWidthDate)

	table.OnSelected = func(id widget.TableCellID) {
		if id.Row < 0 || id.Row >= len(displayContacts) {
			return
		}
		picked := displayContacts[id.Row]
		slog.Info(config.LogMsgContactPick,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyName, picked.Name)
		table.UnselectAll()
		app.pickContact(picked)
	}

	// reload reads the address book off the UI goroutine.
	reload := func() {
		go func() {
			err := app.loadContacts()
			fyne.Do(func() {
				if err != nil {
					dialog.ShowError(fmt.Errorf("%s: %w", config.TitleImportError, err), w)
					return
				}
				app.ContactsMut.RLock()
				displayContacts = make([]engine.BirthdayEntry, len(app.Contacts))
				copy(displayContacts, app.Contacts)
				app.ContactsMut.RUnlock()
				refreshTable()
			})
		}()
	}

	reloadBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnReload), theme.ViewRefreshIcon(), reload)

	w.SetContent(container.NewBorder(nil, reloadBtn, nil, nil, table))
	w.SetOnClosed(func() {
		app.contactsWindow = nil
	})

	reload()
	w.Show()
}

// pickContact fills the form with a contact's birth date and computes it.
func (app *GoAgeApp) pickContact(c engine.BirthdayEntry) {
	if app.form == nil {
		return
	}
	app.form.fill(c.Raw())
	if app.Window != nil {
		app.Window.RequestFocus()
	}
}
