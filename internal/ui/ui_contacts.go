package ui

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

// sortContacts orders list in place by the given column. Contacts without a
// birth year sort after dated ones on the age column, whatever the direction.
func sortContacts(list []engine.ContactAge, col int, asc bool) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]

		if col == config.ColIDAge && a.YearKnown != b.YearKnown {
			return a.YearKnown
		}

		var less, equal bool
		switch col {
		case config.ColIDName:
			an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name)
			less, equal = an < bn, an == bn
		case config.ColIDAge:
			// Older first means an earlier birth instant.
			less, equal = a.Age.TotalSeconds < b.Age.TotalSeconds, a.Age.TotalSeconds == b.Age.TotalSeconds
		default:
			less, equal = a.DateOfBirth.Before(b.DateOfBirth), a.DateOfBirth.Equal(b.DateOfBirth)
		}

		if equal {
			return a.Name < b.Name
		}
		if !asc {
			return !less
		}
		return less
	})
}

// formatAge renders a contact's age as a short breakdown.
func (app *GoAgeApp) formatAge(c engine.ContactAge) string {
	if !c.YearKnown {
		return config.AgeUnknown
	}
	b := c.Age
	if s := app.localizeData(config.TKeyFormatAge, map[string]any{
		"Years": b.Years, "Months": b.Months, "Days": b.Days,
	}, nil); s != "" {
		return s
	}
	return fmt.Sprintf(config.FallbackAgeShort, b.Years, b.Months, b.Days)
}

// formatBirthDate uses the localized layout; the year is hidden when unknown.
func (app *GoAgeApp) formatBirthDate(c engine.ContactAge) string {
	if !c.YearKnown {
		return c.DateOfBirth.Format(config.DateFormatNoYearD)
	}
	layout := app.GetMsg(config.TKeyFormatDate)
	if layout == config.TKeyFormatDate {
		layout = config.DateFormatDisplay
	}
	return c.DateOfBirth.Format(layout)
}

// ShowContactsWindow lists the imported contacts with their current age.
// Header buttons toggle the sort column and direction.
func (app *GoAgeApp) ShowContactsWindow() {
	if app.contactsWindow != nil {
		app.contactsWindow.RequestFocus()
		return
	}

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinContacts))
	app.contactsWindow = w
	w.Resize(fyne.NewSize(config.ContactsWinWidth, config.ContactsWinHeight))

	app.ContactsMut.RLock()
	rows := make([]engine.ContactAge, len(app.Contacts))
	copy(rows, app.Contacts)
	app.ContactsMut.RUnlock()

	slog.Info(config.LogMsgOpenWin,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, len(rows))

	sortCol, sortAsc := config.ColIDAge, false
	resort := func() {
		sortContacts(rows, sortCol, sortAsc)
		slog.Debug(config.LogMsgSorted,
			config.LogKeyComponent, config.CompUI,
			config.LogKeySortCol, sortCol,
			config.LogKeySortAsc, sortAsc)
	}
	resort()

	table := widget.NewTable(
		func() (int, int) { return len(rows), 3 },
		func() fyne.CanvasObject { return widget.NewLabel(config.TablePlaceholder) },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			if id.Row >= len(rows) {
				return
			}
			c := rows[id.Row]
			switch id.Col {
			case config.ColIDName:
				label.SetText(c.Name)
			case config.ColIDDate:
				label.SetText(app.formatBirthDate(c))
			case config.ColIDAge:
				label.SetText(app.formatAge(c))
			}
		},
	)

	headers := map[int]string{
		config.ColIDName: config.TKeyColName,
		config.ColIDDate: config.TKeyColDate,
		config.ColIDAge:  config.TKeyColAge,
	}

	table.ShowHeaderRow = true
	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton(config.TablePlaceholder, nil)
	}
	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		btn := o.(*widget.Button)
		text := app.GetMsg(headers[id.Col])
		if id.Col == sortCol {
			if sortAsc {
				text += config.SortIconAsc
			} else {
				text += config.SortIconDesc
			}
		}
		btn.SetText(text)
		btn.OnTapped = func() {
			if sortCol == id.Col {
				sortAsc = !sortAsc
			} else {
				sortCol, sortAsc = id.Col, true
			}
			resort()
			table.Refresh()
		}
	}

	table.SetColumnWidth(config.ColIDName, config.ColWidthName)
	table.SetColumnWidth(config.ColIDDate, config.ColWidthDate)
	table.SetColumnWidth(config.ColIDAge, config.ColWidthAge)

	w.SetContent(container.NewBorder(nil, nil, nil, nil, table))
	w.SetOnClosed(func() { app.contactsWindow = nil })
	w.Show()
}
