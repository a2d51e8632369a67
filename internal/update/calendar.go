package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/recurcal/internal/model"
	"github.com/sandeepkv93/recurcal/internal/views"
)

func (m Model) handleCalendarKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "h", "left":
		m.moveCursor(-1)
	case "l", "right":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-7)
	case "j", "down":
		m.moveCursor(7)
	case m.Keys.PrevMonth:
		m.shiftMonth(-1)
	case m.Keys.NextMonth:
		m.shiftMonth(1)
	case "g":
		m.Cursor = m.Controller.Start()
		m.followCursor()
	case "G":
		m.Cursor = m.Controller.End()
		m.followCursor()
	case m.Keys.Toggle, " ":
		m.activate(m.Cursor)
	}
	return m
}

// moveCursor steps the cursor by delta days, staying inside the schedule
// range and following it across month boundaries.
func (m *Model) moveCursor(delta int) {
	next := m.clampToRange(m.Cursor.AddDays(delta))
	if next == m.Cursor {
		return
	}
	m.Cursor = next
	m.followCursor()
}

func (m *Model) followCursor() {
	month := model.MonthOf(m.Cursor)
	if month != m.Controller.Visible() {
		m.Controller.GotoMonth(month)
	}
}

func (m *Model) shiftMonth(delta int) {
	var moved bool
	if delta < 0 {
		moved = m.Controller.PrevMonth()
	} else {
		moved = m.Controller.NextMonth()
	}
	if !moved {
		m.Status = StatusBar{Text: "no more months in the schedule range", IsError: false}
		return
	}
	m.syncCursor()
	m.Status = StatusBar{Text: fmt.Sprintf("showing %s", m.Controller.Visible().Title()), IsError: false}
}

// syncCursor keeps the cursor on the same day of month inside the visible
// month, clamped to the schedule range.
func (m *Model) syncCursor() {
	visible := m.Controller.Visible()
	if visible.Contains(m.Cursor) && m.Cursor.Within(m.Controller.Start(), m.Controller.End()) {
		return
	}
	day := m.Cursor.Day()
	if last := visible.Last().Day(); day > last {
		day = last
	}
	m.Cursor = m.clampToRange(model.NewDate(visible.Year, visible.Month, day))
}

func (m Model) clampToRange(d model.Date) model.Date {
	return model.MaxDate(m.Controller.Start(), model.MinDate(d, m.Controller.End()))
}

func (m *Model) activate(d model.Date) {
	tr := m.Controller.OnDateActivated(d)
	if !tr.Changed {
		m.Status = StatusBar{Text: fmt.Sprintf("%s can not be changed", d.FormatLong()), IsError: true}
		return
	}
	m.Status = StatusBar{Text: tr.Announcement, IsError: false}
	m.notify(tr.Announcement, "info")
}

func (m Model) monthGridData() views.MonthGridData {
	frame := m.Frame()
	cells := make([]views.DayCellData, 0, len(frame.Days))
	for _, ds := range frame.Days {
		cells = append(cells, views.DayCellData{
			Day:    ds.Date.Day(),
			State:  string(ds.State),
			Cursor: ds.Date == m.Cursor,
		})
	}
	return views.MonthGridData{
		Title:        frame.Month.Title(),
		WeekStart:    frame.WeekStart,
		FirstWeekday: frame.Month.First().Weekday(),
		Cells:        cells,
		CanPrev:      frame.CanPrev,
		CanNext:      frame.CanNext,
	}
}

func (m Model) renderCalendarView() string {
	return views.RenderMonthGrid(m.monthGridData())
}
