package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/recurcal/internal/commands"
	"github.com/sandeepkv93/recurcal/internal/recurrence"
	"github.com/sandeepkv93/recurcal/internal/views"
)

// pickerWeekdays is the order of the weekday checkboxes, keyed 1..7.
var pickerWeekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

// handlePatternKey reports whether msg was a pattern picker key.
func (m Model) handlePatternKey(msg tea.KeyMsg) (Model, bool) {
	switch msg.String() {
	case m.Keys.NextPattern:
		m.cyclePattern(1)
		return m, true
	case m.Keys.PrevPattern:
		m.cyclePattern(-1)
		return m, true
	case "1", "2", "3", "4", "5", "6", "7":
		wd, err := commands.ParseWeekday(msg.String())
		if err != nil {
			return m, false
		}
		m.Controller.ToggleWeekday(wd)
		m.Status = StatusBar{Text: m.patternStatus(), IsError: false}
		return m, true
	}
	return m, false
}

func (m *Model) cyclePattern(step int) {
	next := m.Controller.CurrentPattern().Kind.Next(step)
	m.Controller.SetPattern(string(next))
	m.Status = StatusBar{Text: m.patternStatus(), IsError: false}
}

func (m Model) patternStatus() string {
	return fmt.Sprintf("repeat: %s", m.Controller.CurrentPattern().Describe(m.Controller.Start()))
}

func (m Model) patternPickerData() views.PatternPickerData {
	frame := m.Frame()
	kinds := recurrence.Kinds()
	options := make([]string, 0, len(kinds))
	selected := 0
	for i, k := range kinds {
		options = append(options, k.Label())
		if k == frame.Pattern.Kind {
			selected = i
		}
	}
	checked := make(map[time.Weekday]bool, len(frame.Pattern.Weekdays))
	for _, wd := range frame.Pattern.Weekdays {
		checked[wd] = true
	}
	days := make([]views.WeekdayOptionData, 0, len(pickerWeekdays))
	for i, wd := range pickerWeekdays {
		days = append(days, views.WeekdayOptionData{
			Key:     fmt.Sprint(i + 1),
			Name:    wd.String()[:3],
			Checked: checked[wd],
		})
	}
	return views.PatternPickerData{
		Options:     options,
		Selected:    selected,
		Description: frame.PatternLabel,
		ShowDays:    frame.WeekdayPickerVisible,
		Weekdays:    days,
	}
}
