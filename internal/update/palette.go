package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/recurcal/internal/commands"
	"github.com/sandeepkv93/recurcal/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		raw := m.Palette.Input
		m.closePalette()
		m = m.runCommand(raw)
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) runCommand(raw string) Model {
	cmd, err := commands.Parse(strings.TrimSpace(raw))
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	res, err := commands.Execute(cmd, m.commandHandlers())
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify(err.Error(), "error")
		return m
	}
	m.Status = StatusBar{Text: res.Message, IsError: false}
	return m
}

func invalid(err error) error {
	return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
}

// commandHandlers binds the palette commands to the model. The handlers
// share m, so cursor and notification changes survive the call.
func (m *Model) commandHandlers() commands.Handlers {
	return commands.Handlers{
		Pattern: func(a commands.PatternArgs) (commands.Result, error) {
			m.Controller.SetPattern(string(a.Kind), a.Weekdays...)
			return commands.Result{Message: m.patternStatus()}, nil
		},
		Weekday: func(a commands.WeekdayArgs) (commands.Result, error) {
			m.Controller.ToggleWeekday(a.Day)
			return commands.Result{Message: m.patternStatus()}, nil
		},
		Start: func(a commands.DateArgs) (commands.Result, error) {
			if err := m.Controller.ChangeStartDate(a.Date); err != nil {
				return commands.Result{}, invalid(err)
			}
			m.syncCursor()
			return commands.Result{Message: fmt.Sprintf("start date: %s", a.Date.FormatLong())}, nil
		},
		End: func(a commands.DateArgs) (commands.Result, error) {
			if err := m.Controller.ChangeEndDate(a.Date); err != nil {
				return commands.Result{}, invalid(err)
			}
			m.syncCursor()
			return commands.Result{Message: fmt.Sprintf("end date: %s", a.Date.FormatLong())}, nil
		},
		Goto: func(a commands.GotoArgs) (commands.Result, error) {
			m.Controller.GotoMonth(a.Month)
			m.syncCursor()
			return commands.Result{Message: fmt.Sprintf("showing %s", m.Controller.Visible().Title())}, nil
		},
		Toggle: func(a commands.DateArgs) (commands.Result, error) {
			tr := m.Controller.OnDateActivated(a.Date)
			if !tr.Changed {
				return commands.Result{}, &commands.CommandError{
					Code:    commands.ErrCodeInvalidArgument,
					Message: fmt.Sprintf("%s can not be changed", a.Date.FormatLong()),
				}
			}
			m.Cursor = a.Date
			m.followCursor()
			m.notify(tr.Announcement, "info")
			return commands.Result{Message: tr.Announcement}, nil
		},
		Reset: func() (commands.Result, error) {
			m.reset()
			return commands.Result{Message: m.Status.Text}, nil
		},
		Exceptions: func() (commands.Result, error) {
			exc := m.Controller.Exceptions()
			return commands.Result{Message: fmt.Sprintf("to add: %s | to delete: %s", joinDates(exc.ToAdd), joinDates(exc.ToDelete))}, nil
		},
		Export: func(a commands.ExportArgs) (commands.Result, error) {
			path := strings.TrimSpace(a.Path)
			if path == "" {
				path = m.exportPath
			}
			if err := exportSchedule(m.Controller, path); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("exported to %s", path)}, nil
		},
	}
}

func joinDates(dates []model.Date) string {
	if len(dates) == 0 {
		return "-"
	}
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.String())
	}
	return strings.Join(out, ", ")
}
