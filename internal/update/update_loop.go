package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/recurcal/internal/views"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed), nil
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
			return m, nil
		case m.Keys.Reset:
			m.reset()
			return m, nil
		case m.Keys.Export:
			m = m.runCommand("export")
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		if next, ok := m.handlePatternKey(typed); ok {
			return next, nil
		}
		return m.handleCalendarKey(typed), nil
	case ActivateDateMsg:
		m.activate(typed.Date)
		m.Cursor = m.clampToRange(typed.Date)
		m.followCursor()
		return m, nil
	case GotoMonthMsg:
		m.Controller.GotoMonth(typed.Month)
		m.syncCursor()
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify(typed.Err.Error(), "error")
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) reset() {
	m.Controller.Reset()
	m.Cursor = m.Controller.Start()
	m.Status = StatusBar{Text: "changes reset", IsError: false}
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := strings.Join([]string{m.renderCalendarView(), "", m.renderSummaryView()}, "\n")
	right := []string{m.renderPatternPicker()}
	if palette := m.renderCommandPalette(); palette != "" {
		right = append(right, "", palette)
	}
	if helpView := m.renderHelpIfVisible(); helpView != "" {
		right = append(right, "", helpView)
	}

	return views.RenderApp(views.AppData{
		Header:        m.renderHeader(),
		LeftPane:      leftPane,
		RightPane:     strings.Join(right, "\n"),
		StatusLine:    status,
		StatusIsError: m.Status.IsError,
		Notification:  m.renderNotificationsView(),
		Footer: fmt.Sprintf("keys: hjkl move | %s toggle | %s/%s month | %s/%s repeat | 1-7 days | %s reset | %s export | / cmd | %s help | %s quit",
			m.Keys.Toggle, m.Keys.PrevMonth, m.Keys.NextMonth, m.Keys.NextPattern, m.Keys.PrevPattern,
			m.Keys.Reset, m.Keys.Export, m.Keys.Help, m.Keys.Quit),
	})
}
