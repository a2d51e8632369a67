package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Cell states, matching the resolved day states of the schedule.
const (
	CellInactive = "inactive"
	CellFixed    = "fixed"
	CellNeutral  = "neutral"
	CellRepeat   = "repeat"
	CellToAdd    = "to-add"
	CellToDelete = "to-delete"
	CellEvent    = "event"
)

type DayCellData struct {
	Day    int
	State  string
	Cursor bool
}

type MonthGridData struct {
	Title     string
	WeekStart time.Weekday
	// FirstWeekday is the weekday of the 1st of the month.
	FirstWeekday time.Weekday
	Cells        []DayCellData
	CanPrev      bool
	CanNext      bool
}

type SummaryData struct {
	AddedText   string
	RemovedText string
	ShowReset   bool
}

type WeekdayOptionData struct {
	Key     string
	Name    string
	Checked bool
}

type PatternPickerData struct {
	Options     []string
	Selected    int
	Description string
	ShowDays    bool
	Weekdays    []WeekdayOptionData
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
	Legend   string
}

var cellStyles = map[string]lipgloss.Style{
	CellInactive: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	CellFixed:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
	CellRepeat:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	CellToAdd:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	CellToDelete: lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("9")),
	CellEvent:    lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
}

// CellMarker is the plain-text suffix that identifies a state without color.
func CellMarker(state string) string {
	switch state {
	case CellFixed:
		return "@"
	case CellRepeat:
		return "*"
	case CellToAdd:
		return "+"
	case CellToDelete:
		return "x"
	case CellEvent:
		return "o"
	default:
		return " "
	}
}

func RenderMonthGrid(data MonthGridData) string {
	var b strings.Builder
	prev, next := " ", " "
	if data.CanPrev {
		prev = "<"
	}
	if data.CanNext {
		next = ">"
	}
	b.WriteString(fmt.Sprintf("%s %s %s\n", prev, data.Title, next))

	header := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		wd := time.Weekday((int(data.WeekStart) + i) % 7)
		header = append(header, fmt.Sprintf(" %-3s ", wd.String()[:2]))
	}
	b.WriteString(strings.Join(header, "") + "\n")

	offset := (int(data.FirstWeekday) - int(data.WeekStart) + 7) % 7
	col := 0
	for ; col < offset; col++ {
		b.WriteString(strings.Repeat(" ", 5))
	}
	for _, cell := range data.Cells {
		b.WriteString(renderCell(cell))
		col++
		if col%7 == 0 {
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderCell(cell DayCellData) string {
	body := fmt.Sprintf("%2d%s", cell.Day, CellMarker(cell.State))
	if style, ok := cellStyles[cell.State]; ok {
		body = style.Render(body)
	}
	if cell.Cursor {
		return "[" + body + "]"
	}
	return " " + body + " "
}

func RenderSummary(data SummaryData) string {
	lines := make([]string, 0, 3)
	if data.AddedText != "" {
		lines = append(lines, data.AddedText)
	}
	if data.RemovedText != "" {
		lines = append(lines, data.RemovedText)
	}
	if len(lines) == 0 {
		return "exceptions: none"
	}
	if data.ShowReset {
		lines = append(lines, "[r] reset changes")
	}
	return "exceptions:\n" + strings.Join(lines, "\n")
}

func RenderPatternPicker(data PatternPickerData) string {
	var b strings.Builder
	b.WriteString("repeat:\n")
	for i, opt := range data.Options {
		cursor := " "
		if i == data.Selected {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s\n", cursor, opt))
	}
	if data.Description != "" {
		b.WriteString(data.Description + "\n")
	}
	if data.ShowDays {
		days := make([]string, 0, len(data.Weekdays))
		for _, wd := range data.Weekdays {
			box := "[ ]"
			if wd.Checked {
				box = "[x]"
			}
			days = append(days, fmt.Sprintf("%s%s %s", wd.Key, box, wd.Name))
		}
		b.WriteString("days: " + strings.Join(days, " "))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderHelpPanel(data HelpPanelData) string {
	parts := []string{"help:", strings.Join(data.Bindings, "\n"), data.HelpView}
	if data.Legend != "" {
		parts = append(parts, data.Legend)
	}
	return strings.Join(parts, "\n")
}

// LegendMarkdown documents the cell markers.
const LegendMarkdown = `| marker | meaning |
|---|---|
| @ | start date |
| * | repeats |
| + | added by hand |
| x | removed |
| o | existing event |
`

func RenderLegend() string {
	return RenderMarkdown(LegendMarkdown)
}
