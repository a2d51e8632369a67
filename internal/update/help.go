package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/recurcal/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	global := toKeyBindings(m.globalBindings())
	calendar := toKeyBindings(m.calendarBindings())
	var plain []string
	for _, kb := range m.paletteBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: global,
			full:  [][]key.Binding{calendar, global},
		}),
		Legend: views.RenderLegend(),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "/", Action: "command palette"},
		{Key: m.Keys.Reset, Action: "reset changes"},
		{Key: m.Keys.Export, Action: "export iCalendar"},
		{Key: m.Keys.Help, Action: "toggle help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) calendarBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "h/l", Action: "previous/next day"},
		{Key: "j/k", Action: "next/previous week"},
		{Key: m.Keys.PrevMonth + "/" + m.Keys.NextMonth, Action: "previous/next month"},
		{Key: "g/G", Action: "start/end date"},
		{Key: m.Keys.Toggle, Action: "toggle date"},
		{Key: m.Keys.NextPattern + "/" + m.Keys.PrevPattern, Action: "cycle repeat pattern"},
		{Key: "1-7", Action: "toggle Monday..Sunday"},
	}
}

func (m Model) paletteBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "pattern <kind> [days]", Action: "set the repeat pattern"},
		{Key: "weekday <day>", Action: "toggle a weekly day"},
		{Key: "start|end <date>", Action: "move a bound"},
		{Key: "toggle <date>", Action: "toggle a date"},
		{Key: "goto <yyyy-mm>", Action: "show a month"},
		{Key: "exceptions", Action: "list manual changes"},
		{Key: "export [path]", Action: "write iCalendar"},
	}
}

func toKeyBindings(in []KeyBinding) []key.Binding {
	out := make([]key.Binding, 0, len(in))
	for _, kb := range in {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
