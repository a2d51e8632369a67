package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sandeepkv93/recurcal/internal/model"
	"github.com/sandeepkv93/recurcal/internal/schedule"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Toggle      string
	NextPattern string
	PrevPattern string
	PrevMonth   string
	NextMonth   string
	Reset       string
	Export      string
	Help        string
	Quit        string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// Notification is one entry of the announcement log shown under the grid.
type Notification struct {
	Body  string
	Level string
	At    time.Time
}

const maxNotifications = 20

// frameSink is the Painter handed to the controller. It keeps the latest
// frame for View and counts repaints.
type frameSink struct {
	last  schedule.Frame
	count int
}

func (s *frameSink) Paint(f schedule.Frame) {
	s.last = f
	s.count++
}

type Model struct {
	Controller    *schedule.Controller
	Cursor        model.Date
	Palette       CommandPaletteState
	HelpVisible   bool
	Notifications []Notification
	Status        StatusBar
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error

	frames       *frameSink
	commandInput textinput.Model
	helpModel    help.Model
	exportPath   string
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// ActivateDateMsg toggles a date as if it had been picked in the grid.
type ActivateDateMsg struct {
	Date model.Date
}

type GotoMonthMsg struct {
	Month model.Month
}

func defaultKeys() GlobalKeyMap {
	return GlobalKeyMap{
		Toggle:      "enter",
		NextPattern: "p",
		PrevPattern: "P",
		PrevMonth:   "[",
		NextMonth:   "]",
		Reset:       "r",
		Export:      "e",
		Help:        "?",
		Quit:        "q",
	}
}

// NewModel initializes the schedule and places the cursor on its start
// date.
func NewModel(cfg schedule.Config, rc RuntimeConfig, opts ...schedule.Option) (Model, error) {
	sink := &frameSink{}
	ctrl, err := schedule.Initialize(sink, rc.ApplyTo(cfg), opts...)
	if err != nil {
		return Model{}, err
	}
	m := Model{
		Controller: ctrl,
		Cursor:     ctrl.Start(),
		Keys:       defaultKeys(),
		frames:     sink,
		exportPath: rc.ExportPath,
	}
	m.initBubbleComponents()
	m.Status = StatusBar{Text: m.patternStatus()}
	return m, nil
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Placeholder = "pattern weekly mon wed"
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 120

	m.helpModel = help.New()
	m.helpModel.ShowAll = true
}

// Frame is the last frame painted by the controller.
func (m Model) Frame() schedule.Frame {
	return m.frames.last
}

// Repaints counts the frames the controller has painted so far.
func (m Model) Repaints() int {
	return m.frames.count
}
