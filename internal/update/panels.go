package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/recurcal/internal/views"
)

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderSummaryView() string {
	s := m.Frame().Summary
	return views.RenderSummary(views.SummaryData{
		AddedText:   s.AddedText(),
		RemovedText: s.RemovedText(),
		ShowReset:   s.ShowReset(),
	})
}

func (m Model) renderPatternPicker() string {
	return views.RenderPatternPicker(m.patternPickerData())
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return fmt.Sprintf("%s %s", n.At.Format("15:04:05"), n.Body)
}

func (m Model) renderHeader() string {
	frame := m.Frame()
	return fmt.Sprintf("recurcal | %s to %s | %s", frame.Start.FormatLong(), frame.End.FormatLong(), frame.PatternLabel)
}

func (m *Model) notify(body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	m.Notifications = append(m.Notifications, Notification{
		Body:  body,
		Level: level,
		At:    time.Now(),
	})
	if len(m.Notifications) > maxNotifications {
		m.Notifications = m.Notifications[len(m.Notifications)-maxNotifications:]
	}
}
