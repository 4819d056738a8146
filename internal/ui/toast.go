package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tally/internal/dashboard"
)

// toast is one notification on screen.
type toast struct {
	id     int
	notice dashboard.Notice
}

type toastExpiredMsg struct{ id int }

// pushToast shows notice and schedules its removal.
func (m *Model) pushToast(notice dashboard.Notice) tea.Cmd {
	m.nextToastID++
	id := m.nextToastID
	m.toasts = append(m.toasts, toast{id: id, notice: notice})
	if len(m.toasts) > MaxToasts {
		m.toasts = m.toasts[len(m.toasts)-MaxToasts:]
	}
	return toastExpireCmd(id, m.toastTTL)
}

// dropToast removes the toast with id if it is still showing.
func (m *Model) dropToast(id int) {
	for i, t := range m.toasts {
		if t.id == id {
			m.toasts = append(m.toasts[:i:i], m.toasts[i+1:]...)
			return
		}
	}
}

func toastExpireCmd(id int, ttl time.Duration) tea.Cmd {
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// renderToasts stacks the notifications, newest last.
func (m Model) renderToasts() string {
	if len(m.toasts) == 0 {
		return ""
	}
	styles := m.theme.Styles()
	lines := make([]string, 0, len(m.toasts))
	for _, t := range m.toasts {
		color := m.theme.Success
		icon := "✓"
		if t.notice.Level == dashboard.LevelError {
			color = m.theme.Danger
			icon = "✗"
		}
		box := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(color)).
			Padding(0, 1)
		lines = append(lines, box.Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(icon)+" "+
				styles.Text.Render(truncate(t.notice.Text, 60)),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Right, lines...)
}
