package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tally/internal/dashboard"
)

// Modal is the interface for modal dialogs. Update turns a key press into
// dashboard events; whether the modal stays open is decided by the dashboard
// state those events produce.
type Modal interface {
	Update(msg tea.KeyMsg, keys keyMap) (Modal, []dashboard.Event, tea.Cmd)
	View(theme Theme, width, height int) string
}

// editModal edits one product. Its inputs mirror dashboard.State.Edit.
type editModal struct {
	inputs   [3]textinput.Model
	focusIdx int
}

func newEditModal(buf dashboard.EditBuffer) *editModal {
	m := &editModal{}
	for i, field := range dashboard.Fields {
		m.inputs[i] = newFieldInput(field)
		m.inputs[i].SetValue(buf.Get(field))
	}
	m.inputs[0].Focus()
	return m
}

func (m *editModal) Update(msg tea.KeyMsg, keys keyMap) (Modal, []dashboard.Event, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		return m, []dashboard.Event{dashboard.EditCancelled{}}, nil

	case key.Matches(msg, keys.Confirm):
		return m, []dashboard.Event{dashboard.EditSubmitted{}}, nil

	case key.Matches(msg, keys.Tab), msg.String() == "down":
		m.focus((m.focusIdx + 1) % len(m.inputs))
		return m, nil, nil

	case key.Matches(msg, keys.ShiftTab), msg.String() == "up":
		m.focus((m.focusIdx - 1 + len(m.inputs)) % len(m.inputs))
		return m, nil, nil
	}

	before := m.inputs[m.focusIdx].Value()
	var cmd tea.Cmd
	m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)
	after := m.inputs[m.focusIdx].Value()
	if after == before {
		return m, nil, cmd
	}
	return m, []dashboard.Event{dashboard.EditChanged{Field: dashboard.Fields[m.focusIdx], Value: after}}, cmd
}

func (m *editModal) focus(idx int) {
	m.inputs[m.focusIdx].Blur()
	m.focusIdx = idx
	m.inputs[m.focusIdx].Focus()
}

func (m *editModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Edit Product"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 36)))
	b.WriteString("\n\n")

	for i, field := range dashboard.Fields {
		label := padLabel(field.String() + ":")
		if i == m.focusIdx {
			b.WriteString(styles.AccentText.Render(label))
		} else {
			b.WriteString(styles.MutedText.Render(label))
		}
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n\n")
	}

	b.WriteString(styles.FaintText.Render("Enter: Save  •  Tab: Next field  •  Esc: Cancel"))
	return placeModal(theme, styles.Modal.Width(52).Render(b.String()), width, height)
}

// confirmModal asks before a delete is sent.
type confirmModal struct {
	name string
}

func (m *confirmModal) Update(msg tea.KeyMsg, keys keyMap) (Modal, []dashboard.Event, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Yes):
		return m, []dashboard.Event{dashboard.DeleteConfirmed{}}, nil
	case key.Matches(msg, keys.No):
		return m, []dashboard.Event{dashboard.DeleteCancelled{}}, nil
	}
	return m, nil, nil
}

func (m *confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.DangerText.Render("Delete Product"))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render("Are you sure you want to delete"))
	b.WriteString("\n")
	b.WriteString(styles.AccentText.Render(truncate(m.name, 36)))
	b.WriteString(styles.Text.Render("?"))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("y: Delete  •  n/Esc: Cancel"))

	modal := styles.Modal.BorderForeground(lipgloss.Color(theme.Danger)).Width(44)
	return placeModal(theme, modal.Render(b.String()), width, height)
}

func placeModal(theme Theme, content string, width, height int) string {
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		content,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}

func padLabel(label string) string {
	const width = 11
	if len(label) >= width {
		return label
	}
	return label + strings.Repeat(" ", width-len(label))
}
