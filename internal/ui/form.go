package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tally/internal/dashboard"
)

// focusArea is the part of the screen receiving key presses.
type focusArea int

const (
	focusTable focusArea = iota
	focusSearch
	focusForm
)

func newFieldInput(field dashboard.Field) textinput.Model {
	ti := textinput.New()
	switch field {
	case dashboard.FieldQuantity:
		ti.Placeholder = "0"
		ti.CharLimit = 9
		ti.Width = 8
	case dashboard.FieldPrice:
		ti.Placeholder = "0.00"
		ti.CharLimit = 12
		ti.Width = 10
	default:
		ti.Placeholder = "Product name"
		ti.CharLimit = 80
		ti.Width = 24
	}
	return ti
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search products..."
	ti.Prompt = "/ "
	ti.CharLimit = 80
	ti.Width = 32
	return ti
}

// initInputs builds the add form and the search box.
func (m *Model) initInputs() {
	for i, field := range dashboard.Fields {
		m.form[i] = newFieldInput(field)
	}
	m.search = newSearchInput()
}

// setFocus moves key input to area, focusing the matching text input.
func (m *Model) setFocus(area focusArea) {
	m.search.Blur()
	for i := range m.form {
		m.form[i].Blur()
	}
	m.focus = area
	switch area {
	case focusSearch:
		m.search.Focus()
	case focusForm:
		m.form[m.formIdx].Focus()
	}
}

// nextFocus cycles table → search → form fields → table.
func (m *Model) nextFocus(reverse bool) {
	switch {
	case m.focus == focusTable && !reverse:
		m.setFocus(focusSearch)
	case m.focus == focusTable:
		m.formIdx = len(m.form) - 1
		m.setFocus(focusForm)
	case m.focus == focusSearch && !reverse:
		m.formIdx = 0
		m.setFocus(focusForm)
	case m.focus == focusSearch:
		m.setFocus(focusTable)
	case !reverse && m.formIdx == len(m.form)-1:
		m.setFocus(focusTable)
	case !reverse:
		m.formIdx++
		m.setFocus(focusForm)
	case m.formIdx == 0:
		m.setFocus(focusSearch)
	default:
		m.formIdx--
		m.setFocus(focusForm)
	}
}

// handleInputKey routes keys while the search box or the form has focus.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.setFocus(focusTable)
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		m.nextFocus(false)
		return m, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.nextFocus(true)
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		if m.focus == focusSearch {
			m.setFocus(focusTable)
			return m, nil
		}
		return m.dispatch(dashboard.FormSubmitted{})
	}

	var cmd tea.Cmd
	if m.focus == focusSearch {
		before := m.search.Value()
		m.search, cmd = m.search.Update(msg)
		if v := m.search.Value(); v != before {
			m.selectedRow = 0
			next, dcmd := m.dispatch(dashboard.SearchChanged{Term: v})
			return next, tea.Batch(cmd, dcmd)
		}
		return m, cmd
	}

	before := m.form[m.formIdx].Value()
	m.form[m.formIdx], cmd = m.form[m.formIdx].Update(msg)
	if v := m.form[m.formIdx].Value(); v != before {
		next, dcmd := m.dispatch(dashboard.FormChanged{Field: dashboard.Fields[m.formIdx], Value: v})
		return next, tea.Batch(cmd, dcmd)
	}
	return m, cmd
}

// syncForm copies the dashboard's form text into the inputs, which matters
// after a successful create clears it.
func (m *Model) syncForm() {
	for i, field := range dashboard.Fields {
		if want := m.dash.Create.Get(field); m.form[i].Value() != want {
			m.form[i].SetValue(want)
		}
	}
}

// renderForm renders the add-product row.
func (m Model) renderForm() string {
	styles := m.theme.Styles()

	fields := make([]string, 0, len(m.form)+1)
	for i, field := range dashboard.Fields {
		box := styles.Input
		label := styles.MutedText.Render(field.String())
		if m.focus == focusForm && i == m.formIdx {
			box = styles.InputFocus
			label = styles.AccentText.Render(field.String())
		}
		fields = append(fields, lipgloss.JoinVertical(lipgloss.Left, label, box.Render(m.form[i].View())))
	}

	hint := styles.FaintText.Render("a: focus  •  enter: Add product")
	if m.dash.Loading && m.focus == focusForm {
		hint = styles.WarningText.Render("Saving...")
	}
	fields = append(fields, lipgloss.NewStyle().PaddingTop(2).Render(hint))

	title := styles.Text.Bold(true).Render("Add New Product")
	if m.width < LayoutCompactWidth {
		return lipgloss.JoinVertical(lipgloss.Left, append([]string{title}, fields...)...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, joinWithGap(fields, 1))
}

// renderSearch renders the search box.
func (m Model) renderSearch() string {
	styles := m.theme.Styles()
	box := styles.Input
	if m.focus == focusSearch {
		box = styles.InputFocus
	}
	return box.Render(m.search.View())
}

func joinWithGap(parts []string, gap int) string {
	spaced := make([]string, 0, len(parts)*2)
	for i, p := range parts {
		if i > 0 {
			spaced = append(spaced, strings.Repeat(" ", gap))
		}
		spaced = append(spaced, p)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, spaced...)
}
