package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the title bar with connection state.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	snap := m.dash.Snapshot

	parts := []string{bg.Render("tally", styles.Logo)}

	switch {
	case snap.IsOffline():
		parts = append(parts, bg.Render("● OFFLINE", styles.DangerText))
	case snap.LastError != nil:
		parts = append(parts, bg.Render("● ERROR", styles.DangerText))
	case snap.HasData:
		parts = append(parts, bg.Render("● ONLINE", styles.SuccessText))
	default:
		parts = append(parts, bg.Render("Connecting...", styles.WarningText.Bold(true)))
	}

	if m.apiURL != "" {
		parts = append(parts, bg.Render(truncateMiddle(m.apiURL, 40), styles.MutedText))
	}

	if m.dash.Loading {
		parts = append(parts, bg.Render("Refreshing...", styles.WarningText))
	} else if m.width >= LayoutWideWidth && !snap.LastUpdated.IsZero() {
		age := humanizeDuration(m.now().Sub(snap.LastUpdated))
		parts = append(parts,
			bg.Render("Updated", styles.MutedText)+bg.Spaces(1)+
				bg.Render(snap.LastUpdated.Format("15:04:05"), styles.Text)+bg.Spaces(1)+
				bg.Render("("+age+")", styles.FaintText))
	}

	if snap.IsOffline() && m.logPath != "" {
		parts = append(parts, bg.Render("logs", styles.FaintText)+bg.Spaces(1)+
			bg.Render(truncateMiddle(m.logPath, 40), styles.MutedText))
	}

	return bg.FillLine(styles.Header.Render(bg.Join(parts, "  ")), m.width)
}

// renderStats renders the three summary cards.
func (m Model) renderStats() string {
	styles := m.theme.Styles()
	stats := m.dash.Snapshot.Stats

	type card struct {
		title string
		value string
		style lipgloss.Style
	}
	cards := []card{
		{"Total Products", strconv.Itoa(stats.TotalProducts), styles.CardBody},
		{"Total Value", FormatMoney(stats.TotalValue), styles.CardBody},
		{"Low Stock Items", strconv.Itoa(stats.LowStockCount), styles.CardBody},
	}
	if stats.LowStockCount > 0 {
		cards[2].style = styles.WarningText.Bold(true)
	}

	width := m.cardWidth()
	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		value := c.style.Render(c.value)
		if m.showSkeleton() {
			value = styles.Skeleton.Render(strings.Repeat("█", 8))
		}
		rendered = append(rendered, styles.Card.Width(width).Render(
			styles.MutedText.Render(c.title)+"\n"+value,
		))
	}

	if m.width < LayoutCompactWidth {
		return lipgloss.JoinVertical(lipgloss.Left, rendered...)
	}
	return joinWithGap(rendered, 1)
}

func (m Model) cardWidth() int {
	if m.width < LayoutCompactWidth {
		return max(m.width-6, 20)
	}
	return max((m.width-2)/3-4, 18)
}

// showSkeleton reports whether placeholders stand in for data that has not
// arrived yet.
func (m Model) showSkeleton() bool {
	return m.dash.Loading && !m.dash.Snapshot.HasData
}

// renderPager renders "Page X of Y". It is empty when nothing matches.
func (m Model) renderPager(page, total int) string {
	if total == 0 {
		return ""
	}
	styles := m.theme.Styles()
	prev := styles.FaintText.Render("‹ h")
	if page > 1 {
		prev = styles.AccentText.Render("‹ h")
	}
	next := styles.FaintText.Render("l ›")
	if page < total {
		next = styles.AccentText.Render("l ›")
	}
	return prev + "  " + styles.Text.Render(fmt.Sprintf("Page %d of %d", page, total)) + "  " + next
}

func (m Model) now() time.Time {
	if m.clock != nil {
		return m.clock()
	}
	return time.Now()
}
