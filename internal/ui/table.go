package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/five82/tally/internal/catalog"
	"github.com/five82/tally/internal/inventory"
)

var columnKeys = []catalog.SortKey{catalog.SortByName, catalog.SortByQuantity, catalog.SortByPrice}

// columnTitle labels a header and marks the active sort column.
func columnTitle(key catalog.SortKey, cfg catalog.SortConfig) string {
	var title string
	switch key {
	case catalog.SortByQuantity:
		title = "Status"
	case catalog.SortByPrice:
		title = "Price"
	default:
		title = "Name"
	}
	if cfg.Key == key {
		if cfg.Direction == catalog.Descending {
			return title + " ▼"
		}
		return title + " ▲"
	}
	return title
}

// statusCell renders the stock badge followed by the quantity.
func statusCell(p inventory.Product, styles Styles, plain bool) string {
	status := catalog.StatusFor(p.Quantity)
	qty := fmt.Sprintf("(%d)", p.Quantity)
	if plain {
		return status.String() + " " + qty
	}
	return styles.StockStyle(status).Render(status.String()) + " " + styles.MutedText.Render(qty)
}

func productRows(items []inventory.Product, styles Styles, plain bool, nameWidth int) [][]string {
	rows := make([][]string, 0, len(items))
	for _, p := range items {
		rows = append(rows, []string{
			truncate(p.Name, nameWidth),
			statusCell(p, styles, plain),
			FormatPrice(p.Price),
		})
	}
	return rows
}

func newProductTable(cfg catalog.SortConfig, styles Styles) *table.Table {
	headers := make([]string, len(columnKeys))
	for i, k := range columnKeys {
		headers[i] = columnTitle(k, cfg)
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.FaintText).
		Headers(headers...)
}

// renderTable renders the visible page of products.
func (m Model) renderTable(res catalog.Result) string {
	styles := m.theme.Styles()
	nameWidth := max(m.width-statusColumn-priceColumn-tableChromeCols, nameColumnMin)

	t := newProductTable(m.dash.Sort, styles).Width(min(m.width, nameWidth+statusColumn+priceColumn+tableChromeCols))

	switch {
	case m.showSkeleton():
		for range m.dash.PerPage {
			t.Row(strings.Repeat("░", min(nameWidth, 18)), strings.Repeat("░", 12), strings.Repeat("░", 7))
		}
		t.StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.TableHdr.Padding(0, 1)
			}
			return styles.Skeleton.Padding(0, 1)
		})
		return t.Render()

	case len(res.Items) == 0:
		msg := "No products yet. Press a to add one."
		if m.dash.Search != "" {
			msg = fmt.Sprintf("No products match %q.", m.dash.Search)
		}
		t.Row(msg, "", "")
	default:
		t.Rows(productRows(res.Items, styles, false, nameWidth)...)
	}

	selected := m.selectedRow
	focused := m.focus == focusTable && len(res.Items) > 0
	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return styles.TableHdr.Padding(0, 1)
		case focused && row == selected:
			return styles.Selected.Padding(0, 1)
		case col == 2:
			return styles.Text.Padding(0, 1).Align(lipgloss.Right)
		default:
			return styles.Text.Padding(0, 1)
		}
	})
	return t.Render()
}

// RenderList renders a derived page without colors or selection, for output
// that is not a terminal UI.
func RenderList(res catalog.Result, cfg catalog.SortConfig) string {
	styles := GetTheme(DefaultThemeName).Styles()
	t := newProductTable(cfg, styles).
		Rows(productRows(res.Items, styles, true, 48)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 2 && row != table.HeaderRow {
				return lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteString("\n")
	if res.TotalPages > 0 {
		fmt.Fprintf(&b, "Page %d of %d, %d matching\n", res.Page, res.TotalPages, res.Matched)
	} else {
		b.WriteString("No matching products\n")
	}
	return b.String()
}
