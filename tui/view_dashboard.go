// view_dashboard.go — The review dashboard.
//
// Features:
//   - Mean sentiment per product as a bar chart
//   - Product filter + filtered review table
//   - Sentiment score histogram over the filtered subset
//
// Every interaction (product change, refresh) re-runs the fixed review
// SELECT and recomputes the whole page.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"avalanche/report"
	"avalanche/warehouse"
)

type DashboardView struct {
	ex       warehouse.Executor
	viewport *Viewport
	table    *warehouse.Table
	caps     report.Capabilities
	options  []string
	optIdx   int
	loading  bool
	err      error
	width    int
	height   int
}

func NewDashboardView(ex warehouse.Executor) *DashboardView {
	return &DashboardView{
		ex:       ex,
		viewport: NewViewport(80, 20),
		options:  []string{report.AllProducts},
	}
}

func (v *DashboardView) Name() string { return "Dashboard" }

func (v *DashboardView) WantsTextInput() bool { return false }

func (v *DashboardView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.viewport.SetSize(width-2, height-2)
	v.recompute()
}

func (v *DashboardView) ShortHelp() []KeyBinding {
	return []KeyBinding{
		{Key: "←/→", Desc: "product"},
		{Key: "↑/↓", Desc: "scroll"},
		{Key: "r", Desc: "refresh"},
	}
}

func (v *DashboardView) Init() tea.Cmd {
	return v.loadReviews()
}

// loadReviews re-runs the fixed SELECT. A single attempt; a failure
// halts this interaction's render and is shown as a load error.
func (v *DashboardView) loadReviews() tea.Cmd {
	v.loading = true
	ex := v.ex
	return func() tea.Msg {
		t, err := warehouse.LoadReviews(context.Background(), ex)
		return ReviewsLoadedMsg{Table: t, Err: err}
	}
}

func (v *DashboardView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKey(msg)

	case ReviewsLoadedMsg:
		v.loading = false
		v.err = msg.Err
		if msg.Err == nil {
			v.setTable(msg.Table)
		}
		v.recompute()
		return v, nil
	}
	return v, nil
}

// setTable installs a fresh load: probe the schema once, rebuild the
// selector options, and keep the selection when it still exists.
func (v *DashboardView) setTable(t *warehouse.Table) {
	selected := v.selectedProduct()
	v.table = t
	v.caps = report.Describe(t)
	v.options = report.ProductOptions(t, v.caps)
	v.optIdx = 0
	for i, opt := range v.options {
		if opt == selected {
			v.optIdx = i
			break
		}
	}
}

func (v *DashboardView) selectedProduct() string {
	if v.optIdx >= 0 && v.optIdx < len(v.options) {
		return v.options[v.optIdx]
	}
	return report.AllProducts
}

func (v *DashboardView) handleKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		if v.optIdx > 0 {
			v.optIdx--
			return v, v.loadReviews()
		}
	case "right", "l":
		if v.optIdx < len(v.options)-1 {
			v.optIdx++
			return v, v.loadReviews()
		}
	case "r":
		return v, v.loadReviews()
	case "up", "k":
		v.viewport.ScrollUp(1)
	case "down", "j":
		v.viewport.ScrollDown(1)
	case "shift+left", "H":
		v.viewport.ScrollLeft(8)
	case "shift+right", "L":
		v.viewport.ScrollRight(8)
	case "pgup":
		v.viewport.PageUp()
	case "pgdown":
		v.viewport.PageDown()
	case "home":
		v.viewport.Home()
	case "end":
		v.viewport.End()
	}
	return v, nil
}

// recompute derives the whole page from the loaded table.
func (v *DashboardView) recompute() {
	if v.err != nil {
		v.viewport.SetContent(StyleError.Render("ERROR: " + v.err.Error()))
		return
	}
	if v.table == nil {
		v.viewport.SetContent(StyleDimmed.Render("  Loading reviews..."))
		return
	}

	product := v.selectedProduct()
	filtered := report.FilterByProduct(v.table, v.caps, product)

	var lines []string
	lines = append(lines, StyleDimmed.Render(fmt.Sprintf(
		"Loaded %s rows from REVIEWS_WITH_SENTIMENT", warehouse.FormatRowCount(len(v.table.Rows)))))
	lines = append(lines, "")

	// Mean sentiment chart
	lines = append(lines, StyleTitle.Render("Average Sentiment by Product"))
	means, notice := report.MeanByProduct(v.table, v.caps)
	if notice != "" {
		lines = append(lines, StyleWarning.Render("  ℹ "+notice))
	} else {
		lines = append(lines, v.renderMeans(means)...)
	}
	lines = append(lines, "")

	// Product selector
	lines = append(lines, StyleTitle.Render("Filter by Product"))
	if !v.caps.HasProduct {
		lines = append(lines, StyleWarning.Render("  ℹ "+report.NoticeNoProductCol))
	} else {
		lines = append(lines, "  ◀ "+StyleBold.Render(product)+" ▶"+
			StyleDimmed.Render(fmt.Sprintf("  (%d/%d)", v.optIdx+1, len(v.options))))
	}
	lines = append(lines, "")

	// Filtered table
	lines = append(lines, StyleTitle.Render("📁 Reviews for "+product))
	lines = append(lines, v.renderTable(filtered)...)
	lines = append(lines, "")

	// Histogram over the filtered subset
	lines = append(lines, StyleTitle.Render(fmt.Sprintf("Sentiment Score Distribution (%s)", product)))
	hist, notice := report.Histogram(filtered, v.caps)
	if notice != "" {
		lines = append(lines, StyleWarning.Render("  ℹ "+notice))
	} else {
		lines = append(lines, v.renderHistogram(hist)...)
	}

	v.viewport.SetContentLines(lines)
}

// renderMeans draws one bar per product, scaled to the largest mean.
func (v *DashboardView) renderMeans(means []report.ProductMean) []string {
	labelW := 0
	maxMean := 0.0
	for _, m := range means {
		if len(m.Product) > labelW {
			labelW = len(m.Product)
		}
		if m.Mean > maxMean {
			maxMean = m.Mean
		}
	}
	if labelW > 24 {
		labelW = 24
	}

	var lines []string
	for _, m := range means {
		label := truncate(m.Product, labelW)
		lines = append(lines, fmt.Sprintf("  %-*s │%s %.3f",
			labelW, label, StyleBar.Render(bar(m.Mean, maxMean, v.barWidth(labelW))), m.Mean))
	}
	return lines
}

func (v *DashboardView) renderHistogram(hist []report.HistogramBin) []string {
	labelW := 0
	maxCount := 0
	for _, b := range hist {
		if len(b.Label) > labelW {
			labelW = len(b.Label)
		}
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}

	var lines []string
	for _, b := range hist {
		lines = append(lines, fmt.Sprintf("  %-*s │%s %d",
			labelW, b.Label, StyleBar.Render(bar(float64(b.Count), float64(maxCount), v.barWidth(labelW))), b.Count))
	}
	return lines
}

func (v *DashboardView) barWidth(labelW int) int {
	w := v.width - labelW - 14
	if w < 10 {
		w = 10
	}
	if w > 60 {
		w = 60
	}
	return w
}

// bar renders a value as a block bar scaled against max.
func bar(value, max float64, width int) string {
	if max <= 0 || value < 0 {
		return ""
	}
	n := int(value / max * float64(width))
	if n == 0 && value > 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

// renderTable formats the filtered rows with aligned columns. Wide
// tables pan horizontally via the viewport.
func (v *DashboardView) renderTable(t *warehouse.Table) []string {
	if len(t.Rows) == 0 {
		return []string{StyleDimmed.Render("  (no rows)")}
	}

	const maxColWidth = 28
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = len(c)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	for i := range widths {
		if widths[i] > maxColWidth {
			widths[i] = maxColWidth
		}
	}

	formatRow := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = fmt.Sprintf("%-*s", widths[i], truncate(cell, widths[i]))
		}
		return "  " + strings.Join(parts, " │ ")
	}

	lines := []string{
		StyleBold.Render(formatRow(t.Columns)),
		"  " + StyleDimmed.Render(strings.Repeat("─", rowRuleWidth(widths))),
	}
	for _, row := range t.Rows {
		lines = append(lines, formatRow(row))
	}
	lines = append(lines, StyleDimmed.Render(fmt.Sprintf("  (%d row%s)", len(t.Rows), plural(len(t.Rows)))))
	return lines
}

func rowRuleWidth(widths []int) int {
	total := 0
	for _, w := range widths {
		total += w + 3
	}
	if total > 3 {
		total -= 3
	}
	return total
}

// truncate shortens a string to at most w cells without splitting a
// rune, ending in an ellipsis when cut.
func truncate(s string, w int) string {
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	return string(r[:w-1]) + "…"
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func (v *DashboardView) View() string {
	if v.loading {
		return StyleDimmed.Render("  Loading reviews...")
	}
	return v.viewport.Render()
}
