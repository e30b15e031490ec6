// app.go is the top-level Bubble Tea model that orchestrates the views.
//
// Flow:
//  1. The warehouse session is established before the TUI starts
//  2. The dashboard loads the review table on init
//  3. F1/F2 switch between dashboard and assistant
//
// Key design decisions:
//   - One logical interaction at a time: every view action resolves
//     into exactly one result message before the page redraws.
//   - Data-load results are broadcast to every view so the whole page
//     recomputes from the same table.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"avalanche/cortex"
	"avalanche/warehouse"
)

const appVersion = "0.1.0"

// Tab indices.
const (
	TabDashboard = iota
	TabChat
)

// App is the root Bubble Tea model.
type App struct {
	views     []View
	activeTab int

	width     int
	height    int
	showHelp  bool
	statusMsg string

	providerName string
}

// NewApp wires the views around an established session and provider.
func NewApp(ex warehouse.Executor, provider cortex.Provider) *App {
	return &App{
		views: []View{
			NewDashboardView(ex),
			NewChatView(ex, provider),
		},
		providerName: provider.Name(),
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.views[TabDashboard].Init(), a.views[TabChat].Init())
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// header(1) + border(2) + status(1) = 4 lines of chrome
		contentH := a.height - 4
		contentW := a.width - 2
		for _, v := range a.views {
			v.SetSize(contentW, contentH)
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case StatusMsg:
		a.statusMsg = string(msg)
		return a, nil

	case ReviewsLoadedMsg:
		// Broadcast: both views derive from the same load.
		return a, a.broadcast(msg)

	case ChatTurnMsg:
		// A chat turn recomputes the page too; hand the refreshed table
		// to the dashboard.
		var cmds []tea.Cmd
		if msg.Table != nil {
			updated, cmd := a.views[TabDashboard].Update(ReviewsLoadedMsg{Table: msg.Table})
			a.views[TabDashboard] = updated
			cmds = append(cmds, cmd)
		}
		updated, cmd := a.views[TabChat].Update(msg)
		a.views[TabChat] = updated
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)
	}

	// Forward other messages to the active view.
	updated, cmd := a.views[a.activeTab].Update(msg)
	a.views[a.activeTab] = updated
	return a, cmd
}

func (a *App) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for i, v := range a.views {
		updated, cmd := v.Update(msg)
		a.views[i] = updated
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// handleKey processes keyboard input.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	textMode := a.views[a.activeTab].WantsTextInput()

	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "f1":
		return a.switchTab(TabDashboard)
	case "f2":
		return a.switchTab(TabChat)
	case "tab":
		if !textMode {
			return a.switchTab((a.activeTab + 1) % len(a.views))
		}
	case "?":
		if !textMode {
			a.showHelp = !a.showHelp
			return a, nil
		}
	case "q":
		if !textMode {
			return a, tea.Quit
		}
	}

	updated, cmd := a.views[a.activeTab].Update(msg)
	a.views[a.activeTab] = updated
	return a, cmd
}

func (a *App) switchTab(idx int) (tea.Model, tea.Cmd) {
	if idx >= 0 && idx < len(a.views) {
		a.activeTab = idx
	}
	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	if a.width == 0 {
		return "loading..."
	}

	header := a.renderHeader()

	var inner string
	if a.showHelp {
		inner = a.renderHelp()
	} else {
		inner = a.views[a.activeTab].View()
	}

	frameHeight := a.height - 4
	if frameHeight < 0 {
		frameHeight = 0
	}
	frame := StyleBorder.
		Width(a.width - 2).
		Height(frameHeight).
		Render(inner)

	statusBar := a.renderStatusBar()

	return header + "\n" + frame + "\n" + statusBar
}

// renderHeader draws a simple text bar: logo + version + provider info.
func (a *App) renderHeader() string {
	logo := StyleBold.Render("🏔 avalanche")
	version := StyleDimmed.Render(" v" + appVersion)
	provider := StyleSuccess.Render("  ⚡ " + a.providerName)

	var tabs []string
	for i, v := range a.views {
		label := fmt.Sprintf("F%d %s", i+1, v.Name())
		if i == a.activeTab {
			tabs = append(tabs, StyleHelpKey.Render(label))
		} else {
			tabs = append(tabs, StyleDimmed.Render(label))
		}
	}
	content := logo + version + provider + "   " + strings.Join(tabs, "  ")

	right := StyleDimmed.Render(fmt.Sprintf("%d×%d", a.width, a.height))
	gap := a.width - lipgloss.Width(content) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return lipgloss.NewStyle().
		Width(a.width).
		Render(content + strings.Repeat(" ", gap) + right)
}

func (a *App) renderStatusBar() string {
	var content string
	if a.statusMsg != "" {
		content = a.statusMsg
	} else {
		var parts []string
		for _, h := range a.getHelpItems() {
			parts = append(parts,
				StyleHelpKey.Render(h.Key)+" "+StyleHelpDesc.Render(h.Desc))
		}
		content = strings.Join(parts, "  │  ")
	}
	return StyleStatusBar.Width(a.width).Render(content)
}

func (a *App) getHelpItems() []KeyBinding {
	global := []KeyBinding{
		{Key: "F1/F2", Desc: "views"},
		{Key: "Ctrl+C", Desc: "quit"},
	}
	return append(a.views[a.activeTab].ShortHelp(), global...)
}

func (a *App) renderHelp() string {
	help := []string{
		StyleTitle.Render("⌨ avalanche Keyboard Shortcuts"),
		"",
		StyleHelpKey.Render("F1 / F2") + "          Dashboard / Assistant",
		StyleHelpKey.Render("Tab") + "              Next view (dashboard only)",
		StyleHelpKey.Render("?") + "                Toggle this help",
		StyleHelpKey.Render("Ctrl+C") + "           Quit",
		"",
		StyleTitle.Render("Dashboard"),
		"",
		StyleHelpKey.Render("←/→") + "              Change product filter",
		StyleHelpKey.Render("↑/↓ j/k") + "          Scroll",
		StyleHelpKey.Render("Shift+←/→") + "        Pan wide tables",
		StyleHelpKey.Render("r") + "                Reload from the warehouse",
		"",
		StyleTitle.Render("Assistant"),
		"",
		StyleHelpKey.Render("Enter") + "            Send question",
		StyleHelpKey.Render("Ctrl+O") + "           Cycle completion model",
		StyleHelpKey.Render("Ctrl+J/K") + "         Scroll transcript",
		"",
		StyleDimmed.Render("Press ? to close"),
	}

	return lipgloss.NewStyle().
		Width(a.width - 4).
		Padding(1, 2).
		Render(strings.Join(help, "\n"))
}
