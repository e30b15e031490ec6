// view_chat.go — Cortex assistant view.
//
// Chat interface to the warehouse-side completion function. A submitted
// turn runs to completion or failure before the next one is accepted;
// the page (including the review table) is recomputed as part of the
// turn.
package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"avalanche/chat"
	"avalanche/cortex"
	"avalanche/warehouse"
)

type ChatView struct {
	ex       warehouse.Executor
	provider cortex.Provider
	conv     *chat.Conversation
	viewport *Viewport
	input    string
	modelIdx int
	table    *warehouse.Table // latest full load, context for prompts
	loading  bool
	width    int
	height   int
}

func NewChatView(ex warehouse.Executor, provider cortex.Provider) *ChatView {
	return &ChatView{
		ex:       ex,
		provider: provider,
		conv:     chat.New(),
		viewport: NewViewport(80, 20),
	}
}

func (v *ChatView) Name() string { return "Assistant" }

func (v *ChatView) WantsTextInput() bool { return true }

func (v *ChatView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.viewport.SetSize(width-2, height-4)
}

func (v *ChatView) ShortHelp() []KeyBinding {
	return []KeyBinding{
		{Key: "Enter", Desc: "send"},
		{Key: "Ctrl+O", Desc: "model"},
		{Key: "Ctrl+J/K", Desc: "scroll"},
	}
}

func (v *ChatView) model() string {
	return cortex.Models[v.modelIdx]
}

func (v *ChatView) Init() tea.Cmd {
	welcome := []string{
		StyleTitle.Render("💬 Avalanche Assistant") + StyleDimmed.Render(" ("+v.provider.Name()+")"),
		"",
		"Ask a question about the reviews (I can also draft Snowflake SQL):",
		"  • Metrics over REVIEWS_WITH_SENTIMENT",
		"  • SQL drafts using the existing column names",
		"  • Sentiment trends per product",
		"",
		StyleDimmed.Render("Type your question and press Enter. Ctrl+O cycles the model."),
	}
	v.viewport.SetContentLines(welcome)
	return nil
}

// loadReviews re-runs the fixed SELECT. The resulting message is
// broadcast by the App, so the dashboard recomputes too.
func (v *ChatView) loadReviews() tea.Cmd {
	ex := v.ex
	return func() tea.Msg {
		t, err := warehouse.LoadReviews(context.Background(), ex)
		return ReviewsLoadedMsg{Table: t, Err: err}
	}
}

func (v *ChatView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKey(msg)

	case ReviewsLoadedMsg:
		if msg.Err == nil {
			v.table = msg.Table
		}
		return v, nil

	case ChatTurnMsg:
		v.loading = false
		if msg.Table != nil {
			v.table = msg.Table
		}
		v.conv.Resolve(msg.Reply, msg.Err)
		v.viewport.SetContentLines(v.renderChat())
		v.viewport.End()
		return v, nil
	}
	return v, nil
}

func (v *ChatView) handleKey(msg tea.KeyMsg) (View, tea.Cmd) {
	// A submitted turn runs to completion before the next interaction;
	// only scrolling works meanwhile. Anything typed would otherwise
	// silently prefix the next question.
	if v.loading {
		switch msg.String() {
		case "ctrl+k":
			v.viewport.ScrollUp(1)
		case "ctrl+j":
			v.viewport.ScrollDown(1)
		case "pgup":
			v.viewport.PageUp()
		case "pgdown":
			v.viewport.PageDown()
		}
		return v, nil
	}

	switch msg.String() {
	case "enter":
		return v, v.sendMessage()
	case "ctrl+o":
		v.modelIdx = (v.modelIdx + 1) % len(cortex.Models)
		// Like any other interaction, changing the model recomputes the
		// page from a fresh load.
		return v, v.loadReviews()
	case "ctrl+k":
		v.viewport.ScrollUp(1)
	case "ctrl+j":
		v.viewport.ScrollDown(1)
	case "pgup":
		v.viewport.PageUp()
	case "pgdown":
		v.viewport.PageDown()
	case "backspace":
		if len(v.input) > 0 {
			v.input = v.input[:len(v.input)-1]
		}
	default:
		if msg.Type == tea.KeyRunes {
			v.input += string(msg.Runes)
		} else if msg.Type == tea.KeySpace {
			v.input += " "
		}
	}
	return v, nil
}

// sendMessage runs one chat turn: append the user text, re-run the
// fixed SELECT (the page recomputes per interaction), build the prompt
// from the unfiltered table, and call the completion provider. Any
// failure resolves into an apologetic assistant reply; it never
// propagates past the turn.
func (v *ChatView) sendMessage() tea.Cmd {
	text := strings.TrimSpace(v.input)
	if text == "" || v.conv.Phase() != chat.Idle {
		return nil
	}

	if err := v.conv.Submit(text); err != nil {
		return nil
	}
	v.input = ""
	v.conv.BeginCompletion()
	v.loading = true
	v.viewport.SetContentLines(v.renderChat())
	v.viewport.End()

	ex := v.ex
	provider := v.provider
	model := v.model()
	cached := v.table
	return func() tea.Msg {
		fresh, loadErr := warehouse.LoadReviews(context.Background(), ex)
		ctxTable := cached
		if loadErr == nil {
			ctxTable = fresh
		} else {
			fresh = nil
		}
		if ctxTable == nil {
			ctxTable = &warehouse.Table{}
		}

		prompt := cortex.BuildPrompt(cortex.TableContext(ctxTable), text)
		reply, err := provider.Complete(context.Background(), model, prompt)
		return ChatTurnMsg{Table: fresh, Reply: reply, Err: err}
	}
}

func (v *ChatView) renderChat() []string {
	var lines []string

	lines = append(lines, StyleTitle.Render("💬 Avalanche Assistant")+" "+
		StyleDimmed.Render("("+v.provider.Name()+")"))
	lines = append(lines, "")

	userStyle := lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Bold(true)

	assistantStyle := lipgloss.NewStyle().
		Foreground(ColorSuccess)

	for _, turn := range v.conv.Turns() {
		switch turn.Role {
		case chat.RoleUser:
			lines = append(lines, userStyle.Render("You: ")+turn.Text)
			lines = append(lines, "")
		case chat.RoleAssistant:
			lines = append(lines, assistantStyle.Render("AI: "))
			for _, line := range strings.Split(turn.Text, "\n") {
				lines = append(lines, "  "+line)
			}
			lines = append(lines, "")
		}
	}

	if v.loading {
		lines = append(lines, StyleDimmed.Render("  ⏳ Thinking..."))
	}

	return lines
}

func (v *ChatView) View() string {
	selector := StyleDimmed.Render("Model: ") + StyleBold.Render(v.model()) +
		StyleDimmed.Render("  (Ctrl+O to change)")

	prompt := StylePrompt.Render("Ask> ") + v.input + "█"
	if v.loading {
		prompt = StylePrompt.Render("Ask> ") + StyleDimmed.Render("waiting for response...")
	}

	content := v.viewport.Render()

	return lipgloss.JoinVertical(lipgloss.Left, selector, prompt, "", content)
}
