package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const chatHistoryWindow = 200

// chatLine is one rendered transcript line.
type chatLine struct {
	prompt string
	text   string
}

// chatModel is the bubbletea Model for the interactive chat REPL. Each
// submitted line goes through the dispatcher exactly as a bot message
// would.
type chatModel struct {
	ti       textinput.Model
	app      *App
	lines    []chatLine
	width    int
	quitting bool
}

// replyMsg carries a dispatch result back into the update loop.
type replyMsg struct {
	reply   string
	handled bool
	err     error
}

func newChatModel(app *App) chatModel {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = styleGreen.Render("> ")
	ti.CharLimit = 500

	return chatModel{ti: ti, app: app}
}

func (m chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case replyMsg:
		switch {
		case msg.err != nil:
			m.appendLine(chatLine{text: styleRed.Render("出错了：" + msg.err.Error())})
		case !msg.handled:
			m.appendLine(chatLine{text: dim("（没有命中任何规则）")})
		default:
			m.appendLine(chatLine{text: msg.reply})
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			line := strings.TrimSpace(m.ti.Value())
			m.ti.SetValue("")
			if line == "" {
				return m, nil
			}
			if line == "exit" || line == "quit" {
				m.quitting = true
				return m, tea.Quit
			}
			m.appendLine(chatLine{prompt: "> ", text: line})
			return m, m.dispatchCmd(line)
		}
	}

	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m chatModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(header("brainhole 聊天"))
	b.WriteString("\n")
	b.WriteString(dim("输入消息回车发送；exit 或 Ctrl+C 退出。"))
	b.WriteString("\n\n")
	for _, line := range m.lines {
		if line.prompt != "" {
			b.WriteString(styleGreen.Render(line.prompt))
		}
		b.WriteString(line.text)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.ti.View())
	return b.String()
}

func (m *chatModel) appendLine(line chatLine) {
	m.lines = append(m.lines, line)
	if len(m.lines) > chatHistoryWindow {
		m.lines = m.lines[len(m.lines)-chatHistoryWindow:]
	}
}

func (m chatModel) dispatchCmd(message string) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		reply, handled, err := app.Router.Dispatch(context.Background(), message)
		return replyMsg{reply: reply, handled: handled, err: err}
	}
}
