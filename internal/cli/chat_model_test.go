package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pressEnter(m chatModel, line string) (chatModel, tea.Cmd) {
	m.ti.SetValue(line)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(chatModel), cmd
}

func TestChatModel_DispatchesSubmittedLine(t *testing.T) {
	m := newChatModel(newTestApp(t))

	m, cmd := pressEnter(m, "来个随机脑洞")
	require.NotNil(t, cmd)
	require.Len(t, m.lines, 1, "submitted line echoes into the transcript")

	msg := cmd()
	reply, ok := msg.(replyMsg)
	require.True(t, ok)
	assert.True(t, reply.handled)
	assert.Contains(t, reply.reply, "蝠汁")

	updated, _ := m.Update(reply)
	m = updated.(chatModel)
	require.Len(t, m.lines, 2)
	assert.Contains(t, m.View(), "蝠汁")
}

func TestChatModel_UnhandledMessageShowsHint(t *testing.T) {
	m := newChatModel(newTestApp(t))

	m, cmd := pressEnter(m, "路过的消息")
	msg := cmd()
	updated, _ := m.Update(msg)
	m = updated.(chatModel)

	require.Len(t, m.lines, 2)
	assert.Contains(t, m.View(), "没有命中任何规则")
}

func TestChatModel_EmptyLineIsIgnored(t *testing.T) {
	m := newChatModel(newTestApp(t))
	m, cmd := pressEnter(m, "   ")
	assert.Nil(t, cmd)
	assert.Empty(t, m.lines)
}

func TestChatModel_ExitWordQuits(t *testing.T) {
	m := newChatModel(newTestApp(t))
	m, cmd := pressEnter(m, "exit")
	require.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())
}

func TestChatModel_CtrlCQuits(t *testing.T) {
	m := newChatModel(newTestApp(t))
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.True(t, updated.(chatModel).quitting)
}
