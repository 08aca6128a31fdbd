package stdio_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/autosave/pkg/adapters/stdio"
	"github.com/aretw0/autosave/pkg/core"
)

func readMessages(t *testing.T, out *bytes.Buffer) []stdio.Message {
	t.Helper()
	var msgs []stdio.Message
	scanner := bufio.NewScanner(out)
	for scanner.Scan() {
		var m stdio.Message
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &m))
		msgs = append(msgs, m)
	}
	return msgs
}

func run(t *testing.T, input string, cfg core.Config) ([]stdio.Message, []core.Decision) {
	t.Helper()
	ctx := context.Background()

	var out bytes.Buffer
	host := stdio.NewHost(strings.NewReader(input), &out, nil)
	require.NoError(t, host.Start(ctx))

	engine := core.NewEngine(host, host)
	decisions := make(chan core.Decision, 32)
	require.NoError(t, engine.Run(ctx, host, core.StaticConfig(cfg), decisions))
	close(decisions)

	var got []core.Decision
	for d := range decisions {
		got = append(got, d)
	}
	return readMessages(t, &out), got
}

func TestHost_FocusTransferRequestsSave(t *testing.T) {
	input := `{"type":"focus_transferred","losing":{"path":"/src/a.go"},"gaining":{"path":"/src/b.go"}}` + "\n"
	cfg := core.Policy{SaveOnAppDeactivate: true}.Compile()

	msgs, decisions := run(t, input, cfg)

	require.Len(t, decisions, 1)
	assert.True(t, decisions[0].Saved())
	require.Len(t, msgs, 2)
	assert.Equal(t, stdio.Message{Type: stdio.MsgLog, Message: "saving /src/a.go"}, msgs[0])
	assert.Equal(t, stdio.Message{Type: stdio.MsgSave, Path: "/src/a.go"}, msgs[1])
}

func TestHost_SweepWithContent(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "notes.md")
	payload := map[string]any{
		"type": "host_lost_focus",
		"surfaces": []any{
			map[string]any{"path": filepath.Join(dir, "clean.md"), "saved": true},
			nil,
			map[string]any{"path": filepath.Join(dir, "ro.md"), "read_only": true},
			map[string]any{"path": target, "content": "draft"},
			map[string]any{"path": filepath.Join(dir, "x.tmp")},
		},
	}
	line, err := json.Marshal(payload)
	require.NoError(t, err)

	cfg := core.Policy{IgnoredFileTypes: `\.tmp$`, UseRegex: true, SaveOnAppDeactivate: true}.Compile()
	msgs, decisions := run(t, string(line)+"\n", cfg)

	require.Len(t, decisions, 5)
	outcomes := make([]core.Outcome, 0, len(decisions))
	for _, d := range decisions {
		outcomes = append(outcomes, d.Outcome)
	}
	assert.Equal(t, []core.Outcome{
		core.OutcomeClean, core.OutcomeMissing, core.OutcomeReadOnly, core.OutcomeSaved, core.OutcomeIgnored,
	}, outcomes)

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "draft", string(got))

	var types []stdio.MessageType
	for _, m := range msgs {
		types = append(types, m.Type)
	}
	assert.Equal(t, []stdio.MessageType{stdio.MsgLog, stdio.MsgLog, stdio.MsgSaved}, types)
}

func TestHost_RejectsBadLines(t *testing.T) {
	input := strings.Join([]string{
		`not json`,
		``,
		`{"type":"bogus"}`,
		`{"type":"host_lost_focus","surfaces":[{"path":"a"}]}`,
	}, "\n")
	cfg := core.Policy{SaveOnAppDeactivate: false}.Compile()

	msgs, decisions := run(t, input, cfg)
	assert.Empty(t, decisions, "disabled sweep yields nothing")

	require.Len(t, msgs, 2)
	assert.Equal(t, stdio.MsgError, msgs[0].Type)
	assert.Contains(t, msgs[0].Error, "line 1")
	assert.Equal(t, stdio.MsgError, msgs[1].Type)
	assert.Contains(t, msgs[1].Error, "bogus")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("pipe closed") }

func TestHost_SaveRequestFailsWhenEditorGone(t *testing.T) {
	host := stdio.NewHost(strings.NewReader(""), failingWriter{}, nil)
	engine := core.NewEngine(host, host)

	doc := (&stdio.DocumentPayload{Path: "/a.txt"}).Document()
	d := engine.ShouldSave(context.Background(), doc, core.Config{})
	assert.Equal(t, core.OutcomeFailed, d.Outcome)
	assert.ErrorIs(t, d.Err, core.ErrHostServiceUnavailable)
}

func TestDocumentPayload(t *testing.T) {
	var p *stdio.DocumentPayload
	assert.Nil(t, p.Document())

	content := "x"
	doc := (&stdio.DocumentPayload{Path: "a", Content: &content, ReadOnly: true}).Document()
	assert.True(t, doc.IsReadOnly())
	assert.False(t, doc.IsSaved())

	doc = (&stdio.DocumentPayload{Path: "a", Content: &content, Saved: true}).Document()
	assert.True(t, doc.IsSaved())
}

func TestDecisionMessage(t *testing.T) {
	m := stdio.DecisionMessage(core.Decision{Path: "a", Outcome: core.OutcomeFailed, Err: core.ErrSaveFailed})
	assert.Equal(t, stdio.MsgDecision, m.Type)
	assert.Equal(t, core.OutcomeFailed, m.Outcome)
	assert.Equal(t, "save action failed", m.Error)
}
