package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	return entry
}

func TestNew_EntryShape(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "life-os-server")

	l.Info().Int64("user_id", 7).Msg("vault stored")

	entry := decode(t, buf.Bytes())
	assert.Equal(t, "life-os-server", entry["role"])
	assert.Equal(t, "vault stored", entry["message"])
	assert.EqualValues(t, 7, entry["user_id"])
	assert.Contains(t, entry, "time")
	// caller пишется именем функции, а не file:line
	assert.Contains(t, entry["func"], "TestNew_EntryShape")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("dropped")

	assert.Zero(t, buf.Len())
}

func TestGetChildLogger(t *testing.T) {
	var buf bytes.Buffer
	parent := New(&buf, "life-os-server")

	child := parent.GetChildLogger()
	child.UpdateContext(func(c zerolog.Context) zerolog.Context { return c.Str("trace_id", "t-1") })
	require.NotSame(t, parent, child)

	child.Info().Msg("child")
	parent.Info().Msg("parent")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Equal(t, "t-1", decode(t, lines[0])["trace_id"])
	assert.Equal(t, "life-os-server", decode(t, lines[0])["role"])
	assert.NotContains(t, decode(t, lines[1]), "trace_id")
}

func TestFromContextAndRequest(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("trace_id", "abc").Logger()
	ctx := zl.WithContext(context.Background())

	FromContext(ctx).Info().Msg("from context")
	req := httptest.NewRequest(http.MethodGet, "/api/vault", nil).WithContext(ctx)
	FromRequest(req).Info().Msg("from request")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Equal(t, "abc", decode(t, line)["trace_id"])
	}

	// без логгера в контексте всё равно не nil
	require.NotNil(t, FromContext(context.Background()))
}

func TestNewClientLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "client.log")
	NewClientLogger("life-os-client", path).Info().Msg("to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	entry := decode(t, data)
	assert.Equal(t, "life-os-client", entry["role"])
	assert.Equal(t, "to file", entry["message"])

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestNewClientLogger_UnwritablePathDiscards(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	// каталог не создать: путь проходит через обычный файл
	l := NewClientLogger("life-os-client", filepath.Join(blocker, "client.log"))
	require.NotNil(t, l)
	l.Info().Msg("nowhere")
}

func TestSetLevel(t *testing.T) {
	l := New(&bytes.Buffer{}, "level")
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

	l.SetLevel("warn")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	l.SetLevel("nonsense")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	l.SetLevel("")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
}
