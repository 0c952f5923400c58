package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append(args, "--color", "never"))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLineCommand(t *testing.T) {
	out, err := execute(t, "line", "0", "0", "3", "1")
	require.NoError(t, err)
	assert.Equal(t, "(0,0)\n(1,0)\n(2,1)\n(3,1)\n", out)

	_, err = execute(t, "line", "0", "x", "3", "1")
	assert.Error(t, err)
}

func TestFindCommand(t *testing.T) {
	path := writeScenario(t, `
map: |
  ..#..
  ..#..
  .....
start: [0, 0]
destination: [4, 0]
`)
	out, err := execute(t, "find", path)
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Equal(t, "S.#.D", lines[0])
	assert.Equal(t, ".*#*.", lines[1])
	assert.Equal(t, "..*..", lines[2])
	assert.Contains(t, lines[3], "path: 4 cells")
}

func TestFindCommandNoPath(t *testing.T) {
	path := writeScenario(t, `
map: |
  ..#..
  ..#..
  ..#..
start: [0, 0]
destination: [4, 0]
`)
	out, err := execute(t, "find", "--explored", path)
	require.NoError(t, err)
	assert.Contains(t, out, "no path after")
	assert.Contains(t, out, ":")
}

func TestFindCommandInvalidRequest(t *testing.T) {
	path := writeScenario(t, "map: \"...\"\nstart: [0, 0]\ndestination: [9, 0]\n")
	_, err := execute(t, "find", path)
	assert.Error(t, err)
}

func TestBatchCommandYAML(t *testing.T) {
	path := writeScenario(t, sampleScenario)
	out, err := execute(t, "batch", "--yaml", path)
	require.NoError(t, err)

	var rows []batchRow
	require.NoError(t, yaml.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "top", rows[0].ID)
	assert.True(t, rows[0].Found)
	assert.Equal(t, "wall", rows[1].ID)
	assert.False(t, rows[1].Found)
	assert.Empty(t, rows[1].Error)
}

func TestBatchCommandTable(t *testing.T) {
	path := writeScenario(t, sampleScenario)
	out, err := execute(t, "batch", path)
	require.NoError(t, err)
	assert.Contains(t, out, "FOUND")
	assert.Contains(t, out, "top")
	assert.Contains(t, out, "wall")
}

func TestRootRejectsBadColor(t *testing.T) {
	root := newRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"line", "0", "0", "1", "1", "--color", "rainbow"})
	assert.Error(t, root.Execute())
}

// syncBuffer lets the watch loop and the test share output.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchRerunsOnChange(t *testing.T) {
	path := writeScenario(t, "map: \"....\"\nstart: [0, 0]\ndestination: [3, 0]\n")

	var out syncBuffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"watch", path, "--color", "never"})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- root.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Count(out.String(), "path:") == 1
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("map: \"..#.\"\nstart: [0, 0]\ndestination: [3, 0]\n"), 0o644))
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "no path")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
