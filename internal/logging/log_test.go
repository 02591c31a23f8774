package logging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListenerFanout(t *testing.T) {
	l := NewNop()
	ch := make(chan Message, 8)
	l.AddListener(ch)

	l.Info("hello")
	l.Err("boom")

	require.Len(t, ch, 2)
	first := <-ch
	second := <-ch
	assert.Equal(t, KindInfo, first.Kind)
	assert.Equal(t, "hello", first.Content)
	assert.Equal(t, KindError, second.Kind)
	assert.LessOrEqual(t, first.Time, second.Time)
}

func TestVerbosityFilter(t *testing.T) {
	l := NewNop()
	ch := make(chan Message, 8)
	l.AddListener(ch)

	l.SetVerbosity(KindError)
	l.Info("dropped")
	l.Warn("dropped too")
	l.Err("kept")

	require.Len(t, ch, 1)
	assert.Equal(t, "kept", (<-ch).Content)
}

func TestFullListenerDoesNotBlock(t *testing.T) {
	l := NewNop()
	ch := make(chan Message, 1)
	l.AddListener(ch)

	l.Info("one")
	l.Info("two") // dropped, not a deadlock
	assert.Len(t, ch, 1)
}

func TestVerify(t *testing.T) {
	l := NewNop()
	ch := make(chan Message, 4)
	l.AddListener(ch)

	l.Verify(nil)
	assert.Empty(t, ch)

	l.Verify(errors.New("disk on fire"))
	require.Len(t, ch, 1)
	msg := <-ch
	assert.Equal(t, KindError, msg.Kind)
	assert.True(t, strings.Contains(msg.Content, "disk on fire"))
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.log")
	l, err := New(Options{FilePath: path, Format: "json"})
	require.NoError(t, err)

	l.Info("persisted")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "persisted")
}
