package browse

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatcherReportsCollectionWrites(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	w, err := NewWatcher(dir, "loans")
	require.NoError(t, err)

	got := make(chan tea.Msg, 1)
	go func() { got <- w.Wait()() }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.jsonl"), []byte("{}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "loans.jsonl"), []byte("{}\n"), 0o644))

	select {
	case msg := <-got:
		changed, ok := msg.(ChangedMsg)
		require.True(t, ok, "got %T", msg)
		assert.Equal(t, "loans.jsonl", filepath.Base(changed.Path))
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	require.NoError(t, w.Close())
}

func TestWatcherClosed(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := NewWatcher(t.TempDir(), "loans")
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Nil(t, w.Wait()())
}

func TestNewWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "absent"), "loans")
	assert.Error(t, err)
}
