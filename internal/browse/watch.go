package browse

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// ChangedMsg reports that the watched collection file changed on disk.
type ChangedMsg struct {
	Path string
}

// WatchErrMsg carries an error from the file watcher.
type WatchErrMsg struct {
	Err error
}

// Watcher watches one collection's JSONL file. The data directory is
// watched rather than the file because the store replaces the file by
// rename on every write.
type Watcher struct {
	fw   *fsnotify.Watcher
	file string
}

// NewWatcher starts watching dataDir for changes to <collection>.jsonl.
func NewWatcher(dataDir, collection string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(dataDir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", dataDir, err)
	}
	return &Watcher{fw: fw, file: collection + ".jsonl"}, nil
}

// Wait returns a command that blocks until the collection file is created,
// written or renamed into place. It returns nil once the watcher is closed.
func (w *Watcher) Wait() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.fw.Events:
				if !ok {
					return nil
				}
				if filepath.Base(ev.Name) != w.file {
					continue
				}
				if ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) || ev.Has(fsnotify.Rename) {
					return ChangedMsg{Path: ev.Name}
				}
			case err, ok := <-w.fw.Errors:
				if !ok {
					return nil
				}
				return WatchErrMsg{Err: err}
			}
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fw.Close()
}
