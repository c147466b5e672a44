package ui

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// fileWatcher reports changes to a single file. It watches the parent
// directory so editors that save by rename-and-replace are still seen.
type fileWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	changes chan struct{}
	errors  chan error
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// newFileWatcher starts watching path.
func newFileWatcher(path string) (*fileWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch directory %s: %w", filepath.Dir(absPath), err)
	}

	fw := &fileWatcher{
		watcher: watcher,
		path:    absPath,
		changes: make(chan struct{}, 1),
		errors:  make(chan error, 1),
		done:    make(chan struct{}),
	}
	fw.wg.Add(1)
	go fw.processEvents()
	return fw, nil
}

// Changes emits once per burst of changes; pending notifications coalesce.
func (fw *fileWatcher) Changes() <-chan struct{} {
	return fw.changes
}

// Errors emits watcher failures.
func (fw *fileWatcher) Errors() <-chan error {
	return fw.errors
}

// Close stops the watcher and waits for the event loop to exit.
func (fw *fileWatcher) Close() error {
	var err error
	fw.once.Do(func() {
		close(fw.done)
		if cerr := fw.watcher.Close(); cerr != nil {
			err = fmt.Errorf("failed to close watcher: %w", cerr)
		}
		fw.wg.Wait()
	})
	return err
}

func (fw *fileWatcher) processEvents() {
	defer fw.wg.Done()

	for {
		select {
		case <-fw.done:
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !fw.relevant(event) {
				continue
			}
			select {
			case fw.changes <- struct{}{}:
			default:
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			select {
			case fw.errors <- err:
			case <-fw.done:
				return
			}
		}
	}
}

// relevant reports whether event touches the watched file.
func (fw *fileWatcher) relevant(event fsnotify.Event) bool {
	name, err := filepath.Abs(event.Name)
	if err != nil || name != fw.path {
		return false
	}
	// Ignore chmod and other metadata-only events
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}
