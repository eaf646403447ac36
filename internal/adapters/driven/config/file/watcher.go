package file

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/foliohq/folio-cli/internal/logger"
)

// watchDebounce coalesces the event bursts editors produce when they
// save a file.
const watchDebounce = 100 * time.Millisecond

// Watch reloads the store and invokes onChange whenever the config file
// changes on disk. The watch covers the containing directory, since
// editors typically replace the file rather than write it in place.
// The returned stop function releases the watch.
func (s *ConfigStore) Watch(onChange func()) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		watcher.Close()
		return nil, err
	}

	done := make(chan struct{})
	go s.watchLoop(watcher, done, onChange)

	var once sync.Once
	stop := func() {
		once.Do(func() {
			close(done)
			watcher.Close()
		})
	}
	return stop, nil
}

func (s *ConfigStore) watchLoop(watcher *fsnotify.Watcher, done <-chan struct{}, onChange func()) {
	// Timer starts disarmed; events arm it
	timer := time.NewTimer(watchDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-done:
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != s.filePath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Config watch: %v", err)

		case <-timer.C:
			if err := s.Load(); err != nil {
				logger.Warn("Config reload failed: %v", err)
				continue
			}
			logger.Debug("Config reloaded from %s", s.filePath)
			onChange()
		}
	}
}
