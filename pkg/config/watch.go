package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch watches the config file and reloads the global configuration whenever
// it is written or replaced. It blocks until stop is closed or the watcher
// fails. A reload failure is reported through onError (which may be nil) and
// does not stop the watch; the previous configuration stays in effect.
func Watch(stop <-chan struct{}, onError func(error)) error {
	cfg := Get()
	filename := cfg.ConfigFilePath()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory rather than the file itself: editors and config
	// management tools typically replace the file, which drops a file-level
	// watch.
	dir := filepath.Dir(filename)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			// Writers may still be mid-write on the Create event.
			time.Sleep(50 * time.Millisecond)

			if err := Reload(); err != nil {
				if onError != nil {
					onError(err)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if onError != nil {
				onError(err)
			}
		case <-stop:
			return nil
		}
	}
}
