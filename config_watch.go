// config_watch.go - watches the active configuration file for on-disk
// changes and raises ConfigChanged: reloaded on disk-mtime change or
// when the user presses a digit key.

package main

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher raises its Changed channel whenever the watched
// config file is written or renamed into place. Directory-level
// watching (rather than watching the file handle directly) survives
// editors that save via rename.
type ConfigWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	Changed chan struct{}
}

func NewConfigWatcher(path string) (*ConfigWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, NewEngineError(ErrDeviceUnavailable, err)
	}
	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, NewEngineError(ErrConfigInvalid, err)
	}
	cw := &ConfigWatcher{watcher: w, path: filepath.Clean(path), Changed: make(chan struct{}, 1)}
	go cw.loop()
	return cw, nil
}

func (w *ConfigWatcher) loop() {
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			select {
			case w.Changed <- struct{}{}:
			default:
			}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *ConfigWatcher) Close() error {
	return w.watcher.Close()
}

// configPathForDigit resolves the alternate config filename for a
// pressed digit key: base name "WinDSP.json", alternates named
// "WinDSP-<digit>.json".
func configPathForDigit(dir string, digit rune) string {
	if digit == '1' {
		return filepath.Join(dir, defaultConfigFilename)
	}
	return filepath.Join(dir, "WinDSP-"+string(digit)+".json")
}
