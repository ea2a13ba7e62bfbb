package posts

import (
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher calls a function whenever a markdown file in a directory changes.
// It is used in development to rebuild the catalog while posts are edited.
type Watcher struct {
	fw   *fsnotify.Watcher
	done chan struct{}
}

// Watch starts watching dir. onChange runs on the watcher goroutine, once per
// relevant event.
func Watch(dir string, log *zap.Logger, onChange func(name string)) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}
	w := &Watcher{fw: fw, done: make(chan struct{})}
	go func() {
		defer close(w.done)
		for {
			select {
			case event, ok := <-fw.Events:
				if !ok {
					return
				}
				if !strings.EqualFold(filepath.Ext(event.Name), ".md") {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
					event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
					log.Debug("post changed", zap.String("file", event.Name), zap.String("op", event.Op.String()))
					onChange(event.Name)
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return
				}
				log.Warn("watch error", zap.Error(err))
			}
		}
	}()
	return w, nil
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	err := w.fw.Close()
	<-w.done
	return err
}
