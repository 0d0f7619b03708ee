package layouts

import (
	"fmt"
	"log"
	"os"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a Registry when preset files in its directory change.
type Watcher struct {
	registry *Registry
	watcher  *fsnotify.Watcher
	onChange func()
	done     chan struct{}
}

// Watch creates the presets directory if needed and starts watching it.
// onChange runs after every successful reload.
func Watch(r *Registry, onChange func()) (*Watcher, error) {
	if r.Dir() == "" {
		return nil, fmt.Errorf("presets dir not configured")
	}
	if err := os.MkdirAll(r.Dir(), 0o755); err != nil {
		return nil, fmt.Errorf("create presets dir: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(r.Dir()); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", r.Dir(), err)
	}

	w := &Watcher{
		registry: r,
		watcher:  fw,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	go w.watchLoop()
	return w, nil
}

// Close stops the watcher and waits for the loop to exit.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) watchLoop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isPresetFile(event.Name) {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := w.registry.Load(); err != nil {
				log.Printf("[layouts] reload: %v", err)
				continue
			}
			if w.onChange != nil {
				w.onChange()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[layouts] watcher error: %v", err)
		}
	}
}
