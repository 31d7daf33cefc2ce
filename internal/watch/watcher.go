package watch

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// DefaultDebounce is the delay waited after the last write
// before reloading the file.
const DefaultDebounce = 100 * time.Millisecond

// Watch reloads `s` from the file at `path` each time it is written,
// until `ctx` is done. `onReload`, if not nil, is called after
// each reload, with its outcome.
// The parent directory is watched, so that editors replacing the
// file are supported.
func Watch(ctx context.Context, path string, s *Session, debounce time.Duration, onReload func(Report, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating watcher")
	}
	defer watcher.Close()

	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return errors.Wrapf(err, "watching %s", path)
	}
	log := s.ctx.Log
	log.Info().Str("file", path).Msg("watching")

	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("watcher error")
		case <-timer.C:
			rep, err := reloadFile(s, path)
			if err != nil {
				log.Warn().Err(err).Msg("reload failed")
			} else {
				log.Info().Bool("rebuilt", rep.Rebuilt).Int("mutations", rep.Mutations).Msg("reloaded")
			}
			if onReload != nil {
				onReload(rep, err)
			}
		}
	}
}

func reloadFile(s *Session, path string) (Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return Report{}, err
	}
	defer f.Close()
	return s.Reload(f)
}
