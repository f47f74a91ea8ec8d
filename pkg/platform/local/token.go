package local

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"
)

// FileTokenSource implements platform.UbiquityTokenSource over a filesystem
// path: the token is present while the file exists and is non-empty.
type FileTokenSource struct {
	path     string
	interval time.Duration
	logger   *slog.Logger

	mu   sync.RWMutex
	last bool
}

// NewFileTokenSource creates a token source polling the given path
func NewFileTokenSource(path string, interval time.Duration, logger *slog.Logger) *FileTokenSource {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &FileTokenSource{
		path:     path,
		interval: interval,
		logger:   logger,
	}
	s.last = s.stat()
	return s
}

// TokenPresent re-stats the token path and returns the current presence
func (s *FileTokenSource) TokenPresent() bool {
	present := s.stat()
	s.mu.Lock()
	s.last = present
	s.mu.Unlock()
	return present
}

// Changes starts the poll loop and returns its notification channel. Only
// presence flips produce a notification. The channel closes when ctx is
// cancelled.
func (s *FileTokenSource) Changes(ctx context.Context) (<-chan struct{}, error) {
	ch := make(chan struct{}, 1)

	go func() {
		defer close(ch)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				present := s.stat()

				s.mu.Lock()
				changed := s.last != present
				s.last = present
				s.mu.Unlock()

				if !changed {
					continue
				}

				select {
				case ch <- struct{}{}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}

// stat checks whether the token file exists and is non-empty
func (s *FileTokenSource) stat() bool {
	info, err := os.Stat(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Debug("token stat failed", "path", s.path, "error", err)
		}
		return false
	}
	return !info.IsDir() && info.Size() > 0
}
