// Package storage persists studyplan data as namespaced JSON documents.
//
// Each collection lives in one document (for example "ssp_schedules") and
// every write re-serializes the whole collection. Persistence failures are
// logged. Reads fall back to an empty collection; a mutation whose read or
// write fails leaves the stored document untouched and returns
// study.ErrNotSaved.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/javiermolinar/studyplan/internal/study"
)

// Backend stores raw documents by key.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// batchSaver is implemented by backends that can write several documents atomically.
type batchSaver interface {
	SaveMany(ctx context.Context, docs map[string][]byte) error
}

// Collection names.
const (
	KeySubjects  = "subjects"
	KeySchedules = "schedules"
	KeyTasks     = "tasks"
	KeyStudyLogs = "studyLogs"
	KeySettings  = "settings"
)

// DefaultNamespace prefixes every document key.
const DefaultNamespace = "ssp"

// Options configures a Local store. Zero values select defaults.
type Options struct {
	Namespace string
	Logger    *zap.Logger
	// Defaults are returned by Settings until settings are saved.
	Defaults *study.Settings
	Now      func() time.Time
}

// Local is the storage collaborator used by every other module.
type Local struct {
	backend  Backend
	ns       string
	logger   *zap.Logger
	defaults study.Settings
	now      func() time.Time
}

// New creates a Local store over backend.
func New(backend Backend, opts Options) *Local {
	l := &Local{
		backend:  backend,
		ns:       opts.Namespace,
		logger:   opts.Logger,
		defaults: study.DefaultSettings(),
		now:      opts.Now,
	}
	if l.ns == "" {
		l.ns = DefaultNamespace
	}
	if l.logger == nil {
		l.logger = zap.NewNop()
	}
	if opts.Defaults != nil {
		l.defaults = *opts.Defaults
	}
	if l.now == nil {
		l.now = time.Now
	}
	return l
}

// Key returns the namespaced document key for a collection.
func (l *Local) Key(name string) string {
	return l.ns + "_" + name
}

// Keys returns every document key this store manages.
func (l *Local) Keys() []string {
	return []string{
		l.Key(KeySubjects),
		l.Key(KeySchedules),
		l.Key(KeyTasks),
		l.Key(KeyStudyLogs),
		l.Key(KeySettings),
	}
}

// read decodes the named document into out. found is false when the
// document is absent; err is set when it could not be loaded or decoded.
func (l *Local) read(ctx context.Context, name string, out any) (found bool, err error) {
	key := l.Key(name)
	raw, ok, err := l.backend.Load(ctx, key)
	if err != nil {
		l.logger.Error("storage read failed", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("reading %s: %w", key, study.ErrNotSaved)
	}
	if !ok || len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		l.logger.Error("storage document is corrupt", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("decoding %s: %w", key, study.ErrNotSaved)
	}
	return true, nil
}

// write serializes v into the named document.
func (l *Local) write(ctx context.Context, name string, v any) error {
	key := l.Key(name)
	raw, err := json.Marshal(v)
	if err != nil {
		l.logger.Error("storage encode failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("encoding %s: %w", key, study.ErrNotSaved)
	}
	if err := l.backend.Save(ctx, key, raw); err != nil {
		l.logger.Error("storage write failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("writing %s: %w", key, study.ErrNotSaved)
	}
	return nil
}

// load reads a collection for a mutation. Unlike loadList it reports a
// failed read, so the caller can skip writing over data it never saw.
func load[T any](ctx context.Context, l *Local, name string) ([]T, error) {
	var items []T
	if _, err := l.read(ctx, name, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// loadList reads a collection for display; failures yield an empty one.
func loadList[T any](ctx context.Context, l *Local, name string) []T {
	items, err := load[T](ctx, l, name)
	if err != nil {
		return []T{}
	}
	return items
}
