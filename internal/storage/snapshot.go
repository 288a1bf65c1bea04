package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/javiermolinar/studyplan/internal/study"
)

// Snapshot is every collection at once.
// On import a nil field means "not present" and leaves that collection alone.
type Snapshot struct {
	Subjects  []study.Subject       `json:"subjects"`
	Schedules []study.ScheduleEntry `json:"schedules"`
	Tasks     []study.Task          `json:"tasks"`
	Settings  *study.Settings       `json:"settings"`
	StudyLogs []study.StudyLog      `json:"studyLogs"`
}

// ExportAll reads every collection. Slices are never nil.
func (l *Local) ExportAll(ctx context.Context) Snapshot {
	settings := l.Settings(ctx)
	return Snapshot{
		Subjects:  l.Subjects(ctx),
		Schedules: l.Schedules(ctx),
		Tasks:     l.Tasks(ctx),
		Settings:  &settings,
		StudyLogs: l.StudyLogs(ctx),
	}
}

// ImportAll replaces the collections present in snap.
// Returns the names of the collections written.
func (l *Local) ImportAll(ctx context.Context, snap Snapshot) []string {
	docs := make(map[string]any)
	if snap.Subjects != nil {
		docs[KeySubjects] = snap.Subjects
	}
	if snap.Schedules != nil {
		docs[KeySchedules] = snap.Schedules
	}
	if snap.Tasks != nil {
		docs[KeyTasks] = snap.Tasks
	}
	if snap.Settings != nil {
		docs[KeySettings] = snap.Settings
	}
	if snap.StudyLogs != nil {
		docs[KeyStudyLogs] = snap.StudyLogs
	}

	names := make([]string, 0, len(docs))
	for _, name := range []string{KeySubjects, KeySchedules, KeyTasks, KeySettings, KeyStudyLogs} {
		if _, ok := docs[name]; ok {
			names = append(names, name)
		}
	}

	if bs, ok := l.backend.(batchSaver); ok {
		raw := make(map[string][]byte, len(docs))
		for name, v := range docs {
			b, err := json.Marshal(v)
			if err != nil {
				l.logger.Error("storage encode failed", zap.String("key", l.Key(name)), zap.Error(err))
				return nil
			}
			raw[l.Key(name)] = b
		}
		if err := bs.SaveMany(ctx, raw); err != nil {
			l.logger.Error("storage import failed", zap.Error(err))
			return nil
		}
		return names
	}

	written := names[:0:0]
	for _, name := range names {
		if err := l.write(ctx, name, docs[name]); err == nil {
			written = append(written, name)
		}
	}
	return written
}

// ResetAll deletes every document this store manages. Every key is tried;
// the error reports whether any delete failed.
func (l *Local) ResetAll(ctx context.Context) error {
	var failed bool
	for _, key := range l.Keys() {
		if err := l.backend.Delete(ctx, key); err != nil {
			l.logger.Error("storage delete failed", zap.String("key", key), zap.Error(err))
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("reset: %w", study.ErrNotSaved)
	}
	return nil
}
