package schedule

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/javiermolinar/studyplan/internal/study"
)

// Repository is the storage the submission flow needs.
type Repository interface {
	study.ScheduleRepository
	study.SubjectLookup
}

// Result is a successful submission.
type Result struct {
	Entry   study.ScheduleEntry
	Updated bool // false when a new entry was added
}

// Service validates, conflict-checks and stores session submissions.
type Service struct {
	store    *Store
	detector *Detector
	subjects study.SubjectLookup
	logger   *zap.Logger
}

// NewService creates a Service. A nil logger disables logging.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    NewStore(repo),
		detector: NewDetector(repo),
		subjects: repo,
		logger:   logger,
	}
}

// Store returns the underlying schedule store.
func (s *Service) Store() *Store {
	return s.store
}

// Submit handles the add/edit form.
//
// With an empty editingID the session is added; otherwise the entry with
// that id is updated and excluded from the conflict check. Validation
// failures return *study.ValidationError and overlaps return
// *ConflictError; in both cases the store is left untouched.
func (s *Service) Submit(ctx context.Context, form study.ScheduleForm, editingID string) (*Result, error) {
	draft, err := form.Parse()
	if err != nil {
		return nil, err
	}

	if clash := s.detector.HasConflict(ctx, draft.Day, draft.StartTime, draft.EndTime, editingID); clash != nil {
		cerr := &ConflictError{Entry: *clash}
		if subj, ok := s.subjects.SubjectByID(ctx, clash.SubjectID); ok {
			cerr.SubjectName = subj.Name
		}
		s.logger.Debug("session rejected",
			zap.Int("day", draft.Day),
			zap.String("start", draft.StartTime),
			zap.String("end", draft.EndTime),
			zap.String("conflict_id", clash.ID),
		)
		return nil, cerr
	}

	if editingID == "" {
		entry, err := s.store.Add(ctx, draft.Entry())
		if err != nil {
			return nil, fmt.Errorf("adding session: %w", err)
		}
		s.logger.Info("session scheduled", zap.String("id", entry.ID), zap.Int("day", entry.Day))
		return &Result{Entry: *entry}, nil
	}

	entry, err := s.store.Update(ctx, editingID, PatchFromDraft(draft))
	if err != nil {
		return nil, fmt.Errorf("updating session: %w", err)
	}
	if entry == nil {
		return nil, fmt.Errorf("session %s: %w", editingID, study.ErrNotFound)
	}
	s.logger.Info("session updated", zap.String("id", entry.ID), zap.Int("day", entry.Day))
	return &Result{Entry: *entry, Updated: true}, nil
}

// Remove deletes the session with id.
func (s *Service) Remove(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("removing session: %w", err)
	}
	s.logger.Info("session removed", zap.String("id", id))
	return nil
}
