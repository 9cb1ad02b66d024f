package catalog

import (
	"context"
	"log"
	"sync"

	"profitum/internal/model"
)

// QuestionSource provides catalog entries; backed by the question repository
// in production and by fixtures in tests.
type QuestionSource interface {
	List(ctx context.Context) ([]model.Question, error)
}

// Service owns the active catalog snapshot and its reload policy: snapshots
// swap atomically on Load, in-flight sessions keep reading the one they hold.
type Service struct {
	source  QuestionSource
	profile *ScoringProfile

	mu       sync.RWMutex
	snapshot *Snapshot
}

func NewService(source QuestionSource, profile *ScoringProfile) *Service {
	return &Service{
		source:  source,
		profile: profile,
	}
}

// Load fetches the catalog, validates it against the scoring profile and swaps
// the active snapshot. Validation warnings are logged; errors abort the swap.
func (s *Service) Load(ctx context.Context) error {
	questions, err := s.source.List(ctx)
	if err != nil {
		return err
	}

	snapshot := NewSnapshot(questions)
	warnings, err := snapshot.Validate(s.profile)
	for _, w := range warnings {
		log.Printf("catalog warning: %s", w)
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	log.Printf("catalog loaded: %d questions, %d products", snapshot.Len(), len(s.profile.Products))
	return nil
}

// Snapshot returns the active snapshot.
func (s *Service) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Profile returns the scoring profile loaded at startup.
func (s *Service) Profile() *ScoringProfile {
	return s.profile
}
