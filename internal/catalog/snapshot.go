package catalog

import (
	"fmt"
	"sort"

	"profitum/internal/model"
)

// Snapshot is an immutable point-in-time view of the question catalog.
// Sessions always evaluate against one snapshot, so an admin reload mid-session
// never makes a questionnaire inconsistent with itself.
type Snapshot struct {
	questions []model.Question
	byID      map[string]model.Question
}

// NewSnapshot copies and orders the questions by (phase, order).
func NewSnapshot(questions []model.Question) *Snapshot {
	ordered := make([]model.Question, len(questions))
	copy(ordered, questions)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Phase != ordered[j].Phase {
			return ordered[i].Phase < ordered[j].Phase
		}
		return ordered[i].Order < ordered[j].Order
	})

	byID := make(map[string]model.Question, len(ordered))
	for _, q := range ordered {
		byID[q.ID] = q
	}

	return &Snapshot{questions: ordered, byID: byID}
}

// Question looks up a catalog entry by id.
func (s *Snapshot) Question(id string) (model.Question, bool) {
	q, ok := s.byID[id]
	return q, ok
}

// Questions returns all questions in (phase, order) order.
func (s *Snapshot) Questions() []model.Question {
	out := make([]model.Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// ForProduct returns the questions relevant to a product, in catalog order.
func (s *Snapshot) ForProduct(productID string) []model.Question {
	var out []model.Question
	for _, q := range s.questions {
		if q.Targets(productID) {
			out = append(out, q)
		}
	}
	return out
}

func (s *Snapshot) Len() int {
	return len(s.questions)
}

// Validate cross-checks the catalog against the scoring profile.
// A dangling dependency reference is an authoring defect but must not take the
// questionnaire down, so it only produces a warning; a target product missing
// from the scoring profile would mean silently unscorable questions, so that
// is an error and the caller should refuse to start.
func (s *Snapshot) Validate(profile *ScoringProfile) (warnings []string, err error) {
	for _, q := range s.questions {
		if q.Condition != nil {
			if _, ok := s.byID[q.Condition.DependsOn]; !ok {
				warnings = append(warnings, fmt.Sprintf(
					"question %s depends on unknown question %s; it will stay hidden", q.ID, q.Condition.DependsOn))
			}
		}
		for _, p := range q.TargetProducts {
			if _, ok := profile.Product(p); !ok {
				return warnings, fmt.Errorf("question %s targets product %s absent from scoring profile", q.ID, p)
			}
		}
	}
	return warnings, nil
}
