package service

import (
	"profitum/internal/catalog"
	"profitum/internal/model"
)

// EvaluatorService decides which catalog questions are currently applicable
// given the answers already stored. Pure functions of (snapshot, responses);
// it never mutates answers itself — removing answers to questions that just
// became hidden is the session service's job.
type EvaluatorService struct{}

func NewEvaluatorService() *EvaluatorService {
	return &EvaluatorService{}
}

// IsVisible applies the question's dependency condition. No condition means
// always visible; an unanswered or unknown dependency keeps the question
// hidden. Unknown dependencies are flagged at catalog load, not here.
func (s *EvaluatorService) IsVisible(snap *catalog.Snapshot, q model.Question, responses map[string]model.AnswerValue) bool {
	if q.Condition == nil {
		return true
	}
	if _, ok := snap.Question(q.Condition.DependsOn); !ok {
		return false
	}
	answer, ok := responses[q.Condition.DependsOn]
	if !ok {
		return false
	}
	return answer.Matches(q.Condition.Answer)
}

// VisibleQuestions returns all applicable questions in (phase, order) order.
func (s *EvaluatorService) VisibleQuestions(snap *catalog.Snapshot, responses map[string]model.AnswerValue) []model.Question {
	var out []model.Question
	for _, q := range snap.Questions() {
		if s.IsVisible(snap, q, responses) {
			out = append(out, q)
		}
	}
	return out
}

// NextQuestions returns the applicable questions that still lack an answer,
// in (phase, order) order.
func (s *EvaluatorService) NextQuestions(snap *catalog.Snapshot, responses map[string]model.AnswerValue) []model.Question {
	var out []model.Question
	for _, q := range s.VisibleQuestions(snap, responses) {
		if _, answered := responses[q.ID]; !answered {
			out = append(out, q)
		}
	}
	return out
}
