package service

import (
	"testing"

	"profitum/internal/catalog"
	"profitum/internal/model"
)

func evaluatorFixture() *catalog.Snapshot {
	return catalog.NewSnapshot([]model.Question{
		{ID: "TICPE_003", Type: model.QuestionTypeSingleChoice, Phase: 1, Order: 1, Required: true, TargetProducts: []string{"TICPE"}},
		{ID: "TICPE_004", Type: model.QuestionTypeSingleChoice, Phase: 1, Order: 2, TargetProducts: []string{"TICPE"},
			Condition: &model.Condition{DependsOn: "TICPE_003", Answer: "Oui"}},
		{ID: "TICPE_005", Type: model.QuestionTypeMultiChoice, Phase: 2, Order: 1, TargetProducts: []string{"TICPE"},
			Condition: &model.Condition{DependsOn: "TICPE_004", Answer: "Plus de 25 véhicules"}},
		{ID: "TICPE_006", Type: model.QuestionTypeSingleChoice, Phase: 2, Order: 2, TargetProducts: []string{"TICPE"},
			Condition: &model.Condition{DependsOn: "TICPE_005", Answer: "Camions de plus de 7,5 tonnes"}},
		{ID: "TICPE_999", Type: model.QuestionTypeSingleChoice, Phase: 3, Order: 1, TargetProducts: []string{"TICPE"},
			Condition: &model.Condition{DependsOn: "MISSING_001", Answer: "Oui"}},
	})
}

func TestIsVisible(t *testing.T) {
	snap := evaluatorFixture()
	evaluator := NewEvaluatorService()

	tests := []struct {
		name      string
		question  string
		responses map[string]model.AnswerValue
		want      bool
	}{
		{
			name:      "no condition is always visible",
			question:  "TICPE_003",
			responses: map[string]model.AnswerValue{},
			want:      true,
		},
		{
			name:      "unanswered dependency hides",
			question:  "TICPE_004",
			responses: map[string]model.AnswerValue{},
			want:      false,
		},
		{
			name:     "scalar dependency matches on equality",
			question: "TICPE_004",
			responses: map[string]model.AnswerValue{
				"TICPE_003": model.ScalarAnswer("Oui"),
			},
			want: true,
		},
		{
			name:     "scalar dependency mismatch hides",
			question: "TICPE_004",
			responses: map[string]model.AnswerValue{
				"TICPE_003": model.ScalarAnswer("Non"),
			},
			want: false,
		},
		{
			name:     "multi-select dependency matches on containment",
			question: "TICPE_006",
			responses: map[string]model.AnswerValue{
				"TICPE_005": model.MultiSelectAnswer("Véhicules utilitaires légers", "Camions de plus de 7,5 tonnes"),
			},
			want: true,
		},
		{
			name:     "multi-select without the option hides",
			question: "TICPE_006",
			responses: map[string]model.AnswerValue{
				"TICPE_005": model.MultiSelectAnswer("Véhicules utilitaires légers"),
			},
			want: false,
		},
		{
			name:     "dangling dependency hides",
			question: "TICPE_999",
			responses: map[string]model.AnswerValue{
				"MISSING_001": model.ScalarAnswer("Oui"),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, ok := snap.Question(tt.question)
			if !ok {
				t.Fatalf("fixture question %s missing", tt.question)
			}
			if got := evaluator.IsVisible(snap, q, tt.responses); got != tt.want {
				t.Errorf("IsVisible(%s) = %v, want %v", tt.question, got, tt.want)
			}
		})
	}
}

func TestNextQuestionsOrderAndFiltering(t *testing.T) {
	snap := evaluatorFixture()
	evaluator := NewEvaluatorService()

	responses := map[string]model.AnswerValue{
		"TICPE_003": model.ScalarAnswer("Oui"),
		"TICPE_004": model.ScalarAnswer("Plus de 25 véhicules"),
	}

	next := evaluator.NextQuestions(snap, responses)
	if len(next) != 1 || next[0].ID != "TICPE_005" {
		t.Fatalf("NextQuestions = %v, want [TICPE_005]", questionIDs(next))
	}

	// A fresh session only sees the unconditional opener.
	next = evaluator.NextQuestions(snap, map[string]model.AnswerValue{})
	if len(next) != 1 || next[0].ID != "TICPE_003" {
		t.Fatalf("NextQuestions on empty session = %v, want [TICPE_003]", questionIDs(next))
	}
}

func TestVisibleQuestionsPhaseOrder(t *testing.T) {
	snap := evaluatorFixture()
	evaluator := NewEvaluatorService()

	responses := map[string]model.AnswerValue{
		"TICPE_003": model.ScalarAnswer("Oui"),
		"TICPE_004": model.ScalarAnswer("Plus de 25 véhicules"),
		"TICPE_005": model.MultiSelectAnswer("Camions de plus de 7,5 tonnes"),
	}

	got := questionIDs(evaluator.VisibleQuestions(snap, responses))
	want := []string{"TICPE_003", "TICPE_004", "TICPE_005", "TICPE_006"}
	if len(got) != len(want) {
		t.Fatalf("VisibleQuestions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("VisibleQuestions = %v, want %v", got, want)
		}
	}
}

func questionIDs(questions []model.Question) []string {
	ids := make([]string, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	return ids
}
