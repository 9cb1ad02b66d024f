package catalog

import (
	"strings"
	"testing"

	"profitum/internal/model"
)

func TestParseScoringProfile(t *testing.T) {
	profile, err := ParseScoringProfile([]byte(`
version: 1
products:
  - id: TICPE
    name: Récupération TICPE
    rules:
      - question: TICPE_003
        operator: equals
        value: Oui
        points: 30
        required: true
    savings:
      base_question: TICPE_012
      rate: 0.177
      cap: 150000
  - id: FONCIER
    name: Taxe foncière
    rules:
      - question: GENERAL_004
        operator: equals
        value: Oui
        points: 70
    savings: {}
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := profile.ProductIDs(); len(got) != 2 || got[0] != "TICPE" || got[1] != "FONCIER" {
		t.Fatalf("ProductIDs = %v, want [TICPE FONCIER] in declaration order", got)
	}
	ticpe, ok := profile.Product("TICPE")
	if !ok {
		t.Fatal("TICPE not indexed")
	}
	if ticpe.Savings.Rate != 0.177 || ticpe.Savings.BaseQuestion != "TICPE_012" {
		t.Errorf("savings = %+v", ticpe.Savings)
	}
	if !ticpe.Rules[0].Required {
		t.Error("required flag lost")
	}
}

func TestParseScoringProfileRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "no products",
			yaml: "version: 1\nproducts: []\n",
			want: "no products",
		},
		{
			name: "product without id",
			yaml: "version: 1\nproducts:\n  - name: anonymous\n",
			want: "has no id",
		},
		{
			name: "duplicate product",
			yaml: "version: 1\nproducts:\n  - id: TICPE\n  - id: TICPE\n",
			want: "duplicate product",
		},
		{
			name: "rule without question",
			yaml: "version: 1\nproducts:\n  - id: TICPE\n    rules:\n      - operator: equals\n        value: Oui\n",
			want: "rule without a question",
		},
		{
			name: "not yaml",
			yaml: "{{{",
			want: "parse scoring profile",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScoringProfile([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestRuleMatches(t *testing.T) {
	tests := []struct {
		name   string
		rule   Rule
		answer model.AnswerValue
		want   bool
	}{
		{"equals match", Rule{Operator: OpEquals, Value: "Oui"}, model.ScalarAnswer("Oui"), true},
		{"equals mismatch", Rule{Operator: OpEquals, Value: "Oui"}, model.ScalarAnswer("Non"), false},
		{"equals wrong kind", Rule{Operator: OpEquals, Value: "Oui"}, model.NumericAnswer(1), false},
		{"in match", Rule{Operator: OpIn, Values: []string{"Commerce", "Industrie"}}, model.ScalarAnswer("Industrie"), true},
		{"in mismatch", Rule{Operator: OpIn, Values: []string{"Commerce"}}, model.ScalarAnswer("Services"), false},
		{"contains match", Rule{Operator: OpContains, Value: "Camions de plus de 7,5 tonnes"},
			model.MultiSelectAnswer("Engins de chantier", "Camions de plus de 7,5 tonnes"), true},
		{"contains mismatch", Rule{Operator: OpContains, Value: "Camions de plus de 7,5 tonnes"},
			model.MultiSelectAnswer("Engins de chantier"), false},
		{"contains rejects scalar", Rule{Operator: OpContains, Value: "Oui"}, model.ScalarAnswer("Oui"), false},
		{"gte at threshold", Rule{Operator: OpGTE, Number: 5}, model.NumericAnswer(5), true},
		{"gte below", Rule{Operator: OpGTE, Number: 5}, model.NumericAnswer(4), false},
		{"lte above", Rule{Operator: OpLTE, Number: 10}, model.NumericAnswer(11), false},
		{"lte at threshold", Rule{Operator: OpLTE, Number: 10}, model.NumericAnswer(10), true},
		{"unknown operator", Rule{Operator: "between", Value: "x"}, model.ScalarAnswer("x"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rule.Matches(tt.answer); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}
