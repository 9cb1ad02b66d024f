package model

// QuestionType defines how a question is answered
type QuestionType string

const (
	QuestionTypeSingleChoice QuestionType = "choix_unique"   // One option, scalar answer
	QuestionTypeMultiChoice  QuestionType = "choix_multiple" // Several options, multi-select answer
	QuestionTypeNumber       QuestionType = "nombre"         // Free numeric input
)

// Condition gates a question on a previously given answer.
// The question is applicable only once DependsOn has been answered with Answer
// (containment for multi-select answers).
type Condition struct {
	DependsOn string `json:"dependsOn" bson:"dependsOn"`
	Answer    string `json:"answer" bson:"answer"`
}

// Question is a catalog entry, e.g. "TICPE_003"
type Question struct {
	ID             string       `json:"id" bson:"_id"`
	Text           string       `json:"text" bson:"text"`
	Type           QuestionType `json:"type" bson:"type"`
	Phase          int          `json:"phase" bson:"phase"`
	Order          int          `json:"order" bson:"order"`
	Options        []string     `json:"options,omitempty" bson:"options,omitempty"`
	Required       bool         `json:"required" bson:"required"`
	TargetProducts []string     `json:"targetProducts" bson:"targetProducts"`
	Condition      *Condition   `json:"condition,omitempty" bson:"condition,omitempty"`
}

// Targets reports whether the question is relevant to the given product code.
func (q *Question) Targets(productID string) bool {
	for _, p := range q.TargetProducts {
		if p == productID {
			return true
		}
	}
	return false
}

// AcceptsKind reports whether an answer of the given kind matches the declared type.
func (q *Question) AcceptsKind(k AnswerKind) bool {
	switch q.Type {
	case QuestionTypeSingleChoice:
		return k == AnswerScalar
	case QuestionTypeMultiChoice:
		return k == AnswerMultiSelect
	case QuestionTypeNumber:
		return k == AnswerNumeric
	}
	return false
}
