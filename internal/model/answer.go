package model

import (
	"encoding/json"
	"strconv"
	"time"
)

// AnswerKind discriminates the answer value union
type AnswerKind string

const (
	AnswerScalar      AnswerKind = "scalar"
	AnswerMultiSelect AnswerKind = "multi_select"
	AnswerNumeric     AnswerKind = "numeric"
)

// AnswerValue is a tagged union: exactly one of Scalar, Multi or Number is
// meaningful, selected by Kind.
type AnswerValue struct {
	Kind   AnswerKind `bson:"kind"`
	Scalar string     `bson:"scalar,omitempty"`
	Multi  []string   `bson:"multi,omitempty"`
	Number float64    `bson:"number,omitempty"`
}

func ScalarAnswer(v string) AnswerValue { return AnswerValue{Kind: AnswerScalar, Scalar: v} }

func MultiSelectAnswer(v ...string) AnswerValue {
	return AnswerValue{Kind: AnswerMultiSelect, Multi: v}
}

func NumericAnswer(v float64) AnswerValue { return AnswerValue{Kind: AnswerNumeric, Number: v} }

// Matches reports whether the answer satisfies a dependency expecting the given
// value: equality for scalars, containment for multi-select, decimal
// representation for numerics.
func (v AnswerValue) Matches(required string) bool {
	switch v.Kind {
	case AnswerScalar:
		return v.Scalar == required
	case AnswerMultiSelect:
		for _, opt := range v.Multi {
			if opt == required {
				return true
			}
		}
		return false
	case AnswerNumeric:
		return strconv.FormatFloat(v.Number, 'f', -1, 64) == required
	}
	return false
}

// MarshalJSON renders the bare value, the way the simulator client sends it.
func (v AnswerValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case AnswerMultiSelect:
		return json.Marshal(v.Multi)
	case AnswerNumeric:
		return json.Marshal(v.Number)
	default:
		return json.Marshal(v.Scalar)
	}
}

// UnmarshalJSON infers the kind from the JSON type: string, string array or number.
func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = ScalarAnswer(s)
		return nil
	}
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*v = MultiSelectAnswer(arr...)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*v = NumericAnswer(n)
	return nil
}

// Response is one stored answer. Owned by a session until migration, then by a client.
type Response struct {
	ID         string      `json:"id" bson:"_id,omitempty"`
	SessionID  string      `json:"sessionId,omitempty" bson:"sessionId,omitempty"`
	ClientID   string      `json:"clientId,omitempty" bson:"clientId,omitempty"`
	QuestionID string      `json:"questionId" bson:"questionId"`
	Value      AnswerValue `json:"value" bson:"value"`
	AnsweredAt time.Time   `json:"answeredAt" bson:"answeredAt"`
}
