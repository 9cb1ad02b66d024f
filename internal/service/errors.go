package service

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrSessionAbandoned   = errors.New("session abandoned")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrQuestionNotVisible = errors.New("question not applicable for current answers")
	ErrInvalidAnswerType  = errors.New("answer does not match the question type")
	ErrEmailAlreadyUsed   = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// PartialMigrationError reports records still attached to a session after the
// retry budget ran out. The session is kept so the data stays reachable for
// manual reconciliation; callers must surface this to an operator.
type PartialMigrationError struct {
	SessionID     string
	UnmigratedIDs []string
}

func (e *PartialMigrationError) Error() string {
	return fmt.Sprintf("migration of session %s incomplete: %d records not reassigned", e.SessionID, len(e.UnmigratedIDs))
}
