package service

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"profitum/internal/cache"
	"profitum/internal/catalog"
	"profitum/internal/model"
	"profitum/internal/repository"
)

// SessionService orchestrates the simulator flow: session lifecycle, answer
// submission with dependency invalidation, and eligibility computation.
type SessionService struct {
	sessions  repository.SessionRepo
	responses repository.ResponseRepo
	results   repository.EligibilityRepo
	catalog   *catalog.Service
	evaluator *EvaluatorService
	scorer    *ScorerService

	sessionCache cache.SessionCache
	resultCache  cache.ResultCache
	broadcaster  Broadcaster

	ttl time.Duration
}

func NewSessionService(
	sessions repository.SessionRepo,
	responses repository.ResponseRepo,
	results repository.EligibilityRepo,
	catalogSvc *catalog.Service,
	evaluator *EvaluatorService,
	scorer *ScorerService,
	sessionCache cache.SessionCache,
	resultCache cache.ResultCache,
	ttl time.Duration,
) *SessionService {
	return &SessionService{
		sessions:     sessions,
		responses:    responses,
		results:      results,
		catalog:      catalogSvc,
		evaluator:    evaluator,
		scorer:       scorer,
		sessionCache: sessionCache,
		resultCache:  resultCache,
		ttl:          ttl,
	}
}

// SetBroadcaster injects the websocket hub
func (s *SessionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Create opens a fresh anonymous session with an opaque token and a TTL.
func (s *SessionService) Create(ctx context.Context) (*model.Session, error) {
	now := time.Now()
	session := &model.Session{
		Token:     uuid.New().String(),
		Status:    model.SessionActive,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	if err := s.sessionCache.Set(ctx, session); err != nil {
		log.Printf("session cache set: %v", err)
	}
	return session, nil
}

func (s *SessionService) getByToken(ctx context.Context, token string) (*model.Session, error) {
	session, err := s.sessionCache.Get(ctx, token)
	if err != nil {
		log.Printf("session cache get: %v", err)
	}
	if session == nil {
		session, err = s.sessions.GetByToken(ctx, token)
		if err != nil {
			return nil, err
		}
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	if session.Expired(time.Now()) {
		return nil, ErrSessionExpired
	}
	if session.Status == model.SessionAbandoned {
		return nil, ErrSessionAbandoned
	}
	return session, nil
}

func (s *SessionService) responseMap(ctx context.Context, sessionID string) (map[string]model.AnswerValue, error) {
	stored, err := s.responses.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	responses := make(map[string]model.AnswerValue, len(stored))
	for _, r := range stored {
		responses[r.QuestionID] = r.Value
	}
	return responses, nil
}

// NextQuestions returns the applicable, unanswered questions in (phase, order) order.
func (s *SessionService) NextQuestions(ctx context.Context, token string) ([]model.Question, error) {
	session, err := s.getByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	responses, err := s.responseMap(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	return s.evaluator.NextQuestions(s.catalog.Snapshot(), responses), nil
}

// Responses returns the stored answers keyed by question id.
func (s *SessionService) Responses(ctx context.Context, token string) (map[string]model.AnswerValue, error) {
	session, err := s.getByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.responseMap(ctx, session.ID)
}

// SubmitAnswer validates and stores one answer, then removes answers to any
// question the new answer made inapplicable. Returns the invalidated question
// ids. Removal runs to a fixpoint since hiding one question can hide the next.
func (s *SessionService) SubmitAnswer(ctx context.Context, token, questionID string, value model.AnswerValue) ([]string, error) {
	session, err := s.getByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	snap := s.catalog.Snapshot()
	question, ok := snap.Question(questionID)
	if !ok {
		return nil, ErrQuestionNotFound
	}
	if !question.AcceptsKind(value.Kind) {
		return nil, ErrInvalidAnswerType
	}

	responses, err := s.responseMap(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	if !s.evaluator.IsVisible(snap, question, responses) {
		return nil, ErrQuestionNotVisible
	}

	if err := s.responses.Upsert(ctx, &model.Response{
		SessionID:  session.ID,
		QuestionID: questionID,
		Value:      value,
	}); err != nil {
		return nil, err
	}
	responses[questionID] = value

	invalidated, err := s.invalidateHidden(ctx, session.ID, questionID, snap, responses)
	if err != nil {
		return nil, err
	}

	s.refreshCompletion(ctx, session, snap, responses)

	if len(invalidated) > 0 && s.broadcaster != nil {
		s.broadcaster.NotifySession(token, "answers_invalidated", map[string]interface{}{
			"invalidated": invalidated,
		})
	}
	return invalidated, nil
}

// invalidateHidden deletes stored answers whose question is no longer visible,
// looping until no further answer drops out.
func (s *SessionService) invalidateHidden(ctx context.Context, sessionID, justAnswered string, snap *catalog.Snapshot, responses map[string]model.AnswerValue) ([]string, error) {
	invalidated := []string{}
	for {
		removed := false
		for qid := range responses {
			if qid == justAnswered {
				continue
			}
			question, ok := snap.Question(qid)
			if !ok {
				// Answer to a question dropped from the catalog; leave it alone.
				continue
			}
			if s.evaluator.IsVisible(snap, question, responses) {
				continue
			}
			if err := s.responses.Delete(ctx, sessionID, qid); err != nil {
				return nil, err
			}
			delete(responses, qid)
			invalidated = append(invalidated, qid)
			removed = true
		}
		if !removed {
			break
		}
	}
	sort.Strings(invalidated)
	return invalidated, nil
}

// refreshCompletion marks the session complete once every required applicable
// question has an answer.
func (s *SessionService) refreshCompletion(ctx context.Context, session *model.Session, snap *catalog.Snapshot, responses map[string]model.AnswerValue) {
	completed := true
	for _, q := range snap.Questions() {
		if !q.Required || !s.evaluator.IsVisible(snap, q, responses) {
			continue
		}
		if _, ok := responses[q.ID]; !ok {
			completed = false
			break
		}
	}

	if completed == session.Completed {
		return
	}
	session.Completed = completed
	if err := s.sessions.Update(ctx, session); err != nil {
		log.Printf("session completion update: %v", err)
		return
	}
	if err := s.sessionCache.Set(ctx, session); err != nil {
		log.Printf("session cache set: %v", err)
	}
}

// ComputeEligibility scores every product against the current answers and
// overwrites the session's stored results. Partial sessions are allowed; the
// confidence level reflects how much was answered.
func (s *SessionService) ComputeEligibility(ctx context.Context, token string) ([]*model.EligibilityResult, error) {
	session, err := s.getByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	responses, err := s.responseMap(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	results := s.scorer.ScoreAll(s.catalog.Snapshot(), s.catalog.Profile(), responses)
	now := time.Now()
	for _, res := range results {
		res.SessionID = session.ID
		res.ComputedAt = now
	}

	if err := s.results.ReplaceForSession(ctx, session.ID, results); err != nil {
		return nil, err
	}
	if err := s.resultCache.Set(ctx, token, results); err != nil {
		log.Printf("result cache set: %v", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.NotifySession(token, "eligibility_ready", map[string]interface{}{
			"results": results,
		})
	}
	return results, nil
}

// Results returns the last computed eligibility results for the session.
func (s *SessionService) Results(ctx context.Context, token string) ([]*model.EligibilityResult, error) {
	session, err := s.getByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	cached, err := s.resultCache.Get(ctx, token)
	if err != nil {
		log.Printf("result cache get: %v", err)
	}
	if cached != nil {
		return cached, nil
	}
	return s.results.ListBySession(ctx, session.ID)
}

// Abandon marks a session abandoned. The record is kept for funnel analytics
// until expiry, but every subsequent operation on it is refused.
func (s *SessionService) Abandon(ctx context.Context, token string) error {
	session, err := s.getByToken(ctx, token)
	if err != nil {
		return err
	}
	session.Status = model.SessionAbandoned
	if err := s.sessions.Update(ctx, session); err != nil {
		return err
	}
	if err := s.sessionCache.Set(ctx, session); err != nil {
		log.Printf("session cache set: %v", err)
	}
	return nil
}

// List returns recent sessions for the back office.
func (s *SessionService) List(ctx context.Context) ([]*model.Session, error) {
	return s.sessions.List(ctx, 100)
}
