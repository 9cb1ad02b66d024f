package service

import (
	"context"
	"fmt"
	"sync"

	"profitum/internal/model"
)

// In-memory doubles for the repository and cache interfaces.

type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*model.Session
	nextID   int
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[string]*model.Session)}
}

func (r *memSessionRepo) Create(ctx context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session.ID == "" {
		r.nextID++
		session.ID = fmt.Sprintf("sess-%d", r.nextID)
	}
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *memSessionRepo) GetByID(ctx context.Context, id string) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, nil
}

func (r *memSessionRepo) GetByToken(ctx context.Context, token string) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		if s.Token == token {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memSessionRepo) Update(ctx context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *memSessionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r *memSessionRepo) List(ctx context.Context, limit int64) ([]*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Session
	for _, s := range r.sessions {
		copied := *s
		out = append(out, &copied)
	}
	return out, nil
}

type memResponseRepo struct {
	mu        sync.Mutex
	responses []*model.Response
	nextID    int

	// failReassign[id] holds how many Reassign calls for that id should fail.
	failReassign map[string]int
}

func newMemResponseRepo() *memResponseRepo {
	return &memResponseRepo{failReassign: make(map[string]int)}
}

func (r *memResponseRepo) Upsert(ctx context.Context, response *model.Response) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.responses {
		if existing.SessionID == response.SessionID && existing.QuestionID == response.QuestionID {
			existing.Value = response.Value
			return nil
		}
	}
	r.nextID++
	copied := *response
	copied.ID = fmt.Sprintf("resp-%d", r.nextID)
	r.responses = append(r.responses, &copied)
	return nil
}

func (r *memResponseRepo) ListBySession(ctx context.Context, sessionID string) ([]*model.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Response
	for _, resp := range r.responses {
		if resp.SessionID == sessionID {
			copied := *resp
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memResponseRepo) ListByClient(ctx context.Context, clientID string) ([]*model.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Response
	for _, resp := range r.responses {
		if resp.ClientID == clientID {
			copied := *resp
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memResponseRepo) Delete(ctx context.Context, sessionID, questionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, resp := range r.responses {
		if resp.SessionID == sessionID && resp.QuestionID == questionID {
			r.responses = append(r.responses[:i], r.responses[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memResponseRepo) Reassign(ctx context.Context, id, clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n := r.failReassign[id]; n > 0 {
		r.failReassign[id] = n - 1
		return fmt.Errorf("injected failure for %s", id)
	}
	for _, resp := range r.responses {
		if resp.ID == id {
			resp.ClientID = clientID
			resp.SessionID = ""
			return nil
		}
	}
	return fmt.Errorf("response %s not found", id)
}

type memEligibilityRepo struct {
	mu      sync.Mutex
	results []*model.EligibilityResult
	nextID  int

	failReassign map[string]int
}

func newMemEligibilityRepo() *memEligibilityRepo {
	return &memEligibilityRepo{failReassign: make(map[string]int)}
}

func (r *memEligibilityRepo) ReplaceForSession(ctx context.Context, sessionID string, results []*model.EligibilityResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.results[:0]
	for _, res := range r.results {
		if res.SessionID != sessionID {
			kept = append(kept, res)
		}
	}
	r.results = kept
	for _, res := range results {
		r.nextID++
		copied := *res
		copied.ID = fmt.Sprintf("elig-%d", r.nextID)
		copied.SessionID = sessionID
		res.ID = copied.ID
		r.results = append(r.results, &copied)
	}
	return nil
}

func (r *memEligibilityRepo) ListBySession(ctx context.Context, sessionID string) ([]*model.EligibilityResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.EligibilityResult
	for _, res := range r.results {
		if res.SessionID == sessionID {
			copied := *res
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memEligibilityRepo) ListByClient(ctx context.Context, clientID string) ([]*model.EligibilityResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.EligibilityResult
	for _, res := range r.results {
		if res.ClientID == clientID {
			copied := *res
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memEligibilityRepo) Reassign(ctx context.Context, id, clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n := r.failReassign[id]; n > 0 {
		r.failReassign[id] = n - 1
		return fmt.Errorf("injected failure for %s", id)
	}
	for _, res := range r.results {
		if res.ID == id {
			res.ClientID = clientID
			res.SessionID = ""
			return nil
		}
	}
	return fmt.Errorf("result %s not found", id)
}

type memClientRepo struct {
	mu      sync.Mutex
	clients map[string]*model.Client
}

func newMemClientRepo() *memClientRepo {
	return &memClientRepo{clients: make(map[string]*model.Client)}
}

func (r *memClientRepo) Create(ctx context.Context, client *model.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *client
	r.clients[client.ID] = &copied
	return nil
}

func (r *memClientRepo) GetByID(ctx context.Context, id string) (*model.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.clients[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, nil
}

func (r *memClientRepo) GetByEmail(ctx context.Context, email string) (*model.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		if c.Email == email {
			copied := *c
			return &copied, nil
		}
	}
	return nil, nil
}

type memSessionCache struct {
	mu       sync.Mutex
	sessions map[string]*model.Session
}

func newMemSessionCache() *memSessionCache {
	return &memSessionCache{sessions: make(map[string]*model.Session)}
}

func (c *memSessionCache) Set(ctx context.Context, session *model.Session) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := *session
	c.sessions[session.Token] = &copied
	return nil
}

func (c *memSessionCache) Get(ctx context.Context, token string) (*model.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.sessions[token]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, nil
}

func (c *memSessionCache) Delete(ctx context.Context, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, token)
	return nil
}

type memResultCache struct {
	mu      sync.Mutex
	results map[string][]*model.EligibilityResult
}

func newMemResultCache() *memResultCache {
	return &memResultCache{results: make(map[string][]*model.EligibilityResult)}
}

func (c *memResultCache) Set(ctx context.Context, token string, results []*model.EligibilityResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[token] = results
	return nil
}

func (c *memResultCache) Get(ctx context.Context, token string) ([]*model.EligibilityResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.results[token], nil
}

func (c *memResultCache) Delete(ctx context.Context, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.results, token)
	return nil
}

type memQuestionSource struct {
	questions []model.Question
}

func (s *memQuestionSource) List(ctx context.Context) ([]model.Question, error) {
	return s.questions, nil
}
