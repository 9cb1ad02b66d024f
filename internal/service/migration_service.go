package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"profitum/internal/cache"
	"profitum/internal/model"
	"profitum/internal/repository"
)

// migrationRetries bounds how many extra passes are attempted over records
// that failed to reassign before reporting a partial migration.
const migrationRetries = 3

// MigrationService re-owns a temporary session's responses and eligibility
// results under a permanent client account. The underlying store has no
// multi-record transactions, so each record is reassigned individually and the
// session is only deleted once every child record confirms the new owner.
type MigrationService struct {
	sessions  repository.SessionRepo
	responses repository.ResponseRepo
	results   repository.EligibilityRepo
	clients   repository.ClientRepo

	sessionCache cache.SessionCache
	resultCache  cache.ResultCache
	authSvc      *AuthService
	broadcaster  Broadcaster
}

func NewMigrationService(
	sessions repository.SessionRepo,
	responses repository.ResponseRepo,
	results repository.EligibilityRepo,
	clients repository.ClientRepo,
	sessionCache cache.SessionCache,
	resultCache cache.ResultCache,
	authSvc *AuthService,
) *MigrationService {
	return &MigrationService{
		sessions:     sessions,
		responses:    responses,
		results:      results,
		clients:      clients,
		sessionCache: sessionCache,
		resultCache:  resultCache,
		authSvc:      authSvc,
	}
}

// SetBroadcaster injects the websocket hub
func (s *MigrationService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// RegisterAndMigrate creates the permanent account from the registration data
// and then migrates the session onto it. On partial failure the created client
// and the error are both returned; the session survives for reconciliation.
func (s *MigrationService) RegisterAndMigrate(ctx context.Context, token string, reg *model.ClientRegistration) (*model.Client, *model.MigrationResult, error) {
	session, err := s.loadSession(ctx, func(ctx context.Context) (*model.Session, error) {
		return s.sessions.GetByToken(ctx, token)
	})
	if err != nil {
		return nil, nil, err
	}

	existing, err := s.clients.GetByEmail(ctx, reg.Email)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, ErrEmailAlreadyUsed
	}

	hash, err := s.authSvc.HashPassword(reg.Password)
	if err != nil {
		return nil, nil, err
	}

	client := &model.Client{
		ID:           uuid.New().String(),
		Email:        reg.Email,
		PasswordHash: hash,
		CompanyName:  reg.CompanyName,
		PhoneNumber:  reg.PhoneNumber,
		Address:      reg.Address,
		City:         reg.City,
		PostalCode:   reg.PostalCode,
		SIREN:        reg.SIREN,
		MigratedFrom: token,
		CreatedAt:    time.Now(),
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return nil, nil, err
	}

	result, err := s.migrate(ctx, session, client.ID)
	if err != nil {
		return client, result, err
	}

	if s.broadcaster != nil {
		s.broadcaster.NotifySession(token, "session_migrated", map[string]interface{}{
			"clientId": client.ID,
		})
	}
	return client, result, nil
}

// Migrate re-owns the session's records under an existing client.
func (s *MigrationService) Migrate(ctx context.Context, sessionID, clientID string) (*model.MigrationResult, error) {
	session, err := s.loadSession(ctx, func(ctx context.Context) (*model.Session, error) {
		return s.sessions.GetByID(ctx, sessionID)
	})
	if err != nil {
		return nil, err
	}
	return s.migrate(ctx, session, clientID)
}

func (s *MigrationService) loadSession(ctx context.Context, get func(context.Context) (*model.Session, error)) (*model.Session, error) {
	session, err := get(ctx)
	if err != nil {
		return nil, err
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

func (s *MigrationService) migrate(ctx context.Context, session *model.Session, clientID string) (*model.MigrationResult, error) {
	responses, err := s.responses.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	results, err := s.results.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	pendingResponses := make([]string, 0, len(responses))
	for _, r := range responses {
		pendingResponses = append(pendingResponses, r.ID)
	}
	pendingResults := make([]string, 0, len(results))
	for _, r := range results {
		pendingResults = append(pendingResults, r.ID)
	}

	for attempt := 0; attempt <= migrationRetries; attempt++ {
		if len(pendingResponses)+len(pendingResults) == 0 {
			break
		}
		if attempt > 0 {
			log.Printf("migration: session %s retry %d, %d records pending",
				session.ID, attempt, len(pendingResponses)+len(pendingResults))
		}
		pendingResponses = reassignAll(ctx, pendingResponses, clientID, s.responses.Reassign)
		pendingResults = reassignAll(ctx, pendingResults, clientID, s.results.Reassign)
	}

	result := &model.MigrationResult{
		ClientID:          clientID,
		MigratedResponses: len(responses) - len(pendingResponses),
		MigratedResults:   len(results) - len(pendingResults),
	}

	if len(pendingResponses)+len(pendingResults) > 0 {
		unmigrated := append(append([]string{}, pendingResponses...), pendingResults...)
		return result, &PartialMigrationError{SessionID: session.ID, UnmigratedIDs: unmigrated}
	}

	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		return result, err
	}
	if err := s.sessionCache.Delete(ctx, session.Token); err != nil {
		log.Printf("session cache delete: %v", err)
	}
	if err := s.resultCache.Delete(ctx, session.Token); err != nil {
		log.Printf("result cache delete: %v", err)
	}

	log.Printf("migration: session %s -> client %s (%d responses, %d results)",
		session.ID, clientID, result.MigratedResponses, result.MigratedResults)
	return result, nil
}

func reassignAll(ctx context.Context, ids []string, clientID string, reassign func(context.Context, string, string) error) []string {
	var failed []string
	for _, id := range ids {
		if err := reassign(ctx, id, clientID); err != nil {
			log.Printf("migration: reassign %s failed: %v", id, err)
			failed = append(failed, id)
		}
	}
	return failed
}
