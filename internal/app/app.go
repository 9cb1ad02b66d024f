package app

import (
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"profitum/internal/cache"
	"profitum/internal/repository"
)

// App bundles the persistence layer: every Mongo repository and Redis cache
// the services are wired with.
type App struct {
	Questions   repository.QuestionRepo
	Sessions    repository.SessionRepo
	Responses   repository.ResponseRepo
	Eligibility repository.EligibilityRepo
	Clients     repository.ClientRepo

	SessionCache cache.SessionCache
	ResultCache  cache.ResultCache
}

func New(db *mongo.Database, rdb *redis.Client, sessionTTL time.Duration) *App {
	return &App{
		Questions:    repository.NewQuestionRepo(db),
		Sessions:     repository.NewSessionRepo(db),
		Responses:    repository.NewResponseRepo(db),
		Eligibility:  repository.NewEligibilityRepo(db),
		Clients:      repository.NewClientRepo(db),
		SessionCache: cache.NewSessionCache(rdb, sessionTTL),
		ResultCache:  cache.NewResultCache(rdb),
	}
}
