package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"profitum/internal/model"
)

type EligibilityRepo interface {
	ReplaceForSession(ctx context.Context, sessionID string, results []*model.EligibilityResult) error
	ListBySession(ctx context.Context, sessionID string) ([]*model.EligibilityResult, error)
	ListByClient(ctx context.Context, clientID string) ([]*model.EligibilityResult, error)
	Reassign(ctx context.Context, id, clientID string) error
}

type eligibilityRepo struct {
	collection *mongo.Collection
}

func NewEligibilityRepo(db *mongo.Database) EligibilityRepo {
	return &eligibilityRepo{
		collection: db.Collection("eligibility"),
	}
}

// ReplaceForSession overwrites the session's results wholesale; scoring is
// recomputed from scratch whenever responses change.
func (r *eligibilityRepo) ReplaceForSession(ctx context.Context, sessionID string, results []*model.EligibilityResult) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"sessionId": sessionID}); err != nil {
		return err
	}
	if len(results) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(results))
	for _, res := range results {
		if res.ID == "" {
			res.ID = primitive.NewObjectID().Hex()
		}
		res.SessionID = sessionID
		docs = append(docs, res)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

func (r *eligibilityRepo) ListBySession(ctx context.Context, sessionID string) ([]*model.EligibilityResult, error) {
	return r.list(ctx, bson.M{"sessionId": sessionID})
}

func (r *eligibilityRepo) ListByClient(ctx context.Context, clientID string) ([]*model.EligibilityResult, error) {
	return r.list(ctx, bson.M{"clientId": clientID})
}

func (r *eligibilityRepo) list(ctx context.Context, filter bson.M) ([]*model.EligibilityResult, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*model.EligibilityResult
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	return results, nil
}

// Reassign re-owns a single result under a client, clearing the session field.
func (r *eligibilityRepo) Reassign(ctx context.Context, id, clientID string) error {
	update := bson.M{
		"$set":   bson.M{"clientId": clientID},
		"$unset": bson.M{"sessionId": ""},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}
