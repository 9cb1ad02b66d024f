package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"profitum/internal/model"
)

type ResponseRepo interface {
	Upsert(ctx context.Context, response *model.Response) error
	ListBySession(ctx context.Context, sessionID string) ([]*model.Response, error)
	ListByClient(ctx context.Context, clientID string) ([]*model.Response, error)
	Delete(ctx context.Context, sessionID, questionID string) error
	Reassign(ctx context.Context, id, clientID string) error
}

type responseRepo struct {
	collection *mongo.Collection
}

func NewResponseRepo(db *mongo.Database) ResponseRepo {
	return &responseRepo{
		collection: db.Collection("responses"),
	}
}

// Upsert writes the answer for (session, question), overwriting a previous one.
func (r *responseRepo) Upsert(ctx context.Context, response *model.Response) error {
	if response.AnsweredAt.IsZero() {
		response.AnsweredAt = time.Now()
	}

	filter := bson.M{"sessionId": response.SessionID, "questionId": response.QuestionID}
	update := bson.M{
		"$set": bson.M{
			"value":      response.Value,
			"answeredAt": response.AnsweredAt,
		},
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID().Hex(),
			"sessionId":  response.SessionID,
			"questionId": response.QuestionID,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (r *responseRepo) ListBySession(ctx context.Context, sessionID string) ([]*model.Response, error) {
	return r.list(ctx, bson.M{"sessionId": sessionID})
}

func (r *responseRepo) ListByClient(ctx context.Context, clientID string) ([]*model.Response, error) {
	return r.list(ctx, bson.M{"clientId": clientID})
}

func (r *responseRepo) list(ctx context.Context, filter bson.M) ([]*model.Response, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var responses []*model.Response
	if err = cursor.All(ctx, &responses); err != nil {
		return nil, err
	}

	return responses, nil
}

func (r *responseRepo) Delete(ctx context.Context, sessionID, questionID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"sessionId": sessionID, "questionId": questionID})
	return err
}

// Reassign re-owns a single record under a client, clearing the session field.
func (r *responseRepo) Reassign(ctx context.Context, id, clientID string) error {
	update := bson.M{
		"$set":   bson.M{"clientId": clientID},
		"$unset": bson.M{"sessionId": ""},
	}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}
