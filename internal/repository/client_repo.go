package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"profitum/internal/model"
)

type ClientRepo interface {
	Create(ctx context.Context, client *model.Client) error
	GetByID(ctx context.Context, id string) (*model.Client, error)
	GetByEmail(ctx context.Context, email string) (*model.Client, error)
}

type clientRepo struct {
	collection *mongo.Collection
}

func NewClientRepo(db *mongo.Database) ClientRepo {
	return &clientRepo{
		collection: db.Collection("clients"),
	}
}

func (r *clientRepo) Create(ctx context.Context, client *model.Client) error {
	if client.CreatedAt.IsZero() {
		client.CreatedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, client)
	return err
}

func (r *clientRepo) GetByID(ctx context.Context, id string) (*model.Client, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *clientRepo) GetByEmail(ctx context.Context, email string) (*model.Client, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *clientRepo) findOne(ctx context.Context, filter bson.M) (*model.Client, error) {
	var client model.Client
	err := r.collection.FindOne(ctx, filter).Decode(&client)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}
