package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/scot00671234/wishwello/internal/model"
)

type ManagerRepo interface {
	Create(ctx context.Context, manager *model.Manager) error
	GetByID(ctx context.Context, id string) (*model.Manager, error)
	GetByEmail(ctx context.Context, email string) (*model.Manager, error)
}

type managerRepo struct {
	collection *mongo.Collection
}

func NewManagerRepo(db *mongo.Database) ManagerRepo {
	return &managerRepo{collection: db.Collection("managers")}
}

func (r *managerRepo) Create(ctx context.Context, manager *model.Manager) error {
	if manager.ID == "" {
		manager.ID = uuid.NewString()
	}
	manager.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, manager)
	return err
}

func (r *managerRepo) GetByID(ctx context.Context, id string) (*model.Manager, error) {
	var manager model.Manager
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&manager)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &manager, nil
}

func (r *managerRepo) GetByEmail(ctx context.Context, email string) (*model.Manager, error) {
	var manager model.Manager
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&manager)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &manager, nil
}
