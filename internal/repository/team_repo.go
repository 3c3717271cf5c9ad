package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/scot00671234/wishwello/internal/model"
)

type TeamRepo interface {
	Create(ctx context.Context, team *model.Team) error
	GetByID(ctx context.Context, id string) (*model.Team, error)
	ListByManager(ctx context.Context, managerID string) ([]*model.Team, error)
	ListAll(ctx context.Context) ([]*model.Team, error)
	Update(ctx context.Context, team *model.Team) error
	Delete(ctx context.Context, id string) error
}

type teamRepo struct {
	collection *mongo.Collection
}

func NewTeamRepo(db *mongo.Database) TeamRepo {
	return &teamRepo{collection: db.Collection("teams")}
}

func (r *teamRepo) Create(ctx context.Context, team *model.Team) error {
	if team.ID == "" {
		team.ID = uuid.NewString()
	}
	now := time.Now()
	team.CreatedAt = now
	team.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, team)
	return err
}

func (r *teamRepo) GetByID(ctx context.Context, id string) (*model.Team, error) {
	var team model.Team
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&team)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &team, nil
}

func (r *teamRepo) ListByManager(ctx context.Context, managerID string) ([]*model.Team, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"managerId": managerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var teams []*model.Team
	if err = cursor.All(ctx, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *teamRepo) ListAll(ctx context.Context) ([]*model.Team, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"createdAt": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var teams []*model.Team
	if err = cursor.All(ctx, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *teamRepo) Update(ctx context.Context, team *model.Team) error {
	team.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": team.ID}, team)
	return err
}

func (r *teamRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
