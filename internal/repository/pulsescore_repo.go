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

// PulseScoreRepo stores the weekly pulse time series. One row per
// (teamId, weekStarting); history is never mutated.
type PulseScoreRepo interface {
	Create(ctx context.Context, score *model.PulseScore) (*model.PulseScore, error)
	ListByTeam(ctx context.Context, teamID string, limit int) ([]*model.PulseScore, error)
	EnsureIndexes(ctx context.Context) error
}

type pulseScoreRepo struct {
	collection *mongo.Collection
}

func NewPulseScoreRepo(db *mongo.Database) PulseScoreRepo {
	return &pulseScoreRepo{collection: db.Collection("pulse_scores")}
}

// EnsureIndexes creates the uniqueness constraint that makes a concurrently
// double-triggered weekly job insert at most one row per team and week.
func (r *pulseScoreRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "teamId", Value: 1}, {Key: "weekStarting", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *pulseScoreRepo) Create(ctx context.Context, score *model.PulseScore) (*model.PulseScore, error) {
	if score.ID == "" {
		score.ID = uuid.NewString()
	}
	score.CreatedAt = time.Now()

	// Upsert keyed on (teamId, weekStarting): a duplicate trigger for the
	// same week leaves the existing row untouched.
	filter := bson.M{"teamId": score.TeamID, "weekStarting": score.WeekStarting}
	update := bson.M{"$setOnInsert": score}
	if _, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return nil, err
	}

	var created model.PulseScore
	if err := r.collection.FindOne(ctx, filter).Decode(&created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *pulseScoreRepo) ListByTeam(ctx context.Context, teamID string, limit int) ([]*model.PulseScore, error) {
	opts := options.Find().SetSort(bson.M{"weekStarting": -1})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := r.collection.Find(ctx, bson.M{"teamId": teamID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var scores []*model.PulseScore
	if err = cursor.All(ctx, &scores); err != nil {
		return nil, err
	}
	return scores, nil
}
