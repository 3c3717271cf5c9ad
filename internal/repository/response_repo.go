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

// ResponseRepo stores anonymous survey responses. Rows are append-only;
// there is no update or delete.
type ResponseRepo interface {
	Create(ctx context.Context, response *model.Response) error
	// ListByTeam returns responses in [from, to]; zero time bounds are open.
	ListByTeam(ctx context.Context, teamID string, from, to time.Time) ([]*model.Response, error)
	// ListForWeek returns responses with submittedAt in [weekStart, weekStart+7d).
	ListForWeek(ctx context.Context, teamID string, weekStart time.Time) ([]*model.Response, error)
}

type responseRepo struct {
	collection *mongo.Collection
}

func NewResponseRepo(db *mongo.Database) ResponseRepo {
	return &responseRepo{collection: db.Collection("responses")}
}

func (r *responseRepo) Create(ctx context.Context, response *model.Response) error {
	if response.ID == "" {
		response.ID = uuid.NewString()
	}
	if response.SubmittedAt.IsZero() {
		response.SubmittedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, response)
	return err
}

func (r *responseRepo) ListByTeam(ctx context.Context, teamID string, from, to time.Time) ([]*model.Response, error) {
	filter := bson.M{"teamId": teamID}
	window := bson.M{}
	if !from.IsZero() {
		window["$gte"] = from
	}
	if !to.IsZero() {
		window["$lte"] = to
	}
	if len(window) > 0 {
		filter["submittedAt"] = window
	}

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.M{"submittedAt": -1}))
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

func (r *responseRepo) ListForWeek(ctx context.Context, teamID string, weekStart time.Time) ([]*model.Response, error) {
	weekEnd := weekStart.AddDate(0, 0, 7)
	cursor, err := r.collection.Find(ctx, bson.M{
		"teamId": teamID,
		"submittedAt": bson.M{
			"$gte": weekStart,
			"$lt":  weekEnd,
		},
	})
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
