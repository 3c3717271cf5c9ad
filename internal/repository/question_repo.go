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

type QuestionRepo interface {
	// ReplaceForTeam swaps the whole catalog: delete-all-then-insert.
	// Historical responses referencing the old question ids become orphaned
	// by design and drop out of catalog-joined analytics.
	ReplaceForTeam(ctx context.Context, teamID string, questions []*model.Question) ([]*model.Question, error)
	ListByTeam(ctx context.Context, teamID string) ([]*model.Question, error)
}

type questionRepo struct {
	collection *mongo.Collection
}

func NewQuestionRepo(db *mongo.Database) QuestionRepo {
	return &questionRepo{collection: db.Collection("questions")}
}

func (r *questionRepo) ReplaceForTeam(ctx context.Context, teamID string, questions []*model.Question) ([]*model.Question, error) {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"teamId": teamID}); err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return []*model.Question{}, nil
	}

	docs := make([]interface{}, 0, len(questions))
	for i, q := range questions {
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		q.TeamID = teamID
		q.Order = i
		if q.CreatedAt.IsZero() {
			q.CreatedAt = time.Now()
		}
		docs = append(docs, q)
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepo) ListByTeam(ctx context.Context, teamID string) ([]*model.Question, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"teamId": teamID}, options.Find().SetSort(bson.M{"order": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var questions []*model.Question
	if err = cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}
