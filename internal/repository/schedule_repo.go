package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/scot00671234/wishwello/internal/model"
)

type ScheduleRepo interface {
	CreateOrUpdate(ctx context.Context, schedule *model.CheckinSchedule) (*model.CheckinSchedule, error)
	GetByTeam(ctx context.Context, teamID string) (*model.CheckinSchedule, error)
	ListActive(ctx context.Context) ([]*model.CheckinSchedule, error)
	MarkSent(ctx context.Context, id string, at time.Time) error
}

type scheduleRepo struct {
	collection *mongo.Collection
}

func NewScheduleRepo(db *mongo.Database) ScheduleRepo {
	return &scheduleRepo{collection: db.Collection("checkin_schedules")}
}

// CreateOrUpdate keeps at most one schedule per team
func (r *scheduleRepo) CreateOrUpdate(ctx context.Context, schedule *model.CheckinSchedule) (*model.CheckinSchedule, error) {
	existing, err := r.GetByTeam(ctx, schedule.TeamID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		schedule.ID = existing.ID
		schedule.CreatedAt = existing.CreatedAt
		schedule.LastSentAt = existing.LastSentAt
		if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": existing.ID}, schedule); err != nil {
			return nil, err
		}
		return schedule, nil
	}

	schedule.ID = uuid.NewString()
	schedule.CreatedAt = time.Now()
	if _, err := r.collection.InsertOne(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (r *scheduleRepo) GetByTeam(ctx context.Context, teamID string) (*model.CheckinSchedule, error) {
	var schedule model.CheckinSchedule
	err := r.collection.FindOne(ctx, bson.M{"teamId": teamID}).Decode(&schedule)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

func (r *scheduleRepo) ListActive(ctx context.Context) ([]*model.CheckinSchedule, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"isActive": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var schedules []*model.CheckinSchedule
	if err = cursor.All(ctx, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *scheduleRepo) MarkSent(ctx context.Context, id string, at time.Time) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"lastSentAt": at}})
	return err
}
