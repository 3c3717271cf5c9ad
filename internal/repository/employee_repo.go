package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/scot00671234/wishwello/internal/model"
)

type EmployeeRepo interface {
	ReplaceForTeam(ctx context.Context, teamID string, employees []*model.Employee) ([]*model.Employee, error)
	ListByTeam(ctx context.Context, teamID string) ([]*model.Employee, error)
	CountActive(ctx context.Context, teamID string) (int, error)
}

type employeeRepo struct {
	collection *mongo.Collection
}

func NewEmployeeRepo(db *mongo.Database) EmployeeRepo {
	return &employeeRepo{collection: db.Collection("employees")}
}

// ReplaceForTeam swaps out the entire roster for a team
func (r *employeeRepo) ReplaceForTeam(ctx context.Context, teamID string, employees []*model.Employee) ([]*model.Employee, error) {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"teamId": teamID}); err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return []*model.Employee{}, nil
	}

	docs := make([]interface{}, 0, len(employees))
	for _, e := range employees {
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		e.TeamID = teamID
		if e.CreatedAt.IsZero() {
			e.CreatedAt = time.Now()
		}
		docs = append(docs, e)
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *employeeRepo) ListByTeam(ctx context.Context, teamID string) ([]*model.Employee, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"teamId": teamID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var employees []*model.Employee
	if err = cursor.All(ctx, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *employeeRepo) CountActive(ctx context.Context, teamID string) (int, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"teamId": teamID, "isActive": true})
	return int(n), err
}
