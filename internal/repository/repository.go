package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// repositoryImpl is the concrete implementation of Repository interface.
type repositoryImpl struct {
	db       *sqlx.DB
	message  MessageRepository
	user     UserRepository
	coach    CoachRepository
	activity ActivityRepository
	task     TaskRepository
}

// NewRepository creates a new repository instance.
func NewRepository(db *sqlx.DB) Repository {
	return &repositoryImpl{
		db:       db,
		message:  NewMessageRepository(db),
		user:     NewUserRepository(db),
		coach:    NewCoachRepository(db),
		activity: NewActivityRepository(db),
		task:     NewTaskRepository(db),
	}
}

func (r *repositoryImpl) Message() MessageRepository {
	return r.message
}

func (r *repositoryImpl) User() UserRepository {
	return r.user
}

func (r *repositoryImpl) Coach() CoachRepository {
	return r.coach
}

func (r *repositoryImpl) Activity() ActivityRepository {
	return r.activity
}

func (r *repositoryImpl) Task() TaskRepository {
	return r.task
}

// Ping checks if the database connection is healthy.
func (r *repositoryImpl) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return r.db.PingContext(ctx)
}
