package db

import (
	"context"
	"log"

	"github.com/aayushkhanna09/rahi-app/models"
)

// Operation represents a database operation that needs to be executed
type Operation struct {
	Execute func() error
	Result  chan error
}

// OperationWithResult represents a database operation that returns a result
type OperationWithResult struct {
	Execute func() (interface{}, error)
	Result  chan OperationResult
}

// OperationResult contains the result of an operation
type OperationResult struct {
	Data  interface{}
	Error error
}

// DBManager serializes write access to the database. SQLite allows a single
// writer at a time; funnelling mutations through one worker avoids lock
// contention without changing the repositories' merge semantics.
type DBManager struct {
	opQueue       chan Operation
	resultOpQueue chan OperationWithResult
	stopping      chan struct{}
}

// NewDBManager creates a new database manager
func NewDBManager() *DBManager {
	m := &DBManager{
		opQueue:       make(chan Operation, 100),
		resultOpQueue: make(chan OperationWithResult, 100),
		stopping:      make(chan struct{}),
	}

	// Start the worker goroutine
	go m.worker()
	log.Println("Database access manager started")

	return m
}

// worker processes operations one at a time
func (m *DBManager) worker() {
	for {
		select {
		case op := <-m.opQueue:
			err := op.Execute()
			op.Result <- err
		case op := <-m.resultOpQueue:
			data, err := op.Execute()
			op.Result <- OperationResult{Data: data, Error: err}
		case <-m.stopping:
			return
		}
	}
}

// ExecuteOperation executes a database operation on the worker
func (m *DBManager) ExecuteOperation(execute func() error) error {
	resultChan := make(chan error, 1)
	m.opQueue <- Operation{
		Execute: execute,
		Result:  resultChan,
	}
	return <-resultChan
}

// ExecuteOperationWithResult executes a database operation that returns a result
func (m *DBManager) ExecuteOperationWithResult(execute func() (interface{}, error)) (interface{}, error) {
	resultChan := make(chan OperationResult, 1)
	m.resultOpQueue <- OperationWithResult{
		Execute: execute,
		Result:  resultChan,
	}
	result := <-resultChan
	return result.Data, result.Error
}

// Stop stops the database manager
func (m *DBManager) Stop() {
	close(m.stopping)
}

// Methods for specific repository operations

// AddVisitedRegion serializes the region union merge
func (m *DBManager) AddVisitedRegion(repo TravelStateRepository, ctx context.Context, userID, region string) error {
	return m.ExecuteOperation(func() error {
		return repo.AddVisitedRegion(ctx, userID, region)
	})
}

// AddBadges serializes the badge union merge
func (m *DBManager) AddBadges(repo TravelStateRepository, ctx context.Context, userID string, badges []string) error {
	return m.ExecuteOperation(func() error {
		return repo.AddBadges(ctx, userID, badges)
	})
}

// CreatePost serializes post creation
func (m *DBManager) CreatePost(repo PostRepository, ctx context.Context, post *models.CheckInPost) (*models.CheckInPost, error) {
	result, err := m.ExecuteOperationWithResult(func() (interface{}, error) {
		return repo.Create(ctx, post)
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.CheckInPost), nil
}

// CreateUser serializes user creation
func (m *DBManager) CreateUser(repo UserRepository, ctx context.Context, user *models.User) error {
	return m.ExecuteOperation(func() error {
		return repo.Create(ctx, user)
	})
}
