package db

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ChangeEvent describes one observed change in a watched collection.
type ChangeEvent struct {
	Collection string
	DocumentID string
	Operation  string
}

// Subscription is a handle on a live stream of collection changes. Closing
// the handle releases the underlying watcher; no goroutine outlives it.
type Subscription interface {
	Changes() <-chan ChangeEvent
	Err() error
	Close() error
}

// mongoSubscription adapts a MongoDB change stream to the Subscription
// interface.
type mongoSubscription struct {
	stream     *mongo.ChangeStream
	collection string
	events     chan ChangeEvent
	cancel     context.CancelFunc

	mu  sync.Mutex
	err error
}

func newMongoSubscription(ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline) (*mongoSubscription, error) {
	stream, err := coll.Watch(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	streamCtx, cancel := context.WithCancel(context.Background())
	sub := &mongoSubscription{
		stream:     stream,
		collection: coll.Name(),
		events:     make(chan ChangeEvent, 16),
		cancel:     cancel,
	}
	go sub.run(streamCtx)
	return sub, nil
}

func (s *mongoSubscription) run(ctx context.Context) {
	defer close(s.events)
	for s.stream.Next(ctx) {
		var change struct {
			OperationType string `bson:"operationType"`
			DocumentKey   struct {
				ID interface{} `bson:"_id"`
			} `bson:"documentKey"`
		}
		if err := s.stream.Decode(&change); err != nil {
			s.setErr(err)
			return
		}

		id, _ := change.DocumentKey.ID.(string)
		select {
		case s.events <- ChangeEvent{Collection: s.collection, DocumentID: id, Operation: change.OperationType}:
		case <-ctx.Done():
			return
		}
	}
	if err := s.stream.Err(); err != nil && ctx.Err() == nil {
		s.setErr(err)
	}
}

func (s *mongoSubscription) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *mongoSubscription) Changes() <-chan ChangeEvent {
	return s.events
}

func (s *mongoSubscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *mongoSubscription) Close() error {
	s.cancel()
	return s.stream.Close(context.Background())
}

// pollSubscription emulates a change stream for SQLite by polling a count
// query and emitting a synthetic event whenever the count grows. Good enough
// for append-mostly collections like posts and messages.
type pollSubscription struct {
	collection string
	events     chan ChangeEvent
	cancel     context.CancelFunc

	mu  sync.Mutex
	err error
}

const pollInterval = 2 * time.Second

func newPollSubscription(collection string, count func(context.Context) (int, error)) *pollSubscription {
	ctx, cancel := context.WithCancel(context.Background())
	sub := &pollSubscription{
		collection: collection,
		events:     make(chan ChangeEvent, 16),
		cancel:     cancel,
	}
	go sub.run(ctx, count)
	return sub
}

func (s *pollSubscription) run(ctx context.Context, count func(context.Context) (int, error)) {
	defer close(s.events)

	last, err := count(ctx)
	if err != nil {
		s.setErr(err)
		return
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			current, err := count(ctx)
			if err != nil {
				if ctx.Err() == nil {
					s.setErr(err)
				}
				return
			}
			for i := last; i < current; i++ {
				select {
				case s.events <- ChangeEvent{Collection: s.collection, Operation: "insert"}:
				case <-ctx.Done():
					return
				}
			}
			last = current
		}
	}
}

func (s *pollSubscription) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *pollSubscription) Changes() <-chan ChangeEvent {
	return s.events
}

func (s *pollSubscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *pollSubscription) Close() error {
	s.cancel()
	return nil
}

// insertOnlyPipeline watches inserts on a collection, optionally filtered by
// a field match on the inserted document.
func insertOnlyPipeline(filter bson.D) mongo.Pipeline {
	match := bson.D{{Key: "operationType", Value: "insert"}}
	match = append(match, filter...)
	return mongo.Pipeline{bson.D{{Key: "$match", Value: match}}}
}
