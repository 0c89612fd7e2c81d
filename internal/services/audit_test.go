package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/EGASHIRAAkihide/karada/internal/models"
	"github.com/EGASHIRAAkihide/karada/internal/repository"
)

type stubActivityStore struct {
	mu        sync.Mutex
	createErr error
	inputs    []repository.CreateActivityInput
}

func (s *stubActivityStore) Create(_ context.Context, input repository.CreateActivityInput) (*models.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.inputs = append(s.inputs, input)
	return &models.Activity{
		ID:       int64(len(s.inputs)),
		UserID:   input.UserID,
		Action:   input.Action,
		Target:   input.Target,
		Metadata: input.Metadata,
	}, nil
}

func (s *stubActivityStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inputs)
}

type stubFeed struct {
	mu        sync.Mutex
	published []*models.Activity
}

func (s *stubFeed) Publish(activity *models.Activity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.published = append(s.published, activity)
}

func (s *stubFeed) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.published)
}

func TestRecordWithoutActorInsertsNothing(t *testing.T) {
	store := &stubActivityStore{}
	logger := NewActivityLogger(store, nil)

	logger.Record(0, "ログイン", "", nil)
	logger.Record(-1, "ログイン", "", nil)
	logger.Wait()

	if store.count() != 0 {
		t.Fatalf("expected zero inserts, got %d", store.count())
	}
}

func TestRecordInsertsOnceAndPublishes(t *testing.T) {
	store := &stubActivityStore{}
	feed := &stubFeed{}
	logger := NewActivityLogger(store, feed)

	logger.Record(42, "クライアント追加", "clients", map[string]any{"client_id": int64(7)})
	logger.Wait()

	if store.count() != 1 {
		t.Fatalf("expected one insert, got %d", store.count())
	}
	input := store.inputs[0]
	if input.UserID != 42 || input.Action != "クライアント追加" {
		t.Fatalf("unexpected input: %+v", input)
	}
	if input.Target == nil || *input.Target != "clients" {
		t.Fatalf("unexpected target: %v", input.Target)
	}
	if feed.count() != 1 {
		t.Fatalf("expected one published entry, got %d", feed.count())
	}
}

func TestRecordEmptyTargetStoredAsNull(t *testing.T) {
	store := &stubActivityStore{}
	logger := NewActivityLogger(store, nil)

	logger.Record(42, "ログイン", "", nil)
	logger.Wait()

	if store.count() != 1 {
		t.Fatalf("expected one insert, got %d", store.count())
	}
	if store.inputs[0].Target != nil {
		t.Fatalf("expected nil target, got %v", *store.inputs[0].Target)
	}
}

func TestRecordSwallowsStoreFailure(t *testing.T) {
	store := &stubActivityStore{createErr: errors.New("connection refused")}
	feed := &stubFeed{}
	logger := NewActivityLogger(store, feed)

	logger.Record(42, "ログイン", "", nil)
	logger.Wait()

	if feed.count() != 0 {
		t.Fatalf("expected nothing published on failure, got %d", feed.count())
	}
}
