package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/EGASHIRAAkihide/karada/internal/models"
	"github.com/EGASHIRAAkihide/karada/internal/repository"
)

const recordTimeout = 5 * time.Second

type activityStore interface {
	Create(ctx context.Context, input repository.CreateActivityInput) (*models.Activity, error)
}

type activityFeed interface {
	Publish(activity *models.Activity)
}

// AuditSink records user-initiated actions as audit entries. Recording is
// best-effort: implementations must never block or fail the workflow that
// invoked them.
type AuditSink interface {
	Record(actorID int64, action string, target string, metadata map[string]any)
}

// ActivityLogger appends audit rows with at-most-once semantics: one insert
// attempt per call, failures logged and swallowed. Calls without a resolved
// actor are dropped before any insert.
type ActivityLogger struct {
	store activityStore
	feed  activityFeed
	wg    sync.WaitGroup
}

func NewActivityLogger(store activityStore, feed activityFeed) *ActivityLogger {
	return &ActivityLogger{store: store, feed: feed}
}

func (l *ActivityLogger) Record(actorID int64, action string, target string, metadata map[string]any) {
	if actorID <= 0 {
		return
	}

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()

		l.record(ctx, actorID, action, target, metadata)
	}()
}

func (l *ActivityLogger) record(ctx context.Context, actorID int64, action string, target string, metadata map[string]any) {
	var targetPtr *string
	if target != "" {
		targetPtr = &target
	}

	activity, err := l.store.Create(ctx, repository.CreateActivityInput{
		UserID:   actorID,
		Action:   action,
		Target:   targetPtr,
		Metadata: metadata,
	})
	if err != nil {
		log.Printf("activity log %q: %v", action, err)
		return
	}

	if l.feed != nil {
		l.feed.Publish(activity)
	}
}

// Wait blocks until all in-flight record attempts have finished. Used during
// shutdown so pending audit writes are not cut off with the process.
func (l *ActivityLogger) Wait() {
	l.wg.Wait()
}
