package post

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprintindex/notify-api/internal/model"
	"github.com/sprintindex/notify-api/pkg/logger"
	"github.com/sprintindex/notify-api/pkg/metrics"
)

type fakePostRepo struct {
	mu         sync.Mutex
	counts     map[string]int
	adjustErr  error
	deleted    int
	deleteErr  error
	deleteNow  time.Time
	deleteRuns int
}

func (f *fakePostRepo) Create(ctx context.Context, p *model.Post) (string, error) {
	return "generated", nil
}

func (f *fakePostRepo) Get(ctx context.Context, id string) (*model.Post, error) {
	return nil, errors.New("not implemented")
}

func (f *fakePostRepo) AdjustCommentCount(ctx context.Context, postID string, delta int) error {
	if f.adjustErr != nil {
		return f.adjustErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.counts == nil {
		f.counts = make(map[string]int)
	}
	f.counts[postID] += delta
	return nil
}

func (f *fakePostRepo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	f.deleteRuns++
	f.deleteNow = now
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	return f.deleted, nil
}

func newTestService(repo *fakePostRepo) Service {
	return NewService(repo, logger.Nop(), metrics.New("test"))
}

func TestHandleCommentCreatedIncrements(t *testing.T) {
	repo := &fakePostRepo{}
	svc := newTestService(repo)

	require.NoError(t, svc.HandleCommentCreated(context.Background(), "p-1"))
	require.NoError(t, svc.HandleCommentCreated(context.Background(), "p-1"))
	require.NoError(t, svc.HandleCommentDeleted(context.Background(), "p-1"))

	assert.Equal(t, 1, repo.counts["p-1"])
}

func TestCommentCounterUnderConcurrency(t *testing.T) {
	repo := &fakePostRepo{}
	svc := newTestService(repo)

	const creates, deletes = 50, 20
	var wg sync.WaitGroup
	for i := 0; i < creates; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = svc.HandleCommentCreated(context.Background(), "p-1")
		}()
	}
	for i := 0; i < deletes; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = svc.HandleCommentDeleted(context.Background(), "p-1")
		}()
	}
	wg.Wait()

	// Final count equals creates minus deletes under atomic increments.
	assert.Equal(t, creates-deletes, repo.counts["p-1"])
}

func TestHandleCommentCreatedRequiresPostID(t *testing.T) {
	repo := &fakePostRepo{}
	svc := newTestService(repo)

	assert.Error(t, svc.HandleCommentCreated(context.Background(), ""))
	assert.Empty(t, repo.counts)
}

func TestHandleCommentCreatedPropagatesRepoError(t *testing.T) {
	repo := &fakePostRepo{adjustErr: errors.New("update failed")}
	svc := newTestService(repo)

	assert.Error(t, svc.HandleCommentCreated(context.Background(), "p-1"))
}

func TestDeleteExpiredReturnsCount(t *testing.T) {
	repo := &fakePostRepo{deleted: 3}
	svc := newTestService(repo)

	before := time.Now()
	count, err := svc.DeleteExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, 1, repo.deleteRuns)
	assert.False(t, repo.deleteNow.Before(before), "cutoff must be the sweep time")
}

func TestDeleteExpiredReportsZeroOnFailure(t *testing.T) {
	repo := &fakePostRepo{deleteErr: errors.New("batch commit failed")}
	svc := newTestService(repo)

	count, err := svc.DeleteExpired(context.Background())
	assert.Error(t, err)
	assert.Zero(t, count)
}
