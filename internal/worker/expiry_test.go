package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprintindex/notify-api/pkg/logger"
	"github.com/sprintindex/notify-api/pkg/metrics"
)

type fakePostService struct {
	deleted   int
	deleteErr error
	sweeps    int
}

func (f *fakePostService) HandleCommentCreated(ctx context.Context, postID string) error {
	return errors.New("not implemented")
}

func (f *fakePostService) HandleCommentDeleted(ctx context.Context, postID string) error {
	return errors.New("not implemented")
}

func (f *fakePostService) DeleteExpired(ctx context.Context) (int, error) {
	f.sweeps++
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	return f.deleted, nil
}

func TestExpirySweepReturnsDeletedCount(t *testing.T) {
	posts := &fakePostService{deleted: 3}
	sweeper := NewExpirySweeper(posts, time.Hour, logger.Nop(), metrics.New("test"))

	count, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, 1, posts.sweeps)
}

func TestExpirySweepReportsZeroOnFailure(t *testing.T) {
	posts := &fakePostService{deleteErr: errors.New("batch commit failed")}
	sweeper := NewExpirySweeper(posts, time.Hour, logger.Nop(), metrics.New("test"))

	count, err := sweeper.Sweep(context.Background())
	assert.Error(t, err)
	assert.Zero(t, count)
}

func TestNewExpirySweeperValidatesInterval(t *testing.T) {
	assert.Panics(t, func() {
		NewExpirySweeper(&fakePostService{}, 0, logger.Nop(), metrics.New("test"))
	})
}
