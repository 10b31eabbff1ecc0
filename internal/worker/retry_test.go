package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprintindex/notify-api/internal/model"
	"github.com/sprintindex/notify-api/pkg/logger"
	"github.com/sprintindex/notify-api/pkg/metrics"
)

type retryUpdate struct {
	id         string
	messageID  string
	retryCount int
	lastError  string
}

type fakeNotificationRepo struct {
	retryable      []*model.Notification
	listErr        error
	listCalls      [][2]int
	retrySucceeded []retryUpdate
	retryFailed    []retryUpdate
	markFailedErr  error
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *model.Notification) (string, error) {
	return "generated", nil
}

func (f *fakeNotificationRepo) Get(ctx context.Context, id string) (*model.Notification, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeNotificationRepo) MarkSent(ctx context.Context, id, messageID string) error {
	return errors.New("sweeper must not use the first-attempt transition")
}

func (f *fakeNotificationRepo) MarkFailed(ctx context.Context, id, errMsg, errCode string) error {
	return errors.New("sweeper must not use the first-attempt transition")
}

func (f *fakeNotificationRepo) MarkRetrySucceeded(ctx context.Context, id, messageID string, retryCount int) error {
	f.retrySucceeded = append(f.retrySucceeded, retryUpdate{id: id, messageID: messageID, retryCount: retryCount})
	return nil
}

func (f *fakeNotificationRepo) MarkRetryFailed(ctx context.Context, id string, retryCount int, lastError string) error {
	if f.markFailedErr != nil {
		return f.markFailedErr
	}
	f.retryFailed = append(f.retryFailed, retryUpdate{id: id, retryCount: retryCount, lastError: lastError})
	return nil
}

func (f *fakeNotificationRepo) ListRetryable(ctx context.Context, maxRetries, limit int) ([]*model.Notification, error) {
	f.listCalls = append(f.listCalls, [2]int{maxRetries, limit})
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.retryable, nil
}

type fakeSender struct {
	errByToken map[string]error
	messageID  string
	sent       []*messaging.Message
}

func (f *fakeSender) Send(ctx context.Context, msg *messaging.Message) (string, error) {
	f.sent = append(f.sent, msg)
	if err, ok := f.errByToken[msg.Token]; ok {
		return "", err
	}
	return f.messageID, nil
}

func newTestSweeper(repo *fakeNotificationRepo, sender *fakeSender) *RetrySweeper {
	return NewRetrySweeper(repo, sender, nil, RetrySweeperConfig{
		BatchSize:  10,
		Interval:   5 * time.Minute,
		MaxRetries: 3,
	}, logger.Nop(), metrics.New("test"))
}

func TestSweepQueriesWithBounds(t *testing.T) {
	repo := &fakeNotificationRepo{}
	sweeper := newTestSweeper(repo, &fakeSender{})

	require.NoError(t, sweeper.Sweep(context.Background()))

	require.Len(t, repo.listCalls, 1)
	assert.Equal(t, [2]int{3, 10}, repo.listCalls[0], "candidate query must exclude retryCount >= 3 and cap at 10")
}

func TestSweepEmptyCandidateSetIsNoop(t *testing.T) {
	repo := &fakeNotificationRepo{}
	sender := &fakeSender{messageID: "unused"}
	sweeper := newTestSweeper(repo, sender)

	require.NoError(t, sweeper.Sweep(context.Background()))

	assert.Empty(t, sender.sent)
	assert.Empty(t, repo.retrySucceeded)
	assert.Empty(t, repo.retryFailed)
}

func TestSweepSuccessFreezesCounterAtAttempt(t *testing.T) {
	repo := &fakeNotificationRepo{
		retryable: []*model.Notification{{
			ID:              "n-1",
			RecipientUserID: "u1",
			FCMToken:        "tok1",
			RetryCount:      1,
			Data:            map[string]string{"type": "comment"},
		}},
	}
	sender := &fakeSender{messageID: "msg-retry"}
	sweeper := newTestSweeper(repo, sender)

	require.NoError(t, sweeper.Sweep(context.Background()))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "tok1", sender.sent[0].Token)
	require.Len(t, repo.retrySucceeded, 1)
	assert.Equal(t, retryUpdate{id: "n-1", messageID: "msg-retry", retryCount: 2}, repo.retrySucceeded[0])
	assert.Empty(t, repo.retryFailed)
}

func TestSweepFailureAdvancesCounter(t *testing.T) {
	repo := &fakeNotificationRepo{
		retryable: []*model.Notification{{
			ID:         "n-1",
			FCMToken:   "tok1",
			RetryCount: 2,
		}},
	}
	sender := &fakeSender{errByToken: map[string]error{"tok1": errors.New("still unavailable")}}
	sweeper := newTestSweeper(repo, sender)

	require.NoError(t, sweeper.Sweep(context.Background()))

	require.Len(t, repo.retryFailed, 1)
	// Third failed attempt: counter reaches the cap and the record is
	// permanently excluded from future sweeps by the query predicate.
	assert.Equal(t, retryUpdate{id: "n-1", retryCount: 3, lastError: "still unavailable"}, repo.retryFailed[0])
	assert.Empty(t, repo.retrySucceeded)
}

func TestSweepDefaultsMissingType(t *testing.T) {
	repo := &fakeNotificationRepo{
		retryable: []*model.Notification{{ID: "n-1", FCMToken: "tok1"}},
	}
	sender := &fakeSender{messageID: "msg"}
	sweeper := newTestSweeper(repo, sender)

	require.NoError(t, sweeper.Sweep(context.Background()))

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "default", sender.sent[0].Data["type"])
	assert.Equal(t, "system", sender.sent[0].Android.Notification.ChannelID)
}

func TestSweepIsolatesPerRecordFailures(t *testing.T) {
	repo := &fakeNotificationRepo{
		retryable: []*model.Notification{
			{ID: "n-1", FCMToken: "bad-tok", RetryCount: 0},
			{ID: "n-2", FCMToken: "good-tok", RetryCount: 1},
		},
	}
	sender := &fakeSender{
		messageID:  "msg-ok",
		errByToken: map[string]error{"bad-tok": errors.New("invalid token")},
	}
	sweeper := newTestSweeper(repo, sender)

	require.NoError(t, sweeper.Sweep(context.Background()))

	require.Len(t, sender.sent, 2, "a failing record must not abort the batch")
	require.Len(t, repo.retryFailed, 1)
	assert.Equal(t, "n-1", repo.retryFailed[0].id)
	require.Len(t, repo.retrySucceeded, 1)
	assert.Equal(t, retryUpdate{id: "n-2", messageID: "msg-ok", retryCount: 2}, repo.retrySucceeded[0])
}

func TestSweepListErrorPropagates(t *testing.T) {
	repo := &fakeNotificationRepo{listErr: errors.New("query failed")}
	sweeper := newTestSweeper(repo, &fakeSender{})

	assert.Error(t, sweeper.Sweep(context.Background()))
}

func TestNewRetrySweeperValidatesConfig(t *testing.T) {
	repo := &fakeNotificationRepo{}
	assert.Panics(t, func() {
		NewRetrySweeper(repo, &fakeSender{}, nil, RetrySweeperConfig{Interval: time.Minute, MaxRetries: 3}, logger.Nop(), metrics.New("test"))
	})
	assert.Panics(t, func() {
		NewRetrySweeper(repo, &fakeSender{}, nil, RetrySweeperConfig{BatchSize: 10, MaxRetries: 3}, logger.Nop(), metrics.New("test"))
	})
}
