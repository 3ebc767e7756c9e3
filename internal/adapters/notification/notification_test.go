package notification

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/claims_app/internal/core/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPusher struct {
	key    string
	values []interface{}
	err    error
}

func (p *recordingPusher) RPush(_ context.Context, key string, values ...interface{}) *redis.IntCmd {
	p.key = key
	p.values = append(p.values, values...)
	return redis.NewIntResult(int64(len(p.values)), p.err)
}

func TestRedisNotifier_Notify(t *testing.T) {
	pusher := &recordingPusher{}
	n := NewRedisNotifier(pusher, "claims:notifications")
	n.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	require.NoError(t, n.Notify(context.Background(), "c1", domain.NotifyClaimSubmitted))

	assert.Equal(t, "claims:notifications", pusher.key)
	require.Len(t, pusher.values, 1)
	var got map[string]string
	require.NoError(t, json.Unmarshal(pusher.values[0].([]byte), &got))
	assert.Equal(t, map[string]string{
		"claimId":    "c1",
		"kind":       "CLAIM_SUBMITTED",
		"occurredAt": "2024-05-01T12:00:00Z",
	}, got)
}

func TestRedisNotifier_PushError(t *testing.T) {
	boom := errors.New("connection refused")
	n := NewRedisNotifier(&recordingPusher{err: boom}, "q")

	err := n.Notify(context.Background(), "c1", domain.NotifyClaimReturned)
	assert.ErrorIs(t, err, boom)
}

func TestLogNotifier(t *testing.T) {
	assert.NoError(t, LogNotifier{}.Notify(context.Background(), "c1", domain.NotifyClaimApproved))
}
