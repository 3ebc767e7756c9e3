package jobs

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockReminder struct {
	mock.Mock
}

func (m *mockReminder) SendReminders(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewReminderScheduler_InvalidSchedule(t *testing.T) {
	_, err := NewReminderScheduler("every tuesday", new(mockReminder), discardLogger())
	assert.Error(t, err)
}

func TestRunOnce(t *testing.T) {
	reminder := new(mockReminder)
	reminder.On("SendReminders", mock.Anything).Return(3, nil).Once()
	reminder.On("SendReminders", mock.Anything).Return(1, assert.AnError).Once()

	s, err := NewReminderScheduler("0 8 * * 1-5", reminder, discardLogger())
	require.NoError(t, err)

	assert.Equal(t, 3, s.RunOnce(context.Background()))
	assert.Equal(t, 1, s.RunOnce(context.Background()))
	reminder.AssertExpectations(t)
}

func TestStartStop(t *testing.T) {
	s, err := NewReminderScheduler("@every 1h", new(mockReminder), discardLogger())
	require.NoError(t, err)

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
