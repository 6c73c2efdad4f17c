package conversation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bontle/BB-BookingService/internal/domain"
	chatstateRepo "github.com/bontle/BB-BookingService/internal/infra/storage/chatstate"
)

type fakeStateRepo struct {
	state   *domain.ConversationState
	saved   *domain.ConversationState
	deleted []string
	swept   int64
}

func (f *fakeStateRepo) Get(_ context.Context, _ string, _ time.Time) (*domain.ConversationState, error) {
	if f.state == nil {
		return nil, chatstateRepo.ErrStateNotFound
	}
	return f.state, nil
}

func (f *fakeStateRepo) Upsert(_ context.Context, state *domain.ConversationState) error {
	f.saved = state
	return nil
}

func (f *fakeStateRepo) Delete(_ context.Context, chatID string) error {
	f.deleted = append(f.deleted, chatID)
	return nil
}

func (f *fakeStateRepo) DeleteExpired(_ context.Context, _ time.Time) (int64, error) {
	return f.swept, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestSave_ExtendsExpiry(t *testing.T) {
	repo := &fakeStateRepo{}
	svc := NewService(repo, 15*time.Minute, noopLogger{})

	err := svc.Save(context.Background(), "chat-1", "choose_service", `{"store_id":1}`)
	require.NoError(t, err)

	require.NotNil(t, repo.saved)
	assert.Equal(t, "choose_service", repo.saved.Step)
	assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), repo.saved.ExpiresAt, time.Minute)
}

func TestGet_MissingState(t *testing.T) {
	svc := NewService(&fakeStateRepo{}, 0, noopLogger{})

	_, err := svc.Get(context.Background(), "chat-404")
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestGet_ReturnsState(t *testing.T) {
	repo := &fakeStateRepo{state: &domain.ConversationState{ChatID: "chat-1", Step: "choose_slot"}}
	svc := NewService(repo, 0, noopLogger{})

	state, err := svc.Get(context.Background(), "chat-1")
	require.NoError(t, err)
	assert.Equal(t, "choose_slot", state.Step)
}

func TestClear(t *testing.T) {
	repo := &fakeStateRepo{}
	svc := NewService(repo, 0, noopLogger{})

	require.NoError(t, svc.Clear(context.Background(), "chat-1"))
	assert.Equal(t, []string{"chat-1"}, repo.deleted)
}

func TestSweepExpired(t *testing.T) {
	repo := &fakeStateRepo{swept: 3}
	svc := NewService(repo, 0, noopLogger{})

	deleted, err := svc.SweepExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
}

func TestValidation(t *testing.T) {
	svc := NewService(&fakeStateRepo{}, 0, noopLogger{})

	_, err := svc.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.ErrorIs(t, svc.Save(context.Background(), "", "step", ""), ErrInvalidInput)
	assert.ErrorIs(t, svc.Save(context.Background(), "chat-1", "", ""), ErrInvalidInput)
	assert.ErrorIs(t, svc.Clear(context.Background(), ""), ErrInvalidInput)
}
