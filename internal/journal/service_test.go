package journal

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeRepo struct {
	entries []Entry
}

func (f *fakeRepo) Create(_ context.Context, e *Entry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]Entry, error) {
	out := []Entry{}
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Week > out[j].Week })
	return out, nil
}

func (f *fakeRepo) Delete(_ context.Context, userID, entryID uuid.UUID) error {
	for i, e := range f.entries {
		if e.ID == entryID && e.UserID == userID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func TestService_CreateRequiresNoteOrPhoto(t *testing.T) {
	svc := NewService(&fakeRepo{}, zaptest.NewLogger(t))
	userID := uuid.New()

	_, err := svc.Create(context.Background(), userID, CreateRequest{Week: 12, Note: "   "})
	assert.ErrorIs(t, err, ErrEmptyEntry)

	entry, err := svc.Create(context.Background(), userID, CreateRequest{Week: 12, Photo: "photos/bump-12.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "photos/bump-12.jpg", entry.Photo)

	entry, err = svc.Create(context.Background(), userID, CreateRequest{Week: 13, Note: "felt the first kick"})
	require.NoError(t, err)
	assert.Equal(t, "felt the first kick", entry.Note)
}

func TestService_CreateDefaultsWeekToOne(t *testing.T) {
	svc := NewService(&fakeRepo{}, zaptest.NewLogger(t))

	entry, err := svc.Create(context.Background(), uuid.New(), CreateRequest{Note: "hello"})
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Week)
}

func TestService_ListScopedToUser(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, zaptest.NewLogger(t))
	alice, bob := uuid.New(), uuid.New()

	_, err := svc.Create(context.Background(), alice, CreateRequest{Week: 8, Note: "a"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), bob, CreateRequest{Week: 9, Note: "b"})
	require.NoError(t, err)

	entries, err := svc.List(context.Background(), alice)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].Note)
}

func TestService_DeleteScopedToUser(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, zaptest.NewLogger(t))
	alice, bob := uuid.New(), uuid.New()

	entry, err := svc.Create(context.Background(), alice, CreateRequest{Week: 8, Note: "a"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), bob, entry.ID), ErrNotFound)
	require.NoError(t, svc.Delete(context.Background(), alice, entry.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), alice, entry.ID), ErrNotFound)
}
