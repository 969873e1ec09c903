package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "http://localhost:8080"

func newTestShortener(t *testing.T, dailyLimit int) (*Shortener, *Store) {
	t.Helper()
	store := newTestStore(t)
	return NewShortener(store, NewQuota(), testBaseURL, dailyLimit), store
}

func TestCreateRoundTrip(t *testing.T) {
	shortener, store := newTestShortener(t, 10)
	ctx := context.Background()

	link, err := shortener.Create(ctx, "tester", nil, "https://example.com/page", "")
	require.NoError(t, err)
	require.Len(t, link.ShortCode, codeLength)

	got, err := store.GetByCode(ctx, link.ShortCode)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/page", got.OriginalURL)
	assert.EqualValues(t, 0, got.ClickCount)
	assert.Nil(t, got.UserID)
	assert.True(t, strings.HasPrefix(got.QRCode(), "data:image/png;base64,"))
}

func TestCreateWithOwner(t *testing.T) {
	shortener, store := newTestShortener(t, 10)
	ctx := context.Background()
	owner := "user-42"

	link, err := shortener.Create(ctx, owner, &owner, "https://example.com", "my-page")
	require.NoError(t, err)
	assert.Equal(t, "my-page", link.ShortCode)

	got, err := store.GetByCode(ctx, "my-page")
	require.NoError(t, err)
	require.NotNil(t, got.UserID)
	assert.Equal(t, owner, *got.UserID)
}

func TestCreateInvalidURL(t *testing.T) {
	shortener, _ := newTestShortener(t, 10)
	ctx := context.Background()

	for _, raw := range []string{"not-a-url", "", "/relative/path", "example.com/no-scheme"} {
		_, err := shortener.Create(ctx, "tester", nil, raw, "")
		assert.ErrorIs(t, err, ErrInvalidURL, "url %q", raw)
	}
}

func TestCreateDuplicateCustomAlias(t *testing.T) {
	shortener, _ := newTestShortener(t, 10)
	ctx := context.Background()

	_, err := shortener.Create(ctx, "tester", nil, "https://example.com/a", "taken")
	require.NoError(t, err)

	_, err = shortener.Create(ctx, "tester", nil, "https://example.com/b", "taken")
	assert.ErrorIs(t, err, ErrAliasTaken)
}

func TestCreateDailyLimit(t *testing.T) {
	shortener, _ := newTestShortener(t, 2)
	ctx := context.Background()

	_, err := shortener.Create(ctx, "tester", nil, "https://example.com/1", "")
	require.NoError(t, err)
	_, err = shortener.Create(ctx, "tester", nil, "https://example.com/2", "")
	require.NoError(t, err)

	_, err = shortener.Create(ctx, "tester", nil, "https://example.com/3", "")
	assert.ErrorIs(t, err, ErrLimitReached)
}

func TestFailedCreateDoesNotBurnQuota(t *testing.T) {
	shortener, _ := newTestShortener(t, 1)
	ctx := context.Background()

	_, err := shortener.Create(ctx, "other", nil, "https://example.com", "taken")
	require.NoError(t, err)

	// A conflicting attempt releases its reservation...
	_, err = shortener.Create(ctx, "tester", nil, "https://example.com", "taken")
	require.ErrorIs(t, err, ErrAliasTaken)

	// ...so the identity still has its one creation left.
	_, err = shortener.Create(ctx, "tester", nil, "https://example.com", "")
	assert.NoError(t, err)
}
