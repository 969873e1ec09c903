package services

import (
	"context"
	"testing"
	"time"

	"github.com/aclaudios/acml-atomzr-urlshortener/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestResolveNotFound(t *testing.T) {
	store := newTestStore(t)
	clicks := make(chan models.ClickEvent, 8)
	resolver := NewResolver(store, clicks, testBaseURL)
	ctx := context.Background()

	_, err := resolver.Resolve(ctx, "missing", &models.ClickEvent{Timestamp: time.Now()})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, clicks, "no click event for an unknown code")

	var count int64
	store.db.Model(&models.Click{}).Count(&count)
	assert.EqualValues(t, 0, count, "no store mutation for an unknown code")
}

func TestResolveDispatchesClickEvent(t *testing.T) {
	store := newTestStore(t)
	clicks := make(chan models.ClickEvent, 8)
	resolver := NewResolver(store, clicks, testBaseURL)
	ctx := context.Background()

	link := &models.Link{
		ShortCode:   "my-post",
		OriginalURL: "https://example.com/post",
		CreatedAt:   time.Now(),
	}
	require.NoError(t, store.Create(ctx, link))

	got, err := resolver.Resolve(ctx, "my-post", &models.ClickEvent{
		Referer:   "https://social.example",
		UserAgent: "test-agent",
		IP:        "127.0.0.1",
		Timestamp: time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/post", got.OriginalURL)

	select {
	case event := <-clicks:
		assert.Equal(t, link.ID, event.LinkID)
		assert.Equal(t, "test-agent", event.UserAgent)
	default:
		t.Fatal("expected a click event on the channel")
	}
}

func TestResolveLazyQRBackfill(t *testing.T) {
	store := newTestStore(t)
	resolver := NewResolver(store, make(chan models.ClickEvent, 8), testBaseURL)
	ctx := context.Background()

	// A record persisted without a QR image.
	link := &models.Link{
		ShortCode:   "no-qr",
		OriginalURL: "https://example.com",
		Metadata:    datatypes.JSONMap{models.MetaCaption: "No QR"},
		CreatedAt:   time.Now(),
	}
	require.NoError(t, store.Create(ctx, link))

	got, err := resolver.Resolve(ctx, "no-qr", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, got.QRCode(), "QR backfilled on the returned record")
	assert.Equal(t, "No QR", got.Metadata[models.MetaCaption], "existing metadata preserved")

	// And persisted for the next read.
	again, err := store.GetByCode(ctx, "no-qr")
	require.NoError(t, err)
	assert.NotEmpty(t, again.QRCode())
}

func TestApplyClickIsMonotonic(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	link := &models.Link{
		ShortCode:   "counted",
		OriginalURL: "https://example.com",
		CreatedAt:   time.Now(),
	}
	require.NoError(t, store.Create(ctx, link))

	var last int64
	for i := 0; i < 5; i++ {
		require.NoError(t, store.ApplyClick(ctx, models.ClickEvent{LinkID: link.ID, Timestamp: time.Now()}))
		got, err := store.GetByCode(ctx, "counted")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got.ClickCount, last)
		last = got.ClickCount
	}
	assert.EqualValues(t, 5, last)

	clickRows, err := store.CountClicks(ctx, link.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 5, clickRows)
}

func TestTrackDropsWhenBufferFull(t *testing.T) {
	store := newTestStore(t)
	clicks := make(chan models.ClickEvent, 1)
	resolver := NewResolver(store, clicks, testBaseURL)

	resolver.track(models.ClickEvent{LinkID: "a"})
	resolver.track(models.ClickEvent{LinkID: "b"}) // buffer full, must not block

	event := <-clicks
	assert.Equal(t, "a", event.LinkID)
}
