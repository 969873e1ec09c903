package services

import (
	"context"
	"testing"
	"time"

	"github.com/aclaudios/acml-atomzr-urlshortener/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateCustomAlias(t *testing.T) {
	store := newTestStore(t)
	allocator := NewAllocator(store)
	ctx := context.Background()

	code, err := allocator.Allocate(ctx, "  my custom   alias ")
	require.NoError(t, err)
	assert.Equal(t, "my-custom-alias", code)
}

func TestAllocateCustomAliasTaken(t *testing.T) {
	store := newTestStore(t)
	allocator := NewAllocator(store)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &models.Link{
		ShortCode:   "my-post",
		OriginalURL: "https://example.com",
		CreatedAt:   time.Now(),
	}))

	_, err := allocator.Allocate(ctx, "my-post")
	assert.ErrorIs(t, err, ErrAliasTaken)
}

func TestAllocateInvalidAlias(t *testing.T) {
	store := newTestStore(t)
	allocator := NewAllocator(store)
	ctx := context.Background()

	for _, alias := range []string{"a", "bad!alias", "héllo"} {
		_, err := allocator.Allocate(ctx, alias)
		assert.ErrorIs(t, err, ErrInvalidAlias, "alias %q", alias)
	}
}

func TestAllocateRandomCode(t *testing.T) {
	store := newTestStore(t)
	allocator := NewAllocator(store)
	ctx := context.Background()

	code, err := allocator.Allocate(ctx, "")
	require.NoError(t, err)
	assert.Len(t, code, codeLength)
	for _, r := range code {
		assert.Contains(t, codeCharset, string(r))
	}
}

func TestAllocateNeverReturnsExistingCode(t *testing.T) {
	store := newTestStore(t)
	allocator := NewAllocator(store)
	ctx := context.Background()

	taken := "abc123"
	require.NoError(t, store.Create(ctx, &models.Link{
		ShortCode:   taken,
		OriginalURL: "https://example.com",
		CreatedAt:   time.Now(),
	}))

	// Collide on the first attempt, then yield a fresh code.
	attempts := 0
	allocator.generate = func() (string, error) {
		attempts++
		if attempts == 1 {
			return taken, nil
		}
		return "zzz999", nil
	}

	code, err := allocator.Allocate(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "zzz999", code)
	assert.Equal(t, 2, attempts)
}

func TestAllocateExhaustedAfterFiveAttempts(t *testing.T) {
	store := newTestStore(t)
	allocator := NewAllocator(store)
	ctx := context.Background()

	taken := "stuck1"
	require.NoError(t, store.Create(ctx, &models.Link{
		ShortCode:   taken,
		OriginalURL: "https://example.com",
		CreatedAt:   time.Now(),
	}))

	attempts := 0
	allocator.generate = func() (string, error) {
		attempts++
		return taken, nil
	}

	_, err := allocator.Allocate(ctx, "")
	assert.ErrorIs(t, err, ErrAllocationExhausted)
	assert.Equal(t, maxAttempts, attempts)
}
