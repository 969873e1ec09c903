package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/aclaudios/acml-atomzr-urlshortener/pkg/logger"
	"github.com/aclaudios/acml-atomzr-urlshortener/pkg/utils"
)

// Random codes are lowercase base-36, 6 characters.
const (
	codeCharset = "abcdefghijklmnopqrstuvwxyz0123456789"
	codeLength  = 6
	maxAttempts = 5
)

// Allocator produces a unique short code, either by validating a requested
// custom alias or by generating a random one. It only reads from the store;
// persistence (and the authoritative uniqueness check) happens at create.
type Allocator struct {
	store *Store

	// overridable for tests
	generate func() (string, error)
}

func NewAllocator(store *Store) *Allocator {
	return &Allocator{store: store, generate: randomCode}
}

// Allocate returns a short code for a new link. A non-empty requested
// alias is normalized and checked for availability; an empty one triggers
// random generation with a bounded retry loop.
func (a *Allocator) Allocate(ctx context.Context, requested string) (string, error) {
	if alias := utils.NormalizeAlias(requested); alias != "" {
		if !utils.IsValidShortCode(alias) {
			return "", ErrInvalidAlias
		}
		taken, err := a.store.CodeExists(ctx, alias)
		if err != nil {
			return "", err
		}
		if taken {
			return "", ErrAliasTaken
		}
		return alias, nil
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		code, err := a.generate()
		if err != nil {
			return "", fmt.Errorf("failed to generate short code: %w", err)
		}
		taken, err := a.store.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
		logger.Warn().
			Str("code", code).
			Int("attempt", attempt).
			Int("max_attempts", maxAttempts).
			Msg("short code collision, retrying generation")
	}

	return "", ErrAllocationExhausted
}

func randomCode() (string, error) {
	b := make([]byte, codeLength)
	for i := range b {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeCharset))))
		if err != nil {
			return "", err
		}
		b[i] = codeCharset[num.Int64()]
	}
	return string(b), nil
}
