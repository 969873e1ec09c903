package services

import (
	"context"
	"time"

	"github.com/aclaudios/acml-atomzr-urlshortener/internal/models"
	"github.com/aclaudios/acml-atomzr-urlshortener/pkg/logger"
	"github.com/aclaudios/acml-atomzr-urlshortener/pkg/utils"
	"gorm.io/datatypes"
)

// Shortener is the single-link creation flow: quota, allocation, QR
// rendering, persistence.
type Shortener struct {
	store      *Store
	allocator  *Allocator
	quota      *Quota
	baseURL    string
	dailyLimit int
}

func NewShortener(store *Store, quota *Quota, baseURL string, dailyLimit int) *Shortener {
	return &Shortener{
		store:      store,
		allocator:  NewAllocator(store),
		quota:      quota,
		baseURL:    baseURL,
		dailyLimit: dailyLimit,
	}
}

// ShortURL returns the canonical short URL for a code.
func (s *Shortener) ShortURL(code string) string {
	return s.baseURL + "/" + code
}

// Create validates the destination, reserves quota, allocates a code and
// persists the link. The reservation is released again if anything after
// it fails, so failed attempts do not consume the daily budget.
func (s *Shortener) Create(ctx context.Context, identity string, ownerID *string, originalURL, customAlias string) (*models.Link, error) {
	if !utils.IsValidURL(originalURL) {
		return nil, ErrInvalidURL
	}

	if err := s.quota.CheckAndReserve(ctx, identity, QuotaLinks, s.dailyLimit); err != nil {
		return nil, err
	}

	code, err := s.allocator.Allocate(ctx, customAlias)
	if err != nil {
		s.quota.Release(ctx, identity, QuotaLinks, 1)
		return nil, err
	}

	meta := datatypes.JSONMap{}
	if qr, qerr := GenerateQRDataURL(s.ShortURL(code)); qerr == nil {
		meta[models.MetaQRCode] = qr
	} else {
		// A link without a QR image is still a valid link; the
		// resolver backfills it on first expansion.
		logger.Warn().Err(qerr).Str("code", code).Msg("QR generation failed at create")
	}

	link := &models.Link{
		ShortCode:   code,
		OriginalURL: originalURL,
		UserID:      ownerID,
		Metadata:    meta,
		CreatedAt:   time.Now(),
	}

	if err := s.store.Create(ctx, link); err != nil {
		s.quota.Release(ctx, identity, QuotaLinks, 1)
		return nil, err
	}

	return link, nil
}
