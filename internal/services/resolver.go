package services

import (
	"context"
	"time"

	"github.com/aclaudios/acml-atomzr-urlshortener/internal/database"
	"github.com/aclaudios/acml-atomzr-urlshortener/internal/models"
	"github.com/aclaudios/acml-atomzr-urlshortener/pkg/logger"
	"gorm.io/datatypes"
)

const destinationCacheTTL = 5 * time.Minute

// Resolver expands a short code back to its record. Resolution also
// triggers the click increment, but always off the critical path: the
// event goes onto the tracking channel and the response never waits on it.
type Resolver struct {
	store   *Store
	clicks  chan<- models.ClickEvent
	baseURL string
}

func NewResolver(store *Store, clicks chan<- models.ClickEvent, baseURL string) *Resolver {
	return &Resolver{store: store, clicks: clicks, baseURL: baseURL}
}

// Resolve fetches the record for a code, lazily backfills a missing QR
// image, and (when visit is non-nil) dispatches the click event. An
// unknown code returns ErrNotFound without any store mutation.
func (r *Resolver) Resolve(ctx context.Context, code string, visit *models.ClickEvent) (*models.Link, error) {
	link, err := r.store.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if link.QRCode() == "" {
		r.backfillQR(ctx, link)
	}

	if visit != nil {
		visit.LinkID = link.ID
		r.track(*visit)
	}

	return link, nil
}

// cachedDestination is the slimmed record the hot redirect path caches.
type cachedDestination struct {
	ID          string `json:"id"`
	OriginalURL string `json:"original_url"`
}

// Destination serves the redirect path: code in, destination URL out,
// with a short-lived cache in front of the store. Click tracking happens
// either way.
func (r *Resolver) Destination(ctx context.Context, code string, visit *models.ClickEvent) (string, error) {
	if database.Redis != nil {
		var cached cachedDestination
		if err := database.CacheGet(destinationCacheKey(code), &cached); err == nil {
			if visit != nil {
				visit.LinkID = cached.ID
				r.track(*visit)
			}
			return cached.OriginalURL, nil
		}
	}

	link, err := r.Resolve(ctx, code, visit)
	if err != nil {
		return "", err
	}

	if database.Redis != nil {
		entry := cachedDestination{ID: link.ID, OriginalURL: link.OriginalURL}
		if err := database.CacheSet(destinationCacheKey(code), entry, destinationCacheTTL); err != nil {
			logger.Debug().Err(err).Str("code", code).Msg("destination cache write failed")
		}
	}

	return link.OriginalURL, nil
}

// InvalidateDestination drops the cached entry for a code. Called on delete.
func InvalidateDestination(code string) {
	if database.Redis == nil {
		return
	}
	if err := database.CacheInvalidate(destinationCacheKey(code)); err != nil {
		logger.Debug().Err(err).Str("code", code).Msg("destination cache invalidation failed")
	}
}

// backfillQR repairs records created before QR generation existed (or
// whose generation failed at create). Failures are logged and swallowed;
// the read must not fail because the repair did.
func (r *Resolver) backfillQR(ctx context.Context, link *models.Link) {
	qr, err := GenerateQRDataURL(r.baseURL + "/" + link.ShortCode)
	if err != nil {
		logger.Warn().Err(err).Str("code", link.ShortCode).Msg("QR backfill generation failed")
		return
	}

	if link.Metadata == nil {
		link.Metadata = datatypes.JSONMap{}
	}
	link.Metadata[models.MetaQRCode] = qr

	if err := r.store.SetMetadata(ctx, link.ID, link.Metadata); err != nil {
		logger.Warn().Err(err).Str("code", link.ShortCode).Msg("QR backfill persist failed")
	}
}

// track hands the event to the workers without blocking. A full buffer
// drops the event; a lost count is the accepted relaxation, a delayed
// redirect is not.
func (r *Resolver) track(event models.ClickEvent) {
	select {
	case r.clicks <- event:
	default:
		logger.Warn().Str("link_id", event.LinkID).Msg("click buffer full, dropping event")
	}
}

func destinationCacheKey(code string) string {
	return "link:" + code
}
