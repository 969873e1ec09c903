package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/aclaudios/acml-atomzr-urlshortener/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Store is the persistence layer for links and clicks. It is the single
// shared mutable resource; uniqueness and counter atomicity are delegated
// to the database, not to in-process locks.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	if db == nil {
		panic("nil *gorm.DB passed to NewStore")
	}
	return &Store{db: db}
}

// Create inserts a new link. The unique index on short_code is the
// authoritative guard: a duplicate surfaces as ErrAliasTaken even when the
// allocator's existence probe passed moments earlier.
func (s *Store) Create(ctx context.Context, link *models.Link) error {
	if err := s.db.WithContext(ctx).Create(link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAliasTaken
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// CreateBatch inserts all links in one statement. The batch lands or
// fails as a whole.
func (s *Store) CreateBatch(ctx context.Context, links []*models.Link) error {
	if len(links) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(links).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAliasTaken
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *Store) GetByCode(ctx context.Context, code string) (*models.Link, error) {
	var link models.Link
	if err := s.db.WithContext(ctx).Where("short_code = ?", code).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &link, nil
}

// CodeExists is the allocator's optimistic existence probe.
func (s *Store) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Link{}).Where("short_code = ?", code).Count(&count).Error; err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return count > 0, nil
}

// ExistsByCodes returns the subset of codes already present in the store.
// Bulk creation uses it to pre-filter candidates before staging the batch.
func (s *Store) ExistsByCodes(ctx context.Context, codes []string) (map[string]bool, error) {
	existing := make(map[string]bool, len(codes))
	if len(codes) == 0 {
		return existing, nil
	}
	var found []string
	err := s.db.WithContext(ctx).Model(&models.Link{}).
		Where("short_code IN ?", codes).
		Pluck("short_code", &found).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	for _, code := range found {
		existing[code] = true
	}
	return existing, nil
}

// IncrementClicks atomically bumps the aggregate counter. The database
// applies the increment, so concurrent redirects never read-modify-write
// each other's updates away.
func (s *Store) IncrementClicks(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Model(&models.Link{}).
		Where("id = ?", id).
		UpdateColumn("click_count", gorm.Expr("click_count + ?", 1)).Error
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// SetMetadata replaces a link's metadata document. Used by the lazy QR
// backfill on first resolution.
func (s *Store) SetMetadata(ctx context.Context, id string, meta datatypes.JSONMap) error {
	err := s.db.WithContext(ctx).Model(&models.Link{}).
		Where("id = ?", id).
		UpdateColumn("metadata", meta).Error
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// ListByOwner returns an owner's links, newest first.
func (s *Store) ListByOwner(ctx context.Context, ownerID string) ([]models.Link, error) {
	var links []models.Link
	err := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&links).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return links, nil
}

// GetOwned fetches a link only if it belongs to the given owner.
func (s *Store) GetOwned(ctx context.Context, id, ownerID string) (*models.Link, error) {
	var link models.Link
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &link, nil
}

// Delete removes a link entirely. There is no soft-delete state.
func (s *Store) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Link{})
	if res.Error != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordClick appends a per-visit click row.
func (s *Store) RecordClick(ctx context.Context, click *models.Click) error {
	if err := s.db.WithContext(ctx).Create(click).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// CountClicks returns the number of recorded click events for a link.
func (s *Store) CountClicks(ctx context.Context, linkID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Click{}).Where("link_id = ?", linkID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return count, nil
}

// ApplyClick is what the click workers run for each event: bump the
// aggregate counter, then persist the visit row. Both are best-effort from
// the redirect's point of view.
func (s *Store) ApplyClick(ctx context.Context, event models.ClickEvent) error {
	if err := s.IncrementClicks(ctx, event.LinkID); err != nil {
		return err
	}
	return s.RecordClick(ctx, &models.Click{
		LinkID:    event.LinkID,
		Referer:   event.Referer,
		UserAgent: event.UserAgent,
		IPAddress: event.IP,
		CreatedAt: event.Timestamp,
	})
}
