package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/aclaudios/acml-atomzr-urlshortener/internal/models"
	"github.com/aclaudios/acml-atomzr-urlshortener/pkg/logger"
	"github.com/aclaudios/acml-atomzr-urlshortener/pkg/utils"
	"gorm.io/datatypes"
)

const (
	BulkStatusSuccess = "success"
	BulkStatusError   = "error"

	bulkSource = "bulk"
)

// Human-readable reasons reported per failed line.
const (
	ReasonInvalidFormat = "Invalid format"
	ReasonInvalidURL    = "Invalid URL"
	ReasonInvalidAlias  = "Invalid alias"
	ReasonAliasExists   = "Alias already exists"
	ReasonPersistFailed = "Failed to save"
)

// BulkOutcome is the per-line result of a bulk import.
type BulkOutcome struct {
	Line        string `json:"line"`
	Status      string `json:"status"`
	Reason      string `json:"reason,omitempty"`
	Caption     string `json:"caption,omitempty"`
	OriginalURL string `json:"original_url,omitempty"`
	Alias       string `json:"alias,omitempty"`
	ShortURL    string `json:"short_url,omitempty"`
	QRCode      string `json:"qr_code,omitempty"`
}

// BulkProcessor turns Caption;URL lines into links in one batched insert.
// Aliases are derived deterministically from captions, collisions are
// rejected per line, and the daily bulk quota is consulted per item so a
// partial batch stops exactly at the boundary.
type BulkProcessor struct {
	store      *Store
	quota      *Quota
	baseURL    string
	dailyLimit int
}

func NewBulkProcessor(store *Store, quota *Quota, baseURL string, dailyLimit int) *BulkProcessor {
	return &BulkProcessor{
		store:      store,
		quota:      quota,
		baseURL:    baseURL,
		dailyLimit: dailyLimit,
	}
}

// Process handles the lines in input order and returns one outcome per
// attempted line. Lines beyond the quota boundary are not attempted and
// get no outcome. The staged records are persisted with a single batched
// create: the batch lands or fails as a whole, and a batch-level failure
// is returned as the single top-level error with every reservation
// released.
func (p *BulkProcessor) Process(ctx context.Context, identity string, ownerID *string, lines []string) ([]BulkOutcome, error) {
	input := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			input = append(input, line)
		}
	}

	existing, err := p.store.ExistsByCodes(ctx, deriveCandidates(input))
	if err != nil {
		return nil, err
	}

	outcomes := make([]BulkOutcome, 0, len(input))
	staged := make([]*models.Link, 0, len(input))
	stagedAt := make(map[string]int) // alias -> outcome index
	reserved := 0

	for _, line := range input {
		caption, rawURL, ok := splitBulkLine(line)
		if !ok {
			outcomes = append(outcomes, errorOutcome(line, ReasonInvalidFormat))
			continue
		}

		if !utils.IsValidURL(rawURL) {
			outcomes = append(outcomes, errorOutcome(line, ReasonInvalidURL))
			continue
		}

		alias := utils.DeriveAlias(caption)
		if !utils.IsValidShortCode(alias) {
			outcomes = append(outcomes, errorOutcome(line, ReasonInvalidAlias))
			continue
		}

		if existing[alias] || stagedAt[alias] != 0 {
			outcomes = append(outcomes, errorOutcome(line, ReasonAliasExists))
			continue
		}

		if err := p.quota.CheckAndReserve(ctx, identity, QuotaBulk, p.dailyLimit); err != nil {
			if errors.Is(err, ErrLimitReached) {
				// Remaining lines are not attempted; they simply
				// get no outcome.
				logger.Info().Str("identity", identity).Msg("bulk daily limit reached, stopping batch")
				break
			}
			p.quota.Release(ctx, identity, QuotaBulk, reserved)
			return nil, err
		}
		reserved++

		shortURL := p.baseURL + "/" + alias
		meta := datatypes.JSONMap{
			models.MetaCaption: caption,
			models.MetaSource:  bulkSource,
		}
		qr := ""
		if dataURL, qerr := GenerateQRDataURL(shortURL); qerr == nil {
			qr = dataURL
			meta[models.MetaQRCode] = dataURL
		} else {
			logger.Warn().Err(qerr).Str("alias", alias).Msg("QR generation failed for bulk item")
		}

		staged = append(staged, &models.Link{
			ShortCode:   alias,
			OriginalURL: rawURL,
			UserID:      ownerID,
			Metadata:    meta,
			CreatedAt:   time.Now(),
		})
		stagedAt[alias] = len(outcomes) + 1 // 1-based so the zero value means absent
		outcomes = append(outcomes, BulkOutcome{
			Line:        line,
			Status:      BulkStatusSuccess,
			Caption:     caption,
			OriginalURL: rawURL,
			Alias:       alias,
			ShortURL:    shortURL,
			QRCode:      qr,
		})
	}

	if len(staged) == 0 {
		return outcomes, nil
	}

	if err := p.store.CreateBatch(ctx, staged); err != nil {
		p.quota.Release(ctx, identity, QuotaBulk, reserved)
		return nil, err
	}

	// Re-check that every staged alias actually landed; anything that
	// cannot be matched back is reported per item.
	aliases := make([]string, 0, len(staged))
	for _, link := range staged {
		aliases = append(aliases, link.ShortCode)
	}
	persisted, err := p.store.ExistsByCodes(ctx, aliases)
	if err != nil {
		// The batch was inserted; a failed verification read should
		// not turn it into a batch error.
		logger.Warn().Err(err).Msg("bulk persistence verification failed")
		return outcomes, nil
	}
	for _, link := range staged {
		if !persisted[link.ShortCode] {
			idx := stagedAt[link.ShortCode] - 1
			outcomes[idx] = errorOutcome(outcomes[idx].Line, ReasonPersistFailed)
		}
	}

	return outcomes, nil
}

// splitBulkLine splits on the first semicolon and requires two non-empty
// trimmed fields.
func splitBulkLine(line string) (caption, rawURL string, ok bool) {
	parts := strings.SplitN(line, ";", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	caption = strings.TrimSpace(parts[0])
	rawURL = strings.TrimSpace(parts[1])
	if caption == "" || rawURL == "" {
		return "", "", false
	}
	return caption, rawURL, true
}

// deriveCandidates collects the aliases the batch would claim, for the
// single pre-filter query against the store.
func deriveCandidates(lines []string) []string {
	candidates := make([]string, 0, len(lines))
	for _, line := range lines {
		caption, _, ok := splitBulkLine(line)
		if !ok {
			continue
		}
		if alias := utils.DeriveAlias(caption); alias != "" {
			candidates = append(candidates, alias)
		}
	}
	return candidates
}

func errorOutcome(line, reason string) BulkOutcome {
	return BulkOutcome{Line: line, Status: BulkStatusError, Reason: reason}
}

// WriteBulkCSV writes the export for successful outcomes: the fixed
// header, one row per item, every field double-quote-wrapped.
func WriteBulkCSV(w io.Writer, outcomes []BulkOutcome) error {
	if _, err := io.WriteString(w, csvRow("Caption", "Original URL", "Alias", "Shortened URL")); err != nil {
		return err
	}
	for _, o := range outcomes {
		if o.Status != BulkStatusSuccess {
			continue
		}
		if _, err := io.WriteString(w, csvRow(o.Caption, o.OriginalURL, o.Alias, o.ShortURL)); err != nil {
			return err
		}
	}
	return nil
}

func csvRow(fields ...string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",") + "\n"
}
