package repository

import (
	"context"

	"github.com/timmy/reconlens/internal/domain"
	"gorm.io/gorm"
)

// RunRepository stores the acquisition run ledger.
type RunRepository struct {
	db *gorm.DB
}

// NewRunRepository creates a new RunRepository.
// Parameters:
//   - db: GORM database handle used for queries.
//
// Returns:
//   - *RunRepository: repository instance bound to db.
func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Record inserts one ledger row.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - run: ledger row to persist.
//
// Returns:
//   - error: non-nil if the insert fails.
func (r *RunRepository) Record(ctx context.Context, run *domain.AcquisitionRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

// ListBySite returns the most recent runs of a site, newest first.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - slug: site slug.
//   - limit: maximum rows; zero or less returns all.
//
// Returns:
//   - []domain.AcquisitionRun: matching rows.
//   - error: non-nil if the query fails.
func (r *RunRepository) ListBySite(ctx context.Context, slug string, limit int) ([]domain.AcquisitionRun, error) {
	var runs []domain.AcquisitionRun
	q := r.db.WithContext(ctx).Where("site_slug = ?", slug).Order("started_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// ListByBatch returns every row recorded for one batch run.
func (r *RunRepository) ListByBatch(ctx context.Context, batchID string) ([]domain.AcquisitionRun, error) {
	var runs []domain.AcquisitionRun
	if err := r.db.WithContext(ctx).Where("batch_id = ?", batchID).Order("site_slug").Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// CountByStatus counts the rows of one batch per status.
func (r *RunRepository) CountByStatus(ctx context.Context, batchID string) (map[domain.RunStatus]int64, error) {
	var rows []struct {
		Status domain.RunStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&domain.AcquisitionRun{}).
		Select("status, count(*) as count").
		Where("batch_id = ?", batchID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[domain.RunStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}
