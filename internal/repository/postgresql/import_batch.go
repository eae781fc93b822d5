package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type importBatchRepositoryImpl struct {
	db database.Querier
}

func NewImportBatchRepository(db database.Querier) attendance.ImportBatchRepository {
	return &importBatchRepositoryImpl{db: db}
}

// Create implements attendance.ImportBatchRepository.
func (r *importBatchRepositoryImpl) Create(ctx context.Context, batch attendance.ImportBatch) (attendance.ImportBatch, error) {
	q := GetQuerier(ctx, r.db)

	if batch.ID == "" {
		batch.ID = uuid.New().String()
	}

	query := `
		INSERT INTO import_batches
			(id, filename, archive_path, period_year, period_month, employee_count, record_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		batch.ID, batch.Filename, batch.ArchivePath, batch.PeriodYear, batch.PeriodMonth,
		batch.EmployeeCount, batch.RecordCount,
	).Scan(&batch.CreatedAt)
	if err != nil {
		return attendance.ImportBatch{}, fmt.Errorf("failed to create import batch: %w", err)
	}

	return batch, nil
}

// GetByID implements attendance.ImportBatchRepository.
func (r *importBatchRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.ImportBatch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, filename, archive_path, period_year, period_month, employee_count, record_count, created_at
		FROM import_batches
		WHERE id = $1
	`

	var batch attendance.ImportBatch
	err := q.QueryRow(ctx, query, id).Scan(
		&batch.ID, &batch.Filename, &batch.ArchivePath, &batch.PeriodYear, &batch.PeriodMonth,
		&batch.EmployeeCount, &batch.RecordCount, &batch.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ImportBatch{}, attendance.ErrImportBatchNotFound
		}
		return attendance.ImportBatch{}, fmt.Errorf("failed to get import batch %s: %w", id, err)
	}

	return batch, nil
}
