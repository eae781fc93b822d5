package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const dailyRecordColumns = 8

type dailyRecordRepositoryImpl struct {
	db database.Querier
}

func NewDailyRecordRepository(db database.Querier) attendance.DailyRecordRepository {
	return &dailyRecordRepositoryImpl{db: db}
}

func monthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// ReplaceMonth implements attendance.DailyRecordRepository.
// Call it inside WithTransaction so the delete and insert commit together.
func (r *dailyRecordRepositoryImpl) ReplaceMonth(ctx context.Context, employeeID string, year, month int, records []attendance.DailyRecord) error {
	q := GetQuerier(ctx, r.db)

	start, end := monthRange(year, month)

	deleteQuery := `
		DELETE FROM daily_attendance_records
		WHERE employee_id = $1 AND date >= $2 AND date < $3
	`
	if _, err := q.Exec(ctx, deleteQuery, employeeID, start, end); err != nil {
		return fmt.Errorf("failed to clear attendance month for employee %s: %w", employeeID, err)
	}

	if len(records) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(records))
	args := make([]interface{}, 0, len(records)*dailyRecordColumns)
	for i, rec := range records {
		base := i * dailyRecordColumns
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, NOW())",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8))

		id := rec.ID
		if id == "" {
			id = uuid.New().String()
		}
		args = append(args, id, employeeID, rec.Date, rec.InTime, rec.OutTime, rec.WorkedHours, string(rec.Status), rec.ImportBatchID)
	}

	insertQuery := `
		INSERT INTO daily_attendance_records
			(id, employee_id, date, in_time, out_time, worked_hours, status, import_batch_id, created_at)
		VALUES ` + strings.Join(placeholders, ", ")

	tag, err := q.Exec(ctx, insertQuery, args...)
	if err != nil {
		return fmt.Errorf("failed to insert attendance month for employee %s: %w", employeeID, err)
	}
	if tag.RowsAffected() != int64(len(records)) {
		return fmt.Errorf("inserted %d of %d attendance records for employee %s", tag.RowsAffected(), len(records), employeeID)
	}

	return nil
}

const selectDailyRecords = `
	SELECT r.id, r.employee_id, r.date, r.in_time, r.out_time, r.worked_hours, r.status,
		r.import_batch_id, r.created_at, e.employee_code, e.full_name
	FROM daily_attendance_records r
	JOIN employees e ON e.id = r.employee_id
`

// ListByEmployeeAndMonth implements attendance.DailyRecordRepository.
func (r *dailyRecordRepositoryImpl) ListByEmployeeAndMonth(ctx context.Context, employeeID string, year, month int) ([]attendance.DailyRecord, error) {
	q := GetQuerier(ctx, r.db)

	start, end := monthRange(year, month)
	query := selectDailyRecords + `
		WHERE r.employee_id = $1 AND r.date >= $2 AND r.date < $3
		ORDER BY r.date ASC
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance month for employee %s: %w", employeeID, err)
	}
	return scanDailyRecords(rows)
}

// ListByMonth implements attendance.DailyRecordRepository.
func (r *dailyRecordRepositoryImpl) ListByMonth(ctx context.Context, year, month int) ([]attendance.DailyRecord, error) {
	q := GetQuerier(ctx, r.db)

	start, end := monthRange(year, month)
	query := selectDailyRecords + `
		WHERE r.date >= $1 AND r.date < $2
		ORDER BY e.employee_code ASC, r.date ASC
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance month: %w", err)
	}
	return scanDailyRecords(rows)
}

func scanDailyRecords(rows pgx.Rows) ([]attendance.DailyRecord, error) {
	defer rows.Close()

	var records []attendance.DailyRecord
	for rows.Next() {
		var rec attendance.DailyRecord
		err := rows.Scan(
			&rec.ID, &rec.EmployeeRef, &rec.Date, &rec.InTime, &rec.OutTime, &rec.WorkedHours, &rec.Status,
			&rec.ImportBatchID, &rec.CreatedAt, &rec.EmployeeCode, &rec.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, nil
}
