package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-attendance-go/internal/service/file"
)

const defaultWorkers = 4

type AttendanceServiceImpl struct {
	db database.Pool
	attendance.DailyRecordRepository
	attendance.ImportBatchRepository
	employee.EmployeeRepository
	fileService file.FileService
	workers     int
	now         func() time.Time
}

var (
	_ attendance.ImportService = (*AttendanceServiceImpl)(nil)
	_ attendance.LedgerService = (*AttendanceServiceImpl)(nil)
)

func NewAttendanceService(
	db database.Pool,
	dailyRecordRepo attendance.DailyRecordRepository,
	importBatchRepo attendance.ImportBatchRepository,
	employeeRepo employee.EmployeeRepository,
	fileService file.FileService,
	workers int,
) *AttendanceServiceImpl {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &AttendanceServiceImpl{
		db:                    db,
		DailyRecordRepository: dailyRecordRepo,
		ImportBatchRepository: importBatchRepo,
		EmployeeRepository:    employeeRepo,
		fileService:           fileService,
		workers:               workers,
		now:                   time.Now,
	}
}

// resolveMonth parses a validated YYYY-MM value, defaulting to the current month.
func resolveMonth(month string, now time.Time) (int, int) {
	if t, ok := validator.IsValidMonth(month); ok {
		return t.Year(), int(t.Month())
	}
	return now.Year(), int(now.Month())
}

func formatMonth(year, month int) string {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}
