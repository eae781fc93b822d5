package attendance

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var fixedNow = time.Date(2024, time.February, 5, 9, 0, 0, 0, time.UTC)

type fakeEmployeeRepo struct {
	mu        sync.Mutex
	byID      map[string]employee.Employee
	upsertErr error
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{byID: make(map[string]employee.Employee)}
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	emp, ok := r.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *fakeEmployeeRepo) Upsert(_ context.Context, code string, fullName string) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return employee.Employee{}, r.upsertErr
	}
	for id, emp := range r.byID {
		if emp.EmployeeCode == code {
			if fullName != "" {
				emp.FullName = fullName
			}
			r.byID[id] = emp
			return emp, nil
		}
	}
	emp := employee.Employee{
		ID:           fmt.Sprintf("00000000-0000-0000-0000-%012d", len(r.byID)+1),
		EmployeeCode: code,
		FullName:     fullName,
	}
	r.byID[emp.ID] = emp
	return emp, nil
}

func (r *fakeEmployeeRepo) List(_ context.Context, _ employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]employee.Employee, 0, len(r.byID))
	for _, emp := range r.byID {
		out = append(out, emp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EmployeeCode < out[j].EmployeeCode })
	return out, int64(len(out)), nil
}

type fakeDailyRecordRepo struct {
	replaced   map[string][]attendance.DailyRecord
	replaceErr error
	listed     []attendance.DailyRecord
	listErr    error
}

func newFakeDailyRecordRepo() *fakeDailyRecordRepo {
	return &fakeDailyRecordRepo{replaced: make(map[string][]attendance.DailyRecord)}
}

func (r *fakeDailyRecordRepo) ReplaceMonth(_ context.Context, employeeID string, _, _ int, records []attendance.DailyRecord) error {
	if r.replaceErr != nil {
		return r.replaceErr
	}
	r.replaced[employeeID] = records
	return nil
}

func (r *fakeDailyRecordRepo) ListByEmployeeAndMonth(_ context.Context, employeeID string, year, month int) ([]attendance.DailyRecord, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []attendance.DailyRecord
	for _, record := range r.listed {
		if record.EmployeeRef == employeeID && record.Date.Year() == year && int(record.Date.Month()) == month {
			out = append(out, record)
		}
	}
	return out, nil
}

func (r *fakeDailyRecordRepo) ListByMonth(_ context.Context, year, month int) ([]attendance.DailyRecord, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []attendance.DailyRecord
	for _, record := range r.listed {
		if record.Date.Year() == year && int(record.Date.Month()) == month {
			out = append(out, record)
		}
	}
	return out, nil
}

type fakeImportBatchRepo struct {
	created []attendance.ImportBatch
}

func (r *fakeImportBatchRepo) Create(_ context.Context, batch attendance.ImportBatch) (attendance.ImportBatch, error) {
	batch.CreatedAt = fixedNow
	r.created = append(r.created, batch)
	return batch, nil
}

func (r *fakeImportBatchRepo) GetByID(_ context.Context, id string) (attendance.ImportBatch, error) {
	for _, batch := range r.created {
		if batch.ID == id {
			return batch, nil
		}
	}
	return attendance.ImportBatch{}, attendance.ErrImportBatchNotFound
}

type fakeFileService struct {
	archived map[string][]byte
	deleted  []string
}

func newFakeFileService() *fakeFileService {
	return &fakeFileService{archived: make(map[string][]byte)}
}

func (f *fakeFileService) ArchiveImport(_ context.Context, batchID string, uploadedAt time.Time, file io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	p := fmt.Sprintf("imports/%s/%s-%s", uploadedAt.Format("2006/01"), batchID, filename)
	f.archived[p] = data
	return p, nil
}

func (f *fakeFileService) OpenArchive(_ context.Context, path string) (io.ReadCloser, error) {
	data, ok := f.archived[path]
	if !ok {
		return nil, fmt.Errorf("file not found: %s: %w", path, fs.ErrNotExist)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeFileService) PurgeImportArchives(_ context.Context, _ time.Duration) (int, error) {
	return 0, nil
}

func (f *fakeFileService) DeleteFile(_ context.Context, path string) error {
	delete(f.archived, path)
	f.deleted = append(f.deleted, path)
	return nil
}

type testDeps struct {
	mock      pgxmock.PgxPoolIface
	employees *fakeEmployeeRepo
	records   *fakeDailyRecordRepo
	batches   *fakeImportBatchRepo
	files     *fakeFileService
}

func newTestService(t *testing.T) (*AttendanceServiceImpl, *testDeps) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	deps := &testDeps{
		mock:      mock,
		employees: newFakeEmployeeRepo(),
		records:   newFakeDailyRecordRepo(),
		batches:   &fakeImportBatchRepo{},
		files:     newFakeFileService(),
	}

	svc := NewAttendanceService(mock, deps.records, deps.batches, deps.employees, deps.files, 2)
	svc.now = func() time.Time { return fixedNow }
	return svc, deps
}

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func uploadRequest(filename string, data []byte) attendance.ImportRequest {
	return attendance.ImportRequest{
		File:       memFile{bytes.NewReader(data)},
		FileHeader: &multipart.FileHeader{Filename: filename, Size: int64(len(data))},
		MaxSize:    10 << 20,
	}
}

func buildSheet(t *testing.T, rows ...[]interface{}) []byte {
	t.Helper()
	return buildSheetWithHeader(t, []interface{}{"employee_code", "employee_name", "date", "in_time", "out_time"}, rows...)
}

func buildSheetWithHeader(t *testing.T, header []interface{}, rows ...[]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	all := append([][]interface{}{header}, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func strPtr(s string) *string { return &s }
