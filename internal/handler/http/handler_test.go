package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testEmployeeID = "0c8d6b5e-2f0a-4c54-9a7e-3f1d2b6a9e01"

type fakeImportService struct {
	gotFilename string
	gotContent  []byte
	gotBatchID  string
	err         error
}

func (f *fakeImportService) Import(_ context.Context, req attendance.ImportRequest) (attendance.ImportResponse, error) {
	if f.err != nil {
		return attendance.ImportResponse{}, f.err
	}
	f.gotFilename = req.FileHeader.Filename
	f.gotContent, _ = io.ReadAll(req.File)
	return attendance.ImportResponse{BatchID: "batch-1", Filename: req.FileHeader.Filename, RecordsWritten: 31}, nil
}

func (f *fakeImportService) DownloadImport(_ context.Context, batchID string) (attendance.ExportFile, error) {
	f.gotBatchID = batchID
	if f.err != nil {
		return attendance.ExportFile{}, f.err
	}
	return attendance.ExportFile{Filename: "january.xls", ContentType: "application/vnd.ms-excel", Content: []byte("sheet")}, nil
}

type fakeLedgerService struct {
	gotFilter attendance.LedgerFilter
	gotExport attendance.ExportRequest
	err       error
}

func (f *fakeLedgerService) GetEmployeeLedger(_ context.Context, filter attendance.LedgerFilter) (attendance.LedgerResponse, error) {
	f.gotFilter = filter
	if f.err != nil {
		return attendance.LedgerResponse{}, f.err
	}
	return attendance.LedgerResponse{EmployeeID: filter.EmployeeID, Month: filter.Month}, nil
}

func (f *fakeLedgerService) ExportLedger(_ context.Context, req attendance.ExportRequest) (attendance.ExportFile, error) {
	f.gotExport = req
	if f.err != nil {
		return attendance.ExportFile{}, f.err
	}
	return attendance.ExportFile{Filename: "attendance-ledger-2024-02.pdf", ContentType: "application/pdf", Content: []byte("%PDF-1.3")}, nil
}

type fakeEmployeeService struct {
	gotID     string
	gotFilter employee.EmployeeFilter
	err       error
}

func (f *fakeEmployeeService) GetEmployee(_ context.Context, id string) (employee.EmployeeResponse, error) {
	f.gotID = id
	if f.err != nil {
		return employee.EmployeeResponse{}, f.err
	}
	return employee.EmployeeResponse{ID: id, EmployeeCode: "E001"}, nil
}

func (f *fakeEmployeeService) ListEmployees(_ context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	f.gotFilter = filter
	return employee.ListEmployeeResponse{
		TotalCount: 1,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: 1,
		Employees:  []employee.EmployeeResponse{{ID: testEmployeeID, EmployeeCode: "E001"}},
	}, nil
}

type fakeDashboardService struct {
	gotMonth string
	gotID    string
	gotDate  string
	err      error
}

func (f *fakeDashboardService) GetDashboard(_ context.Context, month string) (*dashboard.DashboardResponse, error) {
	f.gotMonth = month
	if f.err != nil {
		return nil, f.err
	}
	return &dashboard.DashboardResponse{Month: month}, nil
}

func (f *fakeDashboardService) GetEmployeeProductivity(_ context.Context, employeeID string, month string) (*dashboard.EmployeeProductivityResponse, error) {
	f.gotID, f.gotMonth = employeeID, month
	return &dashboard.EmployeeProductivityResponse{EmployeeID: employeeID, Month: month}, nil
}

func (f *fakeDashboardService) GetDailyStats(_ context.Context, date string) (*dashboard.DailyStatsResponse, error) {
	f.gotDate = date
	return &dashboard.DailyStatsResponse{Date: date}, nil
}

type testServer struct {
	handler   http.Handler
	imports   *fakeImportService
	ledgers   *fakeLedgerService
	employees *fakeEmployeeService
	dashboard *fakeDashboardService
}

func newTestServer(maxUpload int64) *testServer {
	ts := &testServer{
		imports:   &fakeImportService{},
		ledgers:   &fakeLedgerService{},
		employees: &fakeEmployeeService{},
		dashboard: &fakeDashboardService{},
	}
	ts.handler = NewRouter(
		RouterOptions{
			Logger:             slog.New(slog.NewTextHandler(io.Discard, nil)),
			CORSAllowedOrigins: []string{"http://localhost:3000"},
		},
		NewAttendanceHandler(ts.imports, ts.ledgers, maxUpload),
		NewEmployeeHandler(ts.employees),
		NewDashboardHandler(ts.dashboard),
	)
	return ts
}

func (ts *testServer) do(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)

	var resp response.Response
	if w.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(&resp))
	}
	return w, resp
}

func multipartUpload(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		part, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	} else {
		require.NoError(t, mw.WriteField("note", "no file"))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestImport_Created(t *testing.T) {
	ts := newTestServer(1 << 20)

	w, resp := ts.do(t, multipartUpload(t, "file", "january.xlsx", []byte("sheet-bytes")))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "january.xlsx", ts.imports.gotFilename)
	assert.Equal(t, []byte("sheet-bytes"), ts.imports.gotContent)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "batch-1", data["batch_id"])
	assert.Equal(t, float64(31), data["records_written"])
}

func TestImport_MissingFile(t *testing.T) {
	ts := newTestServer(1 << 20)

	w, resp := ts.do(t, multipartUpload(t, "", "", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", resp.Error.Code)
}

func TestImport_TooLarge(t *testing.T) {
	ts := newTestServer(16)

	w, _ := ts.do(t, multipartUpload(t, "file", "big.xlsx", bytes.Repeat([]byte("x"), 2<<20)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestImport_RowError(t *testing.T) {
	ts := newTestServer(1 << 20)
	ts.imports.err = &attendance.RowError{Row: 7, Err: &attendance.DateError{Field: "date", Value: "x", Reason: "bad"}}

	w, resp := ts.do(t, multipartUpload(t, "file", "january.xlsx", []byte("sheet")))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "7", resp.Error.Details["row"])
}

func TestImport_EngineErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"time format", &attendance.TimeFormatError{Value: "9am", Reason: "expected HH:MM"}, http.StatusBadRequest},
		{"time format on row", &attendance.RowError{Row: 3, Err: &attendance.TimeFormatError{Value: "25:00", Reason: "hour out of range"}}, http.StatusBadRequest},
		{"out of range", &attendance.CalculationRangeError{InTime: "a", OutTime: "b", Hours: "25"}, http.StatusBadRequest},
		{"layout", attendance.ErrInvalidSheetLayout, http.StatusBadRequest},
		{"validation", validator.ValidationErrors{{Field: "file", Message: "required"}}, http.StatusUnprocessableEntity},
		{"unexpected", errors.New("disk failure"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(1 << 20)
			ts.imports.err = tt.err

			w, resp := ts.do(t, multipartUpload(t, "file", "january.xlsx", []byte("sheet")))

			assert.Equal(t, tt.code, w.Code)
			assert.False(t, resp.Success)
		})
	}
}

func TestGetLedger(t *testing.T) {
	ts := newTestServer(1 << 20)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/ledger?employee_id="+testEmployeeID+"&month=2024-02", nil)
	w, resp := ts.do(t, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, attendance.LedgerFilter{EmployeeID: testEmployeeID, Month: "2024-02"}, ts.ledgers.gotFilter)
}

func TestGetLedger_NotFound(t *testing.T) {
	ts := newTestServer(1 << 20)
	ts.ledgers.err = attendance.ErrLedgerNotFound

	req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/ledger?employee_id="+testEmployeeID, nil)
	w, resp := ts.do(t, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
}

func TestExport(t *testing.T) {
	ts := newTestServer(1 << 20)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/export?month=2024-02&format=pdf", nil)
	w, _ := ts.do(t, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="attendance-ledger-2024-02.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.3", w.Body.String())
	assert.Equal(t, attendance.ExportRequest{Month: "2024-02", Format: "pdf"}, ts.ledgers.gotExport)
}

func TestDownloadImport(t *testing.T) {
	ts := newTestServer(1 << 20)
	batchID := "5b1f0c1e-8d2a-4e6b-9c3f-0a7d2e4b6c81"

	w, _ := ts.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/attendance/imports/"+batchID+"/file", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, batchID, ts.imports.gotBatchID)
	assert.Equal(t, "application/vnd.ms-excel", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="january.xls"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "sheet", w.Body.String())
}

func TestDownloadImport_NotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"unknown batch", attendance.ErrImportBatchNotFound},
		{"purged archive", attendance.ErrImportArchivePurged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(1 << 20)
			ts.imports.err = tt.err

			w, resp := ts.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/attendance/imports/x/file", nil))

			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.Equal(t, "NOT_FOUND", resp.Error.Code)
		})
	}
}

func TestListEmployees(t *testing.T) {
	ts := newTestServer(1 << 20)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/employees?search=bud&page=2&limit=5&sort_by=full_name", nil)
	w, resp := ts.do(t, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, int64(1), resp.Meta.TotalItems)
	require.NotNil(t, ts.employees.gotFilter.Search)
	assert.Equal(t, "bud", *ts.employees.gotFilter.Search)
	assert.Equal(t, 5, ts.employees.gotFilter.Limit)
	assert.Equal(t, "full_name", ts.employees.gotFilter.SortBy)
}

func TestGetEmployee(t *testing.T) {
	ts := newTestServer(1 << 20)

	w, _ := ts.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/employees/"+testEmployeeID, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testEmployeeID, ts.employees.gotID)

	ts.employees.err = employee.ErrEmployeeNotFound
	w, resp := ts.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/employees/"+testEmployeeID, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Employee not found", resp.Error.Message)
}

func TestDashboardRoutes(t *testing.T) {
	ts := newTestServer(1 << 20)

	w, _ := ts.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard?month=2024-02", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2024-02", ts.dashboard.gotMonth)

	w, _ = ts.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/employees/"+testEmployeeID+"?month=2024-01", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testEmployeeID, ts.dashboard.gotID)
	assert.Equal(t, "2024-01", ts.dashboard.gotMonth)

	w, _ = ts.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/daily?date=2024-02-03", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2024-02-03", ts.dashboard.gotDate)
}

func TestDashboard_ValidationError(t *testing.T) {
	ts := newTestServer(1 << 20)
	ts.dashboard.err = validator.ValidationErrors{{Field: "month", Message: dashboard.ErrInvalidMonth.Error()}}

	w, resp := ts.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard?month=bad", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, dashboard.ErrInvalidMonth.Error(), resp.Error.Details["month"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}
