package attendance

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boris2442/task-bml/internal/domain/attendance"
	"github.com/boris2442/task-bml/internal/pkg/validator"
	"github.com/boris2442/task-bml/internal/service/file"
)

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	byUser     map[string]*attendance.Attendance
	documents  []attendance.Document
	lastFilter attendance.Filter
	updateErr  error
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	att.ID = "att-" + att.UserID
	f.byUser[att.UserID] = &att
	return att, nil
}

func (f *fakeAttendanceRepo) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	return f.byUser[userID], nil
}

func (f *fakeAttendanceRepo) GetOpenForUserOnDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	rec := f.byUser[userID]
	if rec == nil || rec.DepartureAt != nil || rec.Status.IsTerminal() {
		return nil, nil
	}
	return rec, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.byUser[att.UserID] = &att
	return nil
}

func (f *fakeAttendanceRepo) CreateDocument(ctx context.Context, doc attendance.Document) (attendance.Document, error) {
	doc.ID = "doc-" + doc.FileName
	doc.UploadedAt = time.Now()
	f.documents = append(f.documents, doc)
	return doc, nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, int64, error) {
	f.lastFilter = filter
	return nil, 0, nil
}

type fakeStorage struct {
	uploaded    []string
	deleted     []string
	failOnCount int // fail the nth upload, 0 disables
}

func (f *fakeStorage) Upload(ctx context.Context, r io.Reader, path, contentType string) (string, error) {
	if f.failOnCount > 0 && len(f.uploaded)+1 == f.failOnCount {
		return "", errors.New("disk full")
	}
	f.uploaded = append(f.uploaded, path)
	return path, nil
}

func (f *fakeStorage) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(nil)), nil
}

func (f *fakeStorage) Delete(ctx context.Context, path string) error {
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeStorage) GetURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return "http://localhost/" + path, nil
}

func (f *fakeStorage) Exists(ctx context.Context, path string) (bool, error) {
	return false, nil
}

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func uploadFile(name string, size int64) attendance.DepartureFile {
	var f multipart.File = memFile{bytes.NewReader([]byte("content"))}
	return attendance.DepartureFile{
		File:   f,
		Header: &multipart.FileHeader{Filename: name, Size: size},
	}
}

func userContext(t *testing.T, userID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{"user_id": userID})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

const validDescription = "Working on the quarterly report and client follow ups"

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(repo *fakeAttendanceRepo, store *fakeStorage) attendance.AttendanceService {
	return NewAttendanceService(repo, file.NewDocumentStore(store), passthroughTx{})
}

func TestSubmitArrival(t *testing.T) {
	repo := &fakeAttendanceRepo{byUser: map[string]*attendance.Attendance{}}
	svc := newTestService(repo, &fakeStorage{})

	resp, err := svc.SubmitArrival(userContext(t, "u1"), attendance.ArrivalRequest{
		Description: validDescription,
	})
	require.NoError(t, err)

	assert.Equal(t, string(attendance.StatusArrivalPending), resp.Status)
	assert.Equal(t, "u1", resp.UserID)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), resp.Date)
}

func TestSubmitArrival_Twice(t *testing.T) {
	repo := &fakeAttendanceRepo{byUser: map[string]*attendance.Attendance{}}
	svc := newTestService(repo, &fakeStorage{})
	ctx := userContext(t, "u1")

	_, err := svc.SubmitArrival(ctx, attendance.ArrivalRequest{Description: validDescription})
	require.NoError(t, err)

	_, err = svc.SubmitArrival(ctx, attendance.ArrivalRequest{Description: validDescription})
	assert.ErrorIs(t, err, attendance.ErrAlreadyReportedToday)
}

func TestSubmitArrival_ShortDescription(t *testing.T) {
	svc := newTestService(&fakeAttendanceRepo{byUser: map[string]*attendance.Attendance{}}, &fakeStorage{})

	_, err := svc.SubmitArrival(userContext(t, "u1"), attendance.ArrivalRequest{Description: "too short"})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "description", verrs[0].Field)
}

func TestSubmitDeparture(t *testing.T) {
	arrival := time.Now().Add(-6*time.Hour - 30*time.Minute)
	repo := &fakeAttendanceRepo{byUser: map[string]*attendance.Attendance{
		"u1": {
			ID:        "att-u1",
			UserID:    "u1",
			ArrivalAt: arrival,
			Status:    attendance.StatusArrivalApproved,
		},
	}}
	store := &fakeStorage{}
	svc := newTestService(repo, store)

	resp, err := svc.SubmitDeparture(userContext(t, "u1"), attendance.DepartureRequest{
		Description: validDescription,
		Files: []attendance.DepartureFile{
			uploadFile("receipt.jpg", 1024),
			uploadFile("ticket.pdf", 2048),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, string(attendance.StatusDepartPending), resp.Status)
	require.NotNil(t, resp.DepartureAt)
	assert.Equal(t, 4.0, resp.HoursWorked)
	assert.Equal(t, 2.0, resp.HoursOvertime)
	assert.Len(t, resp.Documents, 2)
	assert.Len(t, store.uploaded, 2)
	assert.Empty(t, store.deleted)
	assert.Len(t, repo.documents, 2)
}

func TestSubmitDeparture_NoArrival(t *testing.T) {
	repo := &fakeAttendanceRepo{byUser: map[string]*attendance.Attendance{}}
	svc := newTestService(repo, &fakeStorage{})

	_, err := svc.SubmitDeparture(userContext(t, "u1"), attendance.DepartureRequest{
		Description: validDescription,
		Files:       []attendance.DepartureFile{uploadFile("receipt.jpg", 1024)},
	})
	assert.ErrorIs(t, err, attendance.ErrNoActiveArrival)
}

func TestSubmitDeparture_ArrivalNotApproved(t *testing.T) {
	repo := &fakeAttendanceRepo{byUser: map[string]*attendance.Attendance{
		"u1": {
			ID:        "att-u1",
			UserID:    "u1",
			ArrivalAt: time.Now().Add(-4 * time.Hour),
			Status:    attendance.StatusArrivalPending,
		},
	}}
	svc := newTestService(repo, &fakeStorage{})

	_, err := svc.SubmitDeparture(userContext(t, "u1"), attendance.DepartureRequest{
		Description: validDescription,
		Files:       []attendance.DepartureFile{uploadFile("receipt.jpg", 1024)},
	})
	assert.ErrorIs(t, err, attendance.ErrArrivalNotApproved)
}

func TestSubmitDeparture_AlreadyDeparted(t *testing.T) {
	departure := time.Now().Add(-1 * time.Hour)
	repo := &fakeAttendanceRepo{byUser: map[string]*attendance.Attendance{
		"u1": {
			ID:          "att-u1",
			UserID:      "u1",
			ArrivalAt:   time.Now().Add(-8 * time.Hour),
			DepartureAt: &departure,
			Status:      attendance.StatusDepartPending,
		},
	}}
	svc := newTestService(repo, &fakeStorage{})

	_, err := svc.SubmitDeparture(userContext(t, "u1"), attendance.DepartureRequest{
		Description: validDescription,
		Files:       []attendance.DepartureFile{uploadFile("receipt.jpg", 1024)},
	})
	assert.ErrorIs(t, err, attendance.ErrDepartureAlreadyReported)
}

func TestSubmitDeparture_RequiresDocuments(t *testing.T) {
	svc := newTestService(&fakeAttendanceRepo{byUser: map[string]*attendance.Attendance{}}, &fakeStorage{})

	_, err := svc.SubmitDeparture(userContext(t, "u1"), attendance.DepartureRequest{
		Description: validDescription,
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "justifications", verrs[0].Field)
}

func TestSubmitDeparture_RejectsBadFiles(t *testing.T) {
	svc := newTestService(&fakeAttendanceRepo{byUser: map[string]*attendance.Attendance{}}, &fakeStorage{})
	ctx := userContext(t, "u1")

	_, err := svc.SubmitDeparture(ctx, attendance.DepartureRequest{
		Description: validDescription,
		Files:       []attendance.DepartureFile{uploadFile("malware.exe", 1024)},
	})
	assert.Error(t, err)

	_, err = svc.SubmitDeparture(ctx, attendance.DepartureRequest{
		Description: validDescription,
		Files:       []attendance.DepartureFile{uploadFile("huge.pdf", attendance.MaxDocumentSizeBytes+1)},
	})
	assert.Error(t, err)
}

func TestSubmitDeparture_UploadFailureRollsBack(t *testing.T) {
	repo := &fakeAttendanceRepo{byUser: map[string]*attendance.Attendance{
		"u1": {
			ID:        "att-u1",
			UserID:    "u1",
			ArrivalAt: time.Now().Add(-5 * time.Hour),
			Status:    attendance.StatusArrivalApproved,
		},
	}}
	store := &fakeStorage{failOnCount: 2}
	svc := newTestService(repo, store)

	_, err := svc.SubmitDeparture(userContext(t, "u1"), attendance.DepartureRequest{
		Description: validDescription,
		Files: []attendance.DepartureFile{
			uploadFile("first.jpg", 1024),
			uploadFile("second.jpg", 1024),
		},
	})
	require.Error(t, err)

	// The file stored before the failure is removed again and the record
	// stays open for a retry.
	assert.Equal(t, store.uploaded, store.deleted)
	assert.Equal(t, attendance.StatusArrivalApproved, repo.byUser["u1"].Status)
	assert.Nil(t, repo.byUser["u1"].DepartureAt)
	assert.Empty(t, repo.documents)
}

func TestSubmitDeparture_UpdateFailureRollsBack(t *testing.T) {
	repo := &fakeAttendanceRepo{
		byUser: map[string]*attendance.Attendance{
			"u1": {
				ID:        "att-u1",
				UserID:    "u1",
				ArrivalAt: time.Now().Add(-5 * time.Hour),
				Status:    attendance.StatusArrivalApproved,
			},
		},
		updateErr: errors.New("connection reset"),
	}
	store := &fakeStorage{}
	svc := newTestService(repo, store)

	_, err := svc.SubmitDeparture(userContext(t, "u1"), attendance.DepartureRequest{
		Description: validDescription,
		Files:       []attendance.DepartureFile{uploadFile("first.jpg", 1024)},
	})
	require.Error(t, err)
	assert.Equal(t, store.uploaded, store.deleted)
}

func TestHistory_ScopedToCaller(t *testing.T) {
	repo := &fakeAttendanceRepo{byUser: map[string]*attendance.Attendance{}}
	svc := newTestService(repo, &fakeStorage{})

	other := "someone-else"
	_, err := svc.History(userContext(t, "u1"), attendance.Filter{UserID: &other, Page: 1, Limit: 10})
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter.UserID)
	assert.Equal(t, "u1", *repo.lastFilter.UserID)
}
