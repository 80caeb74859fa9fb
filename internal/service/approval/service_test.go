package approval

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boris2442/task-bml/internal/domain/approval"
	"github.com/boris2442/task-bml/internal/domain/attendance"
)

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	records map[string]*attendance.Attendance
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	rec, ok := f.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return *rec, nil
}

func (f *fakeAttendanceRepo) UpdateStatusIf(ctx context.Context, id string, from, to attendance.Status) (bool, error) {
	rec, ok := f.records[id]
	if !ok || rec.Status != from {
		return false, nil
	}
	rec.Status = to
	return true, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) error {
	f.records[att.ID] = &att
	return nil
}

func (f *fakeAttendanceRepo) ListDocuments(ctx context.Context, attendanceID string) ([]attendance.Document, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) CountByStatus(ctx context.Context, statuses []attendance.Status) (int64, error) {
	var count int64
	for _, rec := range f.records {
		for _, s := range statuses {
			if rec.Status == s {
				count++
			}
		}
	}
	return count, nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, int64, error) {
	result := make([]attendance.Attendance, 0)
	for _, rec := range f.records {
		if len(filter.Statuses) > 0 {
			match := false
			for _, s := range filter.Statuses {
				if rec.Status == s {
					match = true
				}
			}
			if !match {
				continue
			}
		}
		result = append(result, *rec)
	}
	return result, int64(len(result)), nil
}

type fakeApprovalRepo struct {
	entries []approval.Approval
}

func (f *fakeApprovalRepo) Create(ctx context.Context, a approval.Approval) (approval.Approval, error) {
	a.ID = "ap-" + a.AttendanceID
	a.CreatedAt = time.Now()
	f.entries = append(f.entries, a)
	return a, nil
}

func (f *fakeApprovalRepo) ListByAttendance(ctx context.Context, attendanceID string) ([]approval.Approval, error) {
	result := make([]approval.Approval, 0)
	for _, e := range f.entries {
		if e.AttendanceID == attendanceID {
			result = append(result, e)
		}
	}
	return result, nil
}

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func adminContext(t *testing.T) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{"user_id": "admin-1", "role": "admin"})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func record(id string, status attendance.Status) *attendance.Attendance {
	arrival := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return &attendance.Attendance{
		ID:        id,
		UserID:    "u1",
		Date:      time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		ArrivalAt: arrival,
		Status:    status,
	}
}

func TestApproveArrival(t *testing.T) {
	repo := &fakeAttendanceRepo{records: map[string]*attendance.Attendance{
		"a1": record("a1", attendance.StatusArrivalPending),
	}}
	approvals := &fakeApprovalRepo{}
	svc := NewApprovalService(repo, approvals, passthroughTx{})

	result, err := svc.ApproveArrival(adminContext(t), "a1")
	require.NoError(t, err)

	assert.Equal(t, string(attendance.StatusArrivalApproved), result.Status)
	require.Len(t, approvals.entries, 1)
	assert.Equal(t, approval.TypeArrival, approvals.entries[0].Type)
	assert.Equal(t, approval.OutcomeApproved, approvals.entries[0].Outcome)
	assert.Equal(t, "admin-1", approvals.entries[0].AdminID)
}

func TestApproveDeparture_FromArrivalPendingIsRejected(t *testing.T) {
	repo := &fakeAttendanceRepo{records: map[string]*attendance.Attendance{
		"a1": record("a1", attendance.StatusArrivalPending),
	}}
	approvals := &fakeApprovalRepo{}
	svc := NewApprovalService(repo, approvals, passthroughTx{})

	_, err := svc.ApproveDeparture(adminContext(t), "a1")
	assert.ErrorIs(t, err, approval.ErrIllegalTransition)

	// Status unchanged, no audit entry written
	assert.Equal(t, attendance.StatusArrivalPending, repo.records["a1"].Status)
	assert.Empty(t, approvals.entries)
}

func TestApproveArrival_NotFound(t *testing.T) {
	repo := &fakeAttendanceRepo{records: map[string]*attendance.Attendance{}}
	svc := NewApprovalService(repo, &fakeApprovalRepo{}, passthroughTx{})

	_, err := svc.ApproveArrival(adminContext(t), "missing")
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestReject_RequiresComment(t *testing.T) {
	repo := &fakeAttendanceRepo{records: map[string]*attendance.Attendance{
		"a1": record("a1", attendance.StatusArrivalPending),
	}}
	svc := NewApprovalService(repo, &fakeApprovalRepo{}, passthroughTx{})

	_, err := svc.Reject(adminContext(t), approval.RejectRequest{
		AttendanceID: "a1",
		Comment:      "too short",
	})
	require.Error(t, err)
	assert.Equal(t, attendance.StatusArrivalPending, repo.records["a1"].Status)
}

func TestReject_RecordsTypeFromLeavingState(t *testing.T) {
	repo := &fakeAttendanceRepo{records: map[string]*attendance.Attendance{
		"a1": record("a1", attendance.StatusDepartPending),
	}}
	approvals := &fakeApprovalRepo{}
	svc := NewApprovalService(repo, approvals, passthroughTx{})

	result, err := svc.Reject(adminContext(t), approval.RejectRequest{
		AttendanceID: "a1",
		Comment:      "documents are unreadable",
	})
	require.NoError(t, err)

	assert.Equal(t, string(attendance.StatusRejected), result.Status)
	require.Len(t, approvals.entries, 1)
	assert.Equal(t, approval.TypeDepartureDocuments, approvals.entries[0].Type)
	assert.Equal(t, approval.OutcomeRejected, approvals.entries[0].Outcome)
	require.NotNil(t, approvals.entries[0].Comment)
	assert.Equal(t, "documents are unreadable", *approvals.entries[0].Comment)
}

func TestReject_TerminalStateIsIllegal(t *testing.T) {
	repo := &fakeAttendanceRepo{records: map[string]*attendance.Attendance{
		"a1": record("a1", attendance.StatusValidated),
	}}
	svc := NewApprovalService(repo, &fakeApprovalRepo{}, passthroughTx{})

	_, err := svc.Reject(adminContext(t), approval.RejectRequest{
		AttendanceID: "a1",
		Comment:      "should not be possible",
	})
	assert.ErrorIs(t, err, approval.ErrIllegalTransition)
}

func TestBatch_SkipsNonMatchingRecords(t *testing.T) {
	repo := &fakeAttendanceRepo{records: map[string]*attendance.Attendance{
		"a1": record("a1", attendance.StatusArrivalPending),
		"a2": record("a2", attendance.StatusValidated),
		"a3": record("a3", attendance.StatusArrivalPending),
	}}
	approvals := &fakeApprovalRepo{}
	svc := NewApprovalService(repo, approvals, passthroughTx{})

	result, err := svc.Batch(adminContext(t), approval.BatchRequest{
		IDs:    []string{"a1", "a2", "a3"},
		Action: string(approval.BatchApproveArrival),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, attendance.StatusArrivalApproved, repo.records["a1"].Status)
	assert.Equal(t, attendance.StatusValidated, repo.records["a2"].Status)
	assert.Equal(t, attendance.StatusArrivalApproved, repo.records["a3"].Status)
	assert.Len(t, approvals.entries, 2)
}

func TestBatch_RejectCarriesSharedMotive(t *testing.T) {
	repo := &fakeAttendanceRepo{records: map[string]*attendance.Attendance{
		"a1": record("a1", attendance.StatusArrivalPending),
		"a2": record("a2", attendance.StatusDepartPending),
	}}
	approvals := &fakeApprovalRepo{}
	svc := NewApprovalService(repo, approvals, passthroughTx{})

	motive := "shift cancelled"
	result, err := svc.Batch(adminContext(t), approval.BatchRequest{
		IDs:    []string{"a1", "a2"},
		Action: string(approval.BatchReject),
		Motive: &motive,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, attendance.StatusRejected, repo.records["a1"].Status)
	assert.Equal(t, attendance.StatusRejected, repo.records["a2"].Status)
	require.Len(t, approvals.entries, 2)
	for _, e := range approvals.entries {
		require.NotNil(t, e.Comment)
		assert.Equal(t, motive, *e.Comment)
	}
}

func TestBatch_ValidationErrors(t *testing.T) {
	svc := NewApprovalService(&fakeAttendanceRepo{records: map[string]*attendance.Attendance{}}, &fakeApprovalRepo{}, passthroughTx{})

	_, err := svc.Batch(adminContext(t), approval.BatchRequest{
		IDs:    nil,
		Action: string(approval.BatchApproveArrival),
	})
	assert.Error(t, err)

	_, err = svc.Batch(adminContext(t), approval.BatchRequest{
		IDs:    []string{"a1"},
		Action: "explode",
	})
	assert.Error(t, err)
}

func TestTrail(t *testing.T) {
	repo := &fakeAttendanceRepo{records: map[string]*attendance.Attendance{
		"a1": record("a1", attendance.StatusDepartPending),
	}}
	approvals := &fakeApprovalRepo{}
	svc := NewApprovalService(repo, approvals, passthroughTx{})

	ctx := adminContext(t)
	_, err := svc.ApproveDeparture(ctx, "a1")
	require.NoError(t, err)

	trail, err := svc.Trail(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, string(approval.TypeDepartureDocuments), trail[0].Type)
	assert.Equal(t, string(approval.OutcomeApproved), trail[0].Outcome)
}
