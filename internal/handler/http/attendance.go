package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/boris2442/task-bml/internal/domain/attendance"
	"github.com/boris2442/task-bml/internal/handler/http/response"
)

// maxDepartureFormSize bounds the whole multipart departure submission.
const maxDepartureFormSize = 32 << 20

type AttendanceHandler interface {
	SubmitArrival(w http.ResponseWriter, r *http.Request)
	SubmitDeparture(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// SubmitArrival implements AttendanceHandler.
func (h *AttendanceHandlerImpl) SubmitArrival(w http.ResponseWriter, r *http.Request) {
	var req attendance.ArrivalRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SubmitArrival decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.SubmitArrival(r.Context(), req)
	if err != nil {
		slog.Error("SubmitArrival service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Arrival reported, awaiting approval", result)
}

// SubmitDeparture implements AttendanceHandler. The request is multipart:
// a "description" field plus one or more "justifications" files.
func (h *AttendanceHandlerImpl) SubmitDeparture(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxDepartureFormSize); err != nil {
		slog.Error("SubmitDeparture multipart error", "error", err)
		response.BadRequest(w, "Invalid multipart request", nil)
		return
	}

	req := attendance.DepartureRequest{
		Description: r.FormValue("description"),
	}

	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["justifications"] {
			f, err := header.Open()
			if err != nil {
				slog.Error("SubmitDeparture file open error", "file", header.Filename, "error", err)
				response.BadRequest(w, "Failed to read uploaded file", nil)
				return
			}
			defer f.Close()
			req.Files = append(req.Files, attendance.DepartureFile{File: f, Header: header})
		}
	}

	result, err := h.attendanceService.SubmitDeparture(r.Context(), req)
	if err != nil {
		slog.Error("SubmitDeparture service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Departure reported, awaiting validation", result)
}

// History implements AttendanceHandler.
func (h *AttendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	filter := attendanceFilterFromQuery(r)

	result, err := h.attendanceService.History(r.Context(), filter)
	if err != nil {
		slog.Error("History service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Attendances, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}
