package http

import (
	"net/http"
	"strconv"

	"github.com/boris2442/task-bml/internal/domain/attendance"
	"github.com/boris2442/task-bml/internal/domain/user"
)

func queryString(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

func queryInt(r *http.Request, key string) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}

func attendanceFilterFromQuery(r *http.Request) attendance.Filter {
	return attendance.Filter{
		UserID:    queryString(r, "user_id"),
		Date:      queryString(r, "date"),
		StartDate: queryString(r, "start_date"),
		EndDate:   queryString(r, "end_date"),
		Status:    queryString(r, "status"),
		Page:      queryInt(r, "page"),
		Limit:     queryInt(r, "limit"),
	}
}

func userFilterFromQuery(r *http.Request) user.ListFilter {
	return user.ListFilter{
		Search: queryString(r, "search"),
		Role:   queryString(r, "role"),
		Page:   queryInt(r, "page"),
		Limit:  queryInt(r, "limit"),
	}
}
