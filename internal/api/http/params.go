package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

func pathID(r *http.Request, name string) int32 {
	return pathIDFromString(mux.Vars(r)[name])
}

func pathIDFromString(raw string) int32 {
	id, _ := strconv.ParseInt(raw, 10, 32)
	return int32(id)
}

func paging(r *http.Request) (page, pageSize int32) {
	page, pageSize = 1, 50
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32); err == nil && v > 0 {
		pageSize = int32(v)
	}
	return page, pageSize
}

func timeParam(r *http.Request, name string) *time.Time {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	return nil
}

type pagedResponse struct {
	Items any   `json:"items"`
	Total int32 `json:"total"`
	Page  int32 `json:"page"`
}
