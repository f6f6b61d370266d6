package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"akfinance/internal/core"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func (s *Server) handleLedgerPage(w http.ResponseWriter, r *http.Request) {
	page, size, err := parsePaging(r, s.pageSize)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.ledgers.Page(r.Context(), page, size)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func parsePaging(r *http.Request, defaultSize int) (page, size int, err error) {
	page = 0
	size = defaultSize

	if v := strings.TrimSpace(r.URL.Query().Get("page")); v != "" {
		page, err = strconv.Atoi(v)
		if err != nil || page < 0 {
			return 0, 0, fmt.Errorf("%w: page must be a non-negative integer", core.ErrInvalidInput)
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("size")); v != "" {
		size, err = strconv.Atoi(v)
		if err != nil || size < 1 || size > maxPageSize {
			return 0, 0, fmt.Errorf("%w: size must be between 1 and %d", core.ErrInvalidInput, maxPageSize)
		}
	}
	return page, size, nil
}
