package http

import (
	"fmt"
	"net/http"

	"akfinance/internal/core"
	"akfinance/internal/settings"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	current, err := s.store.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, current)
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var in settings.Settings
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, fmt.Errorf("%w: %v", core.ErrInvalidInput, err))
		return
	}

	if err := in.Validate(); err != nil {
		writeError(w, fmt.Errorf("%w: %v", core.ErrInvalidInput, err))
		return
	}
	if err := s.store.Save(r.Context(), in); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, in)
}
