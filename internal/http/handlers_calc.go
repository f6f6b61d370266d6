package http

import (
	"fmt"
	"net/http"

	"akfinance/internal/core"
	"akfinance/internal/services"
)

func (s *Server) handleMortgage(w http.ResponseWriter, r *http.Request) {
	var in services.MortgageInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, fmt.Errorf("%w: %v", core.ErrInvalidInput, err))
		return
	}

	res, err := s.calc.Mortgage(in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCredit(w http.ResponseWriter, r *http.Request) {
	var in services.CreditInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, fmt.Errorf("%w: %v", core.ErrInvalidInput, err))
		return
	}

	res, err := s.calc.Credit(in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleInvestment(w http.ResponseWriter, r *http.Request) {
	var in services.InvestmentInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, fmt.Errorf("%w: %v", core.ErrInvalidInput, err))
		return
	}

	res, err := s.calc.Investment(in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
