package http

import (
	"fmt"
	"net/http"

	"akfinance/internal/core"
	"akfinance/internal/ledger"
)

// rowRequest carries row fields over the wire. Amount arrives as a
// string so both comma and dot decimal separators are accepted.
type rowRequest struct {
	Label    *string `json:"label"`
	Kind     *string `json:"kind"`
	Amount   *string `json:"amount"`
	Category *string `json:"category"`
}

type sheetResponse struct {
	ID              string               `json:"id"`
	StartingBalance float64              `json:"startingBalance"`
	Rows            []core.CashFlowEntry `json:"rows"`
}

func sheetToResponse(sheet *ledger.BalanceSheet) sheetResponse {
	return sheetResponse{
		ID:              sheet.ID,
		StartingBalance: sheet.StartingBalance,
		Rows:            sheet.Rows(),
	}
}

func (s *Server) handleCreateSheet(w http.ResponseWriter, r *http.Request) {
	sheet, err := s.sheetSvc.CreateSheet()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sheetToResponse(sheet))
}

func (s *Server) handleListSheets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"sheets": s.sheetSvc.ListSheets()})
}

func (s *Server) handleGetSheet(w http.ResponseWriter, r *http.Request) {
	sheet, err := s.sheetSvc.Sheet(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sheetToResponse(sheet))
}

func (s *Server) handleDeleteSheet(w http.ResponseWriter, r *http.Request) {
	if err := s.sheetSvc.DeleteSheet(r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddRow(w http.ResponseWriter, r *http.Request) {
	var req rowRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", core.ErrInvalidInput, err))
		return
	}

	entry := core.CashFlowEntry{}
	if req.Label != nil {
		entry.Label = *req.Label
	}
	if req.Kind != nil {
		entry.Kind = core.EntryKind(*req.Kind)
	}
	if req.Category != nil {
		entry.Category = *req.Category
	}
	if req.Amount != nil {
		amount, err := core.ParseAmount(*req.Amount)
		if err != nil {
			writeError(w, err)
			return
		}
		entry.Amount = amount
	}

	rowID, err := s.sheetSvc.AddRow(r.PathValue("id"), entry)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": rowID})
}

func (s *Server) handleUpdateRow(w http.ResponseWriter, r *http.Request) {
	var req rowRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", core.ErrInvalidInput, err))
		return
	}

	var updates []ledger.Update
	if req.Label != nil {
		updates = append(updates, ledger.SetLabel(*req.Label))
	}
	if req.Kind != nil {
		updates = append(updates, ledger.SetKind(core.EntryKind(*req.Kind)))
	}
	if req.Category != nil {
		updates = append(updates, ledger.SetCategory(*req.Category))
	}
	if req.Amount != nil {
		amount, err := core.ParseAmount(*req.Amount)
		if err != nil {
			writeError(w, err)
			return
		}
		updates = append(updates, ledger.SetAmount(amount))
	}
	if len(updates) == 0 {
		writeError(w, fmt.Errorf("%w: no fields to update", core.ErrInvalidInput))
		return
	}

	if err := s.sheetSvc.UpdateRow(r.PathValue("id"), r.PathValue("rowID"), updates...); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteRow(w http.ResponseWriter, r *http.Request) {
	if err := s.sheetSvc.DeleteRow(r.PathValue("id"), r.PathValue("rowID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSheetBalance(w http.ResponseWriter, r *http.Request) {
	annotated, totals, err := s.sheetSvc.Reconciled(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"rows":   annotated,
		"totals": totals,
	})
}

func (s *Server) handleSetStartingBalance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartingBalance *string `json:"startingBalance"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, fmt.Errorf("%w: %v", core.ErrInvalidInput, err))
		return
	}
	if req.StartingBalance == nil {
		writeError(w, fmt.Errorf("%w: startingBalance is required", core.ErrInvalidInput))
		return
	}

	balance, err := core.ParseSignedAmount(*req.StartingBalance)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.sheetSvc.SetStartingBalance(r.PathValue("id"), balance); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExportSheet(w http.ResponseWriter, r *http.Request) {
	if err := s.sheetSvc.Export(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "exported"})
}
