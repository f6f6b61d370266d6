// Package export writes balance sheets out to Google Sheets so users
// can share or keep a history of their reconciled numbers.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"akfinance/internal/core"
	"akfinance/internal/ledger"
	"akfinance/internal/log"
)

// Exporter writes a balance sheet to an external destination.
type Exporter interface {
	Export(ctx context.Context, sheet *ledger.BalanceSheet) error
}

// SheetsExporter exports balance sheets to a Google spreadsheet.
type SheetsExporter struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	logger        *log.Logger
}

// NewSheetsExporter creates an exporter for the configured spreadsheet.
// Credentials come from GOOGLE_SERVICE_ACCOUNT_JSON,
// GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS.
func NewSheetsExporter(ctx context.Context, spreadsheetID, sheetName string, logger *log.Logger) (*SheetsExporter, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	if strings.TrimSpace(sheetName) == "" {
		sheetName = "Balance"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &SheetsExporter{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		logger:        logger.WithComponent(log.ComponentExport),
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))

	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// Export clears the target tab and writes the sheet's rows with their
// running balances, followed by a totals block.
func (e *SheetsExporter) Export(ctx context.Context, sheet *ledger.BalanceSheet) error {
	if e.svc == nil {
		return errors.New("sheets service not initialized")
	}

	values := buildRows(sheet)

	clearRange := fmt.Sprintf("%s!A:E", e.sheetName)
	_, err := e.svc.Spreadsheets.Values.Clear(e.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear sheet %s: %w", e.sheetName, err)
	}

	writeRange := fmt.Sprintf("%s!A1", e.sheetName)
	vr := &gsheet.ValueRange{Values: values}
	_, err = e.svc.Spreadsheets.Values.Update(e.spreadsheetID, writeRange, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write sheet %s: %w", e.sheetName, err)
	}

	e.logger.InfoContext(ctx, "exported balance sheet",
		log.FieldSheetID, sheet.ID,
		"rows", len(sheet.Rows()),
		"spreadsheet_id", e.spreadsheetID)

	return nil
}

// buildRows converts a balance sheet into spreadsheet rows. The layout
// is a header row, one row per entry with its running balance, then a
// totals block.
func buildRows(sheet *ledger.BalanceSheet) [][]any {
	annotated := sheet.Reconciled()
	totals := sheet.Totals()

	rows := make([][]any, 0, len(annotated)+6)
	rows = append(rows, []any{"Label", "Kind", "Category", "Amount", "Balance"})

	for _, a := range annotated {
		kind := "Income"
		if a.Entry.Kind == core.Expense {
			kind = "Expense"
		}
		rows = append(rows,
			[]any{a.Entry.Label, kind, a.Entry.Category, core.Round2(a.Entry.Amount), core.Round2(a.RunningBalance)})
	}

	rows = append(rows,
		[]any{},
		[]any{"Starting balance", "", "", "", core.Round2(totals.StartingBalance)},
		[]any{"Total income", "", "", "", core.Round2(totals.Income)},
		[]any{"Total expenses", "", "", "", core.Round2(totals.Expense)},
		[]any{"Final balance", "", "", "", core.Round2(totals.Total)},
		[]any{"Exported", time.Now().Format(time.RFC3339)},
	)
	return rows
}
