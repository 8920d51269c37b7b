// Package sheets mirrors tickets into a Google Sheet. The mirror is
// best-effort: the local store stays authoritative and every operation
// here may fail without affecting it.
package sheets

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/vaychinnakhet-arch/canetrack/internal/config"
	"github.com/vaychinnakhet-arch/canetrack/internal/domain/models"
)

// GoogleSheetMirror pushes and pulls ticket rows using the official Google
// Sheets API.
type GoogleSheetMirror struct {
	service       *sheetsapi.Service
	spreadsheetID string
	dataRange     string
	sheetName     string
	logger        *zap.Logger
}

// NewGoogleSheetMirror builds a Google Sheets backed mirror instance.
func NewGoogleSheetMirror(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetMirror, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	sheetName := cfg.DataRange
	if i := strings.Index(sheetName, "!"); i >= 0 {
		sheetName = sheetName[:i]
	}

	return &GoogleSheetMirror{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		dataRange:     cfg.DataRange,
		sheetName:     sheetName,
		logger:        logger,
	}, nil
}

// AppendTicket appends one ticket row to the mirror sheet.
func (m *GoogleSheetMirror) AppendTicket(ctx context.Context, t models.CaneTicket) error {
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{ticketRow(t)}}

	call := m.service.Spreadsheets.Values.Append(m.spreadsheetID, m.dataRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append ticket %s: %w", t.ID, err)
	}

	m.logger.Debug("ticket row appended", zap.String("ticket_id", t.ID))
	return nil
}

// UpdateTicket rewrites the mirror row whose id column matches t.ID.
func (m *GoogleSheetMirror) UpdateTicket(ctx context.Context, t models.CaneTicket) error {
	rowIdx, err := m.findRow(ctx, colID, t.ID)
	if err != nil {
		return err
	}

	target := fmt.Sprintf("%s!A%d:Q%d", m.sheetName, rowIdx, rowIdx)
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{ticketRow(t)}}

	call := m.service.Spreadsheets.Values.Update(m.spreadsheetID, target, payload).
		ValueInputOption("USER_ENTERED").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("update ticket row %s: %w", t.ID, err)
	}

	m.logger.Debug("ticket row updated", zap.String("ticket_id", t.ID), zap.Int("row", rowIdx))
	return nil
}

// DeleteTicket clears the mirror row matching the ticket number.
func (m *GoogleSheetMirror) DeleteTicket(ctx context.Context, ticketNumber string) error {
	rowIdx, err := m.findRow(ctx, colTicketNumber, strings.TrimSpace(ticketNumber))
	if err != nil {
		return err
	}

	target := fmt.Sprintf("%s!A%d:Q%d", m.sheetName, rowIdx, rowIdx)
	call := m.service.Spreadsheets.Values.Clear(m.spreadsheetID, target, &sheetsapi.ClearValuesRequest{}).Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("clear ticket row %s: %w", ticketNumber, err)
	}

	m.logger.Debug("ticket row cleared", zap.String("ticket_number", ticketNumber), zap.Int("row", rowIdx))
	return nil
}

// FetchTickets reads every mirror row back as tickets, coercing the loose
// spreadsheet values into the local shape.
func (m *GoogleSheetMirror) FetchTickets(ctx context.Context) ([]models.CaneTicket, error) {
	rows, err := m.readAll(ctx)
	if err != nil {
		return nil, err
	}

	tickets := make([]models.CaneTicket, 0, len(rows))
	for i, row := range rows {
		if i == 0 && isHeaderRow(row) {
			continue
		}
		t, ok := parseTicketRow(row, i)
		if !ok {
			m.logger.Debug("skip unparsable sheet row", zap.Int("row", i))
			continue
		}
		tickets = append(tickets, t)
	}
	return tickets, nil
}

func (m *GoogleSheetMirror) readAll(ctx context.Context) ([][]interface{}, error) {
	resp, err := m.service.Spreadsheets.Values.Get(m.spreadsheetID, m.dataRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", m.dataRange, err)
	}
	return resp.Values, nil
}

// findRow locates the 1-based sheet row whose cell in column col equals
// value.
func (m *GoogleSheetMirror) findRow(ctx context.Context, col int, value string) (int, error) {
	rows, err := m.readAll(ctx)
	if err != nil {
		return 0, err
	}

	for i, row := range rows {
		if len(row) <= col {
			continue
		}
		if strings.TrimSpace(fmt.Sprint(row[col])) == value {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("no mirror row matches %q", value)
}
