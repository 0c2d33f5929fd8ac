// Package sheets publishes account statements to a Google spreadsheet.
package sheets

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2/google"
	gsheet "google.golang.org/api/sheets/v4"
	goption "google.golang.org/api/option"

	"github.com/SscSPs/smart_wallet/internal/core/domain"
	portsrepo "github.com/SscSPs/smart_wallet/internal/core/ports/repositories"
)

var header = []any{"التاريخ", "الوصف", "النوع", "المبلغ", "العملة"}

// Client writes every exported statement into a new tab of one spreadsheet.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	now           func() time.Time
}

var _ portsrepo.StatementExporter = (*Client)(nil)

// NewFromServiceAccountFile authenticates with a service account key file.
func NewFromServiceAccountFile(ctx context.Context, spreadsheetID, path string) (*Client, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read service account file: %w", err)
	}
	creds, err := google.CredentialsFromJSON(ctx, raw, gsheet.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account credentials: %w", err)
	}
	return New(ctx, spreadsheetID, goption.WithCredentials(creds))
}

// New creates a client with explicit client options.
func New(ctx context.Context, spreadsheetID string, opts ...goption.ClientOption) (*Client, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id cannot be empty")
	}
	svc, err := gsheet.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID, now: time.Now}, nil
}

// Export adds a tab named after the account and the export time, then fills it.
// The returned reference is the A1 range that was written.
func (c *Client) Export(ctx context.Context, stmt domain.Statement) (string, error) {
	title := fmt.Sprintf("%s %s", stmt.AccountName, c.now().Format("2006-01-02 15.04.05"))

	add := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			AddSheet: &gsheet.AddSheetRequest{
				Properties: &gsheet.SheetProperties{Title: title, RightToLeft: true},
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, add).Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("add sheet %q: %w", title, err)
	}

	values := make([][]any, 0, len(stmt.Rows)+1)
	values = append(values, header)
	for _, row := range stmt.Rows {
		values = append(values, []any{
			row.Date.Format(time.DateOnly),
			row.Description,
			row.TypeLabel,
			row.Amount.String(),
			row.CurrencySymbol,
		})
	}

	writeRange := fmt.Sprintf("'%s'!A1:E%d", title, len(values))
	resp, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, writeRange, &gsheet.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("write statement to %s: %w", writeRange, err)
	}
	if resp.UpdatedRange != "" {
		return resp.UpdatedRange, nil
	}
	return writeRange, nil
}
