package sheet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client implements Store against a single Google spreadsheet. Each
// table name maps to one sheet (tab) inside the spreadsheet. Every
// remote call is bounded by a request timeout and retried once on a
// transient failure; the spreadsheet itself serializes appends, so no
// further coordination is needed.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
	timeout       time.Duration
}

// New builds a Client authenticated with a service-account credential
// file. When credentialsFile is empty, Application Default
// Credentials are used instead.
func New(ctx context.Context, credentialsFile, spreadsheetID string, timeout time.Duration) (*Client, error) {
	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID, timeout: timeout}, nil
}

// ReadAll fetches the whole table, first row as header. An empty or
// header-only sheet returns a zero Table.
func (c *Client) ReadAll(ctx context.Context, table string) (Table, error) {
	var resp *sheets.ValueRange
	err := c.call(ctx, func(ctx context.Context) error {
		var err error
		resp, err = c.svc.Spreadsheets.Values.Get(c.spreadsheetID, table).Context(ctx).Do()
		return err
	})
	if err != nil {
		return Table{}, fmt.Errorf("read %s: %w", table, err)
	}
	if len(resp.Values) == 0 {
		return Table{}, nil
	}
	t := Table{Header: toStrings(resp.Values[0])}
	for _, raw := range resp.Values[1:] {
		t.Rows = append(t.Rows, toStrings(raw))
	}
	return t, nil
}

// Append adds one row after the table's current data region.
func (c *Client) Append(ctx context.Context, table string, row []string) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{toValues(row)}}
	err := c.call(ctx, func(ctx context.Context) error {
		_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, table, vr).
			ValueInputOption("RAW").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("append to %s: %w", table, err)
	}
	return nil
}

// UpdateCell writes one cell addressed by data-row index and column
// name. The header is re-read so the column position reflects the
// sheet as it is now, not as it was at startup.
func (c *Client) UpdateCell(ctx context.Context, table string, rowIndex int, column, value string) error {
	var resp *sheets.ValueRange
	err := c.call(ctx, func(ctx context.Context) error {
		var err error
		resp, err = c.svc.Spreadsheets.Values.Get(c.spreadsheetID, fmt.Sprintf("%s!1:1", table)).Context(ctx).Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("read %s header: %w", table, err)
	}
	col := -1
	if len(resp.Values) > 0 {
		for i, h := range toStrings(resp.Values[0]) {
			if h == column {
				col = i
				break
			}
		}
	}
	if col < 0 {
		return &SchemaError{Table: table, Column: column}
	}

	// Data rows start at sheet row 2; row 1 is the header.
	cell := fmt.Sprintf("%s!%s%d", table, colLabel(col), rowIndex+2)
	vr := &sheets.ValueRange{Values: [][]interface{}{{value}}}
	err = c.call(ctx, func(ctx context.Context) error {
		_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, cell, vr).
			ValueInputOption("RAW").
			Context(ctx).Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("update %s: %w", cell, err)
	}
	return nil
}

// call runs op under the request timeout and retries exactly once
// when the failure looks transient (server-side or transport level).
func (c *Client) call(ctx context.Context, op func(ctx context.Context) error) error {
	run := func() error {
		cctx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()
		return op(cctx)
	}
	err := run()
	if err == nil || !transient(err) || ctx.Err() != nil {
		return err
	}
	return run()
}

// transient reports whether an error is worth a single retry: API
// 5xx/429 responses, request timeouts and plain transport failures
// qualify; 4xx responses and caller cancellation do not.
func transient(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == 429 || gerr.Code >= 500
	}
	return !errors.Is(err, context.Canceled)
}

// colLabel converts a zero-based column index to its A1 letter label
// (0 -> A, 25 -> Z, 26 -> AA).
func colLabel(i int) string {
	label := ""
	for i >= 0 {
		label = string(rune('A'+i%26)) + label
		i = i/26 - 1
	}
	return label
}

func toStrings(raw []interface{}) []string {
	out := make([]string, len(raw))
	for i, v := range raw {
		out[i] = fmt.Sprint(v)
	}
	return out
}

func toValues(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, v := range row {
		out[i] = v
	}
	return out
}
