package sheets

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

// Client replaces the contents of one worksheet with the given rows. The
// interface keeps the sync testable without a live spreadsheet.
type Client interface {
	Replace(ctx context.Context, worksheet string, rows [][]string) error
}

// GoogleClient talks to a real Google spreadsheet.
type GoogleClient struct {
	svc           *sheetsv4.Service
	spreadsheetID string
}

// NewGoogleClient builds a client from a service-account credentials file.
func NewGoogleClient(ctx context.Context, credentialsFile, spreadsheetID string) (*GoogleClient, error) {
	svc, err := sheetsv4.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &GoogleClient{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// Replace clears the worksheet and writes the rows, retrying transient API
// failures with a backoff.
func (c *GoogleClient) Replace(ctx context.Context, worksheet string, rows [][]string) error {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		values[i] = cells
	}

	err := retry.Do(
		func() error {
			_, err := c.svc.Spreadsheets.Values.
				Clear(c.spreadsheetID, worksheet, &sheetsv4.ClearValuesRequest{}).
				Context(ctx).
				Do()
			if err != nil {
				return err
			}

			_, err = c.svc.Spreadsheets.Values.
				Update(c.spreadsheetID, worksheet, &sheetsv4.ValueRange{Values: values}).
				ValueInputOption("RAW").
				Context(ctx).
				Do()
			return err
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(2*time.Second),
		retry.DelayType(retry.BackOffDelay),
	)
	return errors.WithStack(err)
}
