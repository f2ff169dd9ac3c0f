package horizon

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// SheetSource reads sheets from a published Google spreadsheet through its CSV
// export.
type SheetSource struct {
	SpreadsheetID string
	Client        *http.Client // http.DefaultClient when nil
	BaseURL       string       // https://docs.google.com when empty
}

// URL returns the CSV export address of a sheet.
func (s SheetSource) URL(sheet string) string {
	base := s.BaseURL
	if base == "" {
		base = "https://docs.google.com"
	}
	return fmt.Sprintf("%s/spreadsheets/d/%s/gviz/tq?tqx=out:csv&sheet=%s", base, url.PathEscape(s.SpreadsheetID), url.QueryEscape(sheet))
}

func (s SheetSource) Records(ctx context.Context, sheet string) ([]Record, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL(sheet), nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return DecodeRecords(string(content)), nil
}
