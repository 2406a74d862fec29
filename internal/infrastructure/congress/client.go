// Package congress implements the BillSource port against the
// Congress.gov v3 API.
package congress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/b1tburn3r20/speakup-ingest/internal/domain"
	"github.com/b1tburn3r20/speakup-ingest/internal/ports"
)

// Client fetches bill resources from api.congress.gov. It never
// retries: a non-success status surfaces as an error and the pipeline
// counts the resource as failed.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *slog.Logger
}

var _ ports.BillSource = (*Client)(nil)

// NewClient wires an HTTP client; client defaults to a 20s timeout.
func NewClient(baseURL, apiKey string, client *http.Client, logger *slog.Logger) *Client {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
		logger:  logger,
	}
}

// LatestBills fetches the bill listing for one congress.
func (c *Client) LatestBills(ctx context.Context, congress int) ([]domain.BillRef, error) {
	var payload billListPayload
	if err := c.getJSON(ctx, fmt.Sprintf("/v3/bill/%d", congress), &payload); err != nil {
		return nil, err
	}

	refs := make([]domain.BillRef, 0, len(payload.Bills))
	for _, bill := range payload.Bills {
		refs = append(refs, domain.BillRef{Congress: bill.Congress, Type: bill.Type, Number: bill.Number})
	}
	return refs, nil
}

// BillDetail fetches the full record for one bill.
func (c *Client) BillDetail(ctx context.Context, ref domain.BillRef) (*domain.BillRecord, error) {
	var payload billDetailPayload
	if err := c.getJSON(ctx, c.billPath(ref, ""), &payload); err != nil {
		return nil, err
	}
	if payload.Bill == nil {
		return nil, fmt.Errorf("no bill data in response for %d/%s/%s", ref.Congress, ref.Type, ref.Number)
	}

	return &domain.BillRecord{
		Congress:       payload.Bill.Congress,
		Type:           payload.Bill.Type,
		Number:         payload.Bill.Number,
		Title:          payload.Bill.Title,
		URL:            payload.Bill.URL,
		IntroducedDate: payload.Bill.IntroducedDate,
	}, nil
}

// BillActions fetches the action list for one bill.
func (c *Client) BillActions(ctx context.Context, ref domain.BillRef) ([]domain.ActionRecord, error) {
	var payload actionsPayload
	if err := c.getJSON(ctx, c.billPath(ref, "/actions"), &payload); err != nil {
		return nil, err
	}

	entries := make([]domain.ActionRecord, 0, len(payload.Actions))
	for _, action := range payload.Actions {
		entries = append(entries, domain.ActionRecord{
			ActionDate: action.ActionDate,
			Text:       action.Text,
			Type:       action.Type,
			ActionCode: action.ActionCode,
		})
	}
	return entries, nil
}

// BillSummaries fetches the summary versions for one bill.
func (c *Client) BillSummaries(ctx context.Context, ref domain.BillRef) ([]domain.SummaryRecord, error) {
	var payload summariesPayload
	if err := c.getJSON(ctx, c.billPath(ref, "/summaries"), &payload); err != nil {
		return nil, err
	}

	entries := make([]domain.SummaryRecord, 0, len(payload.Summaries))
	for _, summary := range payload.Summaries {
		entries = append(entries, domain.SummaryRecord{
			ActionDate:  summary.ActionDate,
			ActionDesc:  summary.ActionDesc,
			Text:        summary.Text,
			UpdateDate:  summary.UpdateDate,
			VersionCode: summary.VersionCode,
		})
	}
	return entries, nil
}

// RelatedBills fetches the related-bill list and reports its size.
func (c *Client) RelatedBills(ctx context.Context, ref domain.BillRef) (int, error) {
	var payload relatedBillsPayload
	if err := c.getJSON(ctx, c.billPath(ref, "/relatedbills"), &payload); err != nil {
		return 0, err
	}
	return len(payload.RelatedBills), nil
}

// Cosponsors fetches the cosponsor list and reports its size.
func (c *Client) Cosponsors(ctx context.Context, ref domain.BillRef) (int, error) {
	var payload cosponsorsPayload
	if err := c.getJSON(ctx, c.billPath(ref, "/cosponsors"), &payload); err != nil {
		return 0, err
	}
	return len(payload.Cosponsors), nil
}

// billPath builds a per-bill endpoint path. The API accepts the subtype
// lower-cased here, which is why key derivation normalizes casing.
func (c *Client) billPath(ref domain.BillRef, suffix string) string {
	return fmt.Sprintf("/v3/bill/%d/%s/%s%s", ref.Congress, strings.ToLower(ref.Type), ref.Number, suffix)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("build url %s: %w", path, err)
	}

	query := endpoint.Query()
	query.Set("api_key", c.apiKey)
	query.Set("format", "json")
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "speakup-ingest/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("congress api returned %s for %s", resp.Status, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
