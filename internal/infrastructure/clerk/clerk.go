// Package clerk implements the VoteSource port against the House
// Clerk's electronic vote system: an HTML index page listing the year's
// roll calls, and one XML document per roll.
package clerk

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/b1tburn3r20/speakup-ingest/internal/domain"
	"github.com/b1tburn3r20/speakup-ingest/internal/ports"
)

var rollLinkExpr = regexp.MustCompile(`roll(\d+)\.xml$`)

// Client scans the clerk site for roll calls and fetches them.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

var _ ports.VoteSource = (*Client)(nil)

// NewClient wires an HTTP client; client defaults to a 20s timeout.
func NewClient(baseURL string, client *http.Client, logger *slog.Logger) *Client {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

// RollCalls scans the index page for one year and returns every roll
// number it links, ascending and deduplicated.
func (c *Client) RollCalls(ctx context.Context, year int) ([]domain.RollCallRef, error) {
	indexURL := fmt.Sprintf("%s/evs/%d/index.asp", c.baseURL, year)
	doc, err := c.fetchDocument(ctx, indexURL)
	if err != nil {
		return nil, fmt.Errorf("roll index %d: %w", year, err)
	}

	seen := map[int]struct{}{}
	var refs []domain.RollCallRef
	doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		match := rollLinkExpr.FindStringSubmatch(href)
		if match == nil {
			return
		}
		roll, err := strconv.Atoi(match[1])
		if err != nil || roll == 0 {
			return
		}
		if _, ok := seen[roll]; ok {
			return
		}
		seen[roll] = struct{}{}
		refs = append(refs, domain.RollCallRef{Year: year, RollNumber: roll})
	})

	sort.Slice(refs, func(i, j int) bool { return refs[i].RollNumber < refs[j].RollNumber })
	c.logger.Debug("scanned roll index", "year", year, "rolls", len(refs))
	return refs, nil
}

// RollCall fetches and decodes one roll-call XML document.
func (c *Client) RollCall(ctx context.Context, ref domain.RollCallRef) (*domain.VoteRecord, error) {
	rollURL := fmt.Sprintf("%s/evs/%d/roll%03d.xml", c.baseURL, ref.Year, ref.RollNumber)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rollURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "speakup-ingest/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request roll %d: %w", ref.RollNumber, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("clerk returned %s for roll %d", resp.Status, ref.RollNumber)
	}

	var payload rollCallVote
	if err := xml.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode roll %d: %w", ref.RollNumber, err)
	}

	return payload.toRecord(), nil
}

func (c *Client) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "speakup-ingest/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("clerk returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}
