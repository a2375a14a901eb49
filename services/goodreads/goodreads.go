// Package goodreads is the page source for the scraping pipeline: it
// knows how to build review-list/profile URLs for a reader and fetch
// their markup.
package goodreads

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/katzenj/goodreads-analytics/lib/restyutil"
	"github.com/katzenj/goodreads-analytics/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("services/goodreads")

const defaultBaseURL = "https://www.goodreads.com"

type Client struct {
	http *resty.Client
}

type ClientOptions struct {
	// defaults to the public site
	BaseURL string
	// per page fetch, defaults to 30s
	Timeout time.Duration
}

func NewClient(opts ClientOptions) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}

	client := resty.New()
	client.SetBaseURL(baseURL)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(timeout)

	telemetry.InstrumentResty(client, "services/goodreads/http")

	return &Client{http: client}
}

// DumpMessages mirrors every http exchange to `out`, usually a
// restyutil.FilesystemOutput when running verbose.
func (c *Client) DumpMessages(out restyutil.InstrumentOutput) {
	restyutil.DumpMessages(c.http, out)
}

// ReviewListPage fetches one page of a reader's printable review list.
// Pages are 1-indexed.
func (c *Client) ReviewListPage(ctx context.Context, readerID int64, page int) (string, error) {
	ctx, span := tracer.Start(ctx, "ReviewListPage")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("print", "true").
		SetQueryParam("page", strconv.Itoa(page)).
		Get(fmt.Sprintf("/review/list/%d", readerID))
	if err != nil {
		return "", fmt.Errorf("fetch review list page %d: %w", page, err)
	}
	if res.IsError() {
		return "", fmt.Errorf("fetch review list page %d: status %s", page, res.Status())
	}
	return res.String(), nil
}

// ProfilePage fetches a reader's public profile, used for the display
// name heading.
func (c *Client) ProfilePage(ctx context.Context, readerID int64) (string, error) {
	ctx, span := tracer.Start(ctx, "ProfilePage")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/user/show/%d", readerID))
	if err != nil {
		return "", fmt.Errorf("fetch profile page: %w", err)
	}
	if res.IsError() {
		return "", fmt.Errorf("fetch profile page: status %s", res.Status())
	}
	return res.String(), nil
}
