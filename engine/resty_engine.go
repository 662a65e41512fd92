package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestyEngine is the fallback engine: a plain Go TLS stack with retries
// and optional proxy support.
type RestyEngine struct {
	client *resty.Client
}

// NewRestyEngine creates a RestyEngine. proxy may be empty.
func NewRestyEngine(timeout time.Duration, proxy string) *RestyEngine {
	client := resty.New()
	client.SetHeader("User-Agent", userAgent)
	client.SetHeader("Accept", "text/html,application/xhtml+xml")
	client.SetTimeout(timeout)
	client.SetRetryCount(2)
	client.SetRetryWaitTime(500 * time.Millisecond)
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))
	if proxy != "" {
		client.SetProxy(proxy)
	}
	return &RestyEngine{client: client}
}

func (e *RestyEngine) Name() string { return "resty" }

func (e *RestyEngine) Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	res, err := e.client.R().
		SetContext(ctx).
		SetHeaders(req.Headers).
		Get(req.URL)
	if err != nil {
		return nil, fmt.Errorf("resty_engine: do request: %w", err)
	}

	ct := res.Header().Get("Content-Type")
	if res.StatusCode() >= 400 || !isHTMLContentType(ct) {
		return nil, fmt.Errorf("resty_engine: non-html or error status %d (content-type: %s)", res.StatusCode(), ct)
	}
	body := res.Body()
	if len(body) > maxBody {
		body = body[:maxBody]
	}

	finalURL := req.URL
	if raw := res.RawResponse; raw != nil && raw.Request != nil {
		finalURL = raw.Request.URL.String()
	}
	return &FetchResult{
		HTML:       string(body),
		StatusCode: res.StatusCode(),
		FinalURL:   finalURL,
		EngineName: e.Name(),
	}, nil
}
