package fetch

import (
	"context"
	"io"
	"net/http"
	"time"
)

const (
	DefaultGetTimeout  = 10 * time.Second
	DefaultHeadTimeout = 5 * time.Second
	DefaultUserAgent   = "smart_scout/1.0"
)

type Options struct {
	UserAgent   string
	GetTimeout  time.Duration
	HeadTimeout time.Duration
}

// Client issues bounded-timeout requests and classifies outcomes instead of
// surfacing transport details to callers.
type Client struct {
	http        *http.Client
	userAgent   string
	getTimeout  time.Duration
	headTimeout time.Duration
}

func NewClient(opts Options) *Client {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.GetTimeout == 0 {
		opts.GetTimeout = DefaultGetTimeout
	}
	if opts.HeadTimeout == 0 {
		opts.HeadTimeout = DefaultHeadTimeout
	}
	return &Client{
		http:        &http.Client{},
		userAgent:   opts.UserAgent,
		getTimeout:  opts.GetTimeout,
		headTimeout: opts.HeadTimeout,
	}
}

// Outcome is the classified result of one HTTP attempt. Exactly one of three
// states holds: transport failure (Err != nil), remote failure (Err == nil,
// Status != 200), or success (Err == nil, Status == 200).
type Outcome struct {
	URL    string
	Status int
	Body   []byte
	Err    error
}

func (o Outcome) Success() bool {
	return o.Err == nil && o.Status == http.StatusOK
}

// Result is a successful fetch: the body plus the URL that answered.
type Result struct {
	Body []byte
	URL  string
}

// Get performs one GET with the content timeout and reads the full body.
func (c *Client) Get(ctx context.Context, url string) Outcome {
	return c.do(ctx, http.MethodGet, url, c.getTimeout, true)
}

// Head performs one HEAD with the probe timeout. The body is never read.
func (c *Client) Head(ctx context.Context, url string) Outcome {
	return c.do(ctx, http.MethodHead, url, c.headTimeout, false)
}

func (c *Client) do(ctx context.Context, method, url string, timeout time.Duration, readBody bool) Outcome {
	out := Outcome{URL: url}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		out.Err = err
		return out
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		out.Err = err
		return out
	}
	defer resp.Body.Close()

	out.Status = resp.StatusCode
	if !readBody || resp.StatusCode != http.StatusOK {
		return out
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		out.Err = err
		return out
	}
	out.Body = body
	return out
}

// FirstSuccess tries each candidate URL in order and stops at the first 200
// response. Any other outcome moves on to the next candidate; a single URL is
// never retried. Exhausting the list is a normal result, not an error: the
// content simply is not published under any known convention.
func (c *Client) FirstSuccess(ctx context.Context, urls []string) (Result, bool) {
	for _, url := range urls {
		if ctx.Err() != nil {
			return Result{}, false
		}
		out := c.Get(ctx, url)
		if out.Success() {
			return Result{Body: out.Body, URL: url}, true
		}
	}
	return Result{}, false
}
