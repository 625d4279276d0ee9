package bitbucket

import (
	"context"
	"net/http"
	"time"

	"bbcli/internal/errcodes"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

const (
	DefaultTimeout = 30 * time.Second
	DefaultRetries = 2
)

var (
	ErrMissingHost     = errors.New("bitbucket host is missing")
	ErrMissingUsername = errors.New("bitbucket username is missing")
	ErrMissingToken    = errors.New("bitbucket token is missing")
)

type ClientOptions struct {
	Host     string
	Username string
	Token    string
	Timeout  time.Duration
	// Retries applies to GET requests only.
	Retries       int
	RetryWaitTime time.Duration
}

// Client is a thin authenticated wrapper over the Bitbucket Server REST
// API. Every call returns the raw status code so callers can branch on it.
type Client struct {
	host string
	rc   *resty.Client
}

// Response is a decoded REST response.
type Response struct {
	StatusCode int
	Body       gjson.Result
	Raw        []byte
}

func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func New(o *ClientOptions) (*Client, error) {
	if o.Host == "" {
		return nil, ErrMissingHost
	}
	if o.Username == "" {
		return nil, ErrMissingUsername
	}
	if o.Token == "" {
		return nil, ErrMissingToken
	}

	timeout := o.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	rc := resty.New().
		SetBasicAuth(o.Username, o.Token).
		SetTimeout(timeout).
		SetRetryCount(o.Retries).
		AddRetryCondition(retryableGet).
		OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
			log.Debug().Str("method", r.Method).Str("url", r.URL).Msg("request")
			return nil
		}).
		OnAfterResponse(func(_ *resty.Client, r *resty.Response) error {
			log.Debug().
				Str("method", r.Request.Method).
				Str("url", r.Request.URL).
				Int("status", r.StatusCode()).
				Dur("elapsed", r.Time()).
				Msg("response")
			return nil
		})

	if o.RetryWaitTime > 0 {
		rc.SetRetryWaitTime(o.RetryWaitTime)
	}

	return &Client{host: base(o.Host), rc: rc}, nil
}

// Only GET requests are retried.
func retryableGet(r *resty.Response, err error) bool {
	if r == nil || r.Request == nil || r.Request.Method != http.MethodGet {
		return false
	}

	return err != nil || r.StatusCode() >= http.StatusInternalServerError
}

func (c *Client) Host() string {
	return c.host
}

func (c *Client) do(ctx context.Context, method, url, body string) (*Response, error) {
	req := c.rc.R().SetContext(ctx)
	if body != "" {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	r, err := req.Execute(method, url)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, url)
	}

	return &Response{
		StatusCode: r.StatusCode(),
		Body:       gjson.ParseBytes(r.Body()),
		Raw:        r.Body(),
	}, nil
}

func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	return c.do(ctx, http.MethodGet, url, "")
}

func (c *Client) Post(ctx context.Context, url, body string) (*Response, error) {
	return c.do(ctx, http.MethodPost, url, body)
}

func (c *Client) Put(ctx context.Context, url, body string) (*Response, error) {
	return c.do(ctx, http.MethodPut, url, body)
}

func (c *Client) Delete(ctx context.Context, url, body string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, url, body)
}

// HTTPError converts a failed response into an error carrying the server's
// first error message.
func HTTPError(r *Response) error {
	return errors.WithStack(&errcodes.HTTPError{
		Status:  r.StatusCode,
		Message: r.Body.Get("errors.0.message").String(),
	})
}
