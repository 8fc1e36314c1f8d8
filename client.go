// Package gelbooru is a client for the read-only dapi endpoints of Gelbooru
// compatible image boards: post lookup, post search and tag listing.
//
// Every call is a single GET against the configured base URL. The client keeps
// no state between calls and is safe for concurrent use.
package gelbooru

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL   = "https://gelbooru.com/index.php"
	DefaultUserAgent = "gelbooru-client (+https://github.com/dictor/gelbooru-client)"
)

// Format selects the response variant requested from the provider.
type Format int

const (
	// FormatJSON asks for json=1 responses. This is the default.
	FormatJSON Format = iota
	// FormatXML uses the historical XML responses.
	FormatXML
)

func (f Format) String() string {
	if f == FormatXML {
		return "xml"
	}
	return "json"
}

func (f Format) accept() string {
	if f == FormatXML {
		return "application/xml"
	}
	return "application/json"
}

// ParseFormat maps "json" or "xml" to a Format.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "json":
		return FormatJSON, nil
	case "xml":
		return FormatXML, nil
	default:
		return FormatJSON, fmt.Errorf("unknown api format: %s", s)
	}
}

type Client struct {
	http      *resty.Client
	log       logrus.FieldLogger
	baseURL   string
	userAgent string
	format    Format

	apiKey string
	userID string
}

type Option func(*Client)

// WithBaseURL points the client at another Gelbooru compatible board.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the underlying http.Client, e.g. for timeouts or proxies.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = resty.NewWithClient(hc)
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) {
		c.log = l
	}
}

func WithFormat(f Format) Option {
	return func(c *Client) {
		c.format = f
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a client. apiKey and userID are optional and are sent as
// query parameters when set; credentials can be obtained from the account
// options page of the board.
func NewClient(apiKey, userID string, opts ...Option) *Client {
	c := &Client{
		http:      resty.New(),
		log:       logrus.StandardLogger(),
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		format:    FormatJSON,
		apiKey:    apiKey,
		userID:    userID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Format() Format {
	return c.format
}

func (c *Client) newRequest(ctx context.Context) *resty.Request {
	return c.http.R().
		SetContext(ctx).
		SetHeader("Accept", c.format.accept()).
		SetHeader("User-Agent", c.userAgent)
}

func (c *Client) logResponse(resp *resty.Response, action string) {
	c.log.WithFields(logrus.Fields{
		"action": action,
		"code":   resp.StatusCode(),
	}).Debugf("response: %s", string(resp.Body()))
}

// request performs one GET and returns the body as JSON. XML bodies are
// converted to the equivalent mapping first.
func (c *Client) request(ctx context.Context, action, url string) ([]byte, error) {
	resp, err := c.newRequest(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}
	c.logResponse(resp, action)

	if !isSuccessStatus(resp.StatusCode()) {
		return nil, &ResponseError{
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
			Message:    parseErrorResponse(resp.Body()),
			Body:       string(resp.Body()),
		}
	}

	if c.format == FormatXML {
		body, err := decodeXML(resp.Body())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", action, err)
		}
		return body, nil
	}
	return resp.Body(), nil
}
