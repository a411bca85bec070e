package provision

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"
	"github.com/go-resty/resty/v2"
	"github.com/mattn/go-isatty"
)

// HTTPError is returned when the server answers with a non 2xx status.
type HTTPError struct {
	URL        string
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("received unexpected response from %s: http%d", e.URL, e.StatusCode)
}

// Client performs the http requests needed to provision the SDK.
type Client struct {
	http *resty.Client
}

type ClientOption func(c *Client)

// NewClient builds a client with no timeout; requests block until the
// server answers or the context is cancelled.
func NewClient(opts ...ClientOption) *Client {
	c := Client{
		http: resty.New(),
	}

	for _, opt := range opts {
		opt(&c)
	}

	return &c
}

// WithTimeout sets a timeout for every request done by the client.
// A zero duration disables it.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.http.SetTimeout(timeout)
	}
}

// WithUserAgent sets the user agent sent with every request.
func WithUserAgent(agent string) ClientOption {
	return func(c *Client) {
		c.http.SetHeader("User-Agent", agent)
	}
}

// FetchPage retrieves the page at url and returns its body as text.
func (c *Client) FetchPage(ctx context.Context, url string) (page string, err error) {
	logdetail(fmt.Sprintf("fetching %s", url))

	defer timed(time.Now(), &err)

	res, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}

	if !res.IsSuccess() {
		return "", &HTTPError{URL: url, StatusCode: res.StatusCode()}
	}

	return res.String(), nil
}

// Download retrieves the resource at url and writes it verbatim to destination.
// An existing file at destination is overwritten.
func (c *Client) Download(ctx context.Context, url, destination string) (err error) {
	logdetail(fmt.Sprintf("downloading to %s", destination))

	defer timed(time.Now(), &err)

	res, err := c.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		return fmt.Errorf("failed to download file: %w", err)
	}

	body := res.RawBody()
	defer body.Close()

	if !res.IsSuccess() {
		return &HTTPError{URL: url, StatusCode: res.StatusCode()}
	}

	size := int64(-1)
	if res.RawResponse != nil {
		size = res.RawResponse.ContentLength
	}

	data, finish := progress(body, size)
	defer finish()

	out, err := os.Create(destination)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", destination, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, data); err != nil {
		return fmt.Errorf("failed to copy data to file %s: %w", destination, err)
	}

	return out.Close()
}

// progress wraps the archive body so the download shows a bar under its detail line.
// Outside a terminal, and on ci, the body is returned untouched and finish is a noop.
// A size of -1 (no Content-Length) renders counters and speed without a percentage.
func progress(reader io.Reader, size int64) (io.Reader, func()) {
	if !interactive() {
		return reader, func() {}
	}

	bar := pb.
		New64(size).
		SetTemplate(
			pb.ProgressBarTemplate(
				color.New(color.FgHiBlack).Sprint(
					`   └ {{string . "prefix"}}{{counters . }}` +
						` {{bar . "[" "=" ">" " " "]" }} {{percent . }}` +
						` {{speed . }} {{string . "suffix"}}`,
				),
			),
		).
		SetRefreshRate(time.Second / 60).
		SetMaxWidth(100).
		Start()

	return bar.NewProxyReader(reader), func() { bar.Finish() }
}

// interactive returns true when stderr is a terminal and the process isn't running on ci.
func interactive() bool {
	if os.Getenv("CI") != "" {
		return false
	}

	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}
