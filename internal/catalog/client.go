package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// DefaultBaseURL is where the ticket service listens in development.
const DefaultBaseURL = "http://localhost:50061"

// DefaultTimeout bounds every request unless configured otherwise.
const DefaultTimeout = 15 * time.Second

// Options configures a Client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	Transport TransportOptions
}

// Client talks to the remote event catalog.
type Client struct {
	http    *http.Client
	base    string
	timeout time.Duration
	metrics *Metrics
	detail  singleflight.Group
}

// New creates a client with default transport options.
func New(baseURL string) *Client {
	return NewWithOptions(Options{BaseURL: baseURL, Transport: DefaultTransportOptions()})
}

// NewWithOptions creates a client using the limiter transport configured by opts.
func NewWithOptions(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Transport.Metrics == nil {
		opts.Transport.Metrics = NewMetrics()
	}
	return &Client{
		http:    &http.Client{Transport: NewLimiterTransport(opts.Transport), Timeout: opts.Timeout},
		base:    strings.TrimRight(opts.BaseURL, "/"),
		timeout: opts.Timeout,
		metrics: opts.Transport.Metrics,
	}
}

// BaseURL returns the catalog root the client talks to.
func (c *Client) BaseURL() string { return c.base }

// MetricsSnapshot returns the transport counters.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	if c.metrics == nil {
		return MetricsSnapshot{}
	}
	return c.metrics.Snapshot()
}

// do sends the request and decodes a JSON body into out. It reports whether
// a body was decoded; 204 and nil out yield false.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) (bool, error) {
	endpoint := method + " " + path
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return false, fmt.Errorf("%s: build request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return false, classifyTransportErr(endpoint, c.timeout, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return false, decodeAPIError(endpoint, res)
	}
	if res.StatusCode == http.StatusNoContent || out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return false, nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		if err == io.EOF {
			return false, nil
		}
		return false, fmt.Errorf("%s: decode response: %w", endpoint, err)
	}
	return true, nil
}

// ---------- Browse ----------

// Browse fetches one cursor page of events.
func (c *Client) Browse(ctx context.Context, q BrowseQuery) (Page, error) {
	path := "/events"
	if enc := q.Values().Encode(); enc != "" {
		path += "?" + enc
	}
	var page Page
	if _, err := c.do(ctx, http.MethodGet, path, nil, "", &page); err != nil {
		return Page{}, err
	}
	if page.Events == nil {
		page.Events = []EventSummary{}
	}
	if !page.HasMore {
		page.NextCursor = ""
	}
	return page, nil
}

// ---------- Detail ----------

// Detail fetches one event with images and categories. A 204 yields nil.
// Concurrent calls for the same id share one request; callers must treat the
// returned slices as read-only. The shared request is bounded by the client
// timeout only, so one caller giving up does not fail the others.
func (c *Client) Detail(ctx context.Context, id int64) (*EventDetail, error) {
	key := strconv.FormatInt(id, 10)
	shared := context.WithoutCancel(ctx)
	ch := c.detail.DoChan(key, func() (any, error) {
		var ev EventDetail
		ok, err := c.do(shared, http.MethodGet, "/event/"+key, nil, "", &ev)
		if err != nil || !ok {
			return (*EventDetail)(nil), err
		}
		return &ev, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(*EventDetail), nil
	}
}

// ---------- Admin ----------

// CreateEvent posts the event as multipart form data.
func (c *Client) CreateEvent(ctx context.Context, ev NewEvent) (*EventDetail, error) {
	fields := [][2]string{
		{"name", ev.Name},
		{"description", ev.Description},
		{"location", ev.Location},
		{"start_time", ev.StartTime.UTC().Format(time.RFC3339)},
		{"end_time", ev.EndTime.UTC().Format(time.RFC3339)},
	}
	body, ct, err := encodeMultipart(fields, ev.Images)
	if err != nil {
		return nil, err
	}
	var out EventDetail
	ok, err := c.do(ctx, http.MethodPost, "/events", body, ct, &out)
	if err != nil || !ok {
		return nil, err
	}
	return &out, nil
}

// UploadImages adds images to an existing event.
func (c *Client) UploadImages(ctx context.Context, eventID int64, files []FileUpload) error {
	body, ct, err := encodeMultipart(nil, files)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPost, fmt.Sprintf("/events/%d/images", eventID), body, ct, nil)
	return err
}

// DeleteImage removes one image of an event.
func (c *Client) DeleteImage(ctx context.Context, eventID, imageID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/events/%d/images/%d", eventID, imageID), nil, "", nil)
	return err
}

// CreateCategory adds a ticket category. A 204 yields nil.
func (c *Client) CreateCategory(ctx context.Context, eventID int64, nc NewCategory) (*Category, error) {
	data, err := json.Marshal(nc)
	if err != nil {
		return nil, err
	}
	var out Category
	ok, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/events/%d/categories", eventID), bytes.NewReader(data), "application/json", &out)
	if err != nil || !ok {
		return nil, err
	}
	return &out, nil
}

// DeleteCategory removes a ticket category.
func (c *Client) DeleteCategory(ctx context.Context, eventID, categoryID int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/events/%d/categories/%d", eventID, categoryID), nil, "", nil)
	return err
}

// ---------- Multipart ----------

func encodeMultipart(fields [][2]string, files []FileUpload) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename=%q`, f.Filename))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// LoadFiles reads the given paths concurrently, keeping their order.
func LoadFiles(ctx context.Context, paths []string) ([]FileUpload, error) {
	out := make([]FileUpload, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(p)
			if err != nil {
				return fmt.Errorf("read image %s: %w", p, err)
			}
			out[i] = FileUpload{
				Filename:    filepath.Base(p),
				ContentType: http.DetectContentType(data),
				Data:        data,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
