package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/schedforge/internal/errors"
	"github.com/agbru/schedforge/internal/logging"
	"github.com/agbru/schedforge/internal/metrics"
	"github.com/agbru/schedforge/internal/timetable"
	"github.com/agbru/schedforge/internal/workbook"
)

// DefaultBaseURL is the compiled-in origin of the timetable service.
const DefaultBaseURL = "https://schedulforge.onrender.com"

// Endpoint paths.
const (
	EndpointListSheets = "/list_sheets/"
	EndpointListGroups = "/list_tutorial_groups/"
	EndpointTimetable  = "/timetable/"
)

// Multipart field names.
const (
	FieldFile          = "file"
	FieldSheetChoice   = "sheet_choice"
	FieldTutorialGroup = "tutorial_group"
)

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// Client calls the timetable service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logging.Logger
	metrics    *metrics.Collector
	tracer     trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client (which has no timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithMetrics records every call in m.
func WithMetrics(m *metrics.Collector) Option {
	return func(c *Client) { c.metrics = m }
}

// WithTracer replaces the global tracer.
func WithTracer(t trace.Tracer) Option {
	return func(c *Client) { c.tracer = t }
}

// New returns a Client for baseURL.
//
// Parameters:
//   - baseURL: The backend origin; empty selects DefaultBaseURL.
//   - opts: Optional HTTP client, logger, metrics and tracer.
//
// Returns:
//   - *Client: A client safe for concurrent use.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logging.Nop(),
		tracer:     otel.Tracer("github.com/agbru/schedforge/internal/backend"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the origin requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// ListSheets uploads f and returns the sheets the service found in it.
func (c *Client) ListSheets(ctx context.Context, f workbook.File) ([]timetable.Sheet, error) {
	var body sheetsResponse
	if err := c.post(ctx, EndpointListSheets, f, nil, &body); err != nil {
		return nil, err
	}
	return *body.Sheets, nil
}

// ListTutorialGroups uploads f and returns the tutorial groups of sheet.
func (c *Client) ListTutorialGroups(ctx context.Context, f workbook.File, sheet string) ([]string, error) {
	var body groupsResponse
	fields := []formField{{FieldSheetChoice, sheet}}
	if err := c.post(ctx, EndpointListGroups, f, fields, &body); err != nil {
		return nil, err
	}
	return *body.Groups, nil
}

// Timetable uploads f and returns the timetable of group on sheet.
func (c *Client) Timetable(ctx context.Context, f workbook.File, sheet, group string) (timetable.Result, error) {
	var res timetable.Result
	fields := []formField{{FieldSheetChoice, sheet}, {FieldTutorialGroup, group}}
	if err := c.post(ctx, EndpointTimetable, f, fields, &res); err != nil {
		return timetable.Result{}, err
	}
	return res, nil
}

type sheetsResponse struct {
	Sheets *[]timetable.Sheet `json:"sheets"`
}

func (r sheetsResponse) check() error {
	if r.Sheets == nil {
		return errors.New("missing sheets")
	}
	return nil
}

type groupsResponse struct {
	Groups *[]string `json:"tutorial_groups"`
}

func (r groupsResponse) check() error {
	if r.Groups == nil {
		return errors.New("missing tutorial_groups")
	}
	return nil
}

// checker is implemented by response bodies whose shape is validated after decoding.
type checker interface {
	check() error
}

type formField struct {
	name, value string
}

// post sends a multipart request to endpoint and decodes a 2xx JSON body into out.
func (c *Client) post(ctx context.Context, endpoint string, f workbook.File, fields []formField, out any) (err error) {
	ctx, span := c.tracer.Start(ctx, "POST "+endpoint, trace.WithAttributes(
		attribute.String("schedforge.endpoint", endpoint),
		attribute.Int("schedforge.upload_bytes", f.Size()),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	payload, contentType, err := encodeForm(f, fields)
	if err != nil {
		return apperrors.WrapError(err, "building %s request", endpoint)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return apperrors.WrapError(err, "building %s request", endpoint)
	}
	req.Header.Set("Content-Type", contentType)

	c.metrics.IncInFlight()
	defer c.metrics.DecInFlight()
	start := time.Now()

	c.logger.Debug("backend request", logging.String("endpoint", endpoint), logging.Int("bytes", len(payload)))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(endpoint, metrics.OutcomeTransport, time.Since(start))
		return apperrors.TransportError{Endpoint: endpoint, Cause: err}
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.ObserveRequest(endpoint, metrics.OutcomeStatus, time.Since(start))
		return apperrors.StatusError{Endpoint: endpoint, Code: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	err = json.NewDecoder(resp.Body).Decode(out)
	if err == nil {
		if ck, ok := out.(checker); ok {
			err = ck.check()
		}
	}
	if err != nil {
		c.metrics.ObserveRequest(endpoint, metrics.OutcomeDecode, time.Since(start))
		if apperrors.IsContextError(err) {
			return apperrors.TransportError{Endpoint: endpoint, Cause: err}
		}
		return apperrors.DecodeError{Endpoint: endpoint, Cause: err}
	}
	c.metrics.ObserveRequest(endpoint, metrics.OutcomeOK, time.Since(start))
	c.logger.Debug("backend response", logging.String("endpoint", endpoint), logging.Duration("elapsed", time.Since(start)))
	return nil
}

// encodeForm writes the file part first, then fields in order.
func encodeForm(f workbook.File, fields []formField) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	name := f.Name
	if name == "" {
		name = "upload.xlsx"
	}
	part, err := w.CreateFormFile(FieldFile, name)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(f.Data); err != nil {
		return nil, "", err
	}
	for _, fld := range fields {
		if err := w.WriteField(fld.name, fld.value); err != nil {
			return nil, "", fmt.Errorf("field %s: %w", fld.name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// errorMessage extracts {"error": "..."} from a failed response, falling back
// to the trimmed body text.
func errorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}
	var body struct {
		Error  string `json:"error"`
		Detail any    `json:"detail"`
	}
	if json.Unmarshal(data, &body) == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Detail != nil {
			return fmt.Sprint(body.Detail)
		}
	}
	return strings.TrimSpace(string(data))
}
