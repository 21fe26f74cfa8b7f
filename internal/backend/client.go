// Package backend implements the HTTP client for the extraction and
// analysis service. Every response is enveloped as
// {success, data, error}; failures are classified into the application
// error taxonomy here, at the boundary, so nothing downstream ever
// inspects transport status codes or message text.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/reglabs/coaflow/internal/common"
	"github.com/reglabs/coaflow/internal/model"
)

// Client talks to the extraction backend. It never retries on its own;
// callers wrap operations in common.WithRetry when they want retries.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// envelope is the uniform response wrapper used by every endpoint.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Success bool            `json:"success"`
}

// processResult is the payload of the document-process endpoint.
type processResult struct {
	DocumentID    string                 `json:"documentId"`
	Status        string                 `json:"status"`
	Message       string                 `json:"message"`
	ExtractedData []model.ExtractedField `json:"extractedData"`
}

// directoryResult is the payload of the process-directory endpoint.
type directoryResult struct {
	BatchData []model.BatchRecord `json:"batchData"`
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, fmt.Errorf("%w: backend URL", common.ErrMissingConfig)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: trimmed,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Compounds lists the compounds the backend knows about.
func (c *Client) Compounds(ctx context.Context) ([]model.Compound, error) {
	data, err := c.get(ctx, "/api/compounds", nil)
	if err != nil {
		return nil, err
	}

	var compounds []model.Compound
	if err := json.Unmarshal(data, &compounds); err != nil {
		return nil, common.Validation("compound list has unexpected shape", err)
	}
	return compounds, nil
}

// Templates lists the report templates registered for a compound.
func (c *Client) Templates(ctx context.Context, compoundID string) ([]model.Template, error) {
	query := url.Values{}
	query.Set("compound_id", compoundID)

	data, err := c.get(ctx, "/api/templates", query)
	if err != nil {
		return nil, err
	}

	var templates []model.Template
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, common.Validation("template list has unexpected shape", err)
	}
	return templates, nil
}

// Upload sends a document to the backend for a compound and template.
func (c *Client) Upload(ctx context.Context, file io.Reader, filename, compoundID, templateID string) (*model.COADocument, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, common.Validation("failed to build upload request", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, common.Validation("failed to read upload file", err)
	}
	if err := writer.WriteField("compound_id", compoundID); err != nil {
		return nil, common.Validation("failed to build upload request", err)
	}
	if err := writer.WriteField("template_id", templateID); err != nil {
		return nil, common.Validation("failed to build upload request", err)
	}
	if err := writer.Close(); err != nil {
		return nil, common.Validation("failed to build upload request", err)
	}

	data, err := c.do(ctx, http.MethodPost, "/api/documents/upload", &body, writer.FormDataContentType())
	if err != nil {
		return nil, err
	}

	var doc model.COADocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, common.Validation("upload response has unexpected shape", err)
	}
	return &doc, nil
}

// Process asks the backend to extract fields from an uploaded document.
func (c *Client) Process(ctx context.Context, documentID string) ([]model.ExtractedField, error) {
	payload, err := json.Marshal(map[string]string{"document_id": documentID})
	if err != nil {
		return nil, common.Validation("failed to build process request", err)
	}

	data, err := c.do(ctx, http.MethodPost, "/api/documents/process", bytes.NewReader(payload), "application/json")
	if err != nil {
		return nil, err
	}

	var result processResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, common.Validation("process response has unexpected shape", err)
	}
	return result.ExtractedData, nil
}

// ProcessDirectory asks the backend to extract batch records for every
// document it holds for a compound and template.
func (c *Client) ProcessDirectory(ctx context.Context, compoundID, templateID string) ([]model.BatchRecord, error) {
	payload, err := json.Marshal(map[string]string{
		"compound_id": compoundID,
		"template_id": templateID,
	})
	if err != nil {
		return nil, common.Validation("failed to build process-directory request", err)
	}

	data, err := c.do(ctx, http.MethodPost, "/api/documents/process-directory", bytes.NewReader(payload), "application/json")
	if err != nil {
		return nil, err
	}

	var result directoryResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, common.Validation("process-directory response has unexpected shape", err)
	}
	return result.BatchData, nil
}

// TableData fetches the finalized field/value pairs for a document.
func (c *Client) TableData(ctx context.Context, documentID string) ([]model.TableField, error) {
	data, err := c.get(ctx, "/api/documents/"+url.PathEscape(documentID)+"/table-data", nil)
	if err != nil {
		return nil, err
	}

	var fields []model.TableField
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, common.Validation("table data is not a sequence of fields", err)
	}
	return fields, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, common.Validation("failed to create request", err)
	}
	return c.send(req)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, common.Validation("failed to create request", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return c.send(req)
}

// send executes a request and classifies every failure mode.
func (c *Client) send(req *http.Request) (json.RawMessage, error) {
	slog.Debug("backend request", "method", req.Method, "url", req.URL.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, common.Transport("backend request failed", err, isTimeout(err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, common.NotFoundError(fmt.Sprintf("backend has no resource at %s", req.URL.Path))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, common.Transport("failed to read backend response", err, false)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := serverDetail(raw)
		if detail == "" {
			detail = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return nil, common.Server(detail, nil)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, common.Validation("backend response is not a valid envelope", err)
	}

	if !env.Success {
		detail := env.Error
		if detail == "" {
			detail = "backend reported failure without detail"
		}
		return nil, common.Server(detail, nil)
	}

	return env.Data, nil
}

// serverDetail pulls the backend-provided error message out of a
// failing response body when one is present.
func serverDetail(raw []byte) string {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return ""
	}
	return env.Error
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
