package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dayo/merchant-bulk-payments/pkg/models"
)

// APIError is a non-2xx response from the payment processor. The message is
// surfaced verbatim to callers.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("payment processor returned %d: %s", e.StatusCode, e.Message)
}

// HTTPClient talks to the payment processor's REST API.
type HTTPClient struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewHTTPClient creates an HTTPClient with a request timeout.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: timeout},
	}
}

// Make sure we conform to the interface
var _ Client = (*HTTPClient)(nil)

// doJSON issues a request with a JSON body (if any) and decodes the JSON
// response into out. Non-2xx statuses become *APIError.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call payment processor: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		raw, _ := io.ReadAll(resp.Body)
		msg := string(raw)
		if err := json.Unmarshal(raw, &apiErr); err == nil {
			if apiErr.Message != "" {
				msg = apiErr.Message
			} else if apiErr.Error != "" {
				msg = apiErr.Error
			}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// ValidateRecipients pre-flights a list of payment items.
func (c *HTTPClient) ValidateRecipients(ctx context.Context, items []models.PaymentItem) (*models.ValidationSummary, error) {
	req := struct {
		Items []models.PaymentItem `json:"items"`
	}{Items: items}

	var summary models.ValidationSummary
	if err := c.doJSON(ctx, http.MethodPost, "/v1/recipients/validate", req, &summary); err != nil {
		return nil, fmt.Errorf("recipient validation failed: %w", err)
	}
	return &summary, nil
}

// SubmitBulk submits a batch and returns the created aggregate with its handle.
func (c *HTTPClient) SubmitBulk(ctx context.Context, req *SubmitBulkRequest) (*models.BulkTransactionBatch, error) {
	var batch models.BulkTransactionBatch
	if err := c.doJSON(ctx, http.MethodPost, "/v1/bulk-transactions", req, &batch); err != nil {
		return nil, fmt.Errorf("bulk submission failed: %w", err)
	}
	return &batch, nil
}

// GetBulkStatus re-fetches the batch aggregate for a handle.
func (c *HTTPClient) GetBulkStatus(ctx context.Context, bulkTransactionID string) (*models.BulkTransactionBatch, error) {
	var batch models.BulkTransactionBatch
	path := "/v1/bulk-transactions/" + url.PathEscape(bulkTransactionID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &batch); err != nil {
		return nil, fmt.Errorf("failed to fetch bulk transaction %s: %w", bulkTransactionID, err)
	}
	return &batch, nil
}

// ListBulk pages through the caller's past batches.
func (c *HTTPClient) ListBulk(ctx context.Context, req *ListBulkRequest) (*ListBulkResponse, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(req.Page))
	q.Set("limit", strconv.Itoa(req.Limit))
	q.Set("user_id", req.UserID)

	var page ListBulkResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/bulk-transactions?"+q.Encode(), nil, &page); err != nil {
		return nil, fmt.Errorf("failed to list bulk transactions: %w", err)
	}
	return &page, nil
}

// ValidateSingle pre-flights one instruction.
func (c *HTTPClient) ValidateSingle(ctx context.Context, req *SingleValidationRequest) (*SingleValidationResponse, error) {
	var resp SingleValidationResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/transfers/validate", req, &resp); err != nil {
		return nil, fmt.Errorf("transfer validation failed: %w", err)
	}
	return &resp, nil
}

// ExecuteSingle executes a one-off transfer from a frozen snapshot.
func (c *HTTPClient) ExecuteSingle(ctx context.Context, snap *TransferSnapshot) (*SingleTransferResponse, error) {
	var resp SingleTransferResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/transfers", snap, &resp); err != nil {
		return nil, fmt.Errorf("transfer execution failed: %w", err)
	}
	return &resp, nil
}
