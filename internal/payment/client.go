package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/int-arsh/akash-ecom/internal/domain"
)

var ErrMissingRedirectURL = errors.New("checkout session response has no redirect url")

// Client talks to the external payment/order backend. The backend is opaque:
// this client only knows three operations and never interprets anything
// beyond their documented response fields. There are no automatic retries;
// a failed call is reported to the caller, who decides whether to resubmit.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "payment-api",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: breaker,
	}
}

type SessionItem struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type CreateSessionRequest struct {
	Items         []SessionItem `json:"items"`
	CustomerEmail string        `json:"customer_email"`
}

// CreateSession asks the backend for a hosted payment page. A 2xx response
// without a redirect URL is treated as a failure, same as any transport or
// backend error.
func (c *Client) CreateSession(ctx context.Context, req CreateSessionRequest) (*domain.PaymentSession, error) {
	body, err := c.do(ctx, http.MethodPost, "/api/checkout-session", nil, req)
	if err != nil {
		return nil, err
	}

	var session domain.PaymentSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("decode session response: %w", err)
	}
	if session.URL == "" {
		return nil, ErrMissingRedirectURL
	}

	return &session, nil
}

// VerifyPayment confirms the outcome of a checkout session after the user
// returns from the hosted payment page.
func (c *Client) VerifyPayment(ctx context.Context, sessionID string) (*domain.OrderConfirmation, error) {
	query := url.Values{"session_id": {sessionID}}
	body, err := c.do(ctx, http.MethodGet, "/api/verify-payment", query, nil)
	if err != nil {
		return nil, err
	}

	var confirmation domain.OrderConfirmation
	if err := json.Unmarshal(body, &confirmation); err != nil {
		return nil, fmt.Errorf("decode verification response: %w", err)
	}

	return &confirmation, nil
}

// UpdateOrderStatus marks an order with the given status token. The response
// body carries nothing meaningful, so only the error is reported.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	payload := map[string]string{"status": status.String()}
	path := fmt.Sprintf("/api/orders/%s/status", url.PathEscape(orderID))
	_, err := c.do(ctx, http.MethodPatch, path, nil, payload)
	return err
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.breaker.Execute(func() ([]byte, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("payment api request failed: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response body: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			var apiErr errorResponse
			if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
				return nil, fmt.Errorf("payment api: %s (status %d)", apiErr.Error, resp.StatusCode)
			}
			return nil, fmt.Errorf("payment api returned status %d", resp.StatusCode)
		}

		return body, nil
	})
}
