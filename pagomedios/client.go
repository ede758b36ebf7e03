package pagomedios

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"
)

// DefaultBaseURL is the production Abitmedia Cloud API host.
const DefaultBaseURL = "https://cloud.abitmedia.com/api"

// sandboxToken is the credential published by the provider for
// integration testing. It is only reachable through NewSandbox; the
// regular constructor refuses to fall back to it silently.
const sandboxToken = "2y-13-tx-zsjtggeehkmygjbtsf-51z5-armmnw-ihbuspjufwubv4vxok6ery7wozao3wmggnxjgyg"

const (
	pathPaymentRequests = "/pagomedios/v2/payment-requests"
	pathCardsReverse    = "/pagomedios/v2/cards/reverse"
	pathSettings        = "/pagomedios/v2/settings"
)

var jsonCodec = jsoniter.ConfigCompatibleWithStandardLibrary

// Config carries the explicit client configuration. Token is the only
// required field.
type Config struct {
	// BaseURL overrides the production host, e.g. for a stub server.
	BaseURL string
	// Token is the merchant's bearer credential.
	Token string
	// HTTPClient lets callers impose timeouts or instrumentation.
	HTTPClient *http.Client
	// Logger receives one event per provider round trip. Defaults to
	// a no-op logger.
	Logger *zerolog.Logger
}

// Client issues payment-request operations against the PagoMedios API.
// It is stateless between calls and safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	log        zerolog.Logger
}

// New builds a client from explicit configuration.
func New(cfg Config) (*Client, error) {
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, errors.New("pagomedios: token is required")
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		token:      token,
		log:        log,
	}, nil
}

// NewSandbox builds a client against the provider's published test
// credential. Never use it in production: payments created with it are
// not settled.
func NewSandbox() *Client {
	c, err := New(Config{Token: sandboxToken})
	if err != nil {
		panic(err)
	}
	return c
}

type apiRequest struct {
	method string
	path   string
	body   any
	query  url.Values
}

// send performs one round trip and classifies transport-level
// failures. A decoded 401 envelope is rejected here, before any
// operation-specific interpretation.
func (c *Client) send(ctx context.Context, req apiRequest) (*ProviderResponse, error) {
	var body io.Reader
	if req.body != nil {
		buf, err := jsonCodec.Marshal(req.body)
		if err != nil {
			return nil, newError(KindUnknown, "encode request body: %v", err)
		}
		body = bytes.NewReader(buf)
	}

	endpoint := c.baseURL + req.path
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, body)
	if err != nil {
		return nil, newError(KindUnknown, "build %s %s: %v", req.method, req.path, err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, newError(KindConnection, "%s %s: %v", req.method, req.path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newError(KindConnection, "read response from %s: %v", req.path, err)
	}

	var provider ProviderResponse
	if err := jsonCodec.Unmarshal(data, &provider); err != nil {
		return nil, newError(KindPathIncorrect, "response from %s did not parse as the expected shape: %v", req.path, err)
	}

	c.log.Debug().
		Str("method", req.method).
		Str("path", req.path).
		Int("status", provider.Status).
		Bool("success", provider.Success).
		Msg("provider round trip")

	if provider.Status == http.StatusUnauthorized && !provider.Success {
		return nil, newError(KindToken, "authorization rejected: %s", provider.Message)
	}

	return &provider, nil
}

// classify maps a non-successful provider envelope to the error
// taxonomy: 401→token, 404→not-found, tax wording→tax-incorrect,
// anything else ≥400→body, with the raw payload embedded.
func classify(resp *ProviderResponse) error {
	if resp.Success || resp.Status < 400 {
		return nil
	}
	switch {
	case resp.Status == http.StatusUnauthorized:
		return newError(KindToken, "authorization rejected: %s", resp.Message)
	case resp.Status == http.StatusNotFound:
		return newError(KindNotFound, "resource not found: %s", resp.Message)
	case isTaxMessage(resp.Message):
		return newError(KindTaxIncorrect, "tax rate rejected: %s %s", resp.Message, resp.Data)
	default:
		return newError(KindBody, "provider rejected the request (status %d): %s %s", resp.Status, resp.Message, resp.Data)
	}
}

func isTaxMessage(message string) bool {
	return strings.Contains(strings.ToLower(message), "tax")
}

func decodeRecords(resp *ProviderResponse) ([]paymentRecordWire, error) {
	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		return nil, nil
	}

	var records []paymentRecordWire
	if err := jsonCodec.Unmarshal(resp.Data, &records); err == nil {
		return records, nil
	}

	// Some provider versions answer a lone object instead of an array.
	var single paymentRecordWire
	if err := jsonCodec.Unmarshal(resp.Data, &single); err != nil {
		return nil, newError(KindPathIncorrect, "payment records did not parse: %v", err)
	}
	return []paymentRecordWire{single}, nil
}

// CreatePaymentRequest formats data onto the provider's wire shape and
// creates a hosted payment link.
func (c *Client) CreatePaymentRequest(ctx context.Context, data Data) (*PaymentRequestResult, error) {
	wire := formatRequest(data)

	resp, err := c.send(ctx, apiRequest{
		method: http.MethodPost,
		path:   pathPaymentRequests,
		body:   wire,
	})
	if err != nil {
		return nil, err
	}
	if err := classify(resp); err != nil {
		return nil, err
	}

	var link PaymentLink
	if len(resp.Data) > 0 {
		if err := jsonCodec.Unmarshal(resp.Data, &link); err != nil {
			return nil, newError(KindPathIncorrect, "payment link payload did not parse: %v", err)
		}
	}

	c.log.Info().Str("reference", wire.Reference).Str("token", link.Token).Msg("payment request created")

	return &PaymentRequestResult{
		Success: resp.Success,
		Status:  resp.Status,
		Data:    link,
	}, nil
}

// GetPaymentStatus fetches the payment identified by id and normalizes
// its first record.
func (c *Client) GetPaymentStatus(ctx context.Context, id string) (*PaymentRecord, error) {
	query := url.Values{}
	query.Set("id", id)

	resp, err := c.send(ctx, apiRequest{
		method: http.MethodGet,
		path:   pathPaymentRequests,
		query:  query,
	})
	if err != nil {
		return nil, err
	}
	if err := classify(resp); err != nil {
		return nil, err
	}

	records, err := decodeRecords(resp)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, newError(KindIDRequest, "no payment found for id %s", id)
	}

	record := records[0].normalize()
	return &record, nil
}

// GetPayment looks payments up. A query with an ID that matches exactly
// one record yields Single; every other case yields Many. The status
// schema is always attached for caller-side lookups.
func (c *Client) GetPayment(ctx context.Context, q Query) (*PaymentLookup, error) {
	query := url.Values{}
	if q.ID != "" {
		query.Set("id", q.ID)
	}

	resp, err := c.send(ctx, apiRequest{
		method: http.MethodGet,
		path:   pathPaymentRequests,
		query:  query,
	})
	if err != nil {
		return nil, err
	}
	if err := classify(resp); err != nil {
		return nil, err
	}

	records, err := decodeRecords(resp)
	if err != nil {
		return nil, err
	}

	lookup := &PaymentLookup{Schema: DefaultStatusSchema()}

	if q.ID != "" {
		if len(records) == 0 {
			return nil, newError(KindNotFound, "no payment found for id %s", q.ID)
		}
		if len(records) == 1 {
			record := records[0].normalize()
			lookup.Single = &record
			return lookup, nil
		}
	}

	lookup.Many = make([]PaymentRecord, 0, len(records))
	for _, w := range records {
		lookup.Many = append(lookup.Many, w.normalize())
	}
	return lookup, nil
}

// ReversePayment cancels a previously authorized payment. It resolves
// the payment's provider reference first, then posts the reversal; the
// two calls are sequential and not atomic, but the lookup is read-only
// so retrying after a partial failure is safe.
func (c *Client) ReversePayment(ctx context.Context, id string) (*ProviderResponse, error) {
	lookup, err := c.GetPayment(ctx, Query{ID: id})
	if err != nil {
		return nil, err
	}

	record := lookup.Single
	if record == nil && len(lookup.Many) > 0 {
		record = &lookup.Many[0]
	}
	if record == nil || record.Reference == "" {
		return nil, newError(KindIDRequest, "payment %s has no reversible reference", id)
	}

	resp, err := c.send(ctx, apiRequest{
		method: http.MethodPost,
		path:   pathCardsReverse,
		body:   map[string]string{"reference": record.Reference},
	})
	if err != nil {
		return nil, err
	}
	if err := classify(resp); err != nil {
		return nil, err
	}

	c.log.Info().Str("id", id).Str("reference", record.Reference).Msg("payment reversed")
	return resp, nil
}

// GetSettings fetches the merchant's card and installment
// configuration as the provider reports it.
func (c *Client) GetSettings(ctx context.Context) (*ProviderResponse, error) {
	resp, err := c.send(ctx, apiRequest{
		method: http.MethodGet,
		path:   pathSettings,
	})
	if err != nil {
		return nil, err
	}
	if err := classify(resp); err != nil {
		return nil, err
	}
	return resp, nil
}
