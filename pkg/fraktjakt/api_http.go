package fraktjakt

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
)

// Service paths per operation.
const (
	queryPath = "/fraktjakt/query_xml"
	orderPath = "/orders/order_xml"
	tracePath = "/trace/xml_trace"
)

// HTTPAPIClient is the production implementation of APIClient. Requests
// are sent as a single GET carrying the document as percent-encoded
// ISO-8859-1 XML; there is no retry, a transport failure surfaces
// immediately.
type HTTPAPIClient struct {
	baseURL    string
	httpClient *http.Client
}

// HTTPAPIClientConfig holds configuration for the HTTP client.
type HTTPAPIClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// NewHTTPAPIClient creates a new HTTP-based API client for production use.
func NewHTTPAPIClient(cfg HTTPAPIClientConfig) *HTTPAPIClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &HTTPAPIClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// QueryShipment submits a quote document to the query endpoint.
func (c *HTTPAPIClient) QueryShipment(ctx context.Context, doc *ShipmentDocument) (*QueryReply, error) {
	body, err := c.getDocument(ctx, queryPath, doc)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var reply QueryReply
	if err := decodeReply(body, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// PlaceOrder submits an order document to the order endpoint.
func (c *HTTPAPIClient) PlaceOrder(ctx context.Context, doc *OrderDocument) (*OrderReply, error) {
	body, err := c.getDocument(ctx, orderPath, doc)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var reply OrderReply
	if err := decodeReply(body, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// Trace queries tracking status for a shipment.
func (c *HTTPAPIClient) Trace(ctx context.Context, req *TraceRequest) (*TraceReply, error) {
	params := url.Values{}
	params.Set("consignor_id", req.ConsignorID)
	params.Set("consignor_key", req.ConsignorKey)

	target := fmt.Sprintf("%s%s/%s?%s",
		c.baseURL, tracePath, strconv.Itoa(req.ShipmentID), params.Encode())

	body, err := c.get(ctx, target)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var reply TraceReply
	if err := decodeReply(body, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// ============================================================================
// HTTP helpers
// ============================================================================

// getDocument serializes doc as ISO-8859-1 XML and issues a GET with the
// document percent-encoded in the xml query parameter.
func (c *HTTPAPIClient) getDocument(ctx context.Context, path string, doc any) (io.ReadCloser, error) {
	encoded, err := encodeDocument(doc)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("xml", encoded)
	return c.get(ctx, c.baseURL+path+"?"+params.Encode())
}

func (c *HTTPAPIClient) get(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, NewFraktjaktError(CodeConnectivity, connectivityMessage).WithCause(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, NewFraktjaktError(CodeConnectivity, connectivityMessage).WithCause(err)
	}

	// Anything outside success/redirect fails without interpretation.
	if resp.StatusCode >= http.StatusBadRequest {
		resp.Body.Close()
		return nil, NewFraktjaktError(CodeConnectivity, connectivityMessage).
			WithCause(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	return resp.Body, nil
}

// encodeDocument marshals doc and transcodes it to ISO-8859-1, the
// character encoding the service declares.
func encodeDocument(doc any) (string, error) {
	body, err := xml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshaling request document: %w", err)
	}

	latin1, err := charmap.ISO8859_1.NewEncoder().Bytes(body)
	if err != nil {
		return "", fmt.Errorf("transcoding request document: %w", err)
	}
	return `<?xml version="1.0" encoding="ISO-8859-1"?>` + string(latin1), nil
}

// decodeReply parses a reply body into v, honoring the declared charset.
func decodeReply(r io.Reader, v any) error {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader
	if err := dec.Decode(v); err != nil {
		return NewFraktjaktError(CodeMalformedResponse, "malformed response from server").WithCause(err)
	}
	return nil
}

func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
		return input, nil
	case "iso-8859-1", "latin1":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	case "windows-1252":
		return charmap.Windows1252.NewDecoder().Reader(input), nil
	default:
		return nil, fmt.Errorf("unsupported charset %q", charset)
	}
}

var _ APIClient = (*HTTPAPIClient)(nil)
