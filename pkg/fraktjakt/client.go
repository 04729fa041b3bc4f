// Package fraktjakt provides a client for the Fraktjakt freight
// quotation and shipment booking service.
//
// A Client is a session: it holds the consignor credentials, locale
// defaults and the accumulated parcel and commodity lists. Parcels and
// commodities persist for the lifetime of the session; create a new
// Client for a second independent request. A Client is intended for a
// single caller, concurrent use needs external synchronization.
package fraktjakt

import (
	"context"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Config holds the session configuration for a Client.
type Config struct {
	ConsignorID  string `name:"consignor_id" validate:"required"`
	ConsignorKey string `name:"consignor_key" validate:"required"`
	// Environment selects the test or production endpoint. Defaults to
	// the test endpoint.
	Environment Environment `name:"environment"`
	// Currency and Language default to SEK and sv.
	Currency string `name:"currency"`
	Language string `name:"language"`
	// SenderAddress is emitted as address_from when an order submits a
	// complete shipment.
	SenderAddress Address `name:"sender_address" validate:"-"`
	// Timeout applies to each outbound call. Defaults to 30s.
	Timeout time.Duration `name:"timeout"`
	// UseMock swaps the transport for an offline mock.
	UseMock bool `name:"use_mock"`
}

// Client is the Fraktjakt session client.
type Client struct {
	config      Config
	apiClient   APIClient
	logger      *otelzap.Logger
	tracer      trace.Tracer
	parcels     []Parcel
	commodities []Commodity
}

// New creates a new Client. It fails with MissingInformationError when
// the consignor credentials are absent.
func New(cfg Config, logger *otelzap.Logger, tracer trace.Tracer) (*Client, error) {
	var apiClient APIClient

	if cfg.UseMock {
		apiClient = NewMockAPIClient()
	} else {
		apiClient = NewHTTPAPIClient(HTTPAPIClientConfig{
			BaseURL: cfg.Environment.BaseURL(),
			Timeout: cfg.Timeout,
		})
	}

	return NewWithAPIClient(cfg, apiClient, logger, tracer)
}

// NewWithAPIClient creates a new Client with a custom API client. This
// is useful for injecting mock clients in tests.
func NewWithAPIClient(cfg Config, apiClient APIClient, logger *otelzap.Logger, tracer trace.Tracer) (*Client, error) {
	if err := checkRequired("session", cfg); err != nil {
		return nil, err
	}

	return &Client{
		config:    cfg,
		apiClient: apiClient,
		logger:    logger,
		tracer:    tracer,
	}, nil
}

// AddParcel validates p and appends it to the session parcel list.
// Dimensions below 1 are raised to 1; the parcel is immutable once
// added.
func (c *Client) AddParcel(p Parcel) error {
	if err := checkRequired("parcel", p); err != nil {
		return err
	}
	p.Length = floorDimension(p.Length)
	p.Width = floorDimension(p.Width)
	p.Height = floorDimension(p.Height)
	c.parcels = append(c.parcels, p)
	return nil
}

// AddCommodity validates cm and appends it to the session commodity
// list. Quantity, units and country of manufacture receive their
// defaults; an invalid unit fails and the commodity is not appended.
func (c *Client) AddCommodity(cm Commodity) error {
	if err := checkRequired("commodity", cm); err != nil {
		return err
	}
	if cm.Quantity <= 0 {
		cm.Quantity = 1
	}
	cm.QuantityUnits = defaultUnit(cm.QuantityUnits)
	cm.CountryOfManufacture = defaultString(cm.CountryOfManufacture, "SE")
	c.commodities = append(c.commodities, cm)
	return nil
}

// Parcels returns a copy of the accumulated parcel list.
func (c *Client) Parcels() []Parcel {
	out := make([]Parcel, len(c.parcels))
	copy(out, c.parcels)
	return out
}

// Commodities returns a copy of the accumulated commodity list.
func (c *Client) Commodities() []Commodity {
	out := make([]Commodity, len(c.commodities))
	copy(out, c.commodities)
	return out
}

// Quote submits the accumulated parcels and the destination address for
// pricing and returns the offered shipping products, best match first as
// ranked by the service.
func (c *Client) Quote(ctx context.Context, req *QuoteRequest) (*QuoteResponse, error) {
	ctx, end := c.startSpan(ctx, "fraktjakt.Quote")
	defer end()

	c.logger.Ctx(ctx).Info("Requesting Fraktjakt quote",
		zap.String("city", req.AddressTo.CityName),
		zap.Int("parcel_count", len(c.parcels)),
	)

	if err := checkRequired("quote", req); err != nil {
		return nil, err
	}

	doc, err := c.buildQuoteDocument(req)
	if err != nil {
		return nil, err
	}

	reply, err := c.apiClient.QueryShipment(ctx, doc)
	if err != nil {
		c.logger.Ctx(ctx).Error("Fraktjakt query failed", zap.Error(err))
		return nil, err
	}

	resp, err := interpretQuery(reply)
	if err != nil {
		c.logger.Ctx(ctx).Error("Fraktjakt query rejected", zap.Error(err))
		return nil, err
	}

	c.logWarning(ctx, resp.Warning)
	return resp, nil
}

// Order books a shipment with the selected shipping product. Re-invoking
// with the same shipment id creates a new shipment copy remotely.
func (c *Client) Order(ctx context.Context, req *OrderRequest) (*OrderResponse, error) {
	ctx, end := c.startSpan(ctx, "fraktjakt.Order")
	defer end()

	c.logger.Ctx(ctx).Info("Placing Fraktjakt order",
		zap.Int("shipping_product_id", req.ShippingProductID),
		zap.Int("shipment_id", req.ShipmentID),
	)

	if err := checkRequired("order", req); err != nil {
		return nil, err
	}

	doc, err := c.buildOrderDocument(req)
	if err != nil {
		return nil, err
	}

	reply, err := c.apiClient.PlaceOrder(ctx, doc)
	if err != nil {
		c.logger.Ctx(ctx).Error("Fraktjakt order failed", zap.Error(err))
		return nil, err
	}

	resp, err := interpretOrder(reply)
	if err != nil {
		c.logger.Ctx(ctx).Error("Fraktjakt order rejected", zap.Error(err))
		return nil, err
	}

	c.logWarning(ctx, resp.Warning)
	return resp, nil
}

// Track queries delivery status for a booked shipment. Several states
// come back when the service split the shipment.
func (c *Client) Track(ctx context.Context, req *TrackRequest) (*TrackResponse, error) {
	ctx, end := c.startSpan(ctx, "fraktjakt.Track")
	defer end()

	c.logger.Ctx(ctx).Info("Tracking Fraktjakt shipment",
		zap.Int("shipment_id", req.ShipmentID),
	)

	if err := checkRequired("track", req); err != nil {
		return nil, err
	}

	reply, err := c.apiClient.Trace(ctx, c.buildTraceRequest(req))
	if err != nil {
		c.logger.Ctx(ctx).Error("Fraktjakt trace failed", zap.Error(err))
		return nil, err
	}

	resp, err := interpretTrace(reply)
	if err != nil {
		c.logger.Ctx(ctx).Error("Fraktjakt trace rejected", zap.Error(err))
		return nil, err
	}

	c.logWarning(ctx, resp.Warning)
	return resp, nil
}

func (c *Client) startSpan(ctx context.Context, name string) (context.Context, func()) {
	if c.tracer == nil {
		return ctx, func() {}
	}
	ctx, span := c.tracer.Start(ctx, name)
	return ctx, func() { span.End() }
}

func (c *Client) logWarning(ctx context.Context, warning string) {
	if warning != "" {
		c.logger.Ctx(ctx).Warn("Fraktjakt answered with a warning",
			zap.String("warning", warning))
	}
}
