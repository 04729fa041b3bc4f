package fraktjakt

import (
	"context"
	"encoding/xml"
)

// APIClient defines the transport operations against the Fraktjakt
// service. This abstraction allows for mock implementations during
// testing and real implementations in production. Implementations parse
// the raw reply body into the reply structures but do no interpretation
// of the status code; that is the interpreter's job.
type APIClient interface {
	// QueryShipment submits a quote document and returns the parsed reply.
	QueryShipment(ctx context.Context, doc *ShipmentDocument) (*QueryReply, error)

	// PlaceOrder submits an order document and returns the parsed reply.
	PlaceOrder(ctx context.Context, doc *OrderDocument) (*OrderReply, error)

	// Trace queries tracking status for a booked shipment.
	Trace(ctx context.Context, req *TraceRequest) (*TraceReply, error)
}

// ============================================================================
// Reply structures (match the Fraktjakt XML reply shapes)
//
// Scalar payload fields are kept as raw strings so the interpreter can
// distinguish an absent mandatory field from a zero value.
// ============================================================================

// QueryReply is the parsed reply of the quote operation.
type QueryReply struct {
	XMLName        xml.Name       `xml:"shipment"`
	Code           string         `xml:"code"`
	WarningMessage string         `xml:"warning_message"`
	ErrorMessage   string         `xml:"error_message"`
	Currency       string         `xml:"currency"`
	ID             string         `xml:"id"`
	AccessCode     string         `xml:"access_code"`
	AccessLink     string         `xml:"access_link"`
	Products       []ProductEntry `xml:"shipping_products>shipping_product"`
}

// ProductEntry is one offered shipping product in a quote reply.
type ProductEntry struct {
	ID          string `xml:"id"`
	Description string `xml:"description"`
	ArrivalTime string `xml:"arrival_time"`
	Price       string `xml:"price"`
	TaxClass    string `xml:"tax_class"`
	AgentInfo   string `xml:"agent_info"`
	AgentLink   string `xml:"agent_link"`
	AgentInInfo string `xml:"agent_in_info"`
	AgentInLink string `xml:"agent_in_link"`
}

// OrderReply is the parsed reply of the order operation.
type OrderReply struct {
	XMLName         xml.Name `xml:"result"`
	Code            string   `xml:"code"`
	WarningMessage  string   `xml:"warning_message"`
	ErrorMessage    string   `xml:"error_message"`
	ShipmentID      string   `xml:"shipment_id"`
	OrderID         string   `xml:"order_id"`
	AccessCode      string   `xml:"access_code"`
	AccessLink      string   `xml:"access_link"`
	SenderEmailLink string   `xml:"sender_email_link"`
}

// TraceReply is the parsed reply of the tracking operation.
type TraceReply struct {
	XMLName        xml.Name     `xml:"result"`
	Code           string       `xml:"code"`
	WarningMessage string       `xml:"warning_message"`
	ErrorMessage   string       `xml:"error_message"`
	States         []StateEntry `xml:"shipping_states>shipping_state"`
}

// StateEntry is the status of one sub-shipment in a trace reply.
type StateEntry struct {
	ShipmentID  string `xml:"shipment_id"`
	Name        string `xml:"name"`
	ID          string `xml:"id"`
	FraktjaktID string `xml:"fraktjakt_id"`
}
