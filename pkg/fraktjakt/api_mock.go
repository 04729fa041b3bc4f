package fraktjakt

import (
	"context"
	"math/rand"
	"strconv"
	"time"
)

// MockAPIClient is a mock implementation of APIClient for testing and
// offline development.
type MockAPIClient struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	OnQueryShipment func(ctx context.Context, doc *ShipmentDocument) (*QueryReply, error)
	OnPlaceOrder    func(ctx context.Context, doc *OrderDocument) (*OrderReply, error)
	OnTrace         func(ctx context.Context, req *TraceRequest) (*TraceReply, error)
}

// NewMockAPIClient creates a new mock API client with default behavior.
func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{}
}

// QueryShipment returns a mock quote reply with three products.
func (m *MockAPIClient) QueryShipment(ctx context.Context, doc *ShipmentDocument) (*QueryReply, error) {
	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}

	if m.SimulateErrors {
		return nil, NewFraktjaktError(CodeConnectivity, connectivityMessage)
	}

	if m.OnQueryShipment != nil {
		return m.OnQueryShipment(ctx, doc)
	}

	return &QueryReply{
		Code:     "0",
		Currency: doc.Consignor.Currency,
		ID:       mockID(),
		Products: []ProductEntry{
			{
				ID:          "25",
				Description: "DHL Service Point",
				ArrivalTime: "1-2 dagar",
				Price:       "64.75",
				TaxClass:    "25",
				AgentInfo:   "ICA Supermarket",
				AgentLink:   "https://testapi.fraktjakt.se/agents/sok?id=25",
			},
			{
				ID:          "4",
				Description: "PostNord MyPack Collect",
				ArrivalTime: "1-3 dagar",
				Price:       "79.00",
				TaxClass:    "25",
				AgentInfo:   "Coop Konsum",
				AgentLink:   "https://testapi.fraktjakt.se/agents/sok?id=4",
			},
			{
				ID:          "31",
				Description: "Bussgods Express",
				ArrivalTime: "1 dag",
				Price:       "149.50",
				TaxClass:    "25",
			},
		},
	}, nil
}

// PlaceOrder returns a mock order confirmation.
func (m *MockAPIClient) PlaceOrder(ctx context.Context, doc *OrderDocument) (*OrderReply, error) {
	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}

	if m.SimulateErrors {
		return nil, NewFraktjaktError(CodeConnectivity, connectivityMessage)
	}

	if m.OnPlaceOrder != nil {
		return m.OnPlaceOrder(ctx, doc)
	}

	shipmentID := doc.ShipmentID
	if shipmentID == 0 {
		shipmentID, _ = strconv.Atoi(mockID())
	}

	return &OrderReply{
		Code:            "0",
		ShipmentID:      strconv.Itoa(shipmentID),
		OrderID:         mockID(),
		AccessCode:      "abc123",
		SenderEmailLink: "https://testapi.fraktjakt.se/shipments/show/" + strconv.Itoa(shipmentID),
	}, nil
}

// Trace returns a mock trace reply with a single sent state.
func (m *MockAPIClient) Trace(ctx context.Context, req *TraceRequest) (*TraceReply, error) {
	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}

	if m.SimulateErrors {
		return nil, NewFraktjaktError(CodeConnectivity, connectivityMessage)
	}

	if m.OnTrace != nil {
		return m.OnTrace(ctx, req)
	}

	return &TraceReply{
		Code: "0",
		States: []StateEntry{
			{
				ShipmentID:  strconv.Itoa(req.ShipmentID),
				Name:        "Skickad",
				ID:          "1",
				FraktjaktID: "3",
			},
		},
	}, nil
}

func mockID() string {
	return strconv.Itoa(100000 + rand.Intn(900000))
}

var _ APIClient = (*MockAPIClient)(nil)
