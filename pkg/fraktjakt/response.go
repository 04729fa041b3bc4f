package fraktjakt

import (
	"fmt"
	"strconv"
	"strings"
)

// Reply status codes.
const (
	statusOK      = 0
	statusWarning = 1
	statusError   = 2
)

// interpretStatus extracts and classifies the top-level status code of a
// reply. It returns the warning message for code 1, and a FraktjaktError
// carrying the service's own error text for code 2.
func interpretStatus(code, warningMessage, errorMessage string) (string, error) {
	status, err := mandatoryInt("status code", code)
	if err != nil {
		return "", err
	}

	switch status {
	case statusOK:
		return "", nil
	case statusWarning:
		return warningMessage, nil
	case statusError:
		message := errorMessage
		if message == "" {
			message = "server reported an error without a message"
		}
		return "", NewFraktjaktError(CodeServerError, message)
	default:
		return "", NewFraktjaktError(CodeUnexpectedStatus,
			fmt.Sprintf("unexpected status code %d in response", status))
	}
}

// interpretQuery turns a parsed quote reply into a QuoteResponse. An
// empty product collection is an error, never an empty success.
func interpretQuery(reply *QueryReply) (*QuoteResponse, error) {
	warning, err := interpretStatus(reply.Code, reply.WarningMessage, reply.ErrorMessage)
	if err != nil {
		return nil, err
	}

	shipmentID, err := mandatoryInt("shipment id", reply.ID)
	if err != nil {
		return nil, err
	}

	if len(reply.Products) == 0 {
		return nil, NewFraktjaktError(CodeNoProducts, "no matching shipping products in response")
	}

	products := make([]SearchResult, len(reply.Products))
	for i, entry := range reply.Products {
		product, err := interpretProduct(entry)
		if err != nil {
			return nil, err
		}
		products[i] = product
	}

	return &QuoteResponse{
		ShipmentID: shipmentID,
		Currency:   reply.Currency,
		AccessCode: reply.AccessCode,
		AccessLink: reply.AccessLink,
		Warning:    warning,
		Products:   products,
	}, nil
}

func interpretProduct(entry ProductEntry) (SearchResult, error) {
	id, err := mandatoryInt("shipping product id", entry.ID)
	if err != nil {
		return SearchResult{}, err
	}
	description, err := mandatoryText("shipping product description", entry.Description)
	if err != nil {
		return SearchResult{}, err
	}
	price, err := mandatoryFloat("shipping product price", entry.Price)
	if err != nil {
		return SearchResult{}, err
	}
	taxClass, err := mandatoryInt("shipping product tax class", entry.TaxClass)
	if err != nil {
		return SearchResult{}, err
	}

	return SearchResult{
		ID:          id,
		Description: description,
		ArrivalTime: entry.ArrivalTime,
		Price:       price,
		TaxClass:    taxClass,
		AgentInfo:   entry.AgentInfo,
		AgentLink:   entry.AgentLink,
		AgentInInfo: entry.AgentInInfo,
		AgentInLink: entry.AgentInLink,
	}, nil
}

// interpretOrder turns a parsed order reply into an OrderResponse.
func interpretOrder(reply *OrderReply) (*OrderResponse, error) {
	warning, err := interpretStatus(reply.Code, reply.WarningMessage, reply.ErrorMessage)
	if err != nil {
		return nil, err
	}

	shipmentID, err := mandatoryInt("shipment id", reply.ShipmentID)
	if err != nil {
		return nil, err
	}
	orderID, err := mandatoryInt("order id", reply.OrderID)
	if err != nil {
		return nil, err
	}

	return &OrderResponse{
		ShipmentID:      shipmentID,
		OrderID:         orderID,
		AccessCode:      reply.AccessCode,
		AccessLink:      reply.AccessLink,
		SenderEmailLink: reply.SenderEmailLink,
		Warning:         warning,
	}, nil
}

// interpretTrace turns a parsed trace reply into a TrackResponse. A
// shipment may have been split remotely, so several states can come back
// for one queried id; reply order is preserved.
func interpretTrace(reply *TraceReply) (*TrackResponse, error) {
	warning, err := interpretStatus(reply.Code, reply.WarningMessage, reply.ErrorMessage)
	if err != nil {
		return nil, err
	}

	if len(reply.States) == 0 {
		return nil, NewFraktjaktError(CodeNoShippingStates, "no shipping states in response")
	}

	states := make([]TrackResult, len(reply.States))
	for i, entry := range reply.States {
		state, err := interpretState(entry)
		if err != nil {
			return nil, err
		}
		states[i] = state
	}

	return &TrackResponse{Warning: warning, States: states}, nil
}

func interpretState(entry StateEntry) (TrackResult, error) {
	shipmentID, err := mandatoryInt("shipping state shipment id", entry.ShipmentID)
	if err != nil {
		return TrackResult{}, err
	}
	name, err := mandatoryText("shipping state name", entry.Name)
	if err != nil {
		return TrackResult{}, err
	}
	statusID, err := mandatoryInt("shipping state id", entry.ID)
	if err != nil {
		return TrackResult{}, err
	}
	fraktjaktID := 0
	if strings.TrimSpace(entry.FraktjaktID) != "" {
		fraktjaktID, err = mandatoryInt("shipping state fraktjakt id", entry.FraktjaktID)
		if err != nil {
			return TrackResult{}, err
		}
	}

	return TrackResult{
		ShipmentID:        shipmentID,
		Name:              name,
		StatusID:          ShippingState(statusID),
		FraktjaktStatusID: fraktjaktID,
	}, nil
}

// ============================================================================
// Extract-or-fail helpers
//
// Every mandatory reply field goes through one of these so an absent
// field always yields a FraktjaktError naming the field's purpose.
// ============================================================================

func mandatoryText(purpose, raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", NewFraktjaktError(CodeMissingField, "missing "+purpose+" in response")
	}
	return value, nil
}

func mandatoryInt(purpose, raw string) (int, error) {
	value, err := mandatoryText(purpose, raw)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, NewFraktjaktError(CodeMissingField, "malformed "+purpose+" in response").WithCause(err)
	}
	return n, nil
}

func mandatoryFloat(purpose, raw string) (float64, error) {
	value, err := mandatoryText(purpose, raw)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, NewFraktjaktError(CodeMissingField, "malformed "+purpose+" in response").WithCause(err)
	}
	return f, nil
}
