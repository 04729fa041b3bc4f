package fraktjakt_test

import (
	"context"
	"encoding/xml"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/fraktjakt/pkg/fraktjakt"
)

// captureQuoteDocument runs a quote against the mock transport and
// returns the document the builder produced.
func captureQuoteDocument(t *testing.T, client *fraktjakt.Client, req *fraktjakt.QuoteRequest, mockAPI *fraktjakt.MockAPIClient) *fraktjakt.ShipmentDocument {
	t.Helper()
	var captured *fraktjakt.ShipmentDocument
	inner := mockAPI.OnQueryShipment
	mockAPI.OnQueryShipment = func(ctx context.Context, doc *fraktjakt.ShipmentDocument) (*fraktjakt.QueryReply, error) {
		captured = doc
		if inner != nil {
			return inner(ctx, doc)
		}
		return fraktjakt.NewMockAPIClient().QueryShipment(ctx, doc)
	}
	_, err := client.Quote(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, captured)
	return captured
}

func captureOrderDocument(t *testing.T, client *fraktjakt.Client, req *fraktjakt.OrderRequest, mockAPI *fraktjakt.MockAPIClient) *fraktjakt.OrderDocument {
	t.Helper()
	var captured *fraktjakt.OrderDocument
	mockAPI.OnPlaceOrder = func(ctx context.Context, doc *fraktjakt.OrderDocument) (*fraktjakt.OrderReply, error) {
		captured = doc
		return fraktjakt.NewMockAPIClient().PlaceOrder(ctx, doc)
	}
	_, err := client.Order(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, captured)
	return captured
}

func validQuoteRequest() *fraktjakt.QuoteRequest {
	return &fraktjakt.QuoteRequest{
		Value: 4,
		AddressTo: fraktjakt.Address{
			Street1:  "Storgatan 12",
			CityName: "Göteborg",
		},
	}
}

func TestBuildQuote_HeaderDefaults(t *testing.T) {
	mockAPI := fraktjakt.NewMockAPIClient()
	client := newTestClient(t, mockAPI)
	require.NoError(t, client.AddParcel(fraktjakt.Parcel{Weight: 2, Length: 10, Width: 10, Height: 10}))

	doc := captureQuoteDocument(t, client, validQuoteRequest(), mockAPI)

	assert.Equal(t, "1906", doc.Consignor.ID)
	assert.Equal(t, "secret-key", doc.Consignor.Key)
	assert.Equal(t, "SEK", doc.Consignor.Currency)
	assert.Equal(t, "sv", doc.Consignor.Language)
	assert.Equal(t, "iso-8859-1", doc.Consignor.Encoding)
}

func TestBuildQuote_ParcelDimensionsFloored(t *testing.T) {
	mockAPI := fraktjakt.NewMockAPIClient()
	client := newTestClient(t, mockAPI)
	require.NoError(t, client.AddParcel(fraktjakt.Parcel{Weight: 2.5, Length: 0.4, Height: -2}))

	doc := captureQuoteDocument(t, client, validQuoteRequest(), mockAPI)

	require.Len(t, doc.Parcels, 1)
	p := doc.Parcels[0]
	assert.Equal(t, 2.5, p.Weight, "weight passes through unmodified")
	assert.Equal(t, 1.0, p.Length)
	assert.Equal(t, 1.0, p.Width)
	assert.Equal(t, 1.0, p.Height)
}

func TestBuildQuote_WidthIsNotLength(t *testing.T) {
	mockAPI := fraktjakt.NewMockAPIClient()
	client := newTestClient(t, mockAPI)
	require.NoError(t, client.AddParcel(fraktjakt.Parcel{Weight: 1, Length: 15, Width: 7, Height: 3}))

	doc := captureQuoteDocument(t, client, validQuoteRequest(), mockAPI)

	require.Len(t, doc.Parcels, 1)
	assert.Equal(t, 15.0, doc.Parcels[0].Length)
	assert.Equal(t, 7.0, doc.Parcels[0].Width)
}

func TestBuildQuote_ValueFloor(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{"zero", 0, 1.0},
		{"below one", 0.25, 1.0},
		{"negative", -3, 1.0},
		{"kept", 4, 4.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockAPI := fraktjakt.NewMockAPIClient()
			client := newTestClient(t, mockAPI)
			require.NoError(t, client.AddParcel(fraktjakt.Parcel{Weight: 1}))

			req := validQuoteRequest()
			req.Value = tt.value
			doc := captureQuoteDocument(t, client, req, mockAPI)

			assert.Equal(t, tt.want, doc.Value)
		})
	}
}

func TestBuildQuote_AddressDefaults(t *testing.T) {
	mockAPI := fraktjakt.NewMockAPIClient()
	client := newTestClient(t, mockAPI)
	require.NoError(t, client.AddParcel(fraktjakt.Parcel{Weight: 1}))

	doc := captureQuoteDocument(t, client, validQuoteRequest(), mockAPI)

	assert.Equal(t, "SE", doc.AddressTo.CountryCode)
	assert.True(t, doc.AddressTo.Residential, "residential defaults to true")
}

func TestBuildQuote_ResidentialFalseKept(t *testing.T) {
	mockAPI := fraktjakt.NewMockAPIClient()
	client := newTestClient(t, mockAPI)
	require.NoError(t, client.AddParcel(fraktjakt.Parcel{Weight: 1}))

	residential := false
	req := validQuoteRequest()
	req.AddressTo.Residential = &residential
	doc := captureQuoteDocument(t, client, req, mockAPI)

	assert.False(t, doc.AddressTo.Residential)
}

func TestBuildQuote_FlagsOmittedUnlessSet(t *testing.T) {
	mockAPI := fraktjakt.NewMockAPIClient()
	client := newTestClient(t, mockAPI)
	require.NoError(t, client.AddParcel(fraktjakt.Parcel{Weight: 1}))

	express := true
	req := validQuoteRequest()
	req.Express = &express
	doc := captureQuoteDocument(t, client, req, mockAPI)

	body, err := xml.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(body), "<express>true</express>")
	assert.NotContains(t, string(body), "<pickup>")
	assert.NotContains(t, string(body), "<green>")
}

func TestBuildQuote_OptionalAddressFieldsOmitted(t *testing.T) {
	mockAPI := fraktjakt.NewMockAPIClient()
	client := newTestClient(t, mockAPI)
	require.NoError(t, client.AddParcel(fraktjakt.Parcel{Weight: 1}))

	doc := captureQuoteDocument(t, client, validQuoteRequest(), mockAPI)

	body, err := xml.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(body), "<street_address_1>Storgatan 12</street_address_1>")
	assert.Contains(t, string(body), "<city_name>")
	assert.NotContains(t, string(body), "<street_address_2>")
	assert.NotContains(t, string(body), "<postal_code>")
	assert.Contains(t, string(body), "<residential>true</residential>")
}

func TestBuildQuote_NoParcels(t *testing.T) {
	client := newTestClient(t, fraktjakt.NewMockAPIClient())

	_, err := client.Quote(context.Background(), validQuoteRequest())

	assert.Equal(t, []string{"parcels"}, missingFields(t, err))
}

func TestBuildOrder_NoCommodities(t *testing.T) {
	client := newTestClient(t, fraktjakt.NewMockAPIClient())

	_, err := client.Order(context.Background(), &fraktjakt.OrderRequest{
		ShippingProductID: 25,
		ShipmentID:        321,
		Recipient:         fraktjakt.Recipient{NameTo: "Anna", EmailTo: "anna@example.se"},
	})

	assert.Equal(t, []string{"commodities"}, missingFields(t, err))
}

func TestBuildOrder_ReorderForm(t *testing.T) {
	mockAPI := fraktjakt.NewMockAPIClient()
	client := newTestClient(t, mockAPI)
	require.NoError(t, client.AddCommodity(fraktjakt.Commodity{Name: "Books"}))

	doc := captureOrderDocument(t, client, &fraktjakt.OrderRequest{
		ShippingProductID: 25,
		ShipmentID:        321,
		Recipient:         fraktjakt.Recipient{NameTo: "Anna", EmailTo: "anna@example.se"},
	}, mockAPI)

	assert.Equal(t, 321, doc.ShipmentID)
	assert.Equal(t, 25, doc.ShippingProductID)
	assert.Nil(t, doc.AddressTo, "reorder form must not resend the shipment spec")
	assert.Nil(t, doc.AddressFrom)
	assert.Empty(t, doc.Parcels)
	assert.NotEmpty(t, doc.Reference, "reference defaults to a generated id")
}

func TestBuildOrder_FullShipmentForm(t *testing.T) {
	mockAPI := fraktjakt.NewMockAPIClient()
	client := newTestClient(t, mockAPI)
	require.NoError(t, client.AddParcel(fraktjakt.Parcel{Weight: 1, Length: 15, Width: 7, Height: 3}))
	require.NoError(t, client.AddCommodity(fraktjakt.Commodity{Name: "Books", Quantity: 2}))

	doc := captureOrderDocument(t, client, &fraktjakt.OrderRequest{
		ShippingProductID: 25,
		Value:             120,
		Reference:         "web-order-55",
		AddressTo:         &fraktjakt.Address{Street1: "Storgatan 12", CityName: "Göteborg"},
		Recipient:         fraktjakt.Recipient{NameTo: "Anna", TelephoneTo: "031-123456"},
		Booking:           &fraktjakt.Booking{PickupDate: "2026-09-01", DrivingInstruction: "Gate B"},
	}, mockAPI)

	assert.Zero(t, doc.ShipmentID)
	require.NotNil(t, doc.AddressFrom)
	assert.Equal(t, "Hamngatan 1", doc.AddressFrom.Street1)
	require.NotNil(t, doc.AddressTo)
	assert.Equal(t, "Göteborg", doc.AddressTo.CityName)
	require.Len(t, doc.Parcels, 1)
	assert.Equal(t, "web-order-55", doc.Reference)
	require.NotNil(t, doc.Booking)
	assert.Equal(t, "Gate B", doc.Booking.DrivingInstruction)
}

func TestBuildOrder_FullFormNeedsDestination(t *testing.T) {
	client := newTestClient(t, fraktjakt.NewMockAPIClient())
	require.NoError(t, client.AddParcel(fraktjakt.Parcel{Weight: 1}))
	require.NoError(t, client.AddCommodity(fraktjakt.Commodity{Name: "Books"}))

	_, err := client.Order(context.Background(), &fraktjakt.OrderRequest{
		ShippingProductID: 25,
		Recipient:         fraktjakt.Recipient{NameTo: "Anna", EmailTo: "anna@example.se"},
	})

	assert.Equal(t, []string{"address_to"}, missingFields(t, err))
}

func TestBuildOrder_CommodityDefaults(t *testing.T) {
	mockAPI := fraktjakt.NewMockAPIClient()
	client := newTestClient(t, mockAPI)
	require.NoError(t, client.AddCommodity(fraktjakt.Commodity{Name: "Honung", Quantity: 0}))

	doc := captureOrderDocument(t, client, &fraktjakt.OrderRequest{
		ShippingProductID: 25,
		ShipmentID:        321,
		Recipient:         fraktjakt.Recipient{NameTo: "Anna", EmailTo: "anna@example.se"},
	}, mockAPI)

	require.Len(t, doc.Commodities, 1)
	cm := doc.Commodities[0]
	assert.Equal(t, 1, cm.Quantity, "falsy quantity defaults to 1")
	assert.Equal(t, "EA", cm.QuantityUnits)
	assert.Equal(t, "SE", cm.CountryOfManufacture)

	body, err := xml.Marshal(doc)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "<taric>")
	assert.NotContains(t, string(body), "<unit_price>")
}

func TestParcelsAccumulateInOrder(t *testing.T) {
	client := newTestClient(t, fraktjakt.NewMockAPIClient())
	require.NoError(t, client.AddParcel(fraktjakt.Parcel{Weight: 1}))
	require.NoError(t, client.AddParcel(fraktjakt.Parcel{Weight: 2}))
	require.NoError(t, client.AddParcel(fraktjakt.Parcel{Weight: 3}))

	parcels := client.Parcels()
	require.Len(t, parcels, 3)
	assert.Equal(t, 1.0, parcels[0].Weight)
	assert.Equal(t, 3.0, parcels[2].Weight)

	// Mutating the returned slice must not touch session state.
	parcels[0].Weight = 99
	assert.Equal(t, 1.0, client.Parcels()[0].Weight)
}

func TestMissingInformationNeverReachesTransport(t *testing.T) {
	mockAPI := fraktjakt.NewMockAPIClient()
	mockAPI.OnPlaceOrder = func(ctx context.Context, doc *fraktjakt.OrderDocument) (*fraktjakt.OrderReply, error) {
		return nil, errors.New("should not be reached")
	}
	client := newTestClient(t, mockAPI)

	_, err := client.Order(context.Background(), &fraktjakt.OrderRequest{
		ShippingProductID: 25,
		ShipmentID:        321,
		Recipient:         fraktjakt.Recipient{NameTo: "Anna", EmailTo: "anna@example.se"},
	})

	var miss *fraktjakt.MissingInformationError
	assert.ErrorAs(t, err, &miss, "zero commodities must fail at build time")
}
