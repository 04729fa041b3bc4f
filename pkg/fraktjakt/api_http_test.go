package fraktjakt_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tournevent/fraktjakt/pkg/fraktjakt"
	"golang.org/x/text/encoding/charmap"
)

func testDocument() *fraktjakt.ShipmentDocument {
	return &fraktjakt.ShipmentDocument{
		Consignor: fraktjakt.ConsignorHeader{ID: "1906", Key: "secret-key", Currency: "SEK", Language: "sv"},
		Value:     1,
		Parcels:   []fraktjakt.ParcelBlock{{Weight: 1, Length: 15, Width: 7, Height: 3}},
		AddressTo: fraktjakt.AddressBlock{Street1: "Storgatan 12", CityName: "Göteborg", CountryCode: "SE", Residential: true},
	}
}

func TestHTTPAPIClient_QueryShipment_Latin1Reply(t *testing.T) {
	reply := `<?xml version="1.0" encoding="ISO-8859-1"?>` +
		`<shipment><code>0</code><id>7135</id><shipping_products>` +
		`<shipping_product><id>10</id><description>Hämtas på utlämningsställe</description>` +
		`<price>49.5</price><tax_class>25</tax_class></shipping_product>` +
		`</shipping_products></shipment>`
	latin1, err := charmap.ISO8859_1.NewEncoder().String(reply)
	require.NoError(t, err)

	var gotPath, gotXML string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotXML = r.URL.Query().Get("xml")
		w.Header().Set("Content-Type", "application/xml; charset=ISO-8859-1")
		w.Write([]byte(latin1))
	}))
	defer srv.Close()

	api := fraktjakt.NewHTTPAPIClient(fraktjakt.HTTPAPIClientConfig{BaseURL: srv.URL})
	got, err := api.QueryShipment(context.Background(), testDocument())

	require.NoError(t, err)
	assert.Equal(t, "/fraktjakt/query_xml", gotPath)
	assert.Contains(t, gotXML, "<shipment>")
	assert.Contains(t, gotXML, `encoding="ISO-8859-1"`)
	assert.Equal(t, "0", got.Code)
	assert.Equal(t, "7135", got.ID)
	require.Len(t, got.Products, 1)
	assert.Equal(t, "Hämtas på utlämningsställe", got.Products[0].Description)
}

func TestHTTPAPIClient_PlaceOrder_Path(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`<result><code>0</code><shipment_id>7135</shipment_id><order_id>4410</order_id></result>`))
	}))
	defer srv.Close()

	api := fraktjakt.NewHTTPAPIClient(fraktjakt.HTTPAPIClientConfig{BaseURL: srv.URL})
	got, err := api.PlaceOrder(context.Background(), &fraktjakt.OrderDocument{
		Consignor:         fraktjakt.ConsignorHeader{ID: "1906", Key: "secret-key"},
		ShippingProductID: 10,
		ShipmentID:        7135,
	})

	require.NoError(t, err)
	assert.Equal(t, "/orders/order_xml", gotPath)
	assert.Equal(t, "4410", got.OrderID)
}

func TestHTTPAPIClient_Trace_PathAndCredentials(t *testing.T) {
	var gotPath, gotID, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotID = r.URL.Query().Get("consignor_id")
		gotKey = r.URL.Query().Get("consignor_key")
		w.Write([]byte(`<result><code>0</code><shipping_states><shipping_state>` +
			`<shipment_id>123</shipment_id><name>Skickad</name><id>1</id>` +
			`</shipping_state></shipping_states></result>`))
	}))
	defer srv.Close()

	api := fraktjakt.NewHTTPAPIClient(fraktjakt.HTTPAPIClientConfig{BaseURL: srv.URL})
	got, err := api.Trace(context.Background(), &fraktjakt.TraceRequest{
		ConsignorID:  "1906",
		ConsignorKey: "secret-key",
		ShipmentID:   123,
	})

	require.NoError(t, err)
	assert.Equal(t, "/trace/xml_trace/123", gotPath)
	assert.Equal(t, "1906", gotID)
	assert.Equal(t, "secret-key", gotKey)
	require.Len(t, got.States, 1)
	assert.Equal(t, "Skickad", got.States[0].Name)
}

func TestHTTPAPIClient_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	api := fraktjakt.NewHTTPAPIClient(fraktjakt.HTTPAPIClientConfig{BaseURL: srv.URL})
	_, err := api.QueryShipment(context.Background(), testDocument())

	require.Error(t, err)
	var fjErr *fraktjakt.FraktjaktError
	require.ErrorAs(t, err, &fjErr)
	assert.Equal(t, fraktjakt.CodeConnectivity, fjErr.Code,
		"transport failures bypass reply interpretation")
}

func TestHTTPAPIClient_MalformedReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not xml at all"))
	}))
	defer srv.Close()

	api := fraktjakt.NewHTTPAPIClient(fraktjakt.HTTPAPIClientConfig{BaseURL: srv.URL})
	_, err := api.QueryShipment(context.Background(), testDocument())

	require.Error(t, err)
	var fjErr *fraktjakt.FraktjaktError
	require.ErrorAs(t, err, &fjErr)
	assert.Equal(t, fraktjakt.CodeMalformedResponse, fjErr.Code)
}

func TestHTTPAPIClient_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // shut down before use

	api := fraktjakt.NewHTTPAPIClient(fraktjakt.HTTPAPIClientConfig{BaseURL: srv.URL})
	_, err := api.Trace(context.Background(), &fraktjakt.TraceRequest{ShipmentID: 1})

	require.Error(t, err)
	var fjErr *fraktjakt.FraktjaktError
	require.ErrorAs(t, err, &fjErr)
	assert.Equal(t, fraktjakt.CodeConnectivity, fjErr.Code)
	assert.True(t, strings.Contains(fjErr.Message, "could not reach"))
}
