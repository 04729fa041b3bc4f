package fraktjakt

import (
	"encoding/xml"

	"github.com/google/uuid"
)

// apiVersion is the Fraktjakt API revision the documents target.
const apiVersion = "3.8.0"

// ============================================================================
// Request document structures (match the Fraktjakt XML API)
// ============================================================================

// ConsignorHeader is the credential and locale header that precedes all
// operation-specific fields in every request document.
type ConsignorHeader struct {
	ID         string `xml:"id"`
	Key        string `xml:"key"`
	Currency   string `xml:"currency"`
	Language   string `xml:"language"`
	Encoding   string `xml:"encoding"`
	APIVersion string `xml:"api_version"`
}

// ParcelBlock is one parcel entry on the wire. All four measures are
// always emitted; the builder floors the dimensions to 1.
type ParcelBlock struct {
	Weight float64 `xml:"weight"`
	Length float64 `xml:"length"`
	Width  float64 `xml:"width"`
	Height float64 `xml:"height"`
}

// AddressBlock is an address on the wire. Street1 and CityName are
// emitted even when blank; Residential is always emitted as a strict
// "true"/"false".
type AddressBlock struct {
	Street1                string `xml:"street_address_1"`
	Street2                string `xml:"street_address_2,omitempty"`
	PostalCode             string `xml:"postal_code,omitempty"`
	CityName               string `xml:"city_name"`
	Residential            bool   `xml:"residential"`
	CountryCode            string `xml:"country_code"`
	CountrySubdivisionCode string `xml:"country_subdivision_code,omitempty"`
}

// CommodityBlock is one commodity entry on the wire.
type CommodityBlock struct {
	Name                 string  `xml:"name"`
	Quantity             int     `xml:"quantity"`
	QuantityUnits        string  `xml:"quantity_units"`
	Description          string  `xml:"description,omitempty"`
	Taric                string  `xml:"taric,omitempty"`
	CountryOfManufacture string  `xml:"country_of_manufacture"`
	Weight               float64 `xml:"weight,omitempty"`
	UnitPrice            float64 `xml:"unit_price,omitempty"`
}

// RecipientBlock is the receiving party on the wire.
type RecipientBlock struct {
	CompanyTo   string `xml:"company_to,omitempty"`
	NameTo      string `xml:"name_to,omitempty"`
	TelephoneTo string `xml:"telephone_to,omitempty"`
	MobileTo    string `xml:"mobile_to,omitempty"`
	EmailTo     string `xml:"email_to,omitempty"`
}

// BookingBlock is the optional pickup booking on the wire.
type BookingBlock struct {
	DrivingInstruction string `xml:"driving_instruction,omitempty"`
	UserNotes          string `xml:"user_notes,omitempty"`
	PickupDate         string `xml:"pickup_date,omitempty"`
	ReadyTime          string `xml:"ready_time,omitempty"`
	CloseTime          string `xml:"close_time,omitempty"`
}

// ShipmentDocument is the request document for the quote operation.
type ShipmentDocument struct {
	XMLName       xml.Name        `xml:"shipment"`
	Consignor     ConsignorHeader `xml:"consignor"`
	Value         float64         `xml:"value"`
	Express       *bool           `xml:"express,omitempty"`
	Pickup        *bool           `xml:"pickup,omitempty"`
	Dropoff       *bool           `xml:"dropoff,omitempty"`
	Green         *bool           `xml:"green,omitempty"`
	Quality       *bool           `xml:"quality,omitempty"`
	TimeGuarantee *bool           `xml:"time_guarantee,omitempty"`
	Cold          *bool           `xml:"cold,omitempty"`
	Frozen        *bool           `xml:"frozen,omitempty"`
	Parcels       []ParcelBlock   `xml:"parcels>parcel"`
	AddressTo     AddressBlock    `xml:"address_to"`
}

// OrderDocument is the request document for the order operation. Either
// ShipmentID references an existing quoted shipment, or AddressFrom,
// AddressTo and Parcels describe a complete new one.
type OrderDocument struct {
	XMLName           xml.Name         `xml:"order"`
	Consignor         ConsignorHeader  `xml:"consignor"`
	Value             float64          `xml:"value"`
	ShippingProductID int              `xml:"shipping_product_id"`
	ShipmentID        int              `xml:"shipment_id,omitempty"`
	Reference         string           `xml:"reference,omitempty"`
	Parcels           []ParcelBlock    `xml:"parcels>parcel,omitempty"`
	AddressFrom       *AddressBlock    `xml:"address_from,omitempty"`
	AddressTo         *AddressBlock    `xml:"address_to,omitempty"`
	Commodities       []CommodityBlock `xml:"commodities>commodity"`
	Recipient         RecipientBlock   `xml:"recipient"`
	Booking           *BookingBlock    `xml:"booking,omitempty"`
}

// TraceRequest is the query for the tracking operation. It is sent as
// plain query parameters rather than an XML document.
type TraceRequest struct {
	ConsignorID  string
	ConsignorKey string
	ShipmentID   int
}

// ============================================================================
// Builders
// ============================================================================

func (c *Client) consignorHeader() ConsignorHeader {
	return ConsignorHeader{
		ID:         c.config.ConsignorID,
		Key:        c.config.ConsignorKey,
		Currency:   defaultString(c.config.Currency, "SEK"),
		Language:   defaultString(c.config.Language, "sv"),
		Encoding:   "iso-8859-1",
		APIVersion: apiVersion,
	}
}

// buildQuoteDocument renders the quote request document from the session
// parcels and the caller's options. It fails when no parcel has been
// added to the session.
func (c *Client) buildQuoteDocument(req *QuoteRequest) (*ShipmentDocument, error) {
	if len(c.parcels) == 0 {
		return nil, missingInformation("quote", "parcels")
	}

	return &ShipmentDocument{
		Consignor:     c.consignorHeader(),
		Value:         floorValue(req.Value),
		Express:       req.Express,
		Pickup:        req.Pickup,
		Dropoff:       req.Dropoff,
		Green:         req.Green,
		Quality:       req.Quality,
		TimeGuarantee: req.TimeGuarantee,
		Cold:          req.Cold,
		Frozen:        req.Frozen,
		Parcels:       parcelsToBlocks(c.parcels),
		AddressTo:     addressToBlock(req.AddressTo),
	}, nil
}

// buildOrderDocument renders the order request document. Commodities are
// required for customs declarations on every order; the full-shipment
// form additionally requires a destination address and session parcels.
func (c *Client) buildOrderDocument(req *OrderRequest) (*OrderDocument, error) {
	if len(c.commodities) == 0 {
		return nil, missingInformation("order", "commodities")
	}

	doc := &OrderDocument{
		Consignor:         c.consignorHeader(),
		Value:             floorValue(req.Value),
		ShippingProductID: req.ShippingProductID,
		Reference:         defaultString(req.Reference, uuid.New().String()),
		Commodities:       commoditiesToBlocks(c.commodities),
		Recipient: RecipientBlock{
			CompanyTo:   req.Recipient.CompanyTo,
			NameTo:      req.Recipient.NameTo,
			TelephoneTo: req.Recipient.TelephoneTo,
			MobileTo:    req.Recipient.MobileTo,
			EmailTo:     req.Recipient.EmailTo,
		},
	}

	if req.Booking != nil {
		doc.Booking = &BookingBlock{
			DrivingInstruction: req.Booking.DrivingInstruction,
			UserNotes:          req.Booking.UserNotes,
			PickupDate:         req.Booking.PickupDate,
			ReadyTime:          req.Booking.ReadyTime,
			CloseTime:          req.Booking.CloseTime,
		}
	}

	if req.ShipmentID != 0 {
		doc.ShipmentID = req.ShipmentID
		return doc, nil
	}

	// Full-shipment form: the order document carries the shipment spec.
	if req.AddressTo == nil {
		return nil, missingInformation("order", "address_to")
	}
	if len(c.parcels) == 0 {
		return nil, missingInformation("order", "parcels")
	}
	from := addressToBlock(c.config.SenderAddress)
	to := addressToBlock(*req.AddressTo)
	doc.AddressFrom = &from
	doc.AddressTo = &to
	doc.Parcels = parcelsToBlocks(c.parcels)
	return doc, nil
}

func (c *Client) buildTraceRequest(req *TrackRequest) *TraceRequest {
	return &TraceRequest{
		ConsignorID:  c.config.ConsignorID,
		ConsignorKey: c.config.ConsignorKey,
		ShipmentID:   req.ShipmentID,
	}
}

// ============================================================================
// Conversion helpers
// ============================================================================

func parcelsToBlocks(parcels []Parcel) []ParcelBlock {
	blocks := make([]ParcelBlock, len(parcels))
	for i, p := range parcels {
		blocks[i] = ParcelBlock{
			Weight: p.Weight,
			Length: floorDimension(p.Length),
			Width:  floorDimension(p.Width),
			Height: floorDimension(p.Height),
		}
	}
	return blocks
}

func commoditiesToBlocks(commodities []Commodity) []CommodityBlock {
	blocks := make([]CommodityBlock, len(commodities))
	for i, cm := range commodities {
		quantity := cm.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		blocks[i] = CommodityBlock{
			Name:                 cm.Name,
			Quantity:             quantity,
			QuantityUnits:        string(defaultUnit(cm.QuantityUnits)),
			Description:          cm.Description,
			Taric:                cm.Taric,
			CountryOfManufacture: defaultString(cm.CountryOfManufacture, "SE"),
			Weight:               cm.Weight,
			UnitPrice:            cm.UnitPrice,
		}
	}
	return blocks
}

func addressToBlock(addr Address) AddressBlock {
	return AddressBlock{
		Street1:                addr.Street1,
		Street2:                addr.Street2,
		PostalCode:             addr.PostalCode,
		CityName:               addr.CityName,
		Residential:            addr.Residential == nil || *addr.Residential,
		CountryCode:            defaultString(addr.CountryCode, "SE"),
		CountrySubdivisionCode: addr.CountrySubdivisionCode,
	}
}

// floorValue raises the declared shipment value to a minimum of 1.0; the
// service rejects zero-value shipments.
func floorValue(v float64) float64 {
	if v < 1 {
		return 1
	}
	return v
}

func floorDimension(d float64) float64 {
	if d < 1 {
		return 1
	}
	return d
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func defaultUnit(u QuantityUnit) QuantityUnit {
	if u == "" {
		return UnitEach
	}
	return u
}
