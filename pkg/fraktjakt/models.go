package fraktjakt

// Environment selects which Fraktjakt endpoint the client targets.
type Environment string

const (
	EnvTest       Environment = "test"
	EnvProduction Environment = "production"
)

// BaseURL returns the service base URL for the environment.
// Unknown values fall back to the test endpoint.
func (e Environment) BaseURL() string {
	if e == EnvProduction {
		return "https://api.fraktjakt.se"
	}
	return "https://testapi.fraktjakt.se"
}

// QuantityUnit is the unit of measure for a commodity quantity.
type QuantityUnit string

const (
	UnitEach       QuantityUnit = "EA"
	UnitDozen      QuantityUnit = "DZ"
	UnitLiter      QuantityUnit = "L"
	UnitMilliliter QuantityUnit = "ML"
	UnitKilogram   QuantityUnit = "KG"
)

// ShippingState is the normalized delivery status reported by tracking.
type ShippingState int

const (
	StateHandledBySender ShippingState = 0
	StateSent            ShippingState = 1
	StateDelivered       ShippingState = 2
	StateSigned          ShippingState = 3
	StateReturned        ShippingState = 4
)

// String returns a human-readable name for the state.
func (s ShippingState) String() string {
	switch s {
	case StateHandledBySender:
		return "handled_by_sender"
	case StateSent:
		return "sent"
	case StateDelivered:
		return "delivered"
	case StateSigned:
		return "signed"
	case StateReturned:
		return "returned"
	default:
		return "unknown"
	}
}

// Parcel describes one physical package. Dimensions are in centimeters,
// weight in kilograms. Length, width and height below 1 are raised to 1
// when the parcel is added; weight must be supplied by the caller.
type Parcel struct {
	Weight float64 `name:"weight" validate:"required,gt=0"`
	Length float64 `name:"length"`
	Width  float64 `name:"width"`
	Height float64 `name:"height"`
}

// Commodity describes the goods inside a shipment, used for customs
// declarations. Quantity defaults to 1 and QuantityUnits to EA when the
// caller leaves them unset; CountryOfManufacture defaults to SE.
type Commodity struct {
	Name                 string       `name:"name" validate:"required"`
	Quantity             int          `name:"quantity"`
	QuantityUnits        QuantityUnit `name:"quantity_units" validate:"omitempty,oneof=EA DZ L ML KG"`
	Taric                string       `name:"taric"`
	Description          string       `name:"description"`
	CountryOfManufacture string       `name:"country_of_manufacture"`
	UnitPrice            float64      `name:"unit_price"`
	Weight               float64      `name:"weight"`
}

// Address is a street address. CountryCode defaults to SE and
// Residential to true when left unset.
type Address struct {
	Street1                string `name:"street1" validate:"required"`
	Street2                string `name:"street2"`
	PostalCode             string `name:"postal_code"`
	CityName               string `name:"city_name" validate:"required"`
	CountrySubdivisionCode string `name:"country_subdivision_code"`
	CountryCode            string `name:"country_code"`
	// Residential is a tri-state: nil means "not specified" and is
	// treated as true on the wire.
	Residential *bool `name:"residential"`
}

// Recipient is the receiving party of an order. At least one of NameTo
// and CompanyTo must be set, and at least one way to reach them.
type Recipient struct {
	CompanyTo   string `name:"company_to" validate:"required_without=NameTo"`
	NameTo      string `name:"name_to" validate:"required_without=CompanyTo"`
	TelephoneTo string `name:"telephone_to" validate:"required_without_all=MobileTo EmailTo"`
	MobileTo    string `name:"mobile_to"`
	EmailTo     string `name:"email_to"`
}

// Booking carries optional pickup instructions for an order. All fields
// are free-form and passed through verbatim.
type Booking struct {
	DrivingInstruction string `name:"driving_instruction"`
	UserNotes          string `name:"user_notes"`
	PickupDate         string `name:"pickup_date"`
	ReadyTime          string `name:"ready_time"`
	CloseTime          string `name:"close_time"`
}

// QuoteRequest asks Fraktjakt to price a shipment built from the
// session's accumulated parcels. Value is the declared monetary value of
// the shipment; values below 1 are raised to 1.0 on the wire because the
// service rejects zero-value shipments.
//
// The boolean preferences are tri-state: nil flags are omitted from the
// request entirely.
type QuoteRequest struct {
	Value         float64 `name:"value"`
	AddressTo     Address `name:"address_to"`
	Express       *bool   `name:"express"`
	Pickup        *bool   `name:"pickup"`
	Dropoff       *bool   `name:"dropoff"`
	Green         *bool   `name:"green"`
	Quality       *bool   `name:"quality"`
	TimeGuarantee *bool   `name:"time_guarantee"`
	Cold          *bool   `name:"cold"`
	Frozen        *bool   `name:"frozen"`
}

// OrderRequest books a shipment. When ShipmentID is set the order reuses
// a shipment previously created by Quote; otherwise a complete shipment
// (sender address, accumulated parcels, destination) is submitted with
// the order in one document.
type OrderRequest struct {
	ShippingProductID int `name:"shipping_product_id" validate:"required"`
	// ShipmentID references a shipment returned by an earlier Quote
	// call. Re-ordering against the same id creates a new shipment copy
	// on the remote side, it is not idempotent.
	ShipmentID int       `name:"shipment_id"`
	Value      float64   `name:"value"`
	Reference  string    `name:"reference"`
	Recipient  Recipient `name:"recipient"`
	AddressTo  *Address  `name:"address_to"`
	Booking    *Booking  `name:"booking"`
}

// TrackRequest queries delivery status for a booked shipment.
type TrackRequest struct {
	ShipmentID int `name:"shipment_id" validate:"required"`
}

// SearchResult is one priced shipping product offered for a quoted
// shipment. Many SearchResults belong to the shipment id returned by the
// same Quote call.
type SearchResult struct {
	ID          int
	Description string
	ArrivalTime string
	Price       float64
	// TaxClass is the VAT percentage code for the price.
	TaxClass    int
	AgentInfo   string
	AgentLink   string
	AgentInInfo string
	AgentInLink string
}

// TrackResult is the delivery status of one sub-shipment. The shipment
// id may differ from the queried id because the service may split a
// shipment into several.
type TrackResult struct {
	ShipmentID int
	Name       string
	StatusID   ShippingState
	// FraktjaktStatusID is the service-internal status code.
	FraktjaktStatusID int
}

// QuoteResponse is the outcome of a successful Quote call.
type QuoteResponse struct {
	ShipmentID int
	Currency   string
	AccessCode string
	AccessLink string
	// Warning is non-empty when the service answered with code 1.
	Warning  string
	Products []SearchResult
}

// OrderResponse is the outcome of a successful Order call.
type OrderResponse struct {
	ShipmentID      int
	OrderID         int
	AccessCode      string
	AccessLink      string
	SenderEmailLink string
	Warning         string
}

// TrackResponse is the outcome of a successful Track call.
type TrackResponse struct {
	Warning string
	States  []TrackResult
}
