package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tournevent/fraktjakt/internal/telemetry"
	"github.com/tournevent/fraktjakt/pkg/fraktjakt"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

var version = "0.0.1"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "fraktjakt",
	Short:   "Fraktjakt shipping CLI - freight quotes, booking and tracking",
	Version: version,
}

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Request shipping quotes for a parcel",
	RunE:  runQuote,
}

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Book a shipment with a shipping product",
	RunE:  runOrder,
}

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Query delivery status for a booked shipment",
	RunE:  runTrack,
}

var (
	flagWeight float64
	flagLength float64
	flagWidth  float64
	flagHeight float64
	flagValue  float64

	flagStreet1     string
	flagStreet2     string
	flagPostalCode  string
	flagCity        string
	flagSubdivision string
	flagCountry     string
	flagResidential bool

	flagExpress bool
	flagPickup  bool
	flagDropoff bool
	flagGreen   bool

	flagProductID  int
	flagShipmentID int
	flagReference  string

	flagRecipientCompany string
	flagRecipientName    string
	flagRecipientPhone   string
	flagRecipientMobile  string
	flagRecipientEmail   string

	flagCommodityName   string
	flagCommodityQty    int
	flagCommodityPrice  float64
	flagCommodityWeight float64
)

func init() {
	quoteCmd.Flags().Float64Var(&flagWeight, "weight", 0, "parcel weight in kilograms (required)")
	quoteCmd.Flags().Float64Var(&flagLength, "length", 0, "parcel length in centimeters")
	quoteCmd.Flags().Float64Var(&flagWidth, "width", 0, "parcel width in centimeters")
	quoteCmd.Flags().Float64Var(&flagHeight, "height", 0, "parcel height in centimeters")
	quoteCmd.Flags().Float64Var(&flagValue, "value", 0, "commercial value of the shipment")
	quoteCmd.Flags().BoolVar(&flagExpress, "express", false, "only express products")
	quoteCmd.Flags().BoolVar(&flagPickup, "pickup", false, "only products with pickup")
	quoteCmd.Flags().BoolVar(&flagDropoff, "dropoff", false, "only products with dropoff")
	quoteCmd.Flags().BoolVar(&flagGreen, "green", false, "only environmentally friendly products")
	addAddressFlags(quoteCmd)

	orderCmd.Flags().IntVar(&flagProductID, "product", 0, "shipping product id to book (required)")
	orderCmd.Flags().IntVar(&flagShipmentID, "shipment", 0, "shipment id from an earlier quote")
	orderCmd.Flags().Float64Var(&flagValue, "value", 0, "commercial value of the shipment")
	orderCmd.Flags().StringVar(&flagReference, "reference", "", "order reference (defaults to a generated id)")
	orderCmd.Flags().StringVar(&flagRecipientCompany, "company", "", "recipient company name")
	orderCmd.Flags().StringVar(&flagRecipientName, "name", "", "recipient person name")
	orderCmd.Flags().StringVar(&flagRecipientPhone, "phone", "", "recipient telephone number")
	orderCmd.Flags().StringVar(&flagRecipientMobile, "mobile", "", "recipient mobile number")
	orderCmd.Flags().StringVar(&flagRecipientEmail, "email", "", "recipient email address")
	orderCmd.Flags().StringVar(&flagCommodityName, "commodity", "", "commodity name for the customs declaration")
	orderCmd.Flags().IntVar(&flagCommodityQty, "quantity", 0, "commodity quantity")
	orderCmd.Flags().Float64Var(&flagCommodityPrice, "unit-price", 0, "commodity unit price")
	orderCmd.Flags().Float64Var(&flagCommodityWeight, "commodity-weight", 0, "commodity unit weight in kilograms")
	orderCmd.Flags().Float64Var(&flagWeight, "weight", 0, "parcel weight in kilograms (full shipment form)")
	orderCmd.Flags().Float64Var(&flagLength, "length", 0, "parcel length in centimeters")
	orderCmd.Flags().Float64Var(&flagWidth, "width", 0, "parcel width in centimeters")
	orderCmd.Flags().Float64Var(&flagHeight, "height", 0, "parcel height in centimeters")
	addAddressFlags(orderCmd)

	trackCmd.Flags().IntVar(&flagShipmentID, "shipment", 0, "shipment id to track (required)")

	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(orderCmd)
	rootCmd.AddCommand(trackCmd)
}

func addAddressFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagStreet1, "street1", "", "destination street address")
	cmd.Flags().StringVar(&flagStreet2, "street2", "", "destination street address, second line")
	cmd.Flags().StringVar(&flagPostalCode, "postal-code", "", "destination postal code")
	cmd.Flags().StringVar(&flagCity, "city", "", "destination city")
	cmd.Flags().StringVar(&flagSubdivision, "subdivision", "", "destination state or province code")
	cmd.Flags().StringVar(&flagCountry, "country", "SE", "destination country code")
	cmd.Flags().BoolVar(&flagResidential, "residential", false, "destination is a residential address")
}

func runQuote(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	app, err := setup(ctx)
	if err != nil {
		return err
	}
	defer app.close(ctx)

	if err := app.session.AddParcel(fraktjakt.Parcel{
		Weight: flagWeight,
		Length: flagLength,
		Width:  flagWidth,
		Height: flagHeight,
	}); err != nil {
		return err
	}

	req := &fraktjakt.QuoteRequest{
		Value:     flagValue,
		AddressTo: destinationAddress(cmd),
	}
	req.Express = boolFlag(cmd, "express", flagExpress)
	req.Pickup = boolFlag(cmd, "pickup", flagPickup)
	req.Dropoff = boolFlag(cmd, "dropoff", flagDropoff)
	req.Green = boolFlag(cmd, "green", flagGreen)

	start := time.Now()
	resp, err := app.session.Quote(ctx, req)
	app.observe("quote", start, err)
	if err != nil {
		return err
	}

	fmt.Printf("Shipment %d (%s)\n", resp.ShipmentID, resp.Currency)
	if resp.AccessLink != "" {
		fmt.Printf("Access link: %s\n", resp.AccessLink)
	}
	for _, p := range resp.Products {
		fmt.Printf("  %7d  %-45s  %9.2f  %s\n",
			p.ID, p.Description, p.Price, p.ArrivalTime)
	}
	return nil
}

func runOrder(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	app, err := setup(ctx)
	if err != nil {
		return err
	}
	defer app.close(ctx)

	if flagCommodityName != "" {
		if err := app.session.AddCommodity(fraktjakt.Commodity{
			Name:      flagCommodityName,
			Quantity:  flagCommodityQty,
			UnitPrice: flagCommodityPrice,
			Weight:    flagCommodityWeight,
		}); err != nil {
			return err
		}
	}

	req := &fraktjakt.OrderRequest{
		ShippingProductID: flagProductID,
		ShipmentID:        flagShipmentID,
		Value:             flagValue,
		Reference:         flagReference,
		Recipient: fraktjakt.Recipient{
			CompanyTo:   flagRecipientCompany,
			NameTo:      flagRecipientName,
			TelephoneTo: flagRecipientPhone,
			MobileTo:    flagRecipientMobile,
			EmailTo:     flagRecipientEmail,
		},
	}

	// Without a shipment id the order submits a complete shipment, so
	// the parcel and destination flags describe it.
	if flagShipmentID == 0 {
		if err := app.session.AddParcel(fraktjakt.Parcel{
			Weight: flagWeight,
			Length: flagLength,
			Width:  flagWidth,
			Height: flagHeight,
		}); err != nil {
			return err
		}
		addr := destinationAddress(cmd)
		req.AddressTo = &addr
	}

	start := time.Now()
	resp, err := app.session.Order(ctx, req)
	app.observe("order", start, err)
	if err != nil {
		return err
	}

	fmt.Printf("Order %d placed for shipment %d\n", resp.OrderID, resp.ShipmentID)
	if resp.AccessLink != "" {
		fmt.Printf("Access link: %s\n", resp.AccessLink)
	}
	if resp.SenderEmailLink != "" {
		fmt.Printf("Sender email link: %s\n", resp.SenderEmailLink)
	}
	return nil
}

func runTrack(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	app, err := setup(ctx)
	if err != nil {
		return err
	}
	defer app.close(ctx)

	start := time.Now()
	resp, err := app.session.Track(ctx, &fraktjakt.TrackRequest{ShipmentID: flagShipmentID})
	app.observe("track", start, err)
	if err != nil {
		return err
	}

	for _, s := range resp.States {
		fmt.Printf("  %7d  %-18s  %s\n", s.ShipmentID, s.StatusID, s.Name)
	}
	return nil
}

func destinationAddress(cmd *cobra.Command) fraktjakt.Address {
	addr := fraktjakt.Address{
		Street1:                flagStreet1,
		Street2:                flagStreet2,
		PostalCode:             flagPostalCode,
		CityName:               flagCity,
		CountrySubdivisionCode: flagSubdivision,
		CountryCode:            flagCountry,
	}
	addr.Residential = boolFlag(cmd, "residential", flagResidential)
	return addr
}

// boolFlag returns the flag value only when the caller set it, so the
// request keeps its tri-state semantics.
func boolFlag(cmd *cobra.Command, name string, value bool) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

// app bundles the wired session with its telemetry.
type app struct {
	session        *fraktjakt.Client
	logger         *otelzap.Logger
	metrics        *telemetry.Metrics
	tracerShutdown func(context.Context) error
}

func (a *app) close(ctx context.Context) {
	if a.tracerShutdown != nil {
		if err := a.tracerShutdown(ctx); err != nil {
			a.logger.Warn("Failed to shut down tracer", zap.Error(err))
		}
	}
	a.logger.Sync()
}

func (a *app) observe(operation string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
		var apiErr *fraktjakt.FraktjaktError
		if errors.As(err, &apiErr) {
			a.metrics.RecordError(apiErr.Code)
		}
	}
	a.metrics.RecordRequest(operation, status, time.Since(start).Seconds())
}
