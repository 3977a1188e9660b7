package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"ingatlan/agent/internal/models"
	"ingatlan/agent/internal/registry"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Build collects the report values from reg. city selects the listing whose
// average area per room is reported.
func Build(reg *registry.Registry, city string) models.ReportStats {
	stats := models.ReportStats{
		TotalListings:            reg.Len(),
		AveragePricePerArea:      reg.AveragePricePerArea(),
		ReportCity:               city,
		TotalOfAll:               reg.TotalOfAll(),
		AverageTotalPrice:        reg.AverageTotalPrice(),
		CondominiumsBelowAverage: models.NewListingViews(reg.CondominiumsBelowAverage()),
	}

	if cheapest := reg.Cheapest(); cheapest != nil {
		price := cheapest.TotalPrice()
		stats.CheapestTotalPrice = &price
	}
	if best := reg.MostExpensiveIn(city); best != nil {
		perRoom := best.AverageAreaPerRoom()
		stats.CityMaxAreaPerRoom = &perRoom
	}
	return stats
}

// Writer renders report stats as text or JSON
type Writer struct {
	logger *logrus.Logger
	format string
}

func NewWriter(logger *logrus.Logger, format string) (*Writer, error) {
	format = strings.ToLower(format)
	if format != FormatText && format != FormatJSON {
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	return &Writer{logger: logger, format: format}, nil
}

// WriteFile writes the report to path and to every extra writer.
func (w *Writer) WriteFile(stats models.ReportStats, path string, extra ...io.Writer) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}

	writeErr := w.Write(stats, append([]io.Writer{file}, extra...)...)
	if err := file.Close(); err != nil && writeErr == nil {
		writeErr = fmt.Errorf("failed to close report file: %w", err)
	}
	if writeErr != nil {
		return writeErr
	}

	w.logger.WithFields(logrus.Fields{
		"file":     path,
		"format":   w.format,
		"listings": stats.TotalListings,
	}).Info("Report written")
	return nil
}

// Write renders the report once and copies it to every writer.
func (w *Writer) Write(stats models.ReportStats, outs ...io.Writer) error {
	var data []byte
	switch w.format {
	case FormatJSON:
		encoded, err := json.MarshalIndent(stats, "", "    ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		data = append(encoded, '\n')
	default:
		data = []byte(RenderText(stats))
	}

	if _, err := io.MultiWriter(outs...).Write(data); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// RenderText formats the report as plain lines. Sections without a value
// (no listings, no listing in the report city) are left out.
func RenderText(stats models.ReportStats) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Listings: %d\n", stats.TotalListings)
	fmt.Fprintf(&b, "Average price per square meter: %.2f\n", stats.AveragePricePerArea)
	if stats.CheapestTotalPrice != nil {
		fmt.Fprintf(&b, "Cheapest property price: %d\n", *stats.CheapestTotalPrice)
	}
	if stats.CityMaxAreaPerRoom != nil {
		fmt.Fprintf(&b, "Avg sqm per room of most expensive %s property: %.2f\n", stats.ReportCity, *stats.CityMaxAreaPerRoom)
	}
	fmt.Fprintf(&b, "Total price of all properties: %d\n", stats.TotalOfAll)
	fmt.Fprintf(&b, "Average total price: %.2f\n", stats.AverageTotalPrice)
	b.WriteString("Condominiums below average total price:\n")
	for _, view := range stats.CondominiumsBelowAverage {
		fmt.Fprintf(&b, "  %s\n", Describe(view))
	}
	return b.String()
}

// Describe renders one listing on a single line.
func Describe(v models.ListingView) string {
	fields := []string{
		"location=" + strconv.Quote(v.Location),
		fmt.Sprintf("pricePerSqm=%.2f", v.PricePerArea),
		fmt.Sprintf("sqm=%d", v.Area),
		"rooms=" + strconv.FormatFloat(v.RoomCount, 'f', -1, 64),
		"category=" + v.Category.String(),
	}
	if v.Floor != nil {
		fields = append(fields, fmt.Sprintf("floor=%d", *v.Floor))
	}
	if v.Insulated != nil {
		fields = append(fields, fmt.Sprintf("insulated=%t", *v.Insulated))
	}
	fields = append(fields,
		fmt.Sprintf("totalPrice=%d", v.TotalPrice),
		fmt.Sprintf("avgSqmPerRoom=%.2f", v.AverageAreaPerRoom),
		fmt.Sprintf("roomPrice=%d", v.PricePerRoom),
	)
	return v.Kind + "{" + strings.Join(fields, ", ") + "}"
}
