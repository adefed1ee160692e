package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"along/internal/domain"
	"along/internal/domain/models"
	"along/internal/steps"
	"along/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders printable route cards.
type DocsService struct {
	RequestID string
	Now       func() time.Time
}

// RouteCard is everything printed on one card.
type RouteCard struct {
	Origin      string
	Destination string
	Region      domain.Region
	Route       string
	Steps       []models.RouteStep
}

type rgb struct{ r, g, b int }

var modeColors = map[domain.TravelMode]rgb{
	domain.ModeBus:      {59, 130, 246},
	domain.ModeWalk:     {34, 197, 94},
	domain.ModeTricycle: {234, 179, 8},
	domain.ModeUnknown:  {156, 163, 175},
}

// GenerateRouteCard returns the PDF bytes and a download filename. Steps are
// parsed from Route when the card carries none.
func (s DocsService) GenerateRouteCard(card RouteCard) ([]byte, string, error) {
	card.Origin = utils.NormalizeSpace(card.Origin)
	card.Destination = utils.NormalizeSpace(card.Destination)
	if card.Origin == "" || card.Destination == "" {
		return nil, "", domain.ValidationError{Msg: "Missing required fields"}
	}
	if len(card.Steps) == 0 && strings.TrimSpace(card.Route) != "" {
		card.Steps = steps.Parse(card.Route)
	}

	utils.LogEvent(s.RequestID, "docs", "generate_route_card", fmt.Sprintf("region=%s steps=%d", card.Region, len(card.Steps)))

	data, err := buildRouteCardPDF(card, s.now())
	if err != nil {
		return nil, "", domain.InternalError{Msg: "failed to render route card", Err: err}
	}
	return data, routeCardFilename(card), nil
}

func routeCardFilename(card RouteCard) string {
	from := safe(utils.SafeFilenamePart(card.Origin), "origin")
	to := safe(utils.SafeFilenamePart(card.Destination), "destination")
	return fmt.Sprintf("along-%s-to-%s.pdf", from, to)
}

func buildRouteCardPDF(card RouteCard, now time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Along route card", false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "ALONG ROUTE CARD")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("From    : %s", safe(card.Origin, "-")),
		fmt.Sprintf("To      : %s", safe(card.Destination, "-")),
		fmt.Sprintf("Region  : %s", safe(string(card.Region), "-")),
		fmt.Sprintf("Printed : %s", utils.FormatDateTime(now)),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, tr(s))
		pdf.Ln(7)
	}
	pdf.Ln(4)

	if len(card.Steps) == 0 {
		pdf.SetFont("Helvetica", "I", 12)
		pdf.MultiCell(0, 6, "No valid route found.", "", "", false)
	}

	for _, st := range card.Steps {
		mode := st.Mode
		if mode == "" {
			mode = steps.Classify(st.Text)
		}
		c, ok := modeColors[mode]
		if !ok {
			c = modeColors[domain.ModeUnknown]
		}

		pdf.SetFillColor(c.r, c.g, c.b)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(22, 6, strings.ToUpper(string(mode)), "", 0, "C", true, 0, "")

		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetX(pdf.GetX() + 3)
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("%d. %s", st.Index, st.Text)), "", "", false)
		pdf.Ln(2)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "Directions are generated text. Confirm fares and stops with drivers and conductors.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s DocsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

func safe(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
