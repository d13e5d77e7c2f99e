// Package export assembles the downloadable PDF report. Chart rasterization
// failures degrade to a text-only document rather than failing the export.
package export

import (
	"bytes"
	"fmt"
	"sync/atomic"

	"github.com/go-pdf/fpdf"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"

	"madurez42001/internal/catalog"
	"madurez42001/internal/model"
	"madurez42001/internal/recommend"
	"madurez42001/internal/report"
)

// Fixed, deterministic artifact names.
const (
	Filename         = "evaluacion_iso_42001.pdf"
	FallbackFilename = "evaluacion_iso_42001_simplificada.pdf"
)

const (
	titleLine    = "Evaluación del Nivel de Madurez"
	subtitleLine = "ISO 42001 - Sistema de Gestión de Inteligencia Artificial"

	pageMargin   = 10.0 // mm, left/right
	topMargin    = 15.0
	bottomGuard  = 280.0 // wrap to a new page past this y
	firstPageTop = 35.0  // below the title block
)

// ErrBusy is returned while another export is in flight. The UI keeps its
// single export control disabled until the running export settles.
var ErrBusy = errors.New("export: another export is in progress")

// Artifact is a finished document ready to stream to the client.
type Artifact struct {
	Filename string
	Data     []byte
	// Degraded is true when chart rasterization failed and the text-only
	// fallback was produced instead.
	Degraded bool
}

// Service renders snapshots into PDF artifacts. At most one export runs at a
// time.
type Service struct {
	catalog  *catalog.Catalog
	reports  *report.Service
	inFlight atomic.Bool
}

// NewService creates an export service.
func NewService(cat *catalog.Catalog, reports *report.Service) *Service {
	return &Service{
		catalog: cat,
		reports: reports,
	}
}

// Export produces the report PDF for a snapshot. Only one export may be in
// flight; concurrent calls get ErrBusy. Rasterization failure falls back to
// the simplified text-only document; only a failure of that fallback too is
// returned as an error.
func (s *Service) Export(snap *model.Snapshot) (*Artifact, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.inFlight.Store(false)

	data, err := s.renderFull(snap)
	if err == nil {
		return &Artifact{Filename: Filename, Data: data}, nil
	}
	log.Warnf("export: chart report failed, falling back to simplified pdf: %v", err)

	data, fbErr := s.renderFallback(snap)
	if fbErr != nil {
		return nil, errors.Wrap(fbErr, "export: fallback pdf")
	}
	return &Artifact{Filename: FallbackFilename, Data: data, Degraded: true}, nil
}

// renderFull builds the chart-based report: title block on the first page,
// then the rasterized charts flowing across as many pages as needed.
func (s *Service) renderFull(snap *model.Snapshot) ([]byte, error) {
	rendered, err := s.reports.Render(snap)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageW, pageH := pdf.GetPageSize()
	imgW := pageW - 2*pageMargin

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(titleLine), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 10, tr(subtitleLine), "", 1, "C", false, 0, "")

	pdf.SetY(firstPageTop)
	writeSummary(pdf, tr, snap)

	images := []struct {
		name string
		png  []byte
	}{
		{"radar", rendered.Radar},
		{"bars", rendered.Bars},
		{"donut", rendered.Donut},
	}
	for _, img := range images {
		info := pdf.RegisterImageOptionsReader(img.name, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(img.png))
		if pdf.Err() {
			return nil, pdf.Error()
		}
		imgH := imgW * info.Height() / info.Width()
		if pdf.GetY()+imgH > pageH-topMargin {
			pdf.AddPage()
			pdf.SetY(topMargin)
		}
		pdf.ImageOptions(img.name, pageMargin, pdf.GetY(), imgW, imgH, true, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeSummary prints the overall figures under the title block.
func writeSummary(pdf *fpdf.Fpdf, tr func(string) string, snap *model.Snapshot) {
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("Puntuación General: %.1f/5", snap.Overall)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("Nivel de Madurez: %s - %s", snap.Level.Level, snap.Level.Description)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("Secciones Evaluadas: %d/%d", snap.EvaluatedSections, snap.TotalSections)), "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

// renderFallback builds the degraded text-only document: overall score,
// maturity level, per-section scores and recommendations.
func (s *Service) renderFallback(snap *model.Snapshot) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, tr(titleLine), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 16)
	pdf.CellFormat(0, 10, tr("ISO 42001 - Sistema de Gestión de IA"), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetY(50)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Puntuación General: %.1f/5", snap.Overall)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Nivel de Madurez: %s", snap.Level.Level)), "", 1, "L", false, 0, "")

	pdf.Ln(8)
	pdf.CellFormat(0, 8, tr("Puntuaciones por Componente:"), "", 1, "L", false, 0, "")
	for _, section := range s.catalog.Sections() {
		score := snap.SectionScores[section.ID]
		line := fmt.Sprintf("%s: %.1f/5", section.ChartTitle, score)
		pdf.SetX(pageMargin + 5)
		pdf.CellFormat(0, 7, tr(line), "", 1, "L", false, 0, "")
	}

	pdf.Ln(8)
	pdf.CellFormat(0, 8, tr("Recomendaciones:"), "", 1, "L", false, 0, "")
	if len(snap.Recommendations) == 0 {
		pdf.SetX(pageMargin + 5)
		pdf.MultiCell(0, 6, tr(recommend.SuccessMessage), "", "L", false)
	} else {
		for i, rec := range snap.Recommendations {
			if pdf.GetY() > bottomGuard {
				pdf.AddPage()
				pdf.SetY(topMargin)
			}
			pdf.SetX(pageMargin + 5)
			pdf.MultiCell(0, 6, tr(fmt.Sprintf("%d. %s", i+1, rec)), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
