package output

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/olsonco/calckit/internal/calculators"
)

const (
	pdfMarginLeft   = 15.0
	pdfMarginRight  = 15.0
	pdfMarginTop    = 15.0
	pdfMarginBottom = 15.0
	pdfContentWidth = 210.0 - pdfMarginLeft - pdfMarginRight
	// pdfMaxChartRows keeps long schedules to a couple of pages.
	pdfMaxChartRows = 60
)

// PDFFormatter renders an A4 report.
type PDFFormatter struct {
	// Now stamps the report; nil uses time.Now.
	Now func() time.Time
}

func (p PDFFormatter) Name() string { return "pdf" }

type pdfReport struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (p PDFFormatter) Format(r *Report) ([]byte, error) {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	doc.SetAutoPageBreak(true, pdfMarginBottom)
	doc.SetTitle(r.Title, true)
	doc.SetCreationDate(now())
	rep := &pdfReport{pdf: doc, tr: doc.UnicodeTranslatorFromDescriptor("")}

	doc.AddPage()
	doc.SetFont("Arial", "B", 20)
	doc.SetTextColor(2, 132, 199)
	doc.CellFormat(pdfContentWidth, 12, rep.tr(r.Title), "", 1, "L", false, 0, "")
	doc.SetFont("Arial", "I", 10)
	doc.SetTextColor(100, 116, 139)
	doc.CellFormat(pdfContentWidth, 6, rep.tr(fmt.Sprintf("%s calculator - generated %s",
		calculators.CategoryLabel(r.Category), now().Format("2 January 2006"))), "", 1, "L", false, 0, "")
	doc.Ln(4)

	rep.section("Summary")
	widths := []float64{pdfContentWidth * 0.6, pdfContentWidth * 0.4}
	for i, s := range r.Result.Summary {
		rep.row([]string{s.Label, s.Value}, widths, i == 0)
	}
	doc.Ln(4)

	if len(r.Result.Narrative) > 0 {
		rep.section("Notes")
		rep.paragraphs(r.Result.Narrative, 51, 65, 85)
	}
	if len(r.Result.Warnings) > 0 {
		rep.section("Warnings")
		rep.paragraphs(r.Result.Warnings, 180, 83, 9)
	}

	if chart := r.Result.Chart; chart != nil && len(chart.Data) > 0 {
		rep.section("Chart Data")
		headers := []string{chart.XKey}
		for _, s := range chart.Series {
			headers = append(headers, s.Name)
		}
		colWidths := make([]float64, len(headers))
		for i := range colWidths {
			colWidths[i] = pdfContentWidth / float64(len(headers))
		}
		rep.header(headers, colWidths)
		for i, row := range chart.Data {
			if i == pdfMaxChartRows {
				doc.SetFont("Arial", "I", 8)
				doc.CellFormat(pdfContentWidth, 5, fmt.Sprintf("%d more rows omitted", len(chart.Data)-i), "", 1, "L", false, 0, "")
				break
			}
			cells := []string{cellText(row[chart.XKey])}
			for _, s := range chart.Series {
				v, _ := row[s.Key].(float64)
				cells = append(cells, calculators.Number(v))
			}
			rep.row(cells, colWidths, false)
		}
		doc.Ln(4)
	}

	if len(r.Disclaimers) > 0 {
		rep.section("Disclaimers")
		rep.paragraphs(r.Disclaimers, 100, 116, 139)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *pdfReport) section(title string) {
	r.pdf.SetFont("Arial", "B", 13)
	r.pdf.SetTextColor(2, 132, 199)
	r.pdf.CellFormat(pdfContentWidth, 8, r.tr(title), "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(2, 132, 199)
	r.pdf.Line(pdfMarginLeft, r.pdf.GetY(), pdfMarginLeft+pdfContentWidth, r.pdf.GetY())
	r.pdf.Ln(2)
}

func (r *pdfReport) header(cells []string, widths []float64) {
	r.pdf.SetFillColor(2, 132, 199)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Arial", "B", 9)
	for i, c := range cells {
		r.pdf.CellFormat(widths[i], 6, r.tr(c), "1", 0, align(i), true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *pdfReport) row(cells []string, widths []float64, bold bool) {
	r.pdf.SetFillColor(248, 250, 252)
	r.pdf.SetTextColor(15, 23, 42)
	style := ""
	if bold {
		style = "B"
	}
	r.pdf.SetFont("Arial", style, 9)
	for i, c := range cells {
		r.pdf.CellFormat(widths[i], 6, r.tr(c), "1", 0, align(i), true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *pdfReport) paragraphs(lines []string, red, green, blue int) {
	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(red, green, blue)
	for _, l := range lines {
		r.pdf.MultiCell(pdfContentWidth, 5, r.tr("- "+l), "", "L", false)
	}
	r.pdf.Ln(3)
}

func align(col int) string {
	if col == 0 {
		return "L"
	}
	return "R"
}
