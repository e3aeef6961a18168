package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/olsonco/calckit/internal/calculators"
	"github.com/olsonco/calckit/internal/domain"
	"github.com/olsonco/calckit/internal/output"
	"go.uber.org/zap"
)

type calculatorSummary struct {
	Slug             string          `json:"slug"`
	Title            string          `json:"title"`
	ShortDescription string          `json:"shortDescription"`
	Category         domain.Category `json:"category"`
	CategoryLabel    string          `json:"categoryLabel"`
}

type runRequest struct {
	Inputs domain.Inputs `json:"inputs"`
}

type shareResponse struct {
	Slug  string `json:"slug"`
	Query string `json:"query"`
	Path  string `json:"path"`
}

type taxYear struct {
	Year      int               `json:"year"`
	Status    domain.RuleStatus `json:"status"`
	Notes     string            `json:"notes,omitempty"`
	SourceURL string            `json:"sourceUrl,omitempty"`
	UpdatedAt string            `json:"updatedAt,omitempty"`
}

var contentTypes = map[string]string{
	"console": "text/plain; charset=utf-8",
	"json":    "application/json",
	"csv":     "text/csv; charset=utf-8",
	"yaml":    "application/yaml",
	"pdf":     "application/pdf",
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}

func (h *handler) handleListCalculators(w http.ResponseWriter, r *http.Request) {
	category := domain.Category(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("category"))))
	list := []calculatorSummary{}
	for _, item := range h.registry.Items() {
		if category != "" && item.Category != category {
			continue
		}
		list = append(list, calculatorSummary{
			Slug:             item.Slug,
			Title:            item.Title,
			ShortDescription: item.ShortDescription,
			Category:         item.Category,
			CategoryLabel:    calculators.CategoryLabel(item.Category),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"calculators": list})
}

// lookup resolves the {slug} parameter, writing a 404 when it is unknown.
func (h *handler) lookup(w http.ResponseWriter, r *http.Request) (domain.CatalogItem, bool) {
	slug := chi.URLParam(r, "slug")
	item, ok := h.registry.Item(slug)
	if !ok {
		writeError(w, r, http.StatusNotFound, "unknown_calculator", "unknown calculator: "+slug, nil)
		return domain.CatalogItem{}, false
	}
	return item, true
}

func (h *handler) handleGetCalculator(w http.ResponseWriter, r *http.Request) {
	item, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *handler) handleRunQuery(w http.ResponseWriter, r *http.Request) {
	item, ok := h.lookup(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	if problems := calculators.ValidateQuery(item.Fields, q); len(problems) > 0 {
		writeValidationError(w, r, problems)
		return
	}
	h.run(w, r, item, calculators.DecodeQuery(item.Fields, q))
}

func (h *handler) handleRunJSON(w http.ResponseWriter, r *http.Request) {
	item, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var req runRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, http.StatusBadRequest, "invalid_body", "failed to decode request body: "+err.Error(), nil)
		return
	}
	if problems := calculators.ValidateInputs(item.Fields, req.Inputs); len(problems) > 0 {
		writeValidationError(w, r, problems)
		return
	}
	h.run(w, r, item, calculators.MergeInputs(item.Fields, req.Inputs))
}

func (h *handler) run(w http.ResponseWriter, r *http.Request, item domain.CatalogItem, inputs domain.Inputs) {
	out, err := h.registry.Run(item.Slug, inputs)
	if err != nil {
		writeError(w, r, http.StatusNotFound, "unknown_calculator", err.Error(), nil)
		return
	}
	report := output.NewReport(item, inputs, out)

	format := r.URL.Query().Get("format")
	if format == "" {
		writeJSON(w, http.StatusOK, report)
		return
	}
	formatter := output.GetFormatterByName(format)
	if formatter == nil {
		writeError(w, r, http.StatusBadRequest, "unsupported_format", "unsupported format: "+format, map[string]any{
			"formats": output.AvailableFormatterNames(),
		})
		return
	}
	data, err := formatter.Format(report)
	if err != nil {
		h.logger.Error("format report", zap.String("slug", item.Slug), zap.String("format", formatter.Name()), zap.Error(err))
		writeError(w, r, http.StatusInternalServerError, "format_failed", "failed to render report", nil)
		return
	}
	w.Header().Set("Content-Type", contentTypes[formatter.Name()])
	if formatter.Name() == "pdf" || formatter.Name() == "csv" {
		w.Header().Set("Content-Disposition",
			`attachment; filename="`+item.Slug+"_report."+output.Extension(formatter)+`"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *handler) handleShare(w http.ResponseWriter, r *http.Request) {
	item, ok := h.lookup(w, r)
	if !ok {
		return
	}
	inputs := calculators.DecodeQuery(item.Fields, r.URL.Query())
	query := calculators.EncodeQuery(item.Fields, inputs).Encode()
	writeJSON(w, http.StatusOK, shareResponse{
		Slug:  item.Slug,
		Query: query,
		Path:  "/calculators/" + item.Slug + "?" + query,
	})
}

func (h *handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	slugs := r.URL.Query()["slug"]
	writeJSON(w, http.StatusOK, map[string]any{
		"rows": calculators.ComparisonRows(h.registry, slugs...),
	})
}

func (h *handler) handleTaxYears(w http.ResponseWriter, r *http.Request) {
	engine := h.registry.Engine()
	years := []taxYear{}
	for _, y := range engine.Years() {
		rules, ok := engine.RulesFor(y)
		if !ok {
			continue
		}
		years = append(years, taxYear{
			Year:      y,
			Status:    rules.Status,
			Notes:     rules.Metadata.Notes,
			SourceURL: rules.Metadata.SourceURL,
			UpdatedAt: rules.Metadata.UpdatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"years": years})
}

func (h *handler) handleTaxEstimate(w http.ResponseWriter, r *http.Request) {
	var input domain.TaxComputationInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_body", "failed to decode request body: "+err.Error(), nil)
		return
	}
	engine := h.registry.Engine()
	if input.Year == 0 {
		if years := engine.Years(); len(years) > 0 {
			input.Year = years[0]
		}
	}
	writeJSON(w, http.StatusOK, engine.Compute(input))
}

func writeValidationError(w http.ResponseWriter, r *http.Request, problems map[string]string) {
	writeError(w, r, http.StatusUnprocessableEntity, "invalid_inputs", "one or more inputs are invalid", map[string]any{
		"fields": problems,
	})
}
