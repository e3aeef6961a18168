package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/olsonco/calckit/internal/calculators"
	"github.com/olsonco/calckit/internal/config"
	"github.com/olsonco/calckit/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHandler() http.Handler {
	return NewHandler(zap.NewNop(), calculators.Default(), "test")
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), v), rr.Body.String())
}

func TestHealth(t *testing.T) {
	rr := do(t, newTestHandler(), http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok","version":"test"}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get("Content-Type"))
}

func TestNewHandlerDefaults(t *testing.T) {
	rr := do(t, NewHandler(nil, nil, "  "), http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok","version":"dev"}`, rr.Body.String())
}

func TestListCalculators(t *testing.T) {
	h := newTestHandler()

	var all struct {
		Calculators []calculatorSummary `json:"calculators"`
	}
	rr := do(t, h, http.MethodGet, "/api/v1/calculators", "")
	require.Equal(t, http.StatusOK, rr.Code)
	decode(t, rr, &all)
	require.Len(t, all.Calculators, 16)
	assert.Equal(t, "canadian-income-tax-estimator", all.Calculators[0].Slug)
	assert.Equal(t, domain.CategoryTax, all.Calculators[0].Category)

	var business struct {
		Calculators []calculatorSummary `json:"calculators"`
	}
	decode(t, do(t, h, http.MethodGet, "/api/v1/calculators?category=business", ""), &business)
	require.NotEmpty(t, business.Calculators)
	for _, c := range business.Calculators {
		assert.Equal(t, domain.CategoryBusiness, c.Category)
	}

	rr = do(t, h, http.MethodGet, "/api/v1/calculators?category=astrology", "")
	assert.JSONEq(t, `{"calculators":[]}`, rr.Body.String())
}

func TestGetCalculator(t *testing.T) {
	h := newTestHandler()

	var item domain.CatalogItem
	rr := do(t, h, http.MethodGet, "/api/v1/calculators/margin-markup-calculator", "")
	require.Equal(t, http.StatusOK, rr.Code)
	decode(t, rr, &item)
	assert.Equal(t, "margin-markup-calculator", item.Slug)
	require.Len(t, item.Fields, 2)
	assert.Equal(t, domain.NumberValue(45), item.Fields[0].Default)

	rr = do(t, h, http.MethodGet, "/api/v1/calculators/lottery-odds", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	var payload map[string]any
	decode(t, rr, &payload)
	assert.Equal(t, "unknown_calculator", payload["error"])
	assert.Equal(t, float64(http.StatusNotFound), payload["status"])
}

func TestRunMatchesRegistry(t *testing.T) {
	h := newTestHandler()
	reg := calculators.Default()

	for _, slug := range reg.Slugs() {
		t.Run(slug, func(t *testing.T) {
			item, _ := reg.Item(slug)
			inputs := calculators.DefaultInputs(item.Fields)
			want, err := reg.Run(slug, inputs)
			require.NoError(t, err)
			wantJSON, err := json.Marshal(want)
			require.NoError(t, err)

			rr := do(t, h, http.MethodGet, "/api/v1/calculators/"+slug+"/run", "")
			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
			var got struct {
				Slug   string          `json:"slug"`
				Result json.RawMessage `json:"result"`
				Query  string          `json:"query"`
			}
			decode(t, rr, &got)
			assert.Equal(t, slug, got.Slug)
			assert.JSONEq(t, string(wantJSON), string(got.Result))
			assert.Equal(t, calculators.EncodeQuery(item.Fields, inputs).Encode(), got.Query)
		})
	}
}

func TestRunWithQuery(t *testing.T) {
	h := newTestHandler()
	reg := calculators.Default()
	item, _ := reg.Item("margin-markup-calculator")
	q := url.Values{"cost": {"30"}, "price": {"90"}}
	want, _ := reg.Run(item.Slug, calculators.DecodeQuery(item.Fields, q))
	wantJSON, _ := json.Marshal(want)

	rr := do(t, h, http.MethodGet, "/api/v1/calculators/margin-markup-calculator/run?"+q.Encode(), "")
	require.Equal(t, http.StatusOK, rr.Code)
	var got struct {
		Result json.RawMessage `json:"result"`
	}
	decode(t, rr, &got)
	assert.JSONEq(t, string(wantJSON), string(got.Result))
}

func TestRunPost(t *testing.T) {
	h := newTestHandler()
	reg := calculators.Default()

	item, _ := reg.Item("margin-markup-calculator")
	inputs := domain.Inputs{"cost": domain.NumberValue(30), "price": domain.NumberValue(90)}
	want, _ := reg.Run(item.Slug, calculators.MergeInputs(item.Fields, inputs))
	wantJSON, _ := json.Marshal(want)

	rr := do(t, h, http.MethodPost, "/api/v1/calculators/margin-markup-calculator/run",
		`{"inputs": {"cost": 30, "price": "90", "ignored": true}}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var got struct {
		Inputs map[string]any  `json:"inputs"`
		Result json.RawMessage `json:"result"`
	}
	decode(t, rr, &got)
	assert.JSONEq(t, string(wantJSON), string(got.Result))
	assert.Equal(t, map[string]any{"cost": 30.0, "price": "90"}, got.Inputs)

	rr = do(t, h, http.MethodPost, "/api/v1/calculators/margin-markup-calculator/run", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, h, http.MethodPost, "/api/v1/calculators/margin-markup-calculator/run", `{"inputs": [`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, http.MethodPost, "/api/v1/calculators/nope/run", `{}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRunValidation(t *testing.T) {
	h := newTestHandler()

	var payload struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	rr := do(t, h, http.MethodGet, "/api/v1/calculators/mortgage-payment-amortization/run?downPaymentPercent=150", "")
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	decode(t, rr, &payload)
	assert.Equal(t, "invalid_inputs", payload.Error)
	assert.Equal(t, map[string]string{"downPaymentPercent": "Maximum value is 80."}, payload.Fields)

	rr = do(t, h, http.MethodGet, "/api/v1/calculators/margin-markup-calculator/run?cost=abc", "")
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	decode(t, rr, &payload)
	assert.Equal(t, "Enter a valid number.", payload.Fields["cost"])

	rr = do(t, h, http.MethodPost, "/api/v1/calculators/margin-markup-calculator/run", `{"inputs": {"price": -1}}`)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	decode(t, rr, &payload)
	assert.Equal(t, "Minimum value is 0.", payload.Fields["price"])
}

func TestRunFormats(t *testing.T) {
	h := newTestHandler()
	base := "/api/v1/calculators/break-even-calculator/run?format="

	rr := do(t, h, http.MethodGet, base+"csv", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "break-even-calculator_report.csv")
	assert.True(t, strings.HasPrefix(rr.Body.String(), "Section,Label,Value"))

	rr = do(t, h, http.MethodGet, base+"pdf", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("%PDF-")))

	rr = do(t, h, http.MethodGet, base+"text", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "BREAK-EVEN CALCULATOR")

	rr = do(t, h, http.MethodGet, base+"docx", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestShare(t *testing.T) {
	var got shareResponse
	rr := do(t, newTestHandler(), http.MethodGet, "/api/v1/calculators/margin-markup-calculator/share?price=80&junk=1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	decode(t, rr, &got)
	assert.Equal(t, "cost=45&price=80", got.Query)
	assert.Equal(t, "/calculators/margin-markup-calculator?cost=45&price=80", got.Path)
}

func TestCompare(t *testing.T) {
	var got struct {
		Rows []calculators.ComparisonRow `json:"rows"`
	}
	decode(t, do(t, newTestHandler(), http.MethodGet, "/api/v1/compare", ""), &got)
	assert.Len(t, got.Rows, 16)

	decode(t, do(t, newTestHandler(), http.MethodGet, "/api/v1/compare?slug=tfsa-tracker&slug=nope", ""), &got)
	require.Len(t, got.Rows, 1)
}

func TestTaxYears(t *testing.T) {
	var got struct {
		Years []taxYear `json:"years"`
	}
	decode(t, do(t, newTestHandler(), http.MethodGet, "/api/v1/tax/years", ""), &got)
	require.Len(t, got.Years, 2)
	assert.Equal(t, 2026, got.Years[0].Year)
	assert.Equal(t, domain.RuleStatusPlaceholder, got.Years[0].Status)
	assert.Equal(t, 2025, got.Years[1].Year)
}

func TestTaxEstimate(t *testing.T) {
	h := newTestHandler()
	want := calculators.Default().Engine().Compute(domain.TaxComputationInput{
		Year: 2026, GrossIncome: 90000, RRSPContribution: 4000,
	})

	var got domain.TaxComputationResult
	rr := do(t, h, http.MethodPost, "/api/v1/tax/estimate", `{"grossIncome": 90000, "rrspContribution": 4000}`)
	require.Equal(t, http.StatusOK, rr.Code)
	decode(t, rr, &got)
	assert.Equal(t, 2026, got.Year)
	assert.Equal(t, 86000.0, got.TaxableIncome)
	assert.InDelta(t, want.TotalTax, got.TotalTax, 1e-9)
	assert.InDelta(t, got.FederalTax+got.BCTax, got.TotalTax, 1e-9)
	assert.Len(t, got.Warnings, 2)

	rr = do(t, h, http.MethodPost, "/api/v1/tax/estimate", `{"year": 1999, "grossIncome": 50000}`)
	require.Equal(t, http.StatusOK, rr.Code)
	decode(t, rr, &got)
	assert.Zero(t, got.TotalTax)
	require.Len(t, got.Warnings, 1)
	assert.Contains(t, got.Warnings[0], "Tax data missing")

	rr = do(t, h, http.MethodPost, "/api/v1/tax/estimate", `{"gross": 1}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUnknownRoute(t *testing.T) {
	rr := do(t, newTestHandler(), http.MethodGet, "/api/v2/nothing", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	var payload map[string]any
	decode(t, rr, &payload)
	assert.Equal(t, "not_found", payload["error"])

	rr = do(t, newTestHandler(), http.MethodDelete, "/healthz", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestNewServer(t *testing.T) {
	srv := New(config.ServerConfig{Address: ":0"}, newTestHandler())
	assert.Equal(t, ":0", srv.Addr)
	assert.Positive(t, srv.ReadTimeout)
	assert.Positive(t, srv.WriteTimeout)
	assert.NotNil(t, srv.Handler)
}
