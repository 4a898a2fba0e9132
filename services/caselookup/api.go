package caselookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"nyayalens-backend/lib/courtdoc"
	"nyayalens-backend/lib/scrapers/courts"
)

const documentFetchTimeout = time.Second * 30

// RegisterRoutes mounts the JSON API for the service.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	mux.HandleFunc("POST /api/v1/search", service.handleSearch)
	mux.HandleFunc("GET /api/v1/history", service.handleHistory)
	mux.HandleFunc("GET /api/v1/export/{id}", service.handleExport)
	mux.HandleFunc("GET /api/v1/orders/pdf", service.handleOrderPdf)
}

type apiError struct {
	Error string `json:"error"`
}

func writeJson(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Warn("failed to encode api response", "err", err)
	}
}

func (s Service) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req courts.CaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJson(w, http.StatusBadRequest, apiError{Error: "request body must be valid JSON"})
		return
	}
	req.CaseType = strings.TrimSpace(req.CaseType)
	req.CaseNumber = strings.TrimSpace(req.CaseNumber)
	req.FilingYear = strings.TrimSpace(req.FilingYear)
	if req.CaseType == "" || req.CaseNumber == "" || req.FilingYear == "" {
		writeJson(w, http.StatusBadRequest, apiError{
			Error: "case_type, case_number and filing_year are all required",
		})
		return
	}

	outcome := s.Search(r.Context(), req)
	writeJson(w, http.StatusOK, outcome)
}

func (s Service) handleHistory(w http.ResponseWriter, r *http.Request) {
	var limit int64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			writeJson(w, http.StatusBadRequest, apiError{Error: "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	entries, err := s.History(r.Context(), limit)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list history", "err", err)
		writeJson(w, http.StatusInternalServerError, apiError{Error: "failed to read query history"})
		return
	}
	writeJson(w, http.StatusOK, entries)
}

func (s Service) handleExport(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJson(w, http.StatusBadRequest, apiError{Error: "id must be an integer"})
		return
	}

	entry, err := s.Export(r.Context(), id)
	if err != nil {
		writeJson(w, http.StatusNotFound, apiError{Error: fmt.Sprintf("no stored query with id %d", id)})
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="case-query-%d.json"`, id))
	writeJson(w, http.StatusOK, entry)
}

// handleOrderPdf serves an order document. Orders with a resolvable
// document_url are proxied from the source; orders that only carry a
// generated document_ref are rendered locally.
func (s Service) handleOrderPdf(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if raw := query.Get("url"); raw != "" {
		s.proxyDocument(w, r, raw)
		return
	}

	req := courts.CaseRequest{
		CaseType:   query.Get("case_type"),
		CaseNumber: query.Get("case_number"),
		FilingYear: query.Get("filing_year"),
	}
	if req.CaseType == "" || req.CaseNumber == "" || req.FilingYear == "" {
		writeJson(w, http.StatusBadRequest, apiError{
			Error: "either url or case_type, case_number and filing_year are required",
		})
		return
	}
	index := 1
	if raw := query.Get("index"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeJson(w, http.StatusBadRequest, apiError{Error: "index must be a positive integer"})
			return
		}
		index = parsed
	}
	orderDate := query.Get("date")
	if orderDate == "" {
		orderDate = time.Now().Format("02-Jan-2006")
	}

	document, err := courtdoc.RenderOrder(req, orderDate, index)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to render order document", "err", err)
		writeJson(w, http.StatusInternalServerError, apiError{Error: "failed to render order document"})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(
		`attachment; filename="%s_%s_%s_order_%d.pdf"`,
		strings.ReplaceAll(req.CaseType, ".", "_"), req.CaseNumber, req.FilingYear, index,
	))
	w.Write(document)
}

func (s Service) proxyDocument(w http.ResponseWriter, r *http.Request, raw string) {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		writeJson(w, http.StatusBadRequest, apiError{Error: "url must be absolute http or https"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), documentFetchTimeout)
	defer cancel()

	upstream, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		writeJson(w, http.StatusBadRequest, apiError{Error: "invalid document url"})
		return
	}
	res, err := http.DefaultClient.Do(upstream)
	if err != nil {
		slog.WarnContext(r.Context(), "failed to fetch order document", "url", raw, "err", err)
		writeJson(w, http.StatusBadGateway, apiError{Error: "the source did not serve the document"})
		return
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		writeJson(w, http.StatusBadGateway, apiError{
			Error: fmt.Sprintf("the source answered status %d for the document", res.StatusCode),
		})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	if _, err := io.Copy(w, res.Body); err != nil {
		slog.WarnContext(r.Context(), "failed to stream order document", "url", raw, "err", err)
	}
}
