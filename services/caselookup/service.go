// Package caselookup orchestrates case searches across court sources:
// the Delhi High Court first, the district court cascade when the
// primary is challenge-blocked, with every query recorded to history.
package caselookup

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"nyayalens-backend/lib/scrapers/courts"
	"nyayalens-backend/lib/scrapers/delhihc"
	"nyayalens-backend/lib/scrapers/district"
	"nyayalens-backend/services/caselookup/db"
)

var tracer = otel.Tracer("services/caselookup")

type Config struct {
	HighCourt delhihc.Options  `json:"high_court"`
	District  district.Options `json:"district"`
}

// Outcome is the service-level search result handed to the API layer
// and the CLI. Success implies Record.Found().
type Outcome struct {
	QueryID int64             `json:"query_id"`
	Source  string            `json:"source,omitempty"`
	Success bool              `json:"success"`
	Record  courts.CaseRecord `json:"record,omitempty"`

	Classification courts.Classification `json:"classification,omitempty"`
	Message        string                `json:"message,omitempty"`
	Warnings       []string              `json:"warnings,omitempty"`

	DirectURL    string   `json:"direct_url,omitempty"`
	Alternatives []string `json:"alternatives,omitempty"`

	Trace courts.FallbackTrace `json:"trace,omitempty"`
}

type Service struct {
	db  *sql.DB
	qry *db.Queries
	cfg Config
	now func() time.Time
}

func NewService(database *sql.DB, cfg Config) Service {
	return Service{
		db:  database,
		qry: db.New(database),
		cfg: cfg,
		now: time.Now,
	}
}

// Search runs one end-to-end case lookup. It never returns an error:
// every failure mode, including panics in the scraping internals,
// folds into the outcome's classification.
func (s Service) Search(ctx context.Context, req courts.CaseRequest) (out Outcome) {
	ctx, span := tracer.Start(ctx, "Search")
	defer span.End()

	searchId, _ := random.String(12)
	span.SetAttributes(
		attribute.String("search_id", searchId),
		attribute.String("case_type", req.CaseType),
		attribute.String("case_number", req.CaseNumber),
		attribute.String("filing_year", req.FilingYear),
	)

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic during search: %v", r)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			slog.ErrorContext(ctx, "search panicked", "search_id", searchId, "panic", r)
			out = Outcome{
				Classification: courts.ClassInternal,
				Message:        "An internal error occurred while searching. Please try again.",
			}
		}
	}()

	warnings := courts.Validate(req, s.now())

	primary, err := delhihc.NewClient(s.cfg.HighCourt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to construct primary client")
		return Outcome{
			Classification: courts.ClassInternal,
			Message:        "An internal error occurred while searching. Please try again.",
			Warnings:       warnings,
		}
	}

	final := primary.SearchCase(ctx, req)
	trace := courts.FallbackTrace{final}

	// Only a challenge block justifies falling back: a definitive
	// "no records" answer from the authoritative source stands.
	if final.Classification == courts.ClassChallengeBlocked {
		span.AddEvent("cascading to district courts")
		slog.InfoContext(ctx, "primary source challenge-blocked, cascading",
			"search_id", searchId, "source", final.Source)

		fallback, err := district.NewClient(s.cfg.District)
		if err != nil {
			span.RecordError(err)
		} else {
			outcome, fbTrace := fallback.SearchCase(ctx, req)
			trace = append(trace, fbTrace...)
			if outcome.Classification == courts.ClassAllEndpointsUnavailable {
				// the exhausted cascade is the terminal answer; carry
				// the primary's manual-search advice along with it
				outcome.DirectURL = final.DirectURL
				outcome.Alternatives = append(append([]string{}, final.Alternatives...), outcome.Alternatives...)
			}
			final = outcome
		}
	}

	queryId := s.persist(ctx, req, final, trace)

	out = Outcome{
		QueryID:        queryId,
		Source:         final.Source,
		Success:        final.Success,
		Record:         final.Record,
		Classification: final.Classification,
		Message:        final.Message,
		Warnings:       warnings,
		DirectURL:      final.DirectURL,
		Alternatives:   final.Alternatives,
		Trace:          trace,
	}
	if !out.Success {
		span.SetStatus(codes.Error, string(out.Classification))
	}
	return out
}

// persist records the query and any orders. Storage trouble is logged
// and swallowed: a retrieved record must still reach the caller.
func (s Service) persist(ctx context.Context, req courts.CaseRequest, final courts.SourceOutcome, trace courts.FallbackTrace) int64 {
	ctx, span := tracer.Start(ctx, "persist")
	defer span.End()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		slog.WarnContext(ctx, "failed to open history transaction", "err", err)
		return 0
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	raw := final.Raw
	if raw == "" {
		// failed searches keep the trace for diagnostics instead
		if encoded, err := json.Marshal(trace); err == nil {
			raw = courts.RawSnippet(encoded)
		}
	}

	queryId, err := txqry.CreateCaseQuery(ctx, db.CreateCaseQueryParams{
		CaseType:        req.CaseType,
		CaseNumber:      req.CaseNumber,
		FilingYear:      req.FilingYear,
		QueriedAt:       s.now().Unix(),
		Source:          final.Source,
		Success:         final.Success,
		Classification:  string(final.Classification),
		Plaintiff:       final.Record.Plaintiff,
		Defendant:       final.Record.Defendant,
		FilingDate:      final.Record.FilingDate,
		NextHearingDate: final.Record.NextHearingDate,
		Status:          final.Record.Status,
		Notes:           final.Record.Notes,
		RawResponse:     raw,
	})
	if err != nil {
		span.RecordError(err)
		slog.WarnContext(ctx, "failed to record query history", "err", err)
		return 0
	}

	for _, order := range final.Record.Orders {
		err := txqry.CreateCaseOrder(ctx, db.CreateCaseOrderParams{
			QueryID:     queryId,
			Title:       order.Title,
			Date:        order.Date,
			DocumentUrl: order.DocumentURL,
			DocumentRef: order.DocumentRef,
			Category:    order.Category,
		})
		if err != nil {
			span.RecordError(err)
			slog.WarnContext(ctx, "failed to record order history", "err", err)
			return 0
		}
	}

	if err := tx.Commit(); err != nil {
		span.RecordError(err)
		slog.WarnContext(ctx, "failed to commit history transaction", "err", err)
		return 0
	}
	return queryId
}

// HistoryEntry is one stored query with its orders, as returned by
// History and Export.
type HistoryEntry struct {
	ID             int64                 `json:"id"`
	QueriedAt      int64                 `json:"queried_at"`
	Request        courts.CaseRequest    `json:"request"`
	Source         string                `json:"source,omitempty"`
	Success        bool                  `json:"success"`
	Classification courts.Classification `json:"classification,omitempty"`
	Record         courts.CaseRecord     `json:"record"`
}

const defaultHistoryLimit = 50

// History lists the most recent queries, newest first.
func (s Service) History(ctx context.Context, limit int64) ([]HistoryEntry, error) {
	ctx, span := tracer.Start(ctx, "History")
	defer span.End()

	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	rows, err := s.qry.ListRecentQueries(ctx, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(rows))
	for _, row := range rows {
		entry, err := s.assembleEntry(ctx, row)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Export returns one stored query by id, with orders attached.
func (s Service) Export(ctx context.Context, id int64) (HistoryEntry, error) {
	ctx, span := tracer.Start(ctx, "Export")
	defer span.End()
	span.SetAttributes(attribute.Int64("query_id", id))

	row, err := s.qry.GetCaseQuery(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return HistoryEntry{}, err
	}
	return s.assembleEntry(ctx, row)
}

func (s Service) assembleEntry(ctx context.Context, row db.CaseQuery) (HistoryEntry, error) {
	orders, err := s.qry.ListCaseOrders(ctx, row.ID)
	if err != nil {
		return HistoryEntry{}, err
	}

	record := courts.CaseRecord{
		Plaintiff:       row.Plaintiff,
		Defendant:       row.Defendant,
		FilingDate:      row.FilingDate,
		NextHearingDate: row.NextHearingDate,
		Status:          row.Status,
		Notes:           row.Notes,
	}
	for _, order := range orders {
		record.Orders = append(record.Orders, courts.OrderRecord{
			Title:       order.Title,
			Date:        order.Date,
			DocumentURL: order.DocumentUrl,
			DocumentRef: order.DocumentRef,
			Category:    order.Category,
		})
	}

	return HistoryEntry{
		ID:        row.ID,
		QueriedAt: row.QueriedAt,
		Request: courts.CaseRequest{
			CaseType:   row.CaseType,
			CaseNumber: row.CaseNumber,
			FilingYear: row.FilingYear,
		},
		Source:         row.Source,
		Success:        row.Success,
		Classification: courts.Classification(row.Classification),
		Record:         record,
	}, nil
}
