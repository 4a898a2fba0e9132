package db

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	PrepareContext(context.Context, string) (*sql.Stmt, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type CaseQuery struct {
	ID              int64
	CaseType        string
	CaseNumber      string
	FilingYear      string
	QueriedAt       int64
	Source          string
	Success         bool
	Classification  string
	Plaintiff       string
	Defendant       string
	FilingDate      string
	NextHearingDate string
	Status          string
	Notes           string
	RawResponse     string
}

type CaseOrder struct {
	ID          int64
	QueryID     int64
	Title       string
	Date        string
	DocumentUrl string
	DocumentRef string
	Category    string
}

const createCaseQuery = `
INSERT INTO case_query (
    case_type, case_number, filing_year, queried_at, source, success,
    classification, plaintiff, defendant, filing_date, next_hearing_date,
    status, notes, raw_response
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id
`

type CreateCaseQueryParams struct {
	CaseType        string
	CaseNumber      string
	FilingYear      string
	QueriedAt       int64
	Source          string
	Success         bool
	Classification  string
	Plaintiff       string
	Defendant       string
	FilingDate      string
	NextHearingDate string
	Status          string
	Notes           string
	RawResponse     string
}

func (q *Queries) CreateCaseQuery(ctx context.Context, arg CreateCaseQueryParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createCaseQuery,
		arg.CaseType,
		arg.CaseNumber,
		arg.FilingYear,
		arg.QueriedAt,
		arg.Source,
		arg.Success,
		arg.Classification,
		arg.Plaintiff,
		arg.Defendant,
		arg.FilingDate,
		arg.NextHearingDate,
		arg.Status,
		arg.Notes,
		arg.RawResponse,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const createCaseOrder = `
INSERT INTO case_order (query_id, title, date, document_url, document_ref, category)
VALUES (?, ?, ?, ?, ?, ?)
`

type CreateCaseOrderParams struct {
	QueryID     int64
	Title       string
	Date        string
	DocumentUrl string
	DocumentRef string
	Category    string
}

func (q *Queries) CreateCaseOrder(ctx context.Context, arg CreateCaseOrderParams) error {
	_, err := q.db.ExecContext(ctx, createCaseOrder,
		arg.QueryID,
		arg.Title,
		arg.Date,
		arg.DocumentUrl,
		arg.DocumentRef,
		arg.Category,
	)
	return err
}

const getCaseQuery = `
SELECT id, case_type, case_number, filing_year, queried_at, source, success,
       classification, plaintiff, defendant, filing_date, next_hearing_date,
       status, notes, raw_response
FROM case_query
WHERE id = ?
`

func (q *Queries) GetCaseQuery(ctx context.Context, id int64) (CaseQuery, error) {
	row := q.db.QueryRowContext(ctx, getCaseQuery, id)
	var i CaseQuery
	err := row.Scan(
		&i.ID,
		&i.CaseType,
		&i.CaseNumber,
		&i.FilingYear,
		&i.QueriedAt,
		&i.Source,
		&i.Success,
		&i.Classification,
		&i.Plaintiff,
		&i.Defendant,
		&i.FilingDate,
		&i.NextHearingDate,
		&i.Status,
		&i.Notes,
		&i.RawResponse,
	)
	return i, err
}

const listCaseOrders = `
SELECT id, query_id, title, date, document_url, document_ref, category
FROM case_order
WHERE query_id = ?
ORDER BY id ASC
`

func (q *Queries) ListCaseOrders(ctx context.Context, queryID int64) ([]CaseOrder, error) {
	rows, err := q.db.QueryContext(ctx, listCaseOrders, queryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CaseOrder
	for rows.Next() {
		var i CaseOrder
		err := rows.Scan(
			&i.ID,
			&i.QueryID,
			&i.Title,
			&i.Date,
			&i.DocumentUrl,
			&i.DocumentRef,
			&i.Category,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listRecentQueries = `
SELECT id, case_type, case_number, filing_year, queried_at, source, success,
       classification, plaintiff, defendant, filing_date, next_hearing_date,
       status, notes, raw_response
FROM case_query
ORDER BY queried_at DESC, id DESC
LIMIT ?
`

func (q *Queries) ListRecentQueries(ctx context.Context, limit int64) ([]CaseQuery, error) {
	rows, err := q.db.QueryContext(ctx, listRecentQueries, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CaseQuery
	for rows.Next() {
		var i CaseQuery
		err := rows.Scan(
			&i.ID,
			&i.CaseType,
			&i.CaseNumber,
			&i.FilingYear,
			&i.QueriedAt,
			&i.Source,
			&i.Success,
			&i.Classification,
			&i.Plaintiff,
			&i.Defendant,
			&i.FilingDate,
			&i.NextHearingDate,
			&i.Status,
			&i.Notes,
			&i.RawResponse,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
