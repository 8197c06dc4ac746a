package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const (
	colID             = "id"
	colTimestamp      = "timestamp"
	colProvider       = "provider"
	colModel          = "model"
	colPurpose        = "purpose"
	colInputTokens    = "input_tokens"
	colOutputTokens   = "output_tokens"
	colLatencyMs      = "latency_ms"
	colSuccess        = "success"
	colErrorMessage   = "error_message"
	colRequestSummary = "request_summary"
)

// eventColumns is the scan order of scanEvent.
var eventColumns = []string{
	colID, colTimestamp, colProvider, colModel, colPurpose, colInputTokens,
	colOutputTokens, colLatencyMs, colSuccess, colErrorMessage, colRequestSummary,
}

// EntEventRepo implements EventRepo on the llm_request_events table
// through the ent SQL driver.
type EntEventRepo struct {
	drv *entsql.Driver
}

var _ EventRepo = (*EntEventRepo)(nil)

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *EntEventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	query, args := builder().
		Insert(tableLLMEvents).
		Columns(eventColumns[1:]...).
		Values(
			time.Now().UTC(),
			data.Provider,
			data.Model,
			data.Purpose,
			data.InputTokens,
			data.OutputTokens,
			data.LatencyMs,
			data.Success,
			data.ErrorMessage,
			data.RequestSummary,
		).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

// QueryLLMEvents returns events newest first.
func (r *EntEventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error) {
	sel := builder().
		Select(eventColumns...).
		From(entsql.Table(tableLLMEvents)).
		OrderBy(entsql.Desc(colID))
	if opts.Purpose != "" {
		sel.Where(entsql.EQ(colPurpose, opts.Purpose))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return r.queryEvents(ctx, sel)
}

// GetLLMEvent returns the event with the given ID, or nil if none exists.
func (r *EntEventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error) {
	sel := builder().
		Select(eventColumns...).
		From(entsql.Table(tableLLMEvents)).
		Where(entsql.EQ(colID, id)).
		Limit(1)
	events, err := r.queryEvents(ctx, sel)
	if err != nil || len(events) == 0 {
		return nil, err
	}
	return &events[0], nil
}

// LLMUsageByPurpose aggregates calls and tokens per purpose.
func (r *EntEventRepo) LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	sel := builder().
		Select(
			colPurpose,
			entsql.Count("*"),
			coalesceZero(entsql.Sum(colInputTokens)),
			coalesceZero(entsql.Sum(colOutputTokens)),
			"CAST("+coalesceZero(entsql.Avg(colLatencyMs))+" AS INTEGER)",
		).
		From(entsql.Table(tableLLMEvents)).
		GroupBy(colPurpose).
		OrderBy(colPurpose)

	var out []PurposeUsage
	err := r.scanAll(ctx, sel, func(rows *entsql.Rows) error {
		var u PurposeUsage
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return fmt.Errorf("scan usage: %w", err)
		}
		out = append(out, u)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query usage by purpose: %w", err)
	}
	return out, nil
}

// LLMUsageByModel aggregates calls and tokens per model.
func (r *EntEventRepo) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	sel := builder().
		Select(
			colModel,
			entsql.Count("*"),
			coalesceZero(entsql.Sum(colInputTokens)),
			coalesceZero(entsql.Sum(colOutputTokens)),
		).
		From(entsql.Table(tableLLMEvents)).
		GroupBy(colModel).
		OrderBy(colModel)

	var out []ModelUsage
	err := r.scanAll(ctx, sel, func(rows *entsql.Rows) error {
		var u ModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return fmt.Errorf("scan usage: %w", err)
		}
		out = append(out, u)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query usage by model: %w", err)
	}
	return out, nil
}

func coalesceZero(expr string) string {
	return "COALESCE(" + expr + ", 0)"
}

func (r *EntEventRepo) queryEvents(ctx context.Context, sel *entsql.Selector) ([]LLMEventRecord, error) {
	var out []LLMEventRecord
	err := r.scanAll(ctx, sel, func(rows *entsql.Rows) error {
		var rec LLMEventRecord
		err := rows.Scan(
			&rec.ID,
			&rec.Timestamp,
			&rec.Provider,
			&rec.Model,
			&rec.Purpose,
			&rec.InputTokens,
			&rec.OutputTokens,
			&rec.LatencyMs,
			&rec.Success,
			&rec.ErrorMessage,
			&rec.RequestSummary,
		)
		if err != nil {
			return fmt.Errorf("scan LLM event: %w", err)
		}
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	return out, nil
}

// scanAll runs sel and calls scan for every row.
func (r *EntEventRepo) scanAll(ctx context.Context, sel *entsql.Selector, scan func(*entsql.Rows) error) error {
	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
