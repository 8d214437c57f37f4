package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/Bhanuvikas1/job-tracker/internal/adapter/metrics"
	"github.com/jackc/pgx/v5"
)

// MetricsTracer implements pgx.QueryTracer, recording duration and failures per query.
type MetricsTracer struct {
	metrics *metrics.DBMetrics
}

var _ pgx.QueryTracer = (*MetricsTracer)(nil)

func NewMetricsTracer(m *metrics.DBMetrics) *MetricsTracer {
	return &MetricsTracer{metrics: m}
}

type queryContextKey struct{}

type queryContext struct {
	startTime time.Time
	queryName string
}

func (t *MetricsTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryContextKey{}, queryContext{
		startTime: time.Now(),
		queryName: queryName(data.SQL),
	})
}

func (t *MetricsTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	qctx, ok := ctx.Value(queryContextKey{}).(queryContext)
	if !ok {
		return
	}

	t.metrics.QueryDuration.WithLabelValues(qctx.queryName).Observe(time.Since(qctx.startTime).Seconds())
	if data.Err != nil {
		t.metrics.QueryErrors.WithLabelValues(qctx.queryName).Inc()
	}
}

// queryName returns the sqlc query name from a "-- name: X :kind" header, falling back
// to the lower-cased leading SQL keyword so labels stay low-cardinality.
func queryName(sql string) string {
	sql = strings.TrimSpace(sql)
	if rest, ok := strings.CutPrefix(sql, "-- name:"); ok {
		if fields := strings.Fields(rest); len(fields) > 0 {
			return fields[0]
		}
	}

	keyword, _, _ := strings.Cut(sql, " ")
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return "unknown"
	}
	if len(keyword) > 20 {
		keyword = keyword[:20]
	}
	return keyword
}
