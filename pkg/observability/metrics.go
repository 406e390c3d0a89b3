package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricOperationsTotal   = "rbkeys.operations.total"
	metricOperationDuration = "rbkeys.operation.duration.seconds"
	metricErrorsTotal       = "rbkeys.errors.total"
	metricTreeKeys          = "rbkeys.tree.keys"

	attrOp     = "op"
	attrStatus = "status"
)

// Operation statuses.
const (
	StatusOK       = "ok"
	StatusNoop     = "noop"
	StatusNotFound = "not_found"
	StatusError    = "error"
)

// durationBucketBoundaries covers 100ns to 1s: single tree operations sit at
// the low end, whole-script commands and traversals of large trees at the top.
var durationBucketBoundaries = []float64{
	1e-7, 2.5e-7, 5e-7, 1e-6, 2.5e-6, 5e-6, 1e-5, 5e-5, 1e-4, 1e-3, 1e-2, 1e-1, 1,
}

// REDMetrics holds the OTel instruments for Rate, Error, Duration metrics of
// tree operations, plus the current tree size.
type REDMetrics struct {
	operationsTotal   metric.Int64Counter
	operationDuration metric.Float64Histogram
	errorsTotal       metric.Int64Counter
	treeKeys          metric.Int64Gauge
}

// NewREDMetrics creates RED metric instruments from the given meter.
func NewREDMetrics(mt metric.Meter) (*REDMetrics, error) {
	opsTotal, err := mt.Int64Counter(metricOperationsTotal,
		metric.WithDescription("Total number of tree operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricOperationsTotal, err)
	}

	opDuration, err := mt.Float64Histogram(metricOperationDuration,
		metric.WithDescription("Tree operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricOperationDuration, err)
	}

	errTotal, err := mt.Int64Counter(metricErrorsTotal,
		metric.WithDescription("Total number of failed commands"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricErrorsTotal, err)
	}

	keys, err := mt.Int64Gauge(metricTreeKeys,
		metric.WithDescription("Number of keys in the tree"),
		metric.WithUnit("{key}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricTreeKeys, err)
	}

	return &REDMetrics{
		operationsTotal:   opsTotal,
		operationDuration: opDuration,
		errorsTotal:       errTotal,
		treeKeys:          keys,
	}, nil
}

// RecordOperation records a completed operation with its status and duration.
func (rm *REDMetrics) RecordOperation(ctx context.Context, op, status string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(attrOp, op),
		attribute.String(attrStatus, status),
	)

	rm.operationsTotal.Add(ctx, 1, attrs)
	rm.operationDuration.Record(ctx, duration.Seconds(), attrs)

	if status == StatusError {
		rm.errorsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrOp, op)))
	}
}

// RecordTreeSize records the current number of keys in the tree.
func (rm *REDMetrics) RecordTreeSize(ctx context.Context, keys int) {
	rm.treeKeys.Record(ctx, int64(keys))
}
