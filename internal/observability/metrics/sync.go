package metrics

import (
	"time"

	obserrors "github.com/copperline/bizportal/internal/observability/errors"
	"github.com/copperline/bizportal/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// SyncMetric captures details about one resource-class fetch during a sync run.
type SyncMetric struct {
	Resource string
	Result   string
	Duration time.Duration
	Err      error
}

// EmitSyncOutcome emits standardised sync fetch metrics.
func EmitSyncOutcome(sink statsd.Sink, in SyncMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"resource": in.Resource,
		"result":   in.Result,
	}

	if in.Err != nil && in.Result == ResultError {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("sync.fetch", 1, tags)

	if in.Duration > 0 {
		sink.Timing("sync.fetch_duration", in.Duration, CloneTags(tags))
	}
}

// CloneTags creates a shallow copy of a tag map, filtering out empty keys.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
