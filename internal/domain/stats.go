// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"errors"
	"strconv"
	"strings"
)

// BucketKey identifies one of the fixed time windows an open issue count is reported for.
type BucketKey string

const (
	BucketTotal         BucketKey = "TOTAL"
	BucketLast24h       BucketKey = "LAST_24H"
	BucketLast7dExcl24h BucketKey = "LAST_7D_EXCL_24H"
	BucketAllExcl7d     BucketKey = "ALL_EXCL_7D"
)

// ErrorMarkerPrefix starts the value of a bucket whose count could not be obtained.
const ErrorMarkerPrefix = "error:"

var errNotComputed = errors.New("bucket was not computed")

// Buckets lists every bucket in reporting order.
var Buckets = []BucketKey{BucketTotal, BucketLast24h, BucketLast7dExcl24h, BucketAllExcl7d}

// SearchResult is the reduced form of an issue search response. Items are discarded.
type SearchResult struct {
	TotalCount int  `json:"total_count"`
	Incomplete bool `json:"incomplete_results"`
}

// BucketOutcome is the result of counting one bucket: either a count or the error that prevented it.
type BucketOutcome struct {
	Key   BucketKey
	Count int
	Err   error
}

// Value renders the outcome the way it appears in an AggregateResponse.
func (o BucketOutcome) Value() string {
	if o.Err != nil {
		return ErrorMarkerPrefix + o.Err.Error()
	}
	return strconv.Itoa(o.Count)
}

// AggregateResponse maps each bucket to its count, or to an "error:..." marker when that bucket failed.
type AggregateResponse map[BucketKey]string

// NewAggregateResponse merges bucket outcomes into a response.
// Buckets missing from outcomes are reported as errors so that every key is always present.
func NewAggregateResponse(outcomes []BucketOutcome) AggregateResponse {
	resp := make(AggregateResponse, len(Buckets))
	for _, o := range outcomes {
		resp[o.Key] = o.Value()
	}
	for _, key := range Buckets {
		if _, ok := resp[key]; !ok {
			resp[key] = BucketOutcome{Key: key, Err: errNotComputed}.Value()
		}
	}
	return resp
}

// IsError reports whether the given bucket holds an error marker.
func (r AggregateResponse) IsError(key BucketKey) bool {
	return strings.HasPrefix(r[key], ErrorMarkerPrefix)
}
