package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/gitissues/internal/domain"
	"github.com/naka-gawa/gitissues/internal/metrics"
)

// mockSearcher is a mock implementation of the gateway.Searcher interface.
// It allows us to simulate the behavior of the GitHub gateway without making real API calls.
type mockSearcher struct {
	mock.Mock
}

func (m *mockSearcher) SearchOpenIssues(ctx context.Context, window domain.QueryWindow) (*domain.SearchResult, error) {
	args := m.Called(ctx, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SearchResult), args.Error(1)
}

var (
	testRepo = domain.Repository{Owner: "octocat", Name: "Hello-World"}
	// Sub-second part must not leak into any bound.
	testNow = time.Date(2026, 10, 18, 12, 0, 0, 999_000_000, time.UTC)
)

func TestWindows(t *testing.T) {
	windows := Windows(testRepo, testNow)
	require.Len(t, windows, 4)

	assert.Equal(t, domain.QueryWindow{OwnerLogin: "octocat", RepoName: "Hello-World", From: "*", Till: "*"}, windows[domain.BucketTotal])
	assert.Equal(t, domain.QueryWindow{OwnerLogin: "octocat", RepoName: "Hello-World", From: "2026-10-17T12:00:00Z", Till: "*"}, windows[domain.BucketLast24h])
	assert.Equal(t, domain.QueryWindow{OwnerLogin: "octocat", RepoName: "Hello-World", From: "2026-10-11T12:00:00Z", Till: "2026-10-17T12:00:00Z"}, windows[domain.BucketLast7dExcl24h])
	assert.Equal(t, domain.QueryWindow{OwnerLogin: "octocat", RepoName: "Hello-World", From: "*", Till: "2026-10-11T12:00:00Z"}, windows[domain.BucketAllExcl7d])

	// Adjacent windows share their boundary so the timeline is covered without gaps.
	assert.Equal(t, windows[domain.BucketAllExcl7d].Till, windows[domain.BucketLast7dExcl24h].From)
	assert.Equal(t, windows[domain.BucketLast7dExcl24h].Till, windows[domain.BucketLast24h].From)
}

func TestWindows_NonUTCClock(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	windows := Windows(testRepo, testNow.In(tokyo))
	assert.Equal(t, "2026-10-17T12:00:00Z", windows[domain.BucketLast24h].From)
}

// TestAggregator_Aggregate uses a table-driven approach to test the aggregator.
func TestAggregator_Aggregate(t *testing.T) {
	windows := Windows(testRepo, testNow)

	testCases := []struct {
		name     string
		results  map[domain.BucketKey]*domain.SearchResult
		errs     map[domain.BucketKey]error
		expected domain.AggregateResponse
	}{
		{
			name: "happy path - every bucket is counted",
			results: map[domain.BucketKey]*domain.SearchResult{
				domain.BucketTotal:         {TotalCount: 42},
				domain.BucketLast24h:       {TotalCount: 1},
				domain.BucketLast7dExcl24h: {TotalCount: 3},
				domain.BucketAllExcl7d:     {TotalCount: 38},
			},
			expected: domain.AggregateResponse{
				domain.BucketTotal:         "42",
				domain.BucketLast24h:       "1",
				domain.BucketLast7dExcl24h: "3",
				domain.BucketAllExcl7d:     "38",
			},
		},
		{
			name: "partial failure - one bucket times out",
			results: map[domain.BucketKey]*domain.SearchResult{
				domain.BucketTotal:     {TotalCount: 7},
				domain.BucketLast24h:   {TotalCount: 0},
				domain.BucketAllExcl7d: {TotalCount: 5, Incomplete: true},
			},
			errs: map[domain.BucketKey]error{
				domain.BucketLast7dExcl24h: errors.New("i/o timeout"),
			},
			expected: domain.AggregateResponse{
				domain.BucketTotal:         "7",
				domain.BucketLast24h:       "0",
				domain.BucketLast7dExcl24h: "error:i/o timeout",
				domain.BucketAllExcl7d:     "5",
			},
		},
		{
			name: "total failure - every bucket still reported",
			errs: map[domain.BucketKey]error{
				domain.BucketTotal:         errors.New("boom"),
				domain.BucketLast24h:       errors.New("boom"),
				domain.BucketLast7dExcl24h: errors.New("boom"),
				domain.BucketAllExcl7d:     errors.New("boom"),
			},
			expected: domain.AggregateResponse{
				domain.BucketTotal:         "error:boom",
				domain.BucketLast24h:       "error:boom",
				domain.BucketLast7dExcl24h: "error:boom",
				domain.BucketAllExcl7d:     "error:boom",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			searcher := new(mockSearcher)
			for _, key := range domain.Buckets {
				if err, ok := tc.errs[key]; ok {
					searcher.On("SearchOpenIssues", mock.Anything, windows[key]).Return(nil, err).Once()
					continue
				}
				searcher.On("SearchOpenIssues", mock.Anything, windows[key]).Return(tc.results[key], nil).Once()
			}

			aggregator := NewAggregator(searcher, logger, WithClock(func() time.Time { return testNow }))

			// --- Act ---
			resp := aggregator.Aggregate(context.Background(), testRepo)

			// --- Assert ---
			assert.Equal(t, tc.expected, resp)
			searcher.AssertExpectations(t)
			searcher.AssertNumberOfCalls(t, "SearchOpenIssues", 4)
		})
	}
}

func TestAggregator_Aggregate_RecordsMetrics(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	searcher := new(mockSearcher)
	searcher.On("SearchOpenIssues", mock.Anything, mock.Anything).Return(nil, errors.New("unreachable"))

	before := testutil.ToFloat64(metrics.SearchTotal.WithLabelValues(string(domain.BucketTotal), metrics.StatusError))
	NewAggregator(searcher, logger, WithClock(func() time.Time { return testNow })).Aggregate(context.Background(), testRepo)
	after := testutil.ToFloat64(metrics.SearchTotal.WithLabelValues(string(domain.BucketTotal), metrics.StatusError))

	assert.Equal(t, before+1, after)
}
