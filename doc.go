// Package topnselect selects the N highest-scored items out of a large stream
// of (identifier, score) pairs without sorting the whole stream.
//
// Items are ranked by score descending; equal scores are ranked by identifier
// ascending. Every algorithm uses this order, so all of them agree on which
// identifiers make up the top N.
//
// # Basic Usage
//
//	sel, err := topnselect.New(totalItems, 1000,
//	    topnselect.WithAlgorithm(topnselect.AlgoQuickselectFixed),
//	    topnselect.WithLoadFactor(10))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for id, score := range stream {
//	    sel.Sink(id, score)
//	}
//	top := sel.TopN(1000)
//
// # Algorithms
//
//   - AlgoQuickselect: stores everything; each query runs quickselect on a
//     copy. O(1) amortized Sink, O(M) expected query, O(M) memory.
//   - AlgoQuickselectFixed: fixed buffer compacted by quickselect when full.
//     O(1) amortized Sink, O(N) memory.
//   - AlgoBoundedHeap: heap of the best N with O(1) rejection. O(N) memory.
//   - AlgoBaselineHeap: unbounded priority queue, O(log M) Sink. The only
//     algorithm returning results in rank order.
//
// The quickselect algorithms take a pivot strategy: PivotMiddle,
// PivotMedian3 or PivotRandom.
//
// # Package Structure
//
//   - Public API: selector.go (Selector, New), options.go (Option, With*),
//     algorithm.go (AlgorithmID, Variant, factory)
//   - Selection algorithms: internal/quickselect, internal/pq
//   - Ranking: internal/order
//   - Benchmark input: fixture/
//   - Benchmark harness: internal/trial, internal/measure, cmd/topnbench
package topnselect
