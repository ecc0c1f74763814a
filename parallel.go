package colocate

import "sync"

// joinCellsParallel partitions the grid's cells across workers, each
// emitting to a thread-local buffer merged at the end, mirroring the
// teacher's ComputePairwiseDistancesParallel row-range split (§5:
// "GridIndex cell processing (partition by cell, each worker emits to a
// thread-local buffer, merged at end)").
func joinCellsParallel(set *InstanceSet, cells map[cellKey][]InstanceRef, keys []cellKey, d float64, workers int) []NeighborPair {
	buffers := make([][]NeighborPair, workers)
	perWorker := (len(keys) + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * perWorker
		end := start + perWorker
		if end > len(keys) {
			end = len(keys)
		}
		if start >= len(keys) {
			break
		}
		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			var local []NeighborPair
			for _, key := range keys[start:end] {
				local = append(local, pairsForCell(set, cells, key, d)...)
			}
			buffers[w] = local
		}(w, start, end)
	}
	wg.Wait()

	var out []NeighborPair
	for _, buf := range buffers {
		out = append(out, buf...)
	}
	return out
}

// extendRowsParallel partitions T(prefix)'s rows across workers, each
// extending its share with the new feature into a thread-local buffer
// merged at the end (§5: "TableInstanceBuilder rows of the same
// candidate (partition by row-index, each worker emits rows to a
// thread-local buffer)").
func extendRowsParallel(tree *NRTree, prefix Colocation, rows []Row, newFeature FeatureType, workers int) []Row {
	buffers := make([][]Row, workers)
	perWorker := (len(rows) + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * perWorker
		end := start + perWorker
		if end > len(rows) {
			end = len(rows)
		}
		if start >= len(rows) {
			break
		}
		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			var local []Row
			for _, r := range rows[start:end] {
				local = append(local, extendRow(tree, prefix, r, newFeature)...)
			}
			buffers[w] = local
		}(w, start, end)
	}
	wg.Wait()

	var out []Row
	for _, buf := range buffers {
		out = append(out, buf...)
	}
	return out
}
