package parquetmeta

import "sort"

// defaultGapTolerance is the largest hole between two requested byte ranges
// that still gets bridged by a single read. Page index structures of nearby
// columns usually sit back to back, so a few tens of kilobytes of tolerance
// collapses thousands of per-column requests into a handful of reads.
const defaultGapTolerance = 32 * 1024

// rangeRequest asks for [offset, offset+length) on behalf of one page index
// slot.
type rangeRequest struct {
	offset int64
	length int64

	rowGroup int
	column   int
	kind     IndexKind
}

func (r rangeRequest) end() int64 {
	return r.offset + r.length
}

// readBatch is one coalesced read covering [start, end) and the requests it
// serves.
type readBatch struct {
	start    int64
	end      int64
	requests []rangeRequest
}

// slice cuts the sub-range of the fetched batch buffer belonging to req.
func (b readBatch) slice(buf []byte, req rangeRequest) []byte {
	local := req.offset - b.start
	return buf[local : local+req.length]
}

// planBatches sorts the requests by offset and merges neighbours into
// batches: a request joins the running batch when its start lies within
// gapTolerance of the batch's current end, and extends the end to the
// further of the two. The request-to-batch mapping is fixed here, before any
// I/O happens.
func planBatches(requests []rangeRequest, gapTolerance int64) []readBatch {
	if len(requests) == 0 {
		return nil
	}

	sorted := make([]rangeRequest, len(requests))
	copy(sorted, requests)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].offset < sorted[j].offset
	})

	batches := []readBatch{{
		start:    sorted[0].offset,
		end:      sorted[0].end(),
		requests: []rangeRequest{sorted[0]},
	}}

	for _, req := range sorted[1:] {
		last := &batches[len(batches)-1]
		if req.offset <= last.end+gapTolerance {
			if req.end() > last.end {
				last.end = req.end()
			}
			last.requests = append(last.requests, req)
			continue
		}
		batches = append(batches, readBatch{
			start:    req.offset,
			end:      req.end(),
			requests: []rangeRequest{req},
		})
	}

	return batches
}
