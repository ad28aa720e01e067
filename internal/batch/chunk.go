package batch

import "github.com/pulibrary/marc-pd-tool-sub003/internal/pub"

// Chunk is one unit of work: a contiguous slice of input records tagged with
// its position in the overall stream so results can be re-sequenced after
// concurrent processing. Grounded on spec §4.10's "partitions the input
// stream into chunks of configurable size".
type Chunk struct {
	Index   int
	Records []*pub.Publication
}

// Partition splits records into chunks of size batchSize (the last chunk may
// be shorter). batchSize <= 0 is treated as "one chunk".
func Partition(records []*pub.Publication, batchSize int) []Chunk {
	if batchSize <= 0 {
		batchSize = len(records)
	}
	if batchSize <= 0 {
		return nil
	}
	chunks := make([]Chunk, 0, (len(records)+batchSize-1)/batchSize)
	for start, idx := 0, 0; start < len(records); start, idx = start+batchSize, idx+1 {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}
		chunks = append(chunks, Chunk{Index: idx, Records: records[start:end]})
	}
	return chunks
}

// Result is one input record's processing outcome: its attached matches (if
// any) and the error flag used for per-record error accounting (spec §7,
// "Worker errors").
type Result struct {
	ChunkIndex int
	Record     *pub.Publication
	Status     string
	Err        error
}

// ChunkResult carries one chunk's worth of Results plus its originating
// Index, for the unshuffler to restore stream order.
type ChunkResult struct {
	Index   int
	Results []Result
}
