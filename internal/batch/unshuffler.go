package batch

import "container/heap"

// chunkHeap orders ChunkResults by Index so the unshuffler can release them
// in the original chunk order regardless of completion order. Grounded on
// eutils/xml.go's xmlRecordHeap / CreateXMLUnshuffler.
type chunkHeap []ChunkResult

func (h chunkHeap) Len() int            { return len(h) }
func (h chunkHeap) Less(i, j int) bool  { return h[i].Index < h[j].Index }
func (h chunkHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *chunkHeap) Push(x interface{}) { *h = append(*h, x.(ChunkResult)) }
func (h *chunkHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Unshuffle consumes ChunkResults arriving in arbitrary (completion) order on
// inp and emits them on the returned channel in index order, matching spec
// §5's ordering guarantee for single-file output.
func Unshuffle(inp <-chan ChunkResult) <-chan ChunkResult {
	out := make(chan ChunkResult, cap(inp))

	go func() {
		defer close(out)

		hp := &chunkHeap{}
		heap.Init(hp)
		next := 0

		for cr := range inp {
			heap.Push(hp, cr)

			for hp.Len() > 0 {
				curr := (*hp)[0]
				if curr.Index != next {
					break
				}
				heap.Pop(hp)
				out <- curr
				next++
			}
		}

		for hp.Len() > 0 {
			out <- heap.Pop(hp).(ChunkResult)
		}
	}()

	return out
}
