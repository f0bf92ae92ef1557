package fieldpath

import "sync"

// Pool capacities, sized the way internal/jsonpath sizes its segment and
// result pools: generous enough for typical rule paths, discarded rather
// than retained when a walk returns something unusually large.
const matchSliceCap = 32

var matchSlicePool = sync.Pool{
	New: func() any {
		s := make([]match, 0, matchSliceCap)
		return &s
	},
}

func getMatchSlice() *[]match {
	s := matchSlicePool.Get().(*[]match)
	*s = (*s)[:0]
	return s
}

func putMatchSlice(s *[]match) {
	if s == nil || cap(*s) > 256 {
		return
	}
	matchSlicePool.Put(s)
}
