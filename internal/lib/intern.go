package lib

// Interner numbers distinct values 1, 2, 3... in order of first sight, keeping
// generated ids small and stable for one render. It is not safe for concurrent use;
// give each render its own.
type Interner[K comparable] struct {
	ids map[K]int
}

func NewInterner[K comparable]() *Interner[K] {
	return &Interner[K]{ids: make(map[K]int)}
}

// ID returns the number for k, allocating the next one if k is new.
func (in *Interner[K]) ID(k K) int {
	id, ok := in.ids[k]
	if !ok {
		id = len(in.ids) + 1
		in.ids[k] = id
	}
	return id
}
