package domain

// FoldRange is a folded character span [Start, End) in buffer coordinates.
type FoldRange struct {
	Start int
	End   int
}

// Len returns the span length.
func (f FoldRange) Len() int {
	return f.End - f.Start
}

// Contains reports whether the range fully encloses other.
func (f FoldRange) Contains(other FoldRange) bool {
	return f.Start <= other.Start && other.End <= f.End
}

// CacheEntry is one persisted line of the formatted-content cache.
type CacheEntry struct {
	Fingerprint string
	Command     string
}
