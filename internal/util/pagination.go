package util

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Window normalises an offset based page request: a negative from starts at
// the first hit and an out of range size falls back to DefaultPageSize.
func Window(from, size int) (int, int) {
	if from < 0 {
		from = 0
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return from, size
}
