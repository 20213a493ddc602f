package matcher

// Options configures a match run.
type Options struct {
	// Workers is the number of goroutines records are fanned out across.
	// Zero or negative means one worker per CPU.
	Workers int
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{Workers: 0}
}

// RunStats summarizes one match run. Skipped counts records that produced
// no mapping, including records whose external id had already been claimed
// by another record in the same run.
type RunStats struct {
	Processed int64
	Matched   int64
	Skipped   int64
}
