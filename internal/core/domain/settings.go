package domain

// BlockingSetting is the single process-wide flag controlling whether
// outstanding deadline tasks should warn on submission. Persisted as one flat
// document, read and written whole, last writer wins.
type BlockingSetting struct {
	BlockingEnabled bool `json:"blockingEnabled"`
}
