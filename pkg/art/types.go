package art

// Descriptor is one element of the search endpoint's JSON array. Only URL
// is required; unknown fields are ignored.
type Descriptor struct {
	ID     string `json:"id,omitempty"`
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// UpstreamObserver receives the outcome of every upstream call. Outcome is
// "ok" on success or the Kind of the returned error.
type UpstreamObserver interface {
	ObserveUpstream(target, outcome string, seconds float64)
}
