package model

// Source names the resolution tier that produced a reply.
type Source string

const (
	SourceFAQ        Source = "faq"
	SourceCompletion Source = "completion"
	SourceRule       Source = "rule"
)

// ResolutionResult is the transient reply to one query. It is never persisted
// as-is; the inquiry logger stores only its text.
type ResolutionResult struct {
	Text   string `json:"text"`
	Source Source `json:"source"`
}

// HealthStatus is the outcome of the startup store probe.
type HealthStatus struct {
	Reachable  bool   `json:"reachable"`
	Mode       string `json:"mode"`
	Diagnostic string `json:"diagnostic,omitempty"`
}
