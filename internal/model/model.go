package model

import "time"

// Record is one (doi, standard) row of the input CSV.
type Record struct {
	DOI      string `validate:"required"`
	Standard string `validate:"required"`
	// Line is the 1-based CSV line the record was read from.
	Line int
}

// Hop represents a single response in a redirect chain.
type Hop struct {
	Index  int    `json:"index"`
	URL    string `json:"url"`
	Status int    `json:"status"`
	TimeMs int64  `json:"time_ms"`
	Final  bool   `json:"final"`
}

// FailureKind classifies why a record did not resolve.
type FailureKind string

const (
	FailureNone             FailureKind = ""
	FailureConnection       FailureKind = "connection"
	FailureTimeout          FailureKind = "timeout"
	FailureTooManyRedirects FailureKind = "too_many_redirects"
	FailureMismatch         FailureKind = "mismatch"
)

// Result is the traced redirect chain for a single DOI.
type Result struct {
	Target     string
	Chain      []Hop
	Kind       FailureKind
	Err        error
	StartedAt  time.Time
	DurationMs int64
}

// Failed reports whether tracing stopped on an error.
func (r Result) Failed() bool { return r.Kind != FailureNone }

// Outcome is the checked result of one record.
type Outcome struct {
	Record   Record
	Resolved string
	Kind     FailureKind
	Err      error
}

// OK reports whether the record resolved to its standard URL.
func (o Outcome) OK() bool { return o.Kind == FailureNone }

// Summary accumulates outcomes over a run.
type Summary struct {
	Total    int
	Resolved int
	Failed   int
}

// Add folds one outcome into the summary.
func (s Summary) Add(o Outcome) Summary {
	s.Total++
	if o.OK() {
		s.Resolved++
	} else {
		s.Failed++
	}
	return s
}

// HasError reports whether any record failed.
func (s Summary) HasError() bool { return s.Failed > 0 }
