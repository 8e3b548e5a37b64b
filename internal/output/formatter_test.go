package output_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/selimozcann/doicheck/internal/model"
	"github.com/selimozcann/doicheck/internal/output"
)

func TestPrintOutcome(t *testing.T) {
	rec := model.Record{DOI: "https://doi.org/10.1234/abc", Standard: "https://example.org/final"}
	tests := []struct {
		name    string
		outcome model.Outcome
		want    string
	}{
		{
			name:    "resolved",
			outcome: model.Outcome{Record: rec, Resolved: rec.Standard},
			want:    "  resolved: https://example.org/final\n",
		},
		{
			name:    "mismatch",
			outcome: model.Outcome{Record: rec, Resolved: "https://example.org/wrong", Kind: model.FailureMismatch},
			want:    "  error: https://example.org/wrong, not https://example.org/final\n",
		},
		{
			name:    "timeout",
			outcome: model.Outcome{Record: rec, Kind: model.FailureTimeout, Err: errors.New("deadline")},
			want:    "    timed out\n",
		},
		{
			name:    "connection",
			outcome: model.Outcome{Record: rec, Kind: model.FailureConnection, Err: errors.New("dial tcp: refused")},
			want:    "    connection error\n\n    dial tcp: refused\n\n",
		},
		{
			name:    "tooManyRedirects",
			outcome: model.Outcome{Record: rec, Kind: model.FailureTooManyRedirects, Err: errors.New("too many redirects: exceeded 30")},
			want:    "    redirect error: too many redirects: exceeded 30\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			output.NewPrinter(&buf, false).PrintOutcome(tt.outcome)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestPrintChecking(t *testing.T) {
	var buf bytes.Buffer
	output.NewPrinter(&buf, false).PrintChecking(model.Record{DOI: "d", Standard: "s"})
	assert.Equal(t, "checking resolving d -> s\n", buf.String())
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	output.NewPrinter(&buf, false).PrintSummary(model.Summary{Total: 3, Resolved: 2, Failed: 1})
	assert.Equal(t, "checked 3 DOI(s): 2 resolved, 1 failed\n", buf.String())
}

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	output.NewPrinter(&buf, true).PrintResolved("https://example.org")
	assert.Contains(t, buf.String(), "\x1b[32m")
	assert.Contains(t, buf.String(), "https://example.org")
}
