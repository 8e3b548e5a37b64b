package trace

import (
	"fmt"

	"github.com/selimozcann/doicheck/internal/model"
)

// Policy selects which URL of a chain counts as the resolved URL.
type Policy string

const (
	// PolicyHistory looks at the redirect history (every hop but the last).
	// With more than one redirect the URL of the last redirect response
	// wins; otherwise the final URL does. This matches the output of the
	// catalog tooling the checker replaced.
	PolicyHistory Policy = "history"
	// PolicyFinal always uses the URL of the final response.
	PolicyFinal Policy = "final"
)

// ParsePolicy converts a config value to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyHistory, PolicyFinal:
		return Policy(s), nil
	case "":
		return PolicyHistory, nil
	}
	return "", fmt.Errorf("unknown resolve policy %q (want %q or %q)", s, PolicyHistory, PolicyFinal)
}

// Resolve derives the resolved URL from a redirect chain.
func Resolve(chain []model.Hop, p Policy) string {
	if len(chain) == 0 {
		return ""
	}
	final := chain[len(chain)-1].URL
	if p == PolicyFinal {
		return final
	}
	history := chain[:len(chain)-1]
	if len(history) > 1 {
		return history[len(history)-1].URL
	}
	return final
}
