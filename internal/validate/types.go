package validate

import (
	"strings"

	"github.com/danielpatrickdp/mandeval/internal/params"
)

// #region validate-config
// Config holds limits for input validation.
type Config struct {
	MaxLivesPer100k float64 // upper bound on lives saved per 100k (cannot exceed the block size)
	MaxPopulation   float64 // sanity cap on population size

	// Keys adds countries and severities beyond the published ones, so a
	// replacement coefficient table can introduce new combinations.
	Keys []params.Key
}

// DefaultConfig returns the standard limits.
func DefaultConfig() Config {
	return Config{
		MaxLivesPer100k: 100000,
		MaxPopulation:   1e10,
	}
}

// ForTable returns the standard limits extended with every key of table.
func ForTable(table *params.Table) Config {
	c := DefaultConfig()
	if table != nil {
		c.Keys = table.Keys()
	}
	return c
}
// #endregion validate-config

// #region check
// Check is a single named validation outcome.
type Check struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Pass   bool   `json:"pass"`
	Detail string `json:"detail,omitempty"`
}
// #endregion check

// #region result
// Result is the outcome of validating one request.
type Result struct {
	Passed bool
	Checks []Check
	Reason string
}

// Err returns nil when every check passed, otherwise an *Error.
func (r Result) Err() error {
	if r.Passed {
		return nil
	}
	return &Error{Result: r}
}
// #endregion result

// #region error
// Error wraps a failed validation Result.
type Error struct {
	Result Result
}

func (e *Error) Error() string {
	return e.Result.Reason
}

// Failed returns the names of the failed checks.
func (e *Error) Failed() []string {
	var names []string
	for _, c := range e.Result.Checks {
		if !c.Pass {
			names = append(names, c.Name)
		}
	}
	return names
}

func joinFailures(details []string) string {
	return strings.Join(details, "; ")
}
// #endregion error
