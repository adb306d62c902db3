package params

import (
	"fmt"

	"github.com/danielpatrickdp/mandeval/internal/model"
)

// #region country
// Country is an ISO-style country code with published estimates.
type Country string

const (
	Australia Country = "AU"
	Italy     Country = "IT"
	France    Country = "FR"
)

// Label returns the display name for the country.
func (c Country) Label() string {
	switch c {
	case Australia:
		return "Australia"
	case Italy:
		return "Italy"
	case France:
		return "France"
	default:
		return string(c)
	}
}
// #endregion country

// #region severity
// Severity is the outbreak scenario the estimates were elicited under.
type Severity string

const (
	Mild   Severity = "mild"
	Severe Severity = "severe"
)
// #endregion severity

// #region entry
// Key identifies one row of the parameter table.
type Key struct {
	Country  Country
	Severity Severity
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s", k.Country, k.Severity)
}

// Entry is the population distribution of taste coefficients for one Key:
// each coefficient is normal with the given mean and standard deviation.
type Entry struct {
	Mean model.Vector
	SD   model.Vector
}
// #endregion entry

// #region missing-parameters-error
// MissingParametersError reports a (country, severity) pair absent from the table.
type MissingParametersError struct {
	Country  Country
	Severity Severity
}

func (e *MissingParametersError) Error() string {
	return fmt.Sprintf("no preference parameters for country %q severity %q", e.Country, e.Severity)
}
// #endregion missing-parameters-error
