package model

import "fmt"

// #region coefficient
// Coefficient identifies one mandate attribute in the mixed-logit utility.
// The declaration order is the order in which normal draws are consumed.
type Coefficient int

const (
	AscPolicyA Coefficient = iota
	AscOptOut
	ScopeAll
	ExMedRel
	ExMedRelPers
	Cov70
	Cov90
	Lives

	// NumCoefficients is the size of every coefficient vector.
	NumCoefficients = 8
)

var coefficientNames = [NumCoefficients]string{
	"ascPolicyA",
	"ascOptOut",
	"scopeAll",
	"exMedRel",
	"exMedRelPers",
	"cov70",
	"cov90",
	"lives",
}

// Coefficients returns every coefficient in draw order.
func Coefficients() [NumCoefficients]Coefficient {
	var out [NumCoefficients]Coefficient
	for i := range out {
		out[i] = Coefficient(i)
	}
	return out
}

// String returns the coefficient's canonical name, e.g. "exMedRelPers".
func (c Coefficient) String() string {
	if c < 0 || int(c) >= NumCoefficients {
		return fmt.Sprintf("Coefficient(%d)", int(c))
	}
	return coefficientNames[c]
}

// ParseCoefficient maps a canonical name back to its Coefficient.
func ParseCoefficient(name string) (Coefficient, error) {
	for i, n := range coefficientNames {
		if n == name {
			return Coefficient(i), nil
		}
	}
	return 0, fmt.Errorf("unknown coefficient %q", name)
}
// #endregion coefficient

// #region vector
// Vector holds one value per coefficient, indexed by Coefficient.
type Vector [NumCoefficients]float64

// Get returns the value for c.
func (v Vector) Get(c Coefficient) float64 {
	return v[c]
}

// Map renders the vector keyed by coefficient name (for JSON/YAML output).
func (v Vector) Map() map[string]float64 {
	m := make(map[string]float64, NumCoefficients)
	for i, name := range coefficientNames {
		m[name] = v[i]
	}
	return m
}

// VectorFromMap builds a Vector from name-keyed values. Unknown names are an
// error; missing names are reported through the returned slice so callers can
// decide whether absence is fatal.
func VectorFromMap(m map[string]float64) (Vector, []Coefficient, error) {
	var v Vector
	seen := [NumCoefficients]bool{}
	for name, val := range m {
		c, err := ParseCoefficient(name)
		if err != nil {
			return Vector{}, nil, err
		}
		v[c] = val
		seen[c] = true
	}
	var missing []Coefficient
	for i, ok := range seen {
		if !ok {
			missing = append(missing, Coefficient(i))
		}
	}
	return v, missing, nil
}
// #endregion vector
