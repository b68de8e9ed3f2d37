// Package material holds the material/temperature configuration and the
// doped-sample description shared by the solvers. A Params value is built
// once and passed explicitly so solvers stay testable with non-default
// temperatures or intrinsic concentrations.
package material

import (
	"errors"
	"fmt"
	"math"

	"toy-surface/internal/consts"
)

var (
	// ErrInvalidArgument marks caller mistakes: unknown doping type,
	// non-positive doping and the like.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDomain marks physically impossible intermediate states, e.g. a
	// carrier concentration driven negative by extraction.
	ErrDomain = errors.New("domain error")
)

type DopingType int

const (
	NType DopingType = iota
	PType
)

func (t DopingType) String() string {
	switch t {
	case NType:
		return "n-type"
	case PType:
		return "p-type"
	default:
		return fmt.Sprintf("DopingType(%d)", int(t))
	}
}

// ParseDopingType accepts the spellings used on the command line and in
// config files.
func ParseDopingType(s string) (DopingType, error) {
	switch s {
	case "n", "n-type", "ntype", "N":
		return NType, nil
	case "p", "p-type", "ptype", "P":
		return PType, nil
	default:
		return 0, fmt.Errorf("%w: unknown doping type %q", ErrInvalidArgument, s)
	}
}

// Sample is a uniformly doped silicon sample. Doping is the net dopant
// concentration in cm^-3.
type Sample struct {
	Type   DopingType
	Doping float64
}

func (s Sample) Validate() error {
	if s.Type != NType && s.Type != PType {
		return fmt.Errorf("%w: doping type %v", ErrInvalidArgument, s.Type)
	}
	if s.Doping <= 0 {
		return fmt.Errorf("%w: doping must be positive, got %g", ErrInvalidArgument, s.Doping)
	}
	return nil
}

// Params is the process-wide physical configuration. Concentrations are
// kept in cm^-3 at the API boundary; everything dimensioned is converted
// to SI internally.
type Params struct {
	Temp  float64 // Temperature (K)
	Ni    float64 // Intrinsic concentration (cm^-3)
	EpsSi float64 // Silicon relative permittivity
	EpsOx float64 // Oxide relative permittivity
}

// Silicon returns the default configuration: silicon at 300K.
func Silicon() Params {
	return Params{
		Temp:  consts.REFTEMP,
		Ni:    consts.NI_SILICON,
		EpsSi: consts.EPS_SI,
		EpsOx: consts.EPS_OX,
	}
}

// Vt is the thermal voltage kT/q.
func (p Params) Vt() float64 {
	temp := p.Temp
	if temp <= 0 {
		temp = consts.REFTEMP
	}
	return consts.BOLTZMANN * temp / consts.CHARGE
}

// DebyeLength is the intrinsic Debye length sqrt(eps*kT / (2*q^2*ni)) in
// meters.
func (p Params) DebyeLength() float64 {
	niSI := PerCm3ToPerM3(p.Ni)
	eps := consts.EPS0 * p.EpsSi
	return math.Sqrt(eps * consts.BOLTZMANN * p.Temp / (2 * consts.CHARGE * consts.CHARGE * niSI))
}

// PerCm3ToPerM3 converts a volume concentration from cm^-3 to m^-3.
func PerCm3ToPerM3(c float64) float64 { return c * 1e6 }

// PerCm2ToPerM2 converts an areal density from cm^-2 to m^-2.
func PerCm2ToPerM2(c float64) float64 { return c * 1e4 }

// Equilibrium returns (n0, p0) in cm^-3 for the sample by mass action
// under full ionization: majority carrier equals the doping, minority is
// ni^2/N.
func Equilibrium(s Sample, p Params) (n0, p0 float64, err error) {
	if err := s.Validate(); err != nil {
		return 0, 0, err
	}
	switch s.Type {
	case NType:
		n0 = s.Doping
		p0 = p.Ni * p.Ni / s.Doping
	case PType:
		p0 = s.Doping
		n0 = p.Ni * p.Ni / s.Doping
	}
	return n0, p0, nil
}
