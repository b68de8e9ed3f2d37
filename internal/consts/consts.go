package consts

const (
	CHARGE    = 1.6021918e-19 // Elementary charge (C)
	BOLTZMANN = 1.3806226e-23 // Boltzmann constant (J/K)
	KELVIN    = 273.15        // Kelvin temperature (K)

	REFTEMP = 300.0 // Reference temperature (K)

	NI_SILICON = 9.65e9    // Silicon intrinsic concentration at 300K (cm^-3)
	EPS0       = 8.854e-12 // Vacuum permittivity (F/m)
	EPS_SI     = 11.7      // Silicon relative permittivity
	EPS_OX     = 3.9       // SiO2 relative permittivity
)
