package habitability

// Default input values applied when a field is not supplied.
const (
	DefaultEquilibriumTemperature = 288.0
	DefaultRadius                 = 1.0
	DefaultMass                   = 1.0
	DefaultStellarLuminosity      = 1.0
)

// StellarType is the spectral or category label of the host star.
// The set is open; only StellarTypeFlare changes scoring.
type StellarType string

// Known stellar types.
const (
	StellarTypeF     StellarType = "F"
	StellarTypeG     StellarType = "G"
	StellarTypeK     StellarType = "K"
	StellarTypeM     StellarType = "M"
	StellarTypeFlare StellarType = "flare"
)

// DefaultStellarType is used when no stellar type is supplied.
const DefaultStellarType = StellarTypeG

// IsFlare reports whether t is exactly the flare sentinel. Matching is
// case-sensitive.
func (t StellarType) IsFlare() bool { return t == StellarTypeFlare }

// Record holds the planetary and stellar parameters of a single planet.
// Build it with NewRecord so absent fields carry their defaults; the zero
// Record is not the default record.
type Record struct {
	StellarType            StellarType // spectral label, default "G"
	EquilibriumTemperature float64     // Kelvin
	Radius                 float64     // Earth radii
	Mass                   float64     // Earth masses
	OrbitalPeriod          float64     // days; accepted but not scored
	StellarLuminosity      float64     // solar luminosities
}

// RecordOption sets a single field of a Record.
type RecordOption func(*Record)

// WithStellarType sets the stellar type.
func WithStellarType(t StellarType) RecordOption {
	return func(r *Record) { r.StellarType = t }
}

// WithEquilibriumTemperature sets the equilibrium temperature in Kelvin.
func WithEquilibriumTemperature(k float64) RecordOption {
	return func(r *Record) { r.EquilibriumTemperature = k }
}

// WithRadius sets the planetary radius in Earth radii.
func WithRadius(radius float64) RecordOption {
	return func(r *Record) { r.Radius = radius }
}

// WithMass sets the planetary mass in Earth masses.
func WithMass(mass float64) RecordOption {
	return func(r *Record) { r.Mass = mass }
}

// WithOrbitalPeriod sets the orbital period in days.
func WithOrbitalPeriod(days float64) RecordOption {
	return func(r *Record) { r.OrbitalPeriod = days }
}

// WithStellarLuminosity sets the host star luminosity in solar luminosities.
func WithStellarLuminosity(l float64) RecordOption {
	return func(r *Record) { r.StellarLuminosity = l }
}

// NewRecord returns a Record with every field at its default, then applies opts.
func NewRecord(opts ...RecordOption) Record {
	r := Record{
		StellarType:            DefaultStellarType,
		EquilibriumTemperature: DefaultEquilibriumTemperature,
		Radius:                 DefaultRadius,
		Mass:                   DefaultMass,
		StellarLuminosity:      DefaultStellarLuminosity,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// DefaultRecord is NewRecord with no options.
func DefaultRecord() Record { return NewRecord() }
