// Package habitability computes a bounded habitability score for an exoplanet
// from a small set of planetary and stellar parameters.
//
// Scoring is a fixed sequence of independent penalties applied to a base
// score, with a flare-star override that short-circuits to zero. Functions in
// this package are pure and safe for concurrent use.
package habitability

import "math"

// Scoring constants. Threshold comparisons are strict: a value equal to a
// bound is not penalised.
const (
	BaseScore = 50.0
	MinScore  = 0.0
	MaxScore  = 100.0

	MinTemperature = 200.0
	MaxTemperature = 400.0
	MinRadius      = 0.5
	MaxRadius      = 2.5
	MinMass        = 0.1
	MaxMass        = 10.0
	MinLuminosity  = 0.1
	MaxLuminosity  = 10.0

	TemperaturePenalty = 20.0
	RadiusPenalty      = 15.0
	MassPenalty        = 10.0
	LuminosityPenalty  = 5.0
)

// PenaltyKind identifies which check produced a penalty.
type PenaltyKind string

// Penalty kinds in evaluation order.
const (
	PenaltyTemperature PenaltyKind = "temperature"
	PenaltyRadius      PenaltyKind = "radius"
	PenaltyMass        PenaltyKind = "mass"
	PenaltyLuminosity  PenaltyKind = "luminosity"
)

// PenaltyKinds lists every kind in the order checks run.
func PenaltyKinds() []PenaltyKind {
	return []PenaltyKind{PenaltyTemperature, PenaltyRadius, PenaltyMass, PenaltyLuminosity}
}

// Penalty records a single fired check.
type Penalty struct {
	Kind   PenaltyKind `json:"kind"`
	Field  string      `json:"field"`
	Value  float64     `json:"value"`
	Points float64     `json:"points"`
}

// Assessment is the score together with the reasons behind it.
type Assessment struct {
	Score         float64   `json:"score"`
	FlareOverride bool      `json:"flare_override"`
	Penalties     []Penalty `json:"penalties"`
}

// Deduction sums the points of every recorded penalty.
func (a Assessment) Deduction() float64 {
	var total float64
	for _, p := range a.Penalties {
		total += p.Points
	}
	return total
}

// Has reports whether a penalty of kind k fired.
func (a Assessment) Has(k PenaltyKind) bool {
	for _, p := range a.Penalties {
		if p.Kind == k {
			return true
		}
	}
	return false
}

// outside reports whether v lies strictly below lo or strictly above hi.
// NaN is never outside.
func outside(v, lo, hi float64) bool {
	return v < lo || v > hi
}

// Assess scores r and records which checks fired.
//
// Checks run in a fixed order: temperature, radius, mass, then the flare
// override, then luminosity. A flare star scores 0 regardless of what was
// accumulated; its Penalties keep the checks that ran before the override and
// luminosity is never checked.
func Assess(r Record) Assessment {
	a := Assessment{Score: BaseScore, Penalties: []Penalty{}}

	if outside(r.EquilibriumTemperature, MinTemperature, MaxTemperature) {
		a.penalize(PenaltyTemperature, "equilibrium_temperature", r.EquilibriumTemperature, TemperaturePenalty)
	}
	if outside(r.Radius, MinRadius, MaxRadius) {
		a.penalize(PenaltyRadius, "radius", r.Radius, RadiusPenalty)
	}
	if outside(r.Mass, MinMass, MaxMass) {
		a.penalize(PenaltyMass, "mass", r.Mass, MassPenalty)
	}

	if r.StellarType.IsFlare() {
		a.Score = 0
		a.FlareOverride = true
		return a
	}

	if outside(r.StellarLuminosity, MinLuminosity, MaxLuminosity) {
		a.penalize(PenaltyLuminosity, "stellar_luminosity", r.StellarLuminosity, LuminosityPenalty)
	}

	a.Score = math.Max(MinScore, math.Min(MaxScore, a.Score))
	return a
}

// Evaluate returns the habitability score of r in [0, 100].
func Evaluate(r Record) float64 {
	return Assess(r).Score
}

func (a *Assessment) penalize(kind PenaltyKind, field string, value, points float64) {
	a.Score -= points
	a.Penalties = append(a.Penalties, Penalty{Kind: kind, Field: field, Value: value, Points: points})
}
