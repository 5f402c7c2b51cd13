// Package model contains domain models passed between layers.
package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/okian/habitat/internal/domain/habitability"
	"gopkg.in/yaml.v3"
)

// PlanetRecord is the wire shape of a single planet. Every field is optional;
// nil fields take the evaluator defaults.
type PlanetRecord struct {
	StellarType            *string  `json:"stellar_type,omitempty" yaml:"stellar_type,omitempty"`
	EquilibriumTemperature *float64 `json:"equilibrium_temperature,omitempty" yaml:"equilibrium_temperature,omitempty"`
	Radius                 *float64 `json:"radius,omitempty" yaml:"radius,omitempty"`
	Mass                   *float64 `json:"mass,omitempty" yaml:"mass,omitempty"`
	OrbitalPeriod          *float64 `json:"orbital_period,omitempty" yaml:"orbital_period,omitempty"`
	StellarLuminosity      *float64 `json:"stellar_luminosity,omitempty" yaml:"stellar_luminosity,omitempty"`
}

// Record converts p into an evaluator record, applying defaults for absent fields.
func (p PlanetRecord) Record() habitability.Record {
	var opts []habitability.RecordOption
	if p.StellarType != nil {
		opts = append(opts, habitability.WithStellarType(habitability.StellarType(*p.StellarType)))
	}
	if p.EquilibriumTemperature != nil {
		opts = append(opts, habitability.WithEquilibriumTemperature(*p.EquilibriumTemperature))
	}
	if p.Radius != nil {
		opts = append(opts, habitability.WithRadius(*p.Radius))
	}
	if p.Mass != nil {
		opts = append(opts, habitability.WithMass(*p.Mass))
	}
	if p.OrbitalPeriod != nil {
		opts = append(opts, habitability.WithOrbitalPeriod(*p.OrbitalPeriod))
	}
	if p.StellarLuminosity != nil {
		opts = append(opts, habitability.WithStellarLuminosity(*p.StellarLuminosity))
	}
	return habitability.NewRecord(opts...)
}

// FromRecord builds a fully populated wire record from r. A zero orbital
// period is left unset.
func FromRecord(r habitability.Record) PlanetRecord {
	st := string(r.StellarType)
	p := PlanetRecord{
		StellarType:            &st,
		EquilibriumTemperature: float64Ptr(r.EquilibriumTemperature),
		Radius:                 float64Ptr(r.Radius),
		Mass:                   float64Ptr(r.Mass),
		StellarLuminosity:      float64Ptr(r.StellarLuminosity),
	}
	if r.OrbitalPeriod != 0 {
		p.OrbitalPeriod = float64Ptr(r.OrbitalPeriod)
	}
	return p
}

// Merge returns p with every non-nil field of override applied on top.
func (p PlanetRecord) Merge(override PlanetRecord) PlanetRecord {
	if override.StellarType != nil {
		p.StellarType = override.StellarType
	}
	if override.EquilibriumTemperature != nil {
		p.EquilibriumTemperature = override.EquilibriumTemperature
	}
	if override.Radius != nil {
		p.Radius = override.Radius
	}
	if override.Mass != nil {
		p.Mass = override.Mass
	}
	if override.OrbitalPeriod != nil {
		p.OrbitalPeriod = override.OrbitalPeriod
	}
	if override.StellarLuminosity != nil {
		p.StellarLuminosity = override.StellarLuminosity
	}
	return p
}

// DecodeJSON reads a single JSON object from r. Unknown fields are ignored and
// null means absent. A value of the wrong type is reported as ErrInvalidField;
// anything that is not exactly one object is ErrMalformedRecord.
func DecodeJSON(r io.Reader) (PlanetRecord, error) {
	var p PlanetRecord
	dec := json.NewDecoder(r)
	if err := dec.Decode(&p); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return PlanetRecord{}, fmt.Errorf("%w: %s: got %s, want %s", ErrInvalidField, typeErr.Field, typeErr.Value, typeErr.Type)
		}
		return PlanetRecord{}, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	switch err := dec.Decode(&struct{}{}); {
	case errors.Is(err, io.EOF):
	case err != nil:
		return PlanetRecord{}, fmt.Errorf("%w: unexpected data after the record: %w", ErrMalformedRecord, err)
	default:
		return PlanetRecord{}, fmt.Errorf("%w: unexpected data after the record", ErrMalformedRecord)
	}
	return p, nil
}

// DecodeYAML parses a single YAML (or JSON) document. Empty and null
// documents are the default record.
func DecodeYAML(data []byte) (PlanetRecord, error) {
	var p PlanetRecord
	if len(bytes.TrimSpace(data)) == 0 {
		return p, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return PlanetRecord{}, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return p, nil
		}
		root = root.Content[0]
	}
	switch {
	case root.Kind == 0, root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null":
		return p, nil
	case root.Kind != yaml.MappingNode:
		return PlanetRecord{}, fmt.Errorf("%w: document is not a mapping", ErrMalformedRecord)
	}
	if err := checkStringFields(root, "stellar_type"); err != nil {
		return PlanetRecord{}, err
	}

	if err := root.Decode(&p); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return PlanetRecord{}, fmt.Errorf("%w: %v", ErrInvalidField, typeErr.Errors)
		}
		return PlanetRecord{}, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	return p, nil
}

// checkStringFields rejects keys of m whose scalar value is not tagged as a
// string. yaml.v3 would otherwise read `stellar_type: 7` as "7".
func checkStringFields(m *yaml.Node, keys ...string) error {
	for i := 0; i+1 < len(m.Content); i += 2 {
		k, v := m.Content[i], m.Content[i+1]
		if v.Kind == yaml.AliasNode && v.Alias != nil {
			v = v.Alias
		}
		if v.Kind != yaml.ScalarNode {
			continue
		}
		for _, key := range keys {
			if k.Value != key {
				continue
			}
			if tag := v.ShortTag(); tag != "!!str" && tag != "!!null" {
				return fmt.Errorf("%w: %s: got %s %q, want string", ErrInvalidField, key, strings.TrimPrefix(tag, "!!"), v.Value)
			}
		}
	}
	return nil
}

func float64Ptr(v float64) *float64 { return &v }
