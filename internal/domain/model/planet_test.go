package model_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/okian/habitat/internal/domain/habitability"
	"github.com/okian/habitat/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDecodeJSON(t *testing.T) {
	Convey("Given JSON planet records", t, func() {
		Convey("When the object is empty", func() {
			p, err := model.DecodeJSON(strings.NewReader(`{}`))

			Convey("Then every field should take its default", func() {
				So(err, ShouldBeNil)
				So(p.Record(), ShouldResemble, habitability.DefaultRecord())
			})
		})

		Convey("When all fields are present", func() {
			p, err := model.DecodeJSON(strings.NewReader(`{
				"stellar_type": "M",
				"equilibrium_temperature": 254.5,
				"radius": 1.1,
				"mass": 0.9,
				"orbital_period": 11.2,
				"stellar_luminosity": 0.0017
			}`))

			Convey("Then they should be carried into the record", func() {
				So(err, ShouldBeNil)
				r := p.Record()
				So(r.StellarType, ShouldEqual, habitability.StellarTypeM)
				So(r.EquilibriumTemperature, ShouldEqual, 254.5)
				So(r.Radius, ShouldEqual, 1.1)
				So(r.Mass, ShouldEqual, 0.9)
				So(r.OrbitalPeriod, ShouldEqual, 11.2)
				So(r.StellarLuminosity, ShouldEqual, 0.0017)
			})
		})

		Convey("When a field is null", func() {
			p, err := model.DecodeJSON(strings.NewReader(`{"radius": null, "mass": 3}`))

			Convey("Then it should be treated as absent", func() {
				So(err, ShouldBeNil)
				So(p.Radius, ShouldBeNil)
				So(p.Record().Radius, ShouldEqual, habitability.DefaultRadius)
				So(p.Record().Mass, ShouldEqual, 3.0)
			})
		})

		Convey("When unknown fields are present", func() {
			p, err := model.DecodeJSON(strings.NewReader(`{"name": "Kepler-442b", "radius": 1.34}`))

			Convey("Then they should be ignored", func() {
				So(err, ShouldBeNil)
				So(p.Record().Radius, ShouldEqual, 1.34)
			})
		})

		Convey("When a numeric field holds a string", func() {
			_, err := model.DecodeJSON(strings.NewReader(`{"equilibrium_temperature": "hot"}`))

			Convey("Then it should be rejected as an invalid field", func() {
				So(errors.Is(err, model.ErrInvalidField), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "equilibrium_temperature")
			})
		})

		Convey("When the stellar type is not a string", func() {
			_, err := model.DecodeJSON(strings.NewReader(`{"stellar_type": 7}`))

			Convey("Then it should be rejected as an invalid field", func() {
				So(errors.Is(err, model.ErrInvalidField), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "stellar_type")
			})
		})

		Convey("When a second value follows the record", func() {
			_, err := model.DecodeJSON(strings.NewReader(`{"radius": 1} {"radius": 9} garbage`))

			Convey("Then it should be reported as malformed", func() {
				So(errors.Is(err, model.ErrMalformedRecord), ShouldBeTrue)
			})
		})

		Convey("When only whitespace follows the record", func() {
			p, err := model.DecodeJSON(strings.NewReader("{\"radius\": 1.5}\n\t "))

			Convey("Then it should decode normally", func() {
				So(err, ShouldBeNil)
				So(p.Record().Radius, ShouldEqual, 1.5)
			})
		})

		Convey("When the top level is not an object", func() {
			for _, body := range []string{`[1, 2]`, `"G"`, `42`} {
				_, err := model.DecodeJSON(strings.NewReader(body))

				So(errors.Is(err, model.ErrMalformedRecord), ShouldBeTrue)
				So(errors.Is(err, model.ErrInvalidField), ShouldBeFalse)
			}
		})

		Convey("When the document is not JSON", func() {
			_, err := model.DecodeJSON(strings.NewReader(`{"radius": `))

			Convey("Then it should be reported as malformed", func() {
				So(errors.Is(err, model.ErrMalformedRecord), ShouldBeTrue)
				So(errors.Is(err, model.ErrInvalidField), ShouldBeFalse)
			})
		})
	})
}

func TestDecodeYAML(t *testing.T) {
	Convey("Given YAML planet records", t, func() {
		Convey("When the document sets some fields", func() {
			p, err := model.DecodeYAML([]byte("# TRAPPIST-1e\nstellar_type: M\nequilibrium_temperature: 251\nradius: 0.92\n"))

			Convey("Then set fields are read and the rest default", func() {
				So(err, ShouldBeNil)
				r := p.Record()
				So(r.StellarType, ShouldEqual, habitability.StellarTypeM)
				So(r.EquilibriumTemperature, ShouldEqual, 251.0)
				So(r.Radius, ShouldEqual, 0.92)
				So(r.Mass, ShouldEqual, habitability.DefaultMass)
			})
		})

		Convey("When the document is JSON", func() {
			p, err := model.DecodeYAML([]byte(`{"stellar_type": "flare", "mass": 2}`))

			Convey("Then it should decode the same way", func() {
				So(err, ShouldBeNil)
				So(p.Record().StellarType.IsFlare(), ShouldBeTrue)
				So(p.Record().Mass, ShouldEqual, 2.0)
			})
		})

		Convey("When the document is empty", func() {
			p, err := model.DecodeYAML([]byte("  \n"))

			Convey("Then it should yield the default record", func() {
				So(err, ShouldBeNil)
				So(p.Record(), ShouldResemble, habitability.DefaultRecord())
			})
		})

		Convey("When a numeric field holds text", func() {
			_, err := model.DecodeYAML([]byte("radius: large\n"))

			Convey("Then it should be rejected as an invalid field", func() {
				So(errors.Is(err, model.ErrInvalidField), ShouldBeTrue)
			})
		})

		Convey("When the stellar type is not a string", func() {
			for _, doc := range []string{"stellar_type: 7\n", "stellar_type: true\n", "stellar_type: 1.5\n"} {
				_, err := model.DecodeYAML([]byte(doc))

				So(errors.Is(err, model.ErrInvalidField), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "stellar_type")
			}
		})

		Convey("When the stellar type is a quoted number", func() {
			p, err := model.DecodeYAML([]byte("stellar_type: \"7\"\n"))

			Convey("Then it should be kept as a string", func() {
				So(err, ShouldBeNil)
				So(*p.StellarType, ShouldEqual, "7")
			})
		})

		Convey("When the stellar type is null", func() {
			p, err := model.DecodeYAML([]byte("stellar_type: ~\nmass: 2\n"))

			Convey("Then it should be treated as absent", func() {
				So(err, ShouldBeNil)
				So(p.StellarType, ShouldBeNil)
				So(p.Record().StellarType, ShouldEqual, habitability.DefaultStellarType)
			})
		})

		Convey("When the document is a list", func() {
			_, err := model.DecodeYAML([]byte("- radius: 1\n"))

			Convey("Then it should be reported as malformed", func() {
				So(errors.Is(err, model.ErrMalformedRecord), ShouldBeTrue)
			})
		})

		Convey("When the document is not valid YAML", func() {
			_, err := model.DecodeYAML([]byte("radius: [1, 2\n"))

			Convey("Then it should be reported as malformed", func() {
				So(errors.Is(err, model.ErrMalformedRecord), ShouldBeTrue)
			})
		})
	})
}

func TestPlanetRecordRoundTrip(t *testing.T) {
	Convey("Given a record built by the evaluator package", t, func() {
		r := habitability.NewRecord(
			habitability.WithStellarType(habitability.StellarTypeK),
			habitability.WithRadius(1.6),
			habitability.WithOrbitalPeriod(384.8),
		)

		Convey("When converted to the wire shape and back", func() {
			p := model.FromRecord(r)

			Convey("Then it should be unchanged", func() {
				So(p.Record(), ShouldResemble, r)
			})
		})

		Convey("When merged with an override", func() {
			mass := 12.0
			p := model.FromRecord(r).Merge(model.PlanetRecord{Mass: &mass})

			Convey("Then only the override fields should change", func() {
				So(p.Record().Mass, ShouldEqual, 12.0)
				So(p.Record().Radius, ShouldEqual, 1.6)
				So(p.Record().StellarType, ShouldEqual, habitability.StellarTypeK)
			})
		})
	})
}
