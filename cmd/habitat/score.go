package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/okian/habitat/internal/domain/habitability"
	"github.com/okian/habitat/internal/domain/model"
	"github.com/okian/habitat/internal/evalclient"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --output.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func newScoreCmd() *cobra.Command {
	var (
		stellarType   string
		temperature   float64
		radius        float64
		mass          float64
		orbitalPeriod float64
		luminosity    float64
		filePath      string
		serverURL     string
		timeout       time.Duration
		outputFmt     string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a single planet record",
		Long: `Builds a planet record from a YAML or JSON file and/or flags and prints its
habitability score. Flags that are set override values from the file; anything
left unset takes the evaluator default.`,
		Example: `  habitat score --radius 3
  habitat score --file kepler-22b.yaml --stellar-type K
  habitat score --file - --url http://localhost:9080 --output json < planet.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			var override model.PlanetRecord
			if f.Changed("stellar-type") {
				override.StellarType = &stellarType
			}
			if f.Changed("temperature") {
				override.EquilibriumTemperature = &temperature
			}
			if f.Changed("radius") {
				override.Radius = &radius
			}
			if f.Changed("mass") {
				override.Mass = &mass
			}
			if f.Changed("orbital-period") {
				override.OrbitalPeriod = &orbitalPeriod
			}
			if f.Changed("luminosity") {
				override.StellarLuminosity = &luminosity
			}

			return runScore(cmd.Context(), scoreOpts{
				override:  override,
				filePath:  filePath,
				serverURL: serverURL,
				timeout:   timeout,
				outputFmt: outputFmt,
				stdin:     cmd.InOrStdin(),
				stdout:    cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().StringVar(&stellarType, "stellar-type", string(habitability.DefaultStellarType), `Host star type; "flare" forces a score of 0`)
	cmd.Flags().Float64Var(&temperature, "temperature", habitability.DefaultEquilibriumTemperature, "Equilibrium temperature in Kelvin")
	cmd.Flags().Float64Var(&radius, "radius", habitability.DefaultRadius, "Planet radius in Earth radii")
	cmd.Flags().Float64Var(&mass, "mass", habitability.DefaultMass, "Planet mass in Earth masses")
	cmd.Flags().Float64Var(&orbitalPeriod, "orbital-period", 0, "Orbital period in days (not scored)")
	cmd.Flags().Float64Var(&luminosity, "luminosity", habitability.DefaultStellarLuminosity, "Stellar luminosity in solar luminosities")
	cmd.Flags().StringVarP(&filePath, "file", "f", "", `YAML or JSON planet record ("-" reads stdin)`)
	cmd.Flags().StringVar(&serverURL, "url", "", "Evaluate on a habitatd server at this base URL instead of locally")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout when --url is set")
	cmd.Flags().StringVarP(&outputFmt, "output", "o", outputText, "Output format: text, json or yaml")

	return cmd
}

type scoreOpts struct {
	override  model.PlanetRecord
	filePath  string
	serverURL string
	timeout   time.Duration
	outputFmt string
	stdin     io.Reader
	stdout    io.Writer
}

// scoreResult is what the score command prints.
type scoreResult struct {
	Score         float64                `json:"score" yaml:"score"`
	FlareOverride bool                   `json:"flare_override" yaml:"flare_override"`
	Penalties     []habitability.Penalty `json:"penalties" yaml:"penalties"`
	Record        model.PlanetRecord     `json:"record" yaml:"record"`
}

func runScore(ctx context.Context, opts scoreOpts) error {
	switch opts.outputFmt {
	case outputText, outputJSON, outputYAML:
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", opts.outputFmt)
	}

	p, err := readRecord(opts.filePath, opts.stdin)
	if err != nil {
		return err
	}
	p = p.Merge(opts.override)

	var res scoreResult
	if opts.serverURL != "" {
		client := evalclient.New(opts.serverURL, evalclient.WithTimeout(opts.timeout))
		resp, err := client.Evaluate(ctx, p)
		if err != nil {
			return fmt.Errorf("remote evaluation: %w", err)
		}
		res = scoreResult(resp)
	} else {
		rec := p.Record()
		a := habitability.Assess(rec)
		res = scoreResult{
			Score:         a.Score,
			FlareOverride: a.FlareOverride,
			Penalties:     a.Penalties,
			Record:        model.FromRecord(rec),
		}
	}

	return render(opts.stdout, opts.outputFmt, res)
}

func readRecord(path string, stdin io.Reader) (model.PlanetRecord, error) {
	if path == "" {
		return model.PlanetRecord{}, nil
	}

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return model.PlanetRecord{}, fmt.Errorf("reading record: %w", err)
	}

	p, err := model.DecodeYAML(data)
	if err != nil {
		return model.PlanetRecord{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return p, nil
}

func render(w io.Writer, format string, res scoreResult) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	default:
		return renderText(w, res)
	}
}

func renderText(w io.Writer, res scoreResult) error {
	rec := res.Record.Record()
	var b []byte
	b = fmt.Appendf(b, "Habitability score: %g\n", res.Score)
	b = fmt.Appendf(b, "  stellar type:  %s\n", rec.StellarType)
	b = fmt.Appendf(b, "  temperature:   %g K\n", rec.EquilibriumTemperature)
	b = fmt.Appendf(b, "  radius:        %g R⊕\n", rec.Radius)
	b = fmt.Appendf(b, "  mass:          %g M⊕\n", rec.Mass)
	b = fmt.Appendf(b, "  luminosity:    %g L☉\n", rec.StellarLuminosity)

	if res.FlareOverride {
		b = append(b, "Flare star: score forced to 0\n"...)
	}
	if len(res.Penalties) > 0 {
		b = append(b, "Penalties:\n"...)
		for _, p := range res.Penalties {
			b = fmt.Appendf(b, "  -%-4g %s = %g\n", p.Points, p.Field, p.Value)
		}
	}

	_, err := w.Write(b)
	return err
}
