package casefile

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"ejector-tool/internal/sizing"
)

// Case is a named set of motive and suction streams saved as YAML.
type Case struct {
	Name    string   `yaml:"name"`
	Motive  []Stream `yaml:"motive"`
	Suction []Stream `yaml:"suction"`
}

// Stream is one stream entry in a case file.
type Stream struct {
	Fluid    string   `yaml:"fluid"`
	Flow     float64  `yaml:"flow"`
	Pressure float64  `yaml:"pressure,omitempty"`
	API      *float64 `yaml:"api,omitempty"`
}

// Default returns the example case: one gas motive stream and one water
// suction stream.
func Default() *Case {
	return &Case{
		Name: "example",
		Motive: []Stream{
			{Fluid: string(sizing.Gas), Flow: 10, Pressure: 1000},
		},
		Suction: []Stream{
			{Fluid: string(sizing.Water), Flow: 5000},
		},
	}
}

// LoadFromFile reads and validates a case file.
func LoadFromFile(path string) (*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read case file: %w", err)
	}

	var c Case
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse case file: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid case file: %w", err)
	}
	return &c, nil
}

// SaveToFile writes the case as YAML.
func (c *Case) SaveToFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal case: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write case file: %w", err)
	}
	return nil
}

// Validate checks that every stream names a known fluid and that the case
// has at least one stream.
func (c *Case) Validate() error {
	if len(c.Motive)+len(c.Suction) == 0 {
		return errors.New("case has no streams")
	}
	if err := validateStreams(sizing.Motive, c.Motive); err != nil {
		return err
	}
	return validateStreams(sizing.Suction, c.Suction)
}

var errNotFinite = errors.New("value is not a finite number")

func validateStreams(role sizing.Role, streams []Stream) error {
	for i, s := range streams {
		label := fmt.Sprintf("%s[%d]", role, i)
		if _, err := sizing.ParseFluidType(s.Fluid); err != nil {
			return fmt.Errorf("%s: %w", label, err)
		}
		fields := []struct {
			name string
			v    *float64
		}{{"flow", &s.Flow}, {"pressure", &s.Pressure}, {"api", s.API}}
		for _, f := range fields {
			if f.v != nil && (math.IsNaN(*f.v) || math.IsInf(*f.v, 0)) {
				return &sizing.ParseError{
					Stream: label,
					Field:  f.name,
					Value:  strconv.FormatFloat(*f.v, 'g', -1, 64),
					Err:    errNotFinite,
				}
			}
		}
	}
	return nil
}

// Records returns the motive streams followed by the suction streams.
func (c *Case) Records() ([]sizing.StreamRecord, error) {
	motive, err := toRecords(sizing.Motive, c.Motive)
	if err != nil {
		return nil, err
	}
	suction, err := toRecords(sizing.Suction, c.Suction)
	if err != nil {
		return nil, err
	}
	return sizing.Concat(motive, suction), nil
}

func toRecords(role sizing.Role, streams []Stream) ([]sizing.StreamRecord, error) {
	if err := validateStreams(role, streams); err != nil {
		return nil, err
	}
	out := make([]sizing.StreamRecord, 0, len(streams))
	for i, s := range streams {
		fluid, err := sizing.ParseFluidType(s.Fluid)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", role, i, err)
		}
		out = append(out, sizing.StreamRecord{
			Role:     role,
			Fluid:    fluid,
			Flow:     s.Flow,
			Pressure: s.Pressure,
			API:      s.API,
		})
	}
	return out, nil
}

// FromRecords builds a case from stream records, splitting them by role.
func FromRecords(name string, recs []sizing.StreamRecord) *Case {
	c := &Case{Name: name}
	for _, r := range recs {
		s := Stream{Fluid: string(r.Fluid), Flow: r.Flow, Pressure: r.Pressure, API: r.API}
		if r.Role == sizing.Motive {
			c.Motive = append(c.Motive, s)
		} else {
			c.Suction = append(c.Suction, s)
		}
	}
	return c
}
