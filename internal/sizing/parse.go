package sizing

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RawStream holds the text of one stream exactly as the user entered it.
type RawStream struct {
	Label    string
	Role     string
	Fluid    string
	Flow     string
	Pressure string
	API      string
}

// ParseError reports a stream field that is not a valid number.
type ParseError struct {
	Stream string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Stream == "" {
		return fmt.Sprintf("%s: invalid value %q", e.Field, e.Value)
	}
	return fmt.Sprintf("%s: %s: invalid value %q", e.Stream, e.Field, e.Value)
}

func (e *ParseError) Unwrap() error { return e.Err }

var errNotFinite = errors.New("value is not a finite number")

func parseNumber(stream, field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &ParseError{Stream: stream, Field: field, Value: s, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &ParseError{Stream: stream, Field: field, Value: s, Err: errNotFinite}
	}
	return v, nil
}

// ParseStream converts a RawStream into a StreamRecord. Flow and pressure are
// required numbers; a blank API means "not supplied".
func ParseStream(raw RawStream) (StreamRecord, error) {
	role, err := ParseRole(raw.Role)
	if err != nil {
		return StreamRecord{}, &ParseError{Stream: raw.Label, Field: "role", Value: raw.Role, Err: err}
	}
	fluid, err := ParseFluidType(raw.Fluid)
	if err != nil {
		return StreamRecord{}, &ParseError{Stream: raw.Label, Field: "fluid", Value: raw.Fluid, Err: err}
	}

	flow, err := parseNumber(raw.Label, "flow", raw.Flow)
	if err != nil {
		return StreamRecord{}, err
	}
	pressure, err := parseNumber(raw.Label, "pressure", raw.Pressure)
	if err != nil {
		return StreamRecord{}, err
	}

	rec := StreamRecord{Role: role, Fluid: fluid, Flow: flow, Pressure: pressure}
	if strings.TrimSpace(raw.API) != "" {
		api, err := parseNumber(raw.Label, "api", raw.API)
		if err != nil {
			return StreamRecord{}, err
		}
		rec.API = &api
	}
	return rec, nil
}

// ParseStreams parses every raw stream in order and stops at the first
// invalid one; no partial batch is returned.
func ParseStreams(raws []RawStream) ([]StreamRecord, error) {
	out := make([]StreamRecord, 0, len(raws))
	for _, raw := range raws {
		rec, err := ParseStream(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// ParseStreamSpec parses the compact command-line form
// "fluid:flow[:pressure[:api]]", e.g. "gas:10:1000" or "oil:2000:0:35".
// A missing pressure defaults to 0.
func ParseStreamSpec(role Role, label, spec string) (StreamRecord, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < 2 || len(parts) > 4 {
		return StreamRecord{}, &ParseError{
			Stream: label,
			Field:  "stream",
			Value:  spec,
			Err:    errors.New("want fluid:flow[:pressure[:api]]"),
		}
	}
	raw := RawStream{
		Label:    label,
		Role:     string(role),
		Fluid:    parts[0],
		Flow:     parts[1],
		Pressure: "0",
	}
	if len(parts) > 2 && parts[2] != "" {
		raw.Pressure = parts[2]
	}
	if len(parts) > 3 {
		raw.API = parts[3]
	}
	return ParseStream(raw)
}
