package sizing

import (
	"fmt"
	"strings"
)

// FluidType identifies the kind of fluid carried by a stream.
type FluidType string

const (
	Gas   FluidType = "Gas"
	Oil   FluidType = "Oil"
	Water FluidType = "Water"
)

// FluidTypes lists the supported fluid types in display order.
var FluidTypes = []FluidType{Gas, Oil, Water}

// ParseFluidType converts user text (case-insensitive) into a FluidType.
func ParseFluidType(s string) (FluidType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gas":
		return Gas, nil
	case "oil":
		return Oil, nil
	case "water":
		return Water, nil
	}
	return "", fmt.Errorf("unknown fluid type %q (want Gas, Oil or Water)", s)
}

// FlowUnit returns the unit the flow field is entered in for this fluid.
func (f FluidType) FlowUnit() string {
	if f == Gas {
		return "MMSCFD"
	}
	return "BPD"
}

// Role tags a stream as motive or suction. It does not affect the calculation.
type Role string

const (
	Motive  Role = "motive"
	Suction Role = "suction"
)

// ParseRole converts user text (case-insensitive) into a Role.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "motive":
		return Motive, nil
	case "suction":
		return Suction, nil
	}
	return "", fmt.Errorf("unknown stream role %q (want motive or suction)", s)
}

// StreamRecord is one measured or user-entered input stream.
type StreamRecord struct {
	Role     Role      `json:"role"`
	Fluid    FluidType `json:"fluid"`
	Flow     float64   `json:"flow"`          // MMSCFD for gas, BPD for liquids
	Pressure float64   `json:"pressure"`      // psia, used only for gas density
	API      *float64  `json:"api,omitempty"` // oil only; nil = not supplied
}

// Concat returns the motive records followed by the suction records.
func Concat(motive, suction []StreamRecord) []StreamRecord {
	out := make([]StreamRecord, 0, len(motive)+len(suction))
	out = append(out, motive...)
	return append(out, suction...)
}

// Float returns a pointer to v, handy for setting StreamRecord.API.
func Float(v float64) *float64 {
	return &v
}
