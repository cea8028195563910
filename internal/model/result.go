package model

import (
	"math"
	"time"

	"ejector-tool/internal/sizing"
)

// SizingRun holds one sizing calculation together with the streams it was
// computed from. It lives in memory for display and export only.
type SizingRun struct {
	ID            string // ULID, unique per run
	MeasurementID string // e.g. "20261016-141502-01"; empty = not set
	Timestamp     time.Time
	Mode          string // "CLI", "GUI" or "API"
	CaseName      string // case file name or user label; empty = unnamed
	LocalHostname string // os.Hostname() at calculation time
	Streams       []sizing.StreamRecord
	Result        sizing.Result
	Error         string
}

// Status returns "OK" or the error string.
func (r *SizingRun) Status() string {
	if r.Error != "" {
		return r.Error
	}
	return "OK"
}

// MotiveCount returns the number of motive streams entered.
func (r *SizingRun) MotiveCount() int {
	return r.countRole(sizing.Motive)
}

// SuctionCount returns the number of suction streams entered.
func (r *SizingRun) SuctionCount() int {
	return r.countRole(sizing.Suction)
}

func (r *SizingRun) countRole(role sizing.Role) int {
	n := 0
	for _, s := range r.Streams {
		if s.Role == role {
			n++
		}
	}
	return n
}

// HasGas reports whether any included stream is gas.
func (r *SizingRun) HasGas() bool {
	for _, s := range r.Streams {
		if s.Fluid == sizing.Gas && s.Flow > 0 {
			return true
		}
	}
	return false
}

// TotalMassFlowRate returns the total mass flow in lbm/s.
func (r *SizingRun) TotalMassFlowRate() float64 {
	return r.Result.TotalMassFlow / sizing.SecondsPerDay
}

// ThroatAreaSqIn returns the throat cross-section in square inches.
func (r *SizingRun) ThroatAreaSqIn() float64 {
	d := r.Result.ThroatDiameter
	return math.Pi * d * d / 4
}
