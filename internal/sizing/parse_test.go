package sizing

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStream(t *testing.T) {
	rec, err := ParseStream(RawStream{Label: "Motive Stream 1", Role: "motive", Fluid: "Gas", Flow: "10", Pressure: " 1000 "})
	require.NoError(t, err)
	assert.Equal(t, Motive, rec.Role)
	assert.Equal(t, Gas, rec.Fluid)
	assert.Equal(t, 10.0, rec.Flow)
	assert.Equal(t, 1000.0, rec.Pressure)
	assert.Nil(t, rec.API)

	rec, err = ParseStream(RawStream{Role: "Suction", Fluid: "oil", Flow: "2500", Pressure: "0", API: "35"})
	require.NoError(t, err)
	require.NotNil(t, rec.API)
	assert.Equal(t, 35.0, *rec.API)
}

func TestParseStream_Errors(t *testing.T) {
	tests := []struct {
		name  string
		raw   RawStream
		field string
	}{
		{"flow text", RawStream{Role: "motive", Fluid: "Gas", Flow: "ten", Pressure: "1"}, "flow"},
		{"flow blank", RawStream{Role: "motive", Fluid: "Gas", Flow: "", Pressure: "1"}, "flow"},
		{"pressure text", RawStream{Role: "motive", Fluid: "Water", Flow: "1", Pressure: "high"}, "pressure"},
		{"api text", RawStream{Role: "suction", Fluid: "Oil", Flow: "1", Pressure: "0", API: "light"}, "api"},
		{"flow nan", RawStream{Role: "suction", Fluid: "Oil", Flow: "NaN", Pressure: "0"}, "flow"},
		{"pressure inf", RawStream{Role: "suction", Fluid: "Gas", Flow: "1", Pressure: "+Inf"}, "pressure"},
		{"fluid", RawStream{Role: "suction", Fluid: "steam", Flow: "1", Pressure: "0"}, "fluid"},
		{"role", RawStream{Role: "driver", Fluid: "Gas", Flow: "1", Pressure: "0"}, "role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStream(tt.raw)
			var pe *ParseError
			require.True(t, errors.As(err, &pe), "want *ParseError, got %v", err)
			assert.Equal(t, tt.field, pe.Field)
		})
	}
}

func TestParseError_Unwrap(t *testing.T) {
	_, err := ParseStream(RawStream{Label: "Suction Stream 2", Role: "suction", Fluid: "Water", Flow: "abc", Pressure: "0"})
	assert.ErrorIs(t, err, strconv.ErrSyntax)
	assert.Contains(t, err.Error(), "Suction Stream 2")
	assert.Contains(t, err.Error(), `"abc"`)
}

func TestParseStreams_FailFast(t *testing.T) {
	raws := []RawStream{
		{Label: "Motive Stream 1", Role: "motive", Fluid: "Gas", Flow: "10", Pressure: "1000"},
		{Label: "Suction Stream 1", Role: "suction", Fluid: "Water", Flow: "0", Pressure: "x"},
		{Label: "Suction Stream 2", Role: "suction", Fluid: "Water", Flow: "bad", Pressure: "0"},
	}
	recs, err := ParseStreams(raws)
	assert.Nil(t, recs)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	// A skipped (zero-flow) stream still aborts the batch when a field is bad.
	assert.Equal(t, "Suction Stream 1", pe.Stream)
	assert.Equal(t, "pressure", pe.Field)
}

func TestParseStreamSpec(t *testing.T) {
	rec, err := ParseStreamSpec(Motive, "m1", "gas:10:1000")
	require.NoError(t, err)
	assert.Equal(t, StreamRecord{Role: Motive, Fluid: Gas, Flow: 10, Pressure: 1000}, rec)

	rec, err = ParseStreamSpec(Suction, "s1", "water:5000")
	require.NoError(t, err)
	assert.Equal(t, 0.0, rec.Pressure)

	rec, err = ParseStreamSpec(Suction, "s2", "Oil:2000::35")
	require.NoError(t, err)
	require.NotNil(t, rec.API)
	assert.Equal(t, 35.0, *rec.API)

	for _, bad := range []string{"gas", "gas:1:2:3:4", "gas:x:1"} {
		_, err := ParseStreamSpec(Motive, "m", bad)
		assert.Error(t, err, bad)
	}
}

func TestParseFluidTypeAndRole(t *testing.T) {
	f, err := ParseFluidType(" WATER ")
	require.NoError(t, err)
	assert.Equal(t, Water, f)

	_, err = ParseFluidType("")
	assert.Error(t, err)

	r, err := ParseRole("Suction")
	require.NoError(t, err)
	assert.Equal(t, Suction, r)
}
