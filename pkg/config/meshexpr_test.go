package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLineSpec(t *testing.T) {
	tests := []struct {
		in   string
		want []float64
	}{
		{"1", []float64{1}},
		{"  ", nil},
		{"0:2", []float64{0, 1, 2}},
		{"0:0.5:1", []float64{0, 0.5, 1}},
		{"5:-2:0", []float64{5, 3, 1}},
		{"[1, 2; 3]", []float64{1, 2, 3}},
		{"1 -2", []float64{1, -2}},
		{"1e-3 .5", []float64{0.001, 0.5}},
		{"3:1", nil},
		{"-1:0.1:-0.8", []float64{-1, -0.9, -0.8}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLineSpec(tt.in)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.InDeltaSlice(t, tt.want, got, 1e-12)
		})
	}
}

func TestParseLineSpecErrors(t *testing.T) {
	for _, in := range []string{"1:2:3:4", "0:0:1", "[1 2", "1 2]", "a", "1:", "0:1e-9:1"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseLineSpec(in)
			assert.Error(t, err)
		})
	}
}

func TestLineSpecJSON(t *testing.T) {
	var v struct {
		A LineSpec `json:"a"`
		B LineSpec `json:"b"`
		C LineSpec `json:"c"`
		D LineSpec `json:"d"`
	}
	err := json.Unmarshal([]byte(`{"a": [0, "1:3", 10], "b": "2:4", "c": 5, "d": null}`), &v)
	require.NoError(t, err)
	assert.Equal(t, LineSpec{0, 1, 2, 3, 10}, v.A)
	assert.Equal(t, LineSpec{2, 3, 4}, v.B)
	assert.Equal(t, LineSpec{5}, v.C)
	assert.Empty(t, v.D)

	assert.Error(t, json.Unmarshal([]byte(`{"a": true}`), &v))
	assert.Error(t, json.Unmarshal([]byte(`{"a": [{"x": 1}]}`), &v))
}
