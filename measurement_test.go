package aht20

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

// goldenRaw is a reading captured from a real sensor at room conditions.
var goldenRaw = RawReading{28, 113, 191, 6, 86, 169, 149}

const (
	goldenHumidity    = 44.43206787109375
	goldenTemperature = 29.23145294189453
	goldenDewPoint    = 15.881025820111912
)

func TestDecode(t *testing.T) {
	tests := []struct {
		raw  RawReading
		hum  float64
		temp float64
	}{
		// status and CRC bytes must not influence the result
		{RawReading{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, 0.0, -50.0},
		{RawReading{0xFF, 0x00, 0x00, 0x00, 0x00, 0x00, 0xFF}, 0.0, -50.0},
		// 20-bit extremes
		{RawReading{0x18, 0xFF, 0xFF, 0xF0, 0x00, 0x00, 0x00}, 1048575.0 / 1048576.0 * 100.0, -50.0},
		{RawReading{0x18, 0x00, 0x00, 0x0F, 0xFF, 0xFF, 0x00}, 0.0, 1048575.0/1048576.0*200.0 - 50.0},
		{goldenRaw, goldenHumidity, goldenTemperature},
	}
	for _, test := range tests {
		t.Run(hex.EncodeToString(test.raw[:]), func(t *testing.T) {
			m := Decode(test.raw)
			assert.Equal(t, test.hum, m.HumidityRH)
			assert.Equal(t, test.temp, m.TemperatureC)
			assert.True(t, m.Timestamp.IsZero(), "decode must not stamp the reading")
		})
	}
}

func TestDecode_GoldenDewPoint(t *testing.T) {
	m := Decode(goldenRaw)
	assert.InDelta(t, goldenDewPoint, m.DewPointC, 1e-9)
}

func TestDecode_Deterministic(t *testing.T) {
	assert.Equal(t, Decode(goldenRaw), Decode(goldenRaw))
}

func TestDecode_Bounds(t *testing.T) {
	// sweep the extraction boundaries byte by byte; humidity stays within
	// [0,100] and temperature within [-50,150] for every 20-bit value
	for b := 0; b < 256; b++ {
		raw := RawReading{0, byte(b), byte(255 - b), byte(b), byte(b), byte(255 - b), 0}
		m := Decode(raw)
		assert.GreaterOrEqual(t, m.HumidityRH, 0.0)
		assert.LessOrEqual(t, m.HumidityRH, 100.0)
		assert.GreaterOrEqual(t, m.TemperatureC, -50.0)
		assert.LessOrEqual(t, m.TemperatureC, 150.0)
	}
}

func TestDewPoint(t *testing.T) {
	tests := []struct {
		name     string
		temp     float64
		hum      float64
		expected float64
	}{
		{"golden", goldenTemperature, goldenHumidity, goldenDewPoint},
		// at saturation the dew point equals the temperature
		{"saturated", 20.0, 100.0, 20.0},
		{"freezing", 0.0, 50.0, -9.196480905125012},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.InDelta(t, test.expected, DewPoint(test.temp, test.hum), 1e-9)
		})
	}
}
