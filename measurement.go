package aht20

import (
	"math"
	"time"
)

// Magnus formula constants for dew point over water, in Celsius.
const (
	magnusA = 17.625
	magnusB = 243.04
)

// RawReading is the sensor response to a measurement trigger: a status byte,
// 20 bits of humidity, 20 bits of temperature and a trailing CRC slot.
// Bytes 0 and 6 are not consulted by decoding.
type RawReading [7]byte

// Measurement is a decoded sensor reading.
type Measurement struct {
	HumidityRH   float64
	TemperatureC float64
	DewPointC    float64
	Timestamp    time.Time
}

// Decode converts a raw reading into physical quantities. It is pure; the
// timestamp is attached by the caller at capture time.
func Decode(raw RawReading) Measurement {
	rawHum := uint32(raw[1])<<12 | uint32(raw[2])<<4 | uint32(raw[3])>>4
	rawTemp := (uint32(raw[3])&0x0F)<<16 | uint32(raw[4])<<8 | uint32(raw[5])

	var m Measurement
	m.HumidityRH = float64(rawHum) / (1 << 20) * 100.0
	m.TemperatureC = float64(rawTemp)/(1<<20)*200.0 - 50.0
	m.DewPointC = DewPoint(m.TemperatureC, m.HumidityRH)
	return m
}

// DewPoint returns the dew point in Celsius for the given temperature in
// Celsius and relative humidity in percent (Magnus approximation).
func DewPoint(temperatureC, humidityRH float64) float64 {
	gamma := math.Log(humidityRH/100.0) + magnusA*temperatureC/(magnusB+temperatureC)
	return magnusB * gamma / (magnusA - gamma)
}
