package aht20

import (
	"context"
)

// MeasurementBehaviorFunc defines the function signature for measurement
// behavior. It returns a full decoded measurement or an error.
type MeasurementBehaviorFunc func(ctx context.Context) (Measurement, error)

// MockHygrometer is a mock implementation of Hygrometer that uses a behavior
// function to produce results without requiring any hardware.
type MockHygrometer struct {
	behavior MeasurementBehaviorFunc
}

// NewMockHygrometer creates a new mock hygrometer with the given behavior
// function. The behavior function is called whenever Measure is invoked.
//
// Example usage:
//
//	// Simple static values
//	sensor := NewMockHygrometer(func(ctx context.Context) (aht20.Measurement, error) {
//		return aht20.Measurement{HumidityRH: 45.0, TemperatureC: 22.5, Timestamp: time.Now()}, nil
//	})
func NewMockHygrometer(behavior MeasurementBehaviorFunc) *MockHygrometer {
	return &MockHygrometer{behavior: behavior}
}

// Measure returns a measurement by calling the behavior function.
func (m *MockHygrometer) Measure(ctx context.Context) (Measurement, error) {
	return m.behavior(ctx)
}
