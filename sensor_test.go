package aht20

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockI2CBus is a mock implementation of I2CBus using testify/mock.
type MockI2CBus struct {
	mock.Mock
}

func (m *MockI2CBus) WriteToAddr(ctx context.Context, address byte, buffer []byte) error {
	args := m.Called(ctx, address, buffer)
	return args.Error(0)
}

func (m *MockI2CBus) ReadFromAddr(ctx context.Context, address byte, buffer []byte) error {
	args := m.Called(ctx, address, buffer)
	if data, ok := args.Get(0).([]byte); ok && len(data) <= len(buffer) {
		copy(buffer, data)
	}
	return args.Error(1)
}

func (m *MockI2CBus) TransferToAddr(ctx context.Context, address byte, w, r []byte) error {
	args := m.Called(ctx, address, w, r)
	if data, ok := args.Get(0).([]byte); ok && len(data) <= len(r) {
		copy(r, data)
	}
	return args.Error(1)
}

func (m *MockI2CBus) Release(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func openMock(bus *MockI2CBus) BusOpener {
	return func(string) (I2CBus, error) {
		return bus, nil
	}
}

func anyBuffer(size int) interface{} {
	return mock.MatchedBy(func(b []byte) bool { return len(b) == size })
}

func TestStart_CommandSequence(t *testing.T) {
	bus := &MockI2CBus{}
	var sequence [][]byte
	record := func(args mock.Arguments) {
		sequence = append(sequence, args.Get(2).([]byte))
	}
	bus.On("WriteToAddr", mock.Anything, DefaultAddress, []byte{cmdSoftReset}).Run(record).Return(nil).Once()
	bus.On("WriteToAddr", mock.Anything, DefaultAddress, argsInitialize).Run(record).Return(nil).Once()

	s, err := Start(context.Background(), Config{}, openMock(bus))
	assert.NoError(t, err)
	assert.Equal(t, DefaultBus, s.Bus())
	assert.Equal(t, DefaultAddress, s.Address())
	// reset strictly before initialization
	assert.Equal(t, [][]byte{{cmdSoftReset}, argsInitialize}, sequence)
	bus.AssertExpectations(t)
}

func TestStart_ConfigOverrides(t *testing.T) {
	bus := &MockI2CBus{}
	bus.On("WriteToAddr", mock.Anything, byte(0x39), mock.Anything).Return(nil)

	var opened string
	s, err := Start(context.Background(), Config{Bus: "4", Address: 0x39}, func(name string) (I2CBus, error) {
		opened = name
		return bus, nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "4", opened)
	assert.Equal(t, "4", s.Bus())
	assert.Equal(t, byte(0x39), s.Address())
}

func TestStart_OpenFailure(t *testing.T) {
	bus := &MockI2CBus{}
	openErr := fmt.Errorf("no such bus")
	opened := 0
	_, err := Start(context.Background(), Config{}, func(string) (I2CBus, error) {
		opened++
		return bus, openErr
	})
	assert.ErrorIs(t, err, openErr)
	assert.Equal(t, 1, opened)
	// the failed open must short-circuit the whole sequence
	assert.Empty(t, bus.Calls)
}

func TestStart_ResetFailure(t *testing.T) {
	bus := &MockI2CBus{}
	writeErr := fmt.Errorf("nack")
	bus.On("WriteToAddr", mock.Anything, DefaultAddress, []byte{cmdSoftReset}).Return(writeErr).Once()

	_, err := Start(context.Background(), Config{}, openMock(bus))
	assert.ErrorIs(t, err, writeErr)
	// initialization is never attempted after a failed reset
	bus.AssertNumberOfCalls(t, "WriteToAddr", 1)
}

func TestReset_RecoveryDelay(t *testing.T) {
	bus := &MockI2CBus{}
	bus.On("WriteToAddr", mock.Anything, DefaultAddress, []byte{cmdSoftReset}).Return(nil).Once()
	s := &Sensor{transport: bus, bus: DefaultBus, addr: DefaultAddress}

	started := time.Now()
	err := s.Reset(context.Background())
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(started), softResetDelay)
	bus.AssertExpectations(t)
}

func TestReadData_ConversionDelay(t *testing.T) {
	bus := &MockI2CBus{}
	bus.On("WriteToAddr", mock.Anything, DefaultAddress, argsMeasure).Return(nil).Once()
	bus.On("ReadFromAddr", mock.Anything, DefaultAddress, anyBuffer(7)).Return(goldenRaw[:], nil).Once()
	s := &Sensor{transport: bus, bus: DefaultBus, addr: DefaultAddress}

	started := time.Now()
	raw, err := s.ReadData(context.Background())
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(started), measurementDelay)
	assert.Equal(t, goldenRaw, raw)
	bus.AssertExpectations(t)
}

func TestReadData_TriggerFailure(t *testing.T) {
	bus := &MockI2CBus{}
	writeErr := fmt.Errorf("bus stuck")
	bus.On("WriteToAddr", mock.Anything, DefaultAddress, argsMeasure).Return(writeErr).Once()
	s := &Sensor{transport: bus, bus: DefaultBus, addr: DefaultAddress}

	_, err := s.ReadData(context.Background())
	assert.ErrorIs(t, err, writeErr)
	// no read follows a failed trigger
	bus.AssertNotCalled(t, "ReadFromAddr", mock.Anything, DefaultAddress, anyBuffer(7))
}

func TestReadState(t *testing.T) {
	bus := &MockI2CBus{}
	bus.On("TransferToAddr", mock.Anything, DefaultAddress, []byte{cmdStatus}, anyBuffer(1)).
		Return([]byte{0x18}, nil).Once()
	s := &Sensor{transport: bus, bus: DefaultBus, addr: DefaultAddress}

	state, err := s.ReadState(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, byte(0x18), state)
	bus.AssertExpectations(t)
}

func TestMeasure_Golden(t *testing.T) {
	bus := &MockI2CBus{}
	bus.On("WriteToAddr", mock.Anything, DefaultAddress, argsMeasure).Return(nil).Once()
	bus.On("ReadFromAddr", mock.Anything, DefaultAddress, anyBuffer(7)).Return(goldenRaw[:], nil).Once()
	s := &Sensor{transport: bus, bus: DefaultBus, addr: DefaultAddress}

	m, err := s.Measure(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, goldenHumidity, m.HumidityRH)
	assert.Equal(t, goldenTemperature, m.TemperatureC)
	assert.InDelta(t, goldenDewPoint, m.DewPointC, 1e-9)
	assert.False(t, m.Timestamp.IsZero())
	bus.AssertExpectations(t)
}

func TestMeasure_ReadFailure(t *testing.T) {
	bus := &MockI2CBus{}
	readErr := fmt.Errorf("read failed")
	bus.On("WriteToAddr", mock.Anything, DefaultAddress, argsMeasure).Return(nil).Once()
	bus.On("ReadFromAddr", mock.Anything, DefaultAddress, anyBuffer(7)).Return(nil, readErr).Once()
	s := &Sensor{transport: bus, bus: DefaultBus, addr: DefaultAddress}

	_, err := s.Measure(context.Background())
	assert.ErrorIs(t, err, readErr)
}
