package elevenq

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// frameSink records every frame written to it.
type frameSink struct {
	frames  [][]byte
	fail    bool
	onWrite func(total int)
}

func (s *frameSink) Write(p []byte) (int, error) {
	if s.fail {
		return 0, errors.New("port gone")
	}
	s.frames = append(s.frames, append([]byte(nil), p...))
	if s.onWrite != nil {
		s.onWrite(len(s.frames))
	}
	return len(p), nil
}

func testScenario(sink io.Writer, startFloor int) *Scenario {
	s := NewScenario(sink, startFloor)
	s.SendInterval = time.Millisecond
	s.ShortWait = time.Millisecond
	s.DoorWait = time.Millisecond
	s.CycleWait = time.Millisecond
	return s
}

func dataNumber(frame []byte) string { return string(frame[6:10]) }
func dataValue(frame []byte) string  { return string(frame[10:14]) }

func TestCycleStageOrder(t *testing.T) {
	sink := &frameSink{}
	s := testScenario(sink, 1)

	s.runCycle(context.Background())

	require.Len(t, sink.frames, 4*burstLen)

	for i, frame := range sink.frames {
		switch {
		case i < 5:
			assert.Equal(t, DataCurrentFloor, dataNumber(frame), "frame %d", i)
			assert.Equal(t, "0001", dataValue(frame), "frame %d", i)
		case i < 10:
			assert.Equal(t, DataTargetFloor, dataNumber(frame), "frame %d", i)
			assert.Equal(t, FloorToHex(s.CurrentFloor), dataValue(frame), "frame %d", i)
		case i < 15:
			assert.Equal(t, DataPassengerLoad, dataNumber(frame), "frame %d", i)
			assert.Equal(t, LoadValue, dataValue(frame), "frame %d", i)
		default:
			assert.Equal(t, DataTargetFloor, dataNumber(frame), "frame %d", i)
			assert.Equal(t, "0000", dataValue(frame), "frame %d", i)
		}
	}

	assert.NotEqual(t, 1, s.CurrentFloor, "the car must have moved")
	assert.True(t, ValidFloor(s.CurrentFloor))
}

func TestPickTargetExcludesCurrent(t *testing.T) {
	for _, floor := range Floors {
		s := testScenario(io.Discard, floor)
		for i := 0; i < 50; i++ {
			assert.NotEqual(t, floor, s.pickTarget())
		}
	}
}

func TestCancelMidStageStopsSendsAndHoldsFloor(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	sink := &frameSink{}
	sink.onWrite = func(total int) {
		if total == 7 { // second frame of the target-floor burst
			cancel()
		}
	}

	s := testScenario(sink, 3)
	s.runCycle(ctx)

	assert.Len(t, sink.frames, 7)
	assert.Equal(t, 3, s.CurrentFloor, "a cancelled cycle must not move the car")
}

func TestSendErrorsAreNotFatal(t *testing.T) {
	sink := &frameSink{fail: true}
	s := testScenario(sink, 1)

	s.runCycle(context.Background())

	assert.Empty(t, sink.frames)
	assert.NotEqual(t, 1, s.CurrentFloor, "the cycle must still run to completion")
}

func TestRunReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := &frameSink{}
	require.NoError(t, testScenario(sink, 1).Run(ctx))
	assert.Empty(t, sink.frames)
}
