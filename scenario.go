package elevenq

import (
	"context"
	"io"
	"log"
	"math/rand"
	"time"
)

// burstLen is how many times each telegram is repeated per stage. The line
// is lossy and unacknowledged; repetition stands in for retransmission.
const burstLen = 5

// stage describes one phase of a scenario cycle: a burst of identical
// telegrams sent at a fixed cadence, followed by a wait.
type stage struct {
	desc       string
	dataNumber string
	dataValue  string
	wait       time.Duration
}

// Scenario drives the elevator lifecycle simulation: announce the current
// floor, announce a random target, report the passenger load, report
// arrival, repeat until cancelled.
type Scenario struct {
	Sink io.Writer

	// CurrentFloor persists across cycles. It moves exactly once per
	// cycle, after the arrival burst completes.
	CurrentFloor int

	SendInterval time.Duration // gap between telegrams within a burst
	ShortWait    time.Duration // pause after each floor announcement
	DoorWait     time.Duration // door open / ride time
	CycleWait    time.Duration // pause before the next cycle

	rng *rand.Rand
}

// NewScenario returns a scenario with the control unit's standard pacing.
func NewScenario(sink io.Writer, startFloor int) *Scenario {
	return &Scenario{
		Sink:         sink,
		CurrentFloor: startFloor,
		SendInterval: time.Second,
		ShortWait:    3 * time.Second,
		DoorWait:     10 * time.Second,
		CycleWait:    10 * time.Second,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run executes cycles until ctx is cancelled.
func (s *Scenario) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		s.runCycle(ctx)
	}
	return nil
}

func (s *Scenario) runCycle(ctx context.Context) {
	target := s.pickTarget()
	log.Printf("new run: %s -> %s", FloorLabel(s.CurrentFloor), FloorLabel(target))

	stages := []stage{
		{"current floor " + FloorLabel(s.CurrentFloor), DataCurrentFloor, FloorToHex(s.CurrentFloor), s.ShortWait},
		{"target floor " + FloorLabel(target), DataTargetFloor, FloorToHex(target), s.ShortWait},
		{"passenger load 1870kg", DataPassengerLoad, LoadValue, s.DoorWait},
		{"arrival, target cleared", DataTargetFloor, "0000", 0},
	}

	for _, st := range stages {
		if !s.runStage(ctx, st) {
			return
		}
	}

	// Only a fully completed arrival burst moves the car.
	s.CurrentFloor = target
	log.Printf("arrived at %s", FloorLabel(s.CurrentFloor))

	wait(ctx, s.CycleWait)
}

// runStage sends the stage's burst and waits out its trailing delay.
// Reports whether the stage ran to completion.
func (s *Scenario) runStage(ctx context.Context, st stage) bool {
	for i := 0; i < burstLen; i++ {
		if ctx.Err() != nil {
			return false
		}
		s.send(st, i)
		if !wait(ctx, s.SendInterval) {
			return false
		}
	}
	if st.wait > 0 {
		log.Printf("waiting %s", st.wait)
	}
	return wait(ctx, st.wait)
}

// send pushes one telegram to the sink. Write failures are logged and
// dropped; the burst's repetition covers the loss.
func (s *Scenario) send(st stage, i int) {
	frame := WriteTelegram(st.dataNumber, st.dataValue).Encode()
	if _, err := s.Sink.Write(frame); err != nil {
		log.Printf("send %s: %v", st.desc, err)
		return
	}
	log.Printf("> %s (%d/%d) % 02X", st.desc, i+1, burstLen, frame)
}

// pickTarget draws a random served floor different from the current one.
func (s *Scenario) pickTarget() int {
	for {
		f := Floors[s.rng.Intn(len(Floors))]
		if f != s.CurrentFloor {
			return f
		}
	}
}

// wait sleeps for d or until ctx is cancelled. Reports whether the full
// duration elapsed.
func wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
