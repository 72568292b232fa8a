package elevenq

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// Monitor dumps raw traffic from a port opened with a read timeout: Read
// returns n == 0 with a nil error when the timeout fires before any byte
// arrives. It decodes nothing; it only renders what it sees.
type Monitor struct {
	Port io.Reader
	Out  io.Writer

	IdleWindow time.Duration // silence threshold for the heartbeat line
	RetryDelay time.Duration // backoff after a failed read

	now func() time.Time
}

// NewMonitor returns a monitor with the standard idle window.
func NewMonitor(port io.Reader) *Monitor {
	return &Monitor{
		Port:       port,
		Out:        os.Stdout,
		IdleWindow: 10 * time.Second,
		RetryDelay: 200 * time.Millisecond,
		now:        time.Now,
	}
}

// Run reads until ctx is cancelled. Read errors are retried after a short
// backoff; releasing the port is the caller's job.
func (m *Monitor) Run(ctx context.Context) error {
	buf := make([]byte, 256)
	lastActivity := m.now()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		n, err := m.Port.Read(buf)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Printf("read: %v", err)
			wait(ctx, m.RetryDelay)
			continue
		}

		if n == 0 {
			// Timeout tick, not an error. One heartbeat per idle
			// window, not one per tick.
			if m.now().Sub(lastActivity) > m.IdleWindow {
				fmt.Fprintf(m.Out, "[%s] waiting, no data\n", m.now().Format("15:04:05"))
				lastActivity = m.now()
			}
			continue
		}

		m.dump(buf[:n])
		lastActivity = m.now()
	}
}

func (m *Monitor) dump(bs []byte) {
	fmt.Fprintf(m.Out, "[%s] %d bytes\n  HEX  : % 02X\n  ASCII: %s\n",
		m.now().Format("15:04:05"), len(bs), bs, asciiView(bs))
}

// asciiView renders printable bytes literally and everything else as '.'.
func asciiView(bs []byte) string {
	out := make([]byte, len(bs))
	for i, b := range bs {
		if b >= 0x20 && b <= 0x7E {
			out[i] = b
		} else {
			out[i] = '.'
		}
	}
	return string(out)
}
