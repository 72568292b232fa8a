package main

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"go.bug.st/serial"
	"golang.org/x/sync/errgroup"

	"github.com/kmtx/elevenq"
)

var readTimeout = 500 * time.Millisecond

func monitorCommand() *cobra.Command {
	cmd := cobra.Command{
		Use:   "monitor DEVICE",
		Short: "Dump raw traffic seen on DEVICE",
		Args:  cobra.ExactArgs(1),
		RunE:  monitor,
	}
	cmd.Flags().DurationVar(&readTimeout, "read-timeout", readTimeout, "Per-read timeout")

	return &cmd
}

// protocolMode is the line discipline the control unit speaks.
func protocolMode() *serial.Mode {
	return &serial.Mode{
		BaudRate: 9600,
		DataBits: 8,
		Parity:   serial.EvenParity,
		StopBits: serial.OneStopBit,
	}
}

func monitor(_ *cobra.Command, args []string) error {
	ctx := listenStop()

	port, err := serial.Open(args[0], protocolMode())
	if err != nil {
		return fmt.Errorf("opening serial port %s: %w", args[0], err)
	}
	if err := port.SetReadTimeout(readTimeout); err != nil {
		port.Close()
		return fmt.Errorf("setting read timeout: %w", err)
	}

	log.Printf("monitoring %s (9600 8E1, read timeout %s)", args[0], readTimeout)

	var g errgroup.Group
	g.Go(func() error { return elevenq.NewMonitor(port).Run(ctx) })
	g.Go(func() error {
		// Closing the port unblocks a read in flight.
		<-ctx.Done()
		return port.Close()
	})

	return g.Wait()
}
