package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tarm/serial"

	"github.com/kmtx/elevenq"
)

var startFloor = 1

func simCommand() *cobra.Command {
	cmd := cobra.Command{
		Use:   "sim DEVICE",
		Short: "Drive a scripted elevator run against DEVICE",
		Args:  cobra.ExactArgs(1),
		RunE:  sim,
	}
	cmd.Flags().IntVar(&startFloor, "start-floor", startFloor, "Floor the car starts on (-1, 1, 2, 3)")

	return &cmd
}

func listenStop() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		cancel()
	}()

	return ctx
}

func sim(_ *cobra.Command, args []string) error {
	if !elevenq.ValidFloor(startFloor) {
		return fmt.Errorf("floor %d is not served (want -1, 1, 2 or 3)", startFloor)
	}

	ctx := listenStop()

	port, err := serial.OpenPort(&serial.Config{
		Name:        args[0],
		Baud:        9600,
		Size:        8,
		Parity:      serial.ParityEven,
		StopBits:    serial.Stop1,
		ReadTimeout: 500 * time.Millisecond,
	})
	if err != nil {
		return fmt.Errorf("opening serial port %s: %w", args[0], err)
	}
	defer port.Close()

	log.Printf("simulating on %s (9600 8E1), car at %s", args[0], elevenq.FloorLabel(startFloor))

	return elevenq.NewScenario(port, startFloor).Run(ctx)
}
