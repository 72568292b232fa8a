package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

func probeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "List serial ports and test them with the elevator line settings",
		Args:  cobra.ExactArgs(0),
		RunE:  probe,
	}
}

func probe(_ *cobra.Command, _ []string) error {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return fmt.Errorf("enumerating serial ports: %w", err)
	}
	if len(ports) == 0 {
		log.Println("no serial ports found")
		return nil
	}

	for _, p := range ports {
		name := p.Name
		if p.IsUSB {
			name = fmt.Sprintf("%s (USB %s:%s)", p.Name, p.VID, p.PID)
		}

		port, err := serial.Open(p.Name, protocolMode())
		if err != nil {
			log.Printf("%s: %v", name, err)
			continue
		}
		port.Close()
		log.Printf("%s: ok", name)
	}

	return nil
}
