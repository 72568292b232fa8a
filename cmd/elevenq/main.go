// Command elevenq emulates and observes the write telegrams of an elevator
// control unit on a serial line.
package main

import (
	"log"

	"github.com/spf13/cobra"
)

func main() {
	cmd := &cobra.Command{
		Use:  "elevenq",
		Args: cobra.ExactArgs(0),
	}

	cmd.AddCommand(simCommand())
	cmd.AddCommand(monitorCommand())
	cmd.AddCommand(probeCommand())

	if err := cmd.Execute(); err != nil {
		log.Fatalln(err)
	}
}
