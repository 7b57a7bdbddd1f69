package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the claude-notify version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("claude-notify %s\n", Version)
		},
	}
}
