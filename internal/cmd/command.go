// Package cmd implements the reservectl commands.
package cmd

import (
	"github.com/spf13/cobra"
)

// cobraCommand is implemented by every reservectl command builder.
type cobraCommand interface {
	Build() *cobra.Command
}
