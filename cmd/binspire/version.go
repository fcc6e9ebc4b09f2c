package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xraph/binspire/server"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the binspire version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", server.ImplementationName, server.ImplementationVersion)
			return err
		},
	}
}
