package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	command := &cobra.Command{
		Use:   "version",
		Short: "Print the version of the application",
		Long:  "Print the version of the application",
		Run:   VersionCommand,
	}
	AddCommand(command)
}

func VersionCommand(cmd *cobra.Command, _ []string) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ComicShelf %s\n", rootCmd.Version)
}
