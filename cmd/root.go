package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "prefixctl",
	Short: "prefixctl changes IPv4 prefix lengths with verified rollback",
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
