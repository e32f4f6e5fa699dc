package cmd

import (
	"fmt"

	"prefixctl/internal/pkg/maskcodec"

	"github.com/spf13/cobra"
)

var maskCmd = &cobra.Command{
	Use:   "mask PREFIX",
	Short: "Print the dotted-decimal subnet mask for a prefix length",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix, err := maskcodec.ParsePrefix(args[0])
		if err != nil {
			return err
		}
		mask, err := maskcodec.PrefixToMask(prefix)
		if err != nil {
			return err
		}
		fmt.Println(mask)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(maskCmd)
}
