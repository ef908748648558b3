package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/witgo"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of witgo",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("witgo version %s\n", strings.TrimSpace(witgo.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
