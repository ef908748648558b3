package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/witgo"
	"github.com/aretw0/witgo/pkg/domain"
)

var messageCmd = &cobra.Command{
	Use:   "message <utterance>",
	Short: "Interpret a single utterance",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, err := clientFromFlags(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		opts := []witgo.QueryOption{}
		if n, _ := cmd.Flags().GetInt("n"); n > 0 {
			opts = append(opts, witgo.WithN(n))
		}
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			opts = append(opts, witgo.WithVerbose())
		}
		if raw, _ := cmd.Flags().GetString("context"); raw != "" {
			var cv domain.Context
			if err := json.Unmarshal([]byte(raw), &cv); err != nil {
				fmt.Printf("Error: --context is not valid JSON: %v\n", err)
				os.Exit(1)
			}
			opts = append(opts, witgo.WithContext(cv))
		}

		resp, err := client.Message(cmd.Context(), args[0], opts...)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			fmt.Printf("Error marshaling response: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
	},
}

func init() {
	rootCmd.AddCommand(messageCmd)

	messageCmd.Flags().Int("n", 0, "Maximum number of intent candidates to return")
	messageCmd.Flags().Bool("verbose", false, "Ask the API for verbose output")
	messageCmd.Flags().String("context", "", "JSON conversation context (timezone, coords, ...)")
}
