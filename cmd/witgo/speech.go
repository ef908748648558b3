package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var speechCmd = &cobra.Command{
	Use:   "speech <audio-file>",
	Short: "Interpret an audio recording",
	Long:  `Streams an audio file to the speech endpoint and prints the interpretation.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, err := clientFromFlags(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		f, err := os.Open(args[0])
		if err != nil {
			fmt.Printf("Error opening audio file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()

		contentType, _ := cmd.Flags().GetString("content-type")

		resp, err := client.Speech(cmd.Context(), f, contentType)
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
	rootCmd.AddCommand(speechCmd)

	speechCmd.Flags().String("content-type", "audio/wav", "MIME type of the audio payload")
}
