package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/witgo"
	"github.com/aretw0/witgo/internal/cli"
	"github.com/aretw0/witgo/pkg/adapters/redis"
	"github.com/aretw0/witgo/pkg/ports"
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation",
	Long: `Reads utterances from stdin and prints the service's interpretation.
With --converse the conversation runs against the decision endpoint and
carries context between turns; --redis persists that context across runs.`,
	Run: func(cmd *cobra.Command, args []string) {
		client, err := clientFromFlags(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		sessionID, _ := cmd.Flags().GetString("session")
		converse, _ := cmd.Flags().GetBool("converse")
		redisAddr, _ := cmd.Flags().GetString("redis")
		debug, _ := cmd.Flags().GetBool("debug")

		var store ports.ContextStore
		if redisAddr != "" {
			store = redis.New(redisAddr, "", 0)
		}

		opts := cli.ChatOptions{
			SessionID: sessionID,
			Converse:  converse,
			Store:     store,
			Debug:     debug,
		}
		if err := cli.RunChat(cmd.Context(), client, witgo.Version, opts); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().String("session", "", "Session ID to use or resume")
	chatCmd.Flags().Bool("converse", false, "Drive the decision endpoint instead of one-shot interpretation")
	chatCmd.Flags().String("redis", "", "Redis address for session persistence (e.g. localhost:6379)")

	// Make 'chat' the default when no subcommand is given.
	rootCmd.Run = chatCmd.Run
}
