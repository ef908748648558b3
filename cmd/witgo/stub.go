package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/witgo/internal/logging"
	"github.com/aretw0/witgo/internal/stubserver"
)

var stubCmd = &cobra.Command{
	Use:   "stub",
	Short: "Run a local API double",
	Long: `Serves a scripted double of the remote NLU API over HTTP.
Point a client at it with --base-url (or WIT_URL) for offline development.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		token, _ := cmd.Flags().GetString("token")
		if token == "" {
			token = "stub-token"
		}

		stub := stubserver.NewServer(token,
			stubserver.WithLogger(logging.New(slog.LevelInfo)),
		)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: stub.Handler(),
		}

		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Stub API listening on %s (token %q)\n", srv.Addr, token)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nShutting down... Signal: %v\n", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Stub API stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(stubCmd)

	stubCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	stubCmd.Flags().String("token", "", "Bearer token the stub requires (default stub-token)")
}
