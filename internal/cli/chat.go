package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/aretw0/witgo"
	"github.com/aretw0/witgo/pkg/domain"
	"github.com/aretw0/witgo/pkg/ports"
)

// ChatOptions controls the interactive loop.
type ChatOptions struct {
	// SessionID names the conversation. Empty means a fresh session.
	SessionID string
	// Converse routes each utterance through the decision endpoint and
	// carries conversation context between turns. The default routes
	// through /message, which is stateless.
	Converse bool
	// Store persists conversation context between runs. Only used in
	// converse mode; nil keeps context in memory for the process.
	Store ports.ContextStore
	Debug bool
}

// RunChat reads utterances from stdin and prints the service's
// interpretation until EOF or an exit command.
func RunChat(ctx context.Context, client *witgo.Client, version string, opts ChatOptions) error {
	logger := createLogger(opts.Debug)
	render := NewRenderer()

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if term.IsTerminal(int(os.Stdout.Fd())) {
		PrintBanner(version)
	}

	sessionID := opts.SessionID
	if opts.Converse && sessionID == "" {
		sessionID = witgo.NewSessionID()
		printSystemMessage("Session '%s' active.", sessionID)
	}

	cv := domain.NewContext()
	if opts.Converse && opts.Store != nil && opts.SessionID != "" {
		loaded, err := opts.Store.Load(ctx, sessionID)
		switch {
		case err == nil:
			cv = loaded
			printSystemMessage("Resuming session '%s'.", sessionID)
		case errors.Is(err, domain.ErrSessionNotFound):
			// First run for this ID.
		default:
			logger.Warn("failed to load session context", "session_id", sessionID, "err", err)
		}
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		if ctx.Err() != nil {
			fmt.Println()
			return nil
		}

		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Println()
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}

		utterance := strings.TrimSpace(line)
		if utterance == "" {
			continue
		}
		if utterance == "exit" || utterance == "quit" {
			printSystemMessage("Bye!")
			return nil
		}

		var output string
		if opts.Converse {
			output, cv, err = converseTurn(ctx, client, sessionID, utterance, cv)
		} else {
			output, err = messageTurn(ctx, client, utterance)
		}
		if err != nil {
			// A failed turn is not fatal; report and keep the prompt.
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		rendered, rerr := render(output)
		if rerr != nil {
			rendered = output
		}
		fmt.Print(rendered)

		if opts.Converse && opts.Store != nil {
			if serr := opts.Store.Save(ctx, sessionID, cv); serr != nil {
				logger.Warn("failed to persist session context", "session_id", sessionID, "err", serr)
			}
		}
	}
}

func messageTurn(ctx context.Context, client *witgo.Client, utterance string) (string, error) {
	resp, err := client.Message(ctx, utterance)
	if err != nil {
		return "", err
	}
	return FormatMessage(resp), nil
}

func converseTurn(ctx context.Context, client *witgo.Client, sessionID, utterance string, cv domain.Context) (string, domain.Context, error) {
	resp, err := client.Converse(ctx, sessionID, utterance, cv)
	if err != nil {
		return "", cv, err
	}

	switch resp.Type {
	case domain.ConverseTypeMessage:
		return resp.Msg + "\n", cv, nil
	case domain.ConverseTypeStop:
		return "*conversation concluded*\n", cv, nil
	default:
		return fmt.Sprintf("*service requested %q; register an action handler to serve it*\n", resp.Action), cv, nil
	}
}
