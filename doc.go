/*
Package witgo is a Go client for the Wit.ai natural-language API.

It covers the one-shot interpretation endpoints (/message and /speech) and
the converse action-dispatch loop: RunActions repeatedly calls the decision
endpoint, invokes the callbacks registered in an actions.Registry, and
threads the conversation context from turn to turn until the remote service
concludes or the step budget runs out.

# Usage

	reg, err := actions.New(actions.FlavorRequestResponse,
		actions.WithTerminal(func(ctx context.Context, req actions.Request, resp actions.Response) error {
			fmt.Println(resp.Text)
			return nil
		}),
		actions.WithAction("getForecast", func(ctx context.Context, req actions.Request) (domain.Context, error) {
			next := req.Context.Clone()
			next["forecast"] = "sunny"
			return next, nil
		}),
	)
	if err != nil {
		log.Fatal(err)
	}

	client, err := witgo.New(os.Getenv("WIT_ACCESS_TOKEN"), witgo.WithActions(reg))
	if err != nil {
		log.Fatal(err)
	}

	sessionID := witgo.NewSessionID()
	final, err := client.RunActions(context.Background(), sessionID, "weather in London", nil, 0)

Concurrent RunActions calls for the same session are safe: generation
tracking lets the most recently started run win while older runs stop
cooperatively. See pkg/session for the mechanism.
*/
package witgo
