package witgo_test

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/witgo"
	"github.com/aretw0/witgo/internal/stubserver"
	"github.com/aretw0/witgo/pkg/actions"
	"github.com/aretw0/witgo/pkg/domain"
)

const testToken = "test-token"

func newStub(t *testing.T) (*stubserver.Server, string) {
	t.Helper()
	stub := stubserver.NewServer(testToken)
	srv := httptest.NewServer(stub.Handler())
	t.Cleanup(srv.Close)
	return stub, srv.URL
}

func TestNew_RequiresToken(t *testing.T) {
	_, err := witgo.New("")
	require.Error(t, err)
}

func TestClient_Message(t *testing.T) {
	_, base := newStub(t)

	client, err := witgo.New(testToken, witgo.WithBaseURL(base))
	require.NoError(t, err)

	resp, err := client.Message(context.Background(), "set an alarm",
		witgo.WithN(3),
		witgo.WithContext(domain.Context{"timezone": "America/Los_Angeles"}),
	)
	require.NoError(t, err)
	assert.Equal(t, "set an alarm", resp.Text)

	intent := resp.TopIntent()
	require.NotNil(t, intent)
	assert.Equal(t, "echo", intent.Name)
}

func TestClient_Message_BadToken(t *testing.T) {
	_, base := newStub(t)

	client, err := witgo.New("wrong-token", witgo.WithBaseURL(base))
	require.NoError(t, err)

	_, err = client.Message(context.Background(), "hello")
	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
}

func TestClient_Speech(t *testing.T) {
	_, base := newStub(t)

	client, err := witgo.New(testToken, witgo.WithBaseURL(base))
	require.NoError(t, err)

	audio := bytes.NewReader([]byte{0x52, 0x49, 0x46, 0x46})
	resp, err := client.Speech(context.Background(), audio, "audio/wav")
	require.NoError(t, err)
	assert.Equal(t, "<audio>", resp.Text)
}

func TestClient_Converse_SingleTurn(t *testing.T) {
	stub, base := newStub(t)
	stub.ScriptConverse("s1",
		domain.ConverseResponse{Type: domain.ConverseTypeMessage, Msg: "hi back"},
	)

	client, err := witgo.New(testToken, witgo.WithBaseURL(base))
	require.NoError(t, err)

	resp, err := client.Converse(context.Background(), "s1", "hi", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ConverseTypeMessage, resp.Type)
	assert.Equal(t, "hi back", resp.Msg)
}

func TestClient_RunActions_WithoutRegistry(t *testing.T) {
	client, err := witgo.New(testToken)
	require.NoError(t, err)

	_, err = client.RunActions(context.Background(), "s1", "hello", nil, 0)
	var cerr *domain.ConstructionError
	require.ErrorAs(t, err, &cerr)
}

func TestClient_RunActions_FullConversation(t *testing.T) {
	stub, base := newStub(t)
	stub.ScriptConverse("weather-1",
		domain.ConverseResponse{Type: domain.ConverseTypeAction, Action: "getForecast",
			Entities: domain.Entities{"location": {{"value": "Paris"}}}},
		domain.ConverseResponse{Type: domain.ConverseTypeMessage, Msg: "Sunny in Paris"},
	)

	var (
		mu        sync.Mutex
		delivered []string
		called    []string
	)
	reg, err := actions.New(actions.FlavorRequestResponse,
		actions.WithTerminal(func(ctx context.Context, req actions.Request, resp actions.Response) error {
			mu.Lock()
			defer mu.Unlock()
			delivered = append(delivered, resp.Text)
			return nil
		}),
		actions.WithAction("getForecast", func(ctx context.Context, req actions.Request) (domain.Context, error) {
			mu.Lock()
			defer mu.Unlock()
			called = append(called, req.SessionID)

			loc := domain.FirstEntityValue(req.Entities, "location")
			require.Equal(t, "Paris", loc)
			next := req.Context.Clone()
			next["forecast"] = "sunny in " + loc
			return next, nil
		}),
	)
	require.NoError(t, err)

	client, err := witgo.New(testToken,
		witgo.WithBaseURL(base),
		witgo.WithActions(reg),
	)
	require.NoError(t, err)

	out, err := client.RunActions(context.Background(), "weather-1", "weather in Paris?", nil, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"weather-1"}, called)
	assert.Equal(t, []string{"Sunny in Paris"}, delivered)
	assert.Equal(t, "sunny in Paris", out["forecast"])
}

func TestClient_RunActions_MaxStepsBudget(t *testing.T) {
	stub, base := newStub(t)

	// Script more action turns than the budget allows.
	steps := make([]domain.ConverseResponse, 5)
	for i := range steps {
		steps[i] = domain.ConverseResponse{Type: domain.ConverseTypeAction, Action: "spin"}
	}
	stub.ScriptConverse("loop-1", steps...)

	reg, err := actions.New(actions.FlavorRequestResponse,
		actions.WithTerminal(func(ctx context.Context, req actions.Request, resp actions.Response) error {
			return nil
		}),
		actions.WithAction("spin", func(ctx context.Context, req actions.Request) (domain.Context, error) {
			return req.Context, nil
		}),
	)
	require.NoError(t, err)

	client, err := witgo.New(testToken,
		witgo.WithBaseURL(base),
		witgo.WithActions(reg),
	)
	require.NoError(t, err)

	_, err = client.RunActions(context.Background(), "loop-1", "go", nil, 3)
	require.ErrorIs(t, err, domain.ErrMaxStepsExceeded)
}

func TestClient_RunActions_RemoteRefusal(t *testing.T) {
	stub, base := newStub(t)
	stub.ScriptConverse("bad-1",
		domain.ConverseResponse{Type: domain.ConverseTypeError},
	)

	var handled error
	reg, err := actions.New(actions.FlavorRequestResponse,
		actions.WithTerminal(func(ctx context.Context, req actions.Request, resp actions.Response) error {
			return nil
		}),
		actions.WithErrorHandler(func(ctx context.Context, req actions.Request, err error) {
			handled = err
		}),
	)
	require.NoError(t, err)

	client, err := witgo.New(testToken,
		witgo.WithBaseURL(base),
		witgo.WithActions(reg),
	)
	require.NoError(t, err)

	_, err = client.RunActions(context.Background(), "bad-1", "???", nil, 0)
	var refusal *domain.RemoteRefusalError
	require.ErrorAs(t, err, &refusal)
	assert.Equal(t, "bad-1", refusal.SessionID)
	assert.Error(t, handled)
}

func TestClient_RunActions_DefaultEchoStops(t *testing.T) {
	_, base := newStub(t)

	reg, err := actions.New(actions.FlavorRequestResponse,
		actions.WithTerminal(func(ctx context.Context, req actions.Request, resp actions.Response) error {
			if resp.Text == "" {
				return errors.New("empty message delivered")
			}
			return nil
		}),
	)
	require.NoError(t, err)

	client, err := witgo.New(testToken,
		witgo.WithBaseURL(base),
		witgo.WithActions(reg),
	)
	require.NoError(t, err)

	out, err := client.RunActions(context.Background(), witgo.NewSessionID(), "hello", nil, 0)
	require.NoError(t, err)
	assert.NotNil(t, out)
}
