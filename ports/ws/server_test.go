package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/signalnine/wonders/engine"
	"github.com/signalnine/wonders/simulation"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}

func newTestServer(t *testing.T) (*httptest.Server, *TicketIssuer) {
	t.Helper()
	issuer, err := NewTicketIssuer("test-secret", time.Minute)
	require.NoError(t, err)
	bots := []simulation.AlgorithmSpec{{Type: simulation.TypeRandom}, {Type: simulation.TypeRandom}}
	srv := httptest.NewServer(NewServer(issuer, bots, 1, nopLogger{}).Handler())
	t.Cleanup(srv.Close)
	return srv, issuer
}

func fetchTicket(t *testing.T, srv *httptest.Server, name string) string {
	t.Helper()
	resp, err := http.Get(srv.URL + "/ticket?name=" + name)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body["ticket"]
}

func dial(t *testing.T, srv *httptest.Server, ticket string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/play?ticket=" + ticket
	c, _, err := websocket.Dial(context.Background(), url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close(websocket.StatusNormalClosure, "bye") })
	return c
}

func TestTicketRoundTrip(t *testing.T) {
	issuer, err := NewTicketIssuer("s", time.Minute)
	require.NoError(t, err)

	ticket, err := issuer.Issue("ana")
	require.NoError(t, err)
	name, err := issuer.Verify(ticket)
	require.NoError(t, err)
	assert.Equal(t, "ana", name)

	other, err := NewTicketIssuer("other", time.Minute)
	require.NoError(t, err)
	_, err = other.Verify(ticket)
	assert.True(t, errors.Is(err, ErrInvalidTicket))

	_, err = issuer.Verify("garbage")
	assert.True(t, errors.Is(err, ErrInvalidTicket))
}

func TestTicketExpired(t *testing.T) {
	issuer, err := NewTicketIssuer("s", time.Minute)
	require.NoError(t, err)
	issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }

	ticket, err := issuer.Issue("ana")
	require.NoError(t, err)
	_, err = issuer.Verify(ticket)
	assert.True(t, errors.Is(err, ErrInvalidTicket))
}

func TestNewTicketIssuerValidates(t *testing.T) {
	_, err := NewTicketIssuer("", time.Minute)
	assert.Error(t, err)
	_, err = NewTicketIssuer("s", 0)
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPlayRejectsBadTicket(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/play?ticket=nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPlayFullGame(t *testing.T) {
	srv, _ := newTestServer(t)
	c := dial(t, srv, fetchTicket(t, srv, "ana"))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	prompts, errorsSeen := 0, 0
	for {
		var m Msg
		require.NoError(t, wsjson.Read(ctx, c, &m))
		switch m.T {
		case MsgPrompt:
			prompts++
			options, ok := m.M["options"].([]interface{})
			require.True(t, ok)
			require.NotEmpty(t, options)
			if prompts == 1 {
				// out of range first, the server asks again
				require.NoError(t, wsjson.Write(ctx, c, Msg{T: MsgChoose, M: map[string]interface{}{"index": 99}}))
			}
			// the last option is always a discard
			require.NoError(t, wsjson.Write(ctx, c, Msg{T: MsgChoose, M: map[string]interface{}{"index": len(options)}}))
		case MsgError:
			errorsSeen++
		case MsgResult:
			assert.Equal(t, engine.TotalTurns, prompts)
			assert.Equal(t, 1, errorsSeen)
			scores, ok := m.M["scores"].([]interface{})
			require.True(t, ok)
			assert.Len(t, scores, 3)
			assert.Contains(t, m.M["winner"], "!")
			return
		}
	}
}

func TestWinnerText(t *testing.T) {
	assert.Equal(t, "Player 2 wins!", winnerText([]int{3, 9, 1}))
	assert.Equal(t, "Draw!", winnerText([]int{9, 9, 1}))
	assert.Equal(t, "Player 1 wins!", winnerText([]int{9, 2, 1}))
}
