package network

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cbodonnell/simon/pkg/game/types"
	"github.com/cbodonnell/simon/pkg/messages"
	"github.com/cbodonnell/simon/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
)

func newTestServer(t *testing.T, maxSessions int) (*httptest.Server, *session.Manager) {
	t.Helper()
	sessions := session.NewManager(session.NewManagerOptions{MaxSessions: maxSessions})
	srv := httptest.NewServer(NewWSHandler(NewWSHandlerOptions{Sessions: sessions}))
	t.Cleanup(srv.Close)
	return srv, sessions
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestWSHandler_playsSession(t *testing.T) {
	srv, _ := newTestServer(t, 0)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, wsURL(srv)+"?player=ada", nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	hello, err := ReadMessageFromWS(ctx, conn)
	require.NoError(t, err)
	require.Equal(t, messages.MessageTypeServerHello, hello.Type)
	assert.NotEmpty(t, hello.SessionID)

	start, err := messages.NewMessage("", messages.MessageTypeClientStart, nil)
	require.NoError(t, err)
	require.NoError(t, WriteMessageToWS(ctx, conn, start))

	for {
		msg, err := ReadMessageFromWS(ctx, conn)
		require.NoError(t, err)
		assert.Equal(t, hello.SessionID, msg.SessionID)
		if msg.Type != messages.MessageTypeServerText {
			continue
		}
		text := &messages.ServerText{}
		require.NoError(t, msg.DecodePayload(text))
		if text.Target == types.TargetHeading {
			assert.Equal(t, "Round 1 of 8", text.Text)
			return
		}
	}
}

func TestWSHandler_sessionLimit(t *testing.T) {
	srv, sessions := newTestServer(t, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	first, _, err := websocket.Dial(ctx, wsURL(srv), nil)
	require.NoError(t, err)
	defer first.Close(websocket.StatusNormalClosure, "")
	_, err = ReadMessageFromWS(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, 1, sessions.Count())

	_, _, err = websocket.Dial(ctx, wsURL(srv), nil)
	assert.Error(t, err)
}
