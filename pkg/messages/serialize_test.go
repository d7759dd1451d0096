package messages

import (
	"testing"

	"github.com/cbodonnell/simon/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeDeserializeMessage(t *testing.T) {
	pulse, err := NewMessage("session-1", MessageTypeServerPulse, &ServerPulse{Color: types.ColorBlue, DurationMs: 500})
	require.NoError(t, err)
	start, err := NewMessage("", MessageTypeClientStart, nil)
	require.NoError(t, err)

	tests := []struct {
		name string
		msg  *Message
	}{
		{name: "with payload", msg: pulse},
		{name: "without payload or session", msg: start},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := SerializeMessage(tt.msg)
			require.NoError(t, err)

			got, err := DeserializeMessage(b)
			require.NoError(t, err)
			assert.Equal(t, tt.msg.SessionID, got.SessionID)
			assert.Equal(t, tt.msg.Type, got.Type)
			assert.Equal(t, []byte(tt.msg.Payload), []byte(got.Payload))
		})
	}
}

func TestMessage_DecodePayload(t *testing.T) {
	msg, err := NewMessage("s", MessageTypeClientPress, &ClientPress{Color: "red"})
	require.NoError(t, err)

	press := &ClientPress{}
	require.NoError(t, msg.DecodePayload(press))
	assert.Equal(t, "red", press.Color)

	empty := &Message{Type: MessageTypeClientStart}
	assert.Error(t, empty.DecodePayload(press))
}

func TestDeserializeMessage_invalid(t *testing.T) {
	_, err := DeserializeMessage([]byte("not zstd"))
	assert.Error(t, err)

	_, err = DeserializeMessageFlatbuffer([]byte{1, 2})
	assert.Error(t, err)

	_, err = DeserializeMessageFlatbuffer([]byte{0xff, 0xff, 0xff, 0x7f, 0, 0, 0, 0})
	assert.Error(t, err)
}
