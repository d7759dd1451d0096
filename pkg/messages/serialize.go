package messages

import (
	"fmt"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/klauspost/compress/zstd"
)

// Envelope table layout. Field slots must never be reordered.
const (
	envelopeSlotSessionID = 0
	envelopeSlotType      = 1
	envelopeSlotPayload   = 2
	envelopeNumFields     = 3
)

var (
	encoder *zstd.Encoder
	decoder *zstd.Decoder
)

func init() {
	var err error
	encoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		panic(fmt.Sprintf("failed to create zstd encoder: %v", err))
	}
	decoder, err = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(1<<20))
	if err != nil {
		panic(fmt.Sprintf("failed to create zstd decoder: %v", err))
	}
}

// SerializeMessage encodes m as a flatbuffer envelope and compresses it.
func SerializeMessage(m *Message) ([]byte, error) {
	b, err := SerializeMessageFlatbuffer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize message: %v", err)
	}
	return encoder.EncodeAll(b, make([]byte, 0, len(b))), nil
}

// DeserializeMessage reverses SerializeMessage.
func DeserializeMessage(data []byte) (*Message, error) {
	b, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress message: %v", err)
	}

	message, err := DeserializeMessageFlatbuffer(b)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize message: %v", err)
	}

	return message, nil
}

func SerializeMessageFlatbuffer(m *Message) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("message is nil")
	}
	builder := flatbuffers.NewBuilder(64 + len(m.Payload))

	sessionID := builder.CreateString(m.SessionID)
	messageType := builder.CreateString(string(m.Type))
	var payload flatbuffers.UOffsetT
	if len(m.Payload) > 0 {
		payload = builder.CreateByteVector(m.Payload)
	}

	builder.StartObject(envelopeNumFields)
	builder.PrependUOffsetTSlot(envelopeSlotSessionID, sessionID, 0)
	builder.PrependUOffsetTSlot(envelopeSlotType, messageType, 0)
	if payload != 0 {
		builder.PrependUOffsetTSlot(envelopeSlotPayload, payload, 0)
	}
	envelope := builder.EndObject()
	builder.Finish(envelope)

	return builder.FinishedBytes(), nil
}

func DeserializeMessageFlatbuffer(b []byte) (m *Message, err error) {
	if len(b) < flatbuffers.SizeUOffsetT {
		return nil, fmt.Errorf("buffer too short: %d bytes", len(b))
	}
	// the flatbuffers accessors panic on out-of-range offsets
	defer func() {
		if r := recover(); r != nil {
			m = nil
			err = fmt.Errorf("malformed envelope: %v", r)
		}
	}()

	table := &flatbuffers.Table{
		Bytes: b,
		Pos:   flatbuffers.GetUOffsetT(b),
	}
	message := &Message{
		SessionID: string(envelopeBytes(table, envelopeSlotSessionID)),
		Type:      MessageType(envelopeBytes(table, envelopeSlotType)),
	}
	if payload := envelopeBytes(table, envelopeSlotPayload); len(payload) > 0 {
		message.Payload = append([]byte(nil), payload...)
	}
	if message.Type == "" {
		return nil, fmt.Errorf("envelope has no message type")
	}

	return message, nil
}

func envelopeBytes(table *flatbuffers.Table, slot int) []byte {
	o := flatbuffers.UOffsetT(table.Offset(flatbuffers.VOffsetT(4 + 2*slot)))
	if o == 0 {
		return nil
	}
	return table.ByteVector(o + table.Pos)
}
