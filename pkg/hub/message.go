// Package hub provides a thread-safe websocket broadcast hub using
// the channel-based fan-out pattern. Display clients subscribe to a
// hub and receive typed JSON envelopes; slow clients are dropped
// rather than allowed to back-pressure the pipeline.
package hub

import "encoding/json"

// Envelope is the JSON frame sent to display clients.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Encode marshals a typed payload into a broadcastable envelope.
// Returns nil when the payload cannot be marshaled.
func Encode(msgType string, payload any) []byte {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	out, err := json.Marshal(Envelope{Type: msgType, Data: data})
	if err != nil {
		return nil
	}
	return out
}
