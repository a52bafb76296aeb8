package api

import (
	"bytes"
	"encoding/json"
	"errors"
)

var errInvalidJSON = errors.New("body is not valid JSON")

// normalize collapses the two response shapes into the payload value.
//
// An object carrying a boolean "success" field is an envelope
// ({"success": bool, "data": ..., "count": n}); anything else is a bare
// payload and is returned unchanged.
func normalize(body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if !json.Valid(trimmed) {
		return nil, newDecodeError(body, errInvalidJSON)
	}

	if trimmed[0] != '{' {
		return trimmed, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, newDecodeError(body, err)
	}

	success, isEnvelope := envelopeFlag(fields["success"])
	if !isEnvelope {
		return trimmed, nil
	}

	data, ok := fields["data"]
	if !success || !ok || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, newDecodeError(body, ErrUnsuccessfulEnvelope)
	}
	return data, nil
}

func envelopeFlag(raw json.RawMessage) (value bool, ok bool) {
	switch string(bytes.TrimSpace(raw)) {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}
