package api

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr error
	}{
		{name: "bare array", body: `[1,2]`, want: `[1,2]`},
		{name: "bare object", body: ` {"id":"1"} `, want: `{"id":"1"}`},
		{name: "envelope", body: `{"success":true,"data":{"id":"1"},"count":1}`, want: `{"id":"1"}`},
		{name: "success field that is not boolean", body: `{"success":"yes","data":1}`, want: `{"success":"yes","data":1}`},
		{name: "unsuccessful", body: `{"success":false,"data":[]}`, wantErr: ErrUnsuccessfulEnvelope},
		{name: "missing data", body: `{"success":true}`, wantErr: ErrUnsuccessfulEnvelope},
		{name: "invalid json", body: `{"success":`, wantErr: errInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalize([]byte(tt.body))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				var decodeErr *DecodeError
				assert.ErrorAs(t, err, &decodeErr)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestSnippet_IsBounded(t *testing.T) {
	body := []byte(strings.Repeat("ب", 200))

	got := snippet(body)

	assert.LessOrEqual(t, len(got), maxSnippetBytes)
	assert.True(t, strings.HasPrefix(string(body), got))
	assert.Equal(t, 60, len([]rune(got)))
}
