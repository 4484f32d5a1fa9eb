package uniuri

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInviteToken(t *testing.T) {
	seen := make(map[string]struct{})

	for range 50 {
		tok, err := InviteToken()
		require.NoError(t, err)
		require.Len(t, tok, InviteTokenLen)

		for _, c := range []byte(tok) {
			assert.True(t, bytes.IndexByte(URLSafeChars, c) >= 0, "unexpected char %q", c)
		}

		_, dup := seen[tok]
		assert.False(t, dup)
		seen[tok] = struct{}{}
	}
}

func TestNewLenChars(t *testing.T) {
	testCases := []struct {
		name    string
		length  int
		chars   []byte
		wantLen int
		wantErr error
	}{
		{name: "binary alphabet", length: 64, chars: []byte("01"), wantLen: 64},
		{name: "odd alphabet", length: 10, chars: []byte("abc"), wantLen: 10},
		{name: "zero length", length: 0, chars: URLSafeChars, wantLen: 0},
		{name: "alphabet too short", length: 5, chars: []byte("a"), wantErr: ErrCharset},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewLenChars(tc.length, tc.chars)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Len(t, s, tc.wantLen)
		})
	}
}
