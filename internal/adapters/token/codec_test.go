package token

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventgate/internal/domain"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestNewCodec_RejectsBadKey(t *testing.T) {
	_, err := NewCodec([]byte("short"))
	require.Error(t, err)
}

func TestCodec_RoundTrip(t *testing.T) {
	codec, err := NewCodec(testKey)
	require.NoError(t, err)

	payload := domain.TokenPayload{
		EventID:    "ev-1",
		AttendeeID: "att-1",
		IssuedAtMS: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC).UnixMilli(),
		Nonce:      "a1b2c3d4e5f60718a1b2c3d4e5f60718",
	}
	token, err := codec.Encode(payload)
	require.NoError(t, err)

	parts := strings.SplitN(token, ":", 2)
	require.Len(t, parts, 2)
	iv, err := hex.DecodeString(parts[0])
	require.NoError(t, err)
	assert.Len(t, iv, 16)
	ct, err := hex.DecodeString(parts[1])
	require.NoError(t, err)
	assert.Equal(t, 0, len(ct)%16)

	decoded, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, payload, decoded)
}

func TestCodec_Encode_GeneratesNonce(t *testing.T) {
	codec, err := NewCodec(testKey)
	require.NoError(t, err)

	payload := domain.TokenPayload{
		EventID:    "ev-1",
		AttendeeID: "att-1",
		IssuedAtMS: time.Now().UnixMilli(),
	}
	token, err := codec.Encode(payload)
	require.NoError(t, err)

	decoded, err := codec.Decode(token)
	require.NoError(t, err)
	nonce, err := hex.DecodeString(decoded.Nonce)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(nonce), 16)
}

func TestCodec_Encode_FreshIVPerCall(t *testing.T) {
	codec, err := NewCodec(testKey)
	require.NoError(t, err)

	payload := domain.TokenPayload{
		EventID:    "ev-1",
		AttendeeID: "att-1",
		IssuedAtMS: time.Now().UnixMilli(),
		Nonce:      "a1b2c3d4e5f60718a1b2c3d4e5f60718",
	}
	t1, err := codec.Encode(payload)
	require.NoError(t, err)
	t2, err := codec.Encode(payload)
	require.NoError(t, err)
	assert.NotEqual(t, t1, t2)
}

func TestCodec_Decode_Malformed(t *testing.T) {
	codec, err := NewCodec(testKey)
	require.NoError(t, err)

	valid, err := codec.Encode(domain.TokenPayload{
		EventID:    "ev-1",
		AttendeeID: "att-1",
		IssuedAtMS: time.Now().UnixMilli(),
	})
	require.NoError(t, err)
	sep := strings.IndexByte(valid, ':')

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{
			name:    "missing separator",
			token:   strings.ReplaceAll(valid, ":", ""),
			wantErr: domain.ErrMalformedToken,
		},
		{
			name:    "non-hex iv",
			token:   "zz" + valid[2:],
			wantErr: domain.ErrMalformedToken,
		},
		{
			name:    "non-hex ciphertext",
			token:   valid[:sep+1] + "not-hex-at-all",
			wantErr: domain.ErrMalformedToken,
		},
		{
			name:    "short iv",
			token:   "abcd:" + valid[sep+1:],
			wantErr: domain.ErrDecryptionFailure,
		},
		{
			name:    "ciphertext not block aligned",
			token:   valid[:sep+1] + valid[sep+1:sep+11],
			wantErr: domain.ErrDecryptionFailure,
		},
		{
			name:    "empty ciphertext",
			token:   valid[:sep+1],
			wantErr: domain.ErrDecryptionFailure,
		},
		{
			name:    "empty string",
			token:   "",
			wantErr: domain.ErrMalformedToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Decode(tt.token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestCodec_Decode_TamperedCiphertext(t *testing.T) {
	codec, err := NewCodec(testKey)
	require.NoError(t, err)

	valid, err := codec.Encode(domain.TokenPayload{
		EventID:    "ev-1",
		AttendeeID: "att-1",
		IssuedAtMS: time.Now().UnixMilli(),
	})
	require.NoError(t, err)
	sep := strings.IndexByte(valid, ':')

	// Flip each hex character of the ciphertext in turn. CBC without an
	// auth tag cannot promise a decode error for every flip, but any token
	// that does decode must not equal the issued one; the store lookup on
	// the exact token string is the final gate.
	for i := sep + 1; i < len(valid); i++ {
		flipped := 'f'
		if valid[i] == 'f' {
			flipped = '0'
		}
		tampered := valid[:i] + string(flipped) + valid[i+1:]
		if tampered == valid {
			continue
		}
		if _, err := codec.Decode(tampered); err != nil {
			assert.True(t,
				errors.Is(err, domain.ErrMalformedToken) || errors.Is(err, domain.ErrDecryptionFailure),
				"pos %d: unexpected error %v", i, err)
		}
		assert.NotEqual(t, valid, tampered)
	}
}

func TestCodec_Decode_WrongKey(t *testing.T) {
	codec, err := NewCodec(testKey)
	require.NoError(t, err)
	other, err := NewCodec([]byte("ffffffffffffffffffffffffffffffff"))
	require.NoError(t, err)

	tok, err := codec.Encode(domain.TokenPayload{
		EventID:    "ev-1",
		AttendeeID: "att-1",
		IssuedAtMS: time.Now().UnixMilli(),
	})
	require.NoError(t, err)

	_, err = other.Decode(tok)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedToken) || errors.Is(err, domain.ErrDecryptionFailure))
}

func TestCodec_Decode_MissingFields(t *testing.T) {
	codec, err := NewCodec(testKey)
	require.NoError(t, err)

	// A payload with an empty attendee ID must be rejected at encode time,
	// so a forged empty-field token can only come from raw encryption.
	_, err = codec.Encode(domain.TokenPayload{EventID: "ev-1", IssuedAtMS: 1})
	require.Error(t, err)
}
