package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T, ttl time.Duration) (*TokenCodec, []byte) {
	t.Helper()
	privatePEM, publicPEM, err := GenerateKeyPair()
	require.NoError(t, err)
	codec, err := NewTokenCodec(privatePEM, publicPEM, ttl)
	require.NoError(t, err)
	return codec, publicPEM
}

func testClaims() SessionClaims {
	return SessionClaims{
		ID:    "9b2f5f0c-4a0e-4f6e-9a57-3f1f3c1f8c11",
		As:    "customer",
		Name:  "Ada Lovelace",
		Email: "ada@example.com",
	}
}

func TestTokenCodec_SignVerifyRoundTrip(t *testing.T) {
	codec, _ := newTestCodec(t, 0)

	before := time.Now()
	token, expires, err := codec.Sign(testClaims())
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, before.Add(DefaultSessionTTL), expires, 5*time.Second)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "9b2f5f0c-4a0e-4f6e-9a57-3f1f3c1f8c11", claims.ID)
	assert.Equal(t, "customer", claims.As)
	assert.Equal(t, "Ada Lovelace", claims.Name)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, claims.ID, claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, expires.Unix(), claims.ExpiresAt.Unix())
}

func TestTokenCodec_TokensAreUniquePerSign(t *testing.T) {
	codec, _ := newTestCodec(t, time.Hour)

	first, _, err := codec.Sign(testClaims())
	require.NoError(t, err)
	second, _, err := codec.Sign(testClaims())
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestTokenCodec_RejectsExpiredToken(t *testing.T) {
	codec, _ := newTestCodec(t, time.Hour)

	codec.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := codec.Sign(testClaims())
	require.NoError(t, err)
	codec.now = time.Now

	_, err = codec.Verify(token)
	require.Error(t, err)
	assert.Equal(t, KindInvalidToken, KindOf(err))
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenCodec_RejectsForeignKey(t *testing.T) {
	signer, _ := newTestCodec(t, time.Hour)
	verifier, _ := newTestCodec(t, time.Hour)

	token, _, err := signer.Sign(testClaims())
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenCodec_RejectsTamperedPayload(t *testing.T) {
	codec, _ := newTestCodec(t, time.Hour)

	token, _, err := codec.Sign(testClaims())
	require.NoError(t, err)

	other := testClaims()
	other.As = "superadmin"
	forged, _, err := codec.Sign(other)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	forgedParts := strings.Split(forged, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + forgedParts[1] + "." + parts[2]

	_, err = codec.Verify(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenCodec_RejectsOtherAlgorithms(t *testing.T) {
	codec, publicPEM := newTestCodec(t, time.Hour)

	claims := testClaims()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	// HMAC keyed with the public key bytes
	hmacToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(publicPEM)
	require.NoError(t, err)
	_, err = codec.Verify(hmacToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = codec.Verify(noneToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenCodec_RequiresExpiry(t *testing.T) {
	privatePEM, publicPEM, err := GenerateKeyPair()
	require.NoError(t, err)
	codec, err := NewTokenCodec(privatePEM, publicPEM, time.Hour)
	require.NoError(t, err)

	key, err := parsePrivateKey(privatePEM)
	require.NoError(t, err)
	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, testClaims()).SignedString(key)
	require.NoError(t, err)

	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenCodec_InvalidKeys(t *testing.T) {
	privatePEM, publicPEM, err := GenerateKeyPair()
	require.NoError(t, err)

	_, err = NewTokenCodec([]byte("not a key"), publicPEM, time.Hour)
	assert.Error(t, err)

	_, err = NewTokenCodec(privatePEM, []byte("not a key"), time.Hour)
	assert.Error(t, err)

	_, err = NewTokenCodecFromFiles("/nonexistent/private.pem", "/nonexistent/public.pem", time.Hour)
	assert.Error(t, err)
}
