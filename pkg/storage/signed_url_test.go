package storage

import (
	"encoding/base64"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignedURLSignerGenerateAndParse(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Hour)
	token, expiresAt, err := signer.Generate("ver-1", "exports/grid.csv")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.False(t, expiresAt.IsZero())

	versionID, path, parsedExpiry, err := signer.Parse(token, false)
	require.NoError(t, err)
	require.Equal(t, "ver-1", versionID)
	require.Equal(t, "exports/grid.csv", path)
	require.WithinDuration(t, expiresAt, parsedExpiry, time.Second)
}

// expiredToken signs a token whose timestamp is already in the past,
// so the expiry path is deterministic instead of sleep-based.
func expiredToken(s *SignedURLSigner, versionID, relPath string) string {
	ts := strconv.FormatInt(time.Now().Add(-time.Hour).Unix(), 10)
	encodedPath := base64.RawURLEncoding.EncodeToString([]byte(relPath))
	return strings.Join([]string{versionID, ts, encodedPath, s.sign(versionID, ts, encodedPath)}, ".")
}

func TestSignedURLSignerExpired(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Hour)
	token := expiredToken(signer, "ver-1", "exports/grid.csv")

	_, _, _, err := signer.Parse(token, false)
	require.Error(t, err)

	versionID, path, _, err := signer.Parse(token, true)
	require.NoError(t, err)
	require.Equal(t, "ver-1", versionID)
	require.Equal(t, "exports/grid.csv", path)
}

func TestSignedURLSignerRejectsTampering(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Hour)
	token, _, err := signer.Generate("ver-1", "exports/grid.csv")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	parts[0] = "ver-2"
	_, _, _, err = signer.Parse(strings.Join(parts, "."), false)
	require.Error(t, err)

	_, _, _, err = signer.Parse("not.a.token", false)
	require.Error(t, err)
}
