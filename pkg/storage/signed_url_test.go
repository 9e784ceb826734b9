package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedURLRoundTrip(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Hour)

	token, expires, err := signer.Generate("job-1", "reports/job-1.csv")
	require.NoError(t, err)
	assert.True(t, expires.After(time.Now()))

	jobID, relPath, _, err := signer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "job-1", jobID)
	assert.Equal(t, "reports/job-1.csv", relPath)
}

func TestSignedURLRejectsTampering(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Hour)

	token, _, err := signer.Generate("job-1", "reports/job-1.csv")
	require.NoError(t, err)

	_, _, _, err = signer.Parse(token + "x")
	assert.Error(t, err)

	other := NewSignedURLSigner("different", time.Hour)
	_, _, _, err = other.Parse(token)
	assert.Error(t, err)
}

func TestSignedURLRejectsExpired(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Nanosecond)

	token, _, err := signer.Generate("job-1", "reports/job-1.csv")
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)
	_, _, _, err = signer.Parse(token)
	assert.Error(t, err)
}
