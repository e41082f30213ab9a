package utils

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRunID(t *testing.T) {
	id := GenerateRunID()
	assert.True(t, strings.HasPrefix(id, "run-"))
	// run-YYYYMMDD-HHMMSS-xxxxxxxx
	assert.Len(t, id, len("run-20060102-150405-")+8)
	assert.NotEqual(t, id, GenerateRunID())
}

func TestGenerateRequestID(t *testing.T) {
	id := GenerateRequestID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
}
