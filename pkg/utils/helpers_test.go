package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTargetKeys(t *testing.T) {
	assert.Equal(t, "user:torvalds", UserKey("torvalds"))
	assert.Equal(t, "repo:torvalds/linux", RepoKey("torvalds/linux"))
}

func TestParseTargetKey(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		expectedKind string
		expectedID   string
		expectedOK   bool
	}{
		{
			name:         "user key",
			key:          UserKey("torvalds"),
			expectedKind: "user",
			expectedID:   "torvalds",
			expectedOK:   true,
		},
		{
			name:         "repo key keeps the slash",
			key:          RepoKey("torvalds/linux"),
			expectedKind: "repo",
			expectedID:   "torvalds/linux",
			expectedOK:   true,
		},
		{
			name:       "no separator",
			key:        "torvalds",
			expectedOK: false,
		},
		{
			name:       "empty kind",
			key:        ":torvalds",
			expectedOK: false,
		},
		{
			name:       "empty identifier",
			key:        "user:",
			expectedOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, id, ok := ParseTargetKey(tt.key)
			assert.Equal(t, tt.expectedOK, ok)
			assert.Equal(t, tt.expectedKind, kind)
			assert.Equal(t, tt.expectedID, id)
		})
	}
}
