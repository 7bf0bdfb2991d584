package version

import (
	"testing"

	"github.com/rxtech-lab/argo-modular/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckConfigCompatibility(t *testing.T) {
	tests := []struct {
		name           string
		libraryVersion string
		configVersion  string
		expectCode     errors.ErrorCode
		errorContains  string
	}{
		{name: "exact match", libraryVersion: "1.2.0", configVersion: "1.2.0"},
		{name: "library patch higher", libraryVersion: "1.2.1", configVersion: "1.2.0"},
		{name: "config patch higher", libraryVersion: "1.2.0", configVersion: "1.2.5"},
		{name: "library minor higher", libraryVersion: "1.4.0", configVersion: "1.2.0"},
		{name: "v prefix on both", libraryVersion: "v1.2.0", configVersion: "v1.2.0"},
		{name: "library prerelease", libraryVersion: "1.2.0-alpha", configVersion: "1.2.0"},
		{name: "build metadata", libraryVersion: "1.2.0+build123", configVersion: "1.2.0"},
		{name: "library is main", libraryVersion: "main", configVersion: "9.9.9"},
		{name: "config is main", libraryVersion: "1.2.0", configVersion: "main"},
		{name: "empty config version", libraryVersion: "1.2.0", configVersion: ""},
		{
			name: "config minor higher", libraryVersion: "1.2.0", configVersion: "1.3.0",
			expectCode: errors.ErrCodeVersionMismatch, errorContains: "older than config version",
		},
		{
			name: "major version differs", libraryVersion: "2.0.0", configVersion: "1.2.0",
			expectCode: errors.ErrCodeVersionMismatch, errorContains: "major version mismatch",
		},
		{
			name: "invalid library version", libraryVersion: "not-a-version", configVersion: "1.2.0",
			expectCode: errors.ErrCodeInvalidVersion, errorContains: "invalid library version",
		},
		{
			name: "invalid config version", libraryVersion: "1.2.0", configVersion: "abc",
			expectCode: errors.ErrCodeInvalidVersion, errorContains: "invalid config version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckConfigCompatibility(tt.libraryVersion, tt.configVersion)

			if tt.expectCode != 0 {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, tt.expectCode))
				assert.Contains(t, err.Error(), tt.errorContains)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestGetVersion(t *testing.T) {
	assert.Equal(t, Version, GetVersion())
	assert.NoError(t, CheckConfigCompatibility(GetVersion(), GetVersion()))
}
