package installer_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/donaldgifford/faas-installer/internal/getter"
	"github.com/donaldgifford/faas-installer/internal/installer"
)

func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "idle", installer.Idle.String())
	assert.Equal(t, "locating release", installer.LocatingRelease.String())
	assert.Equal(t, "failed", installer.Failed.String())
	assert.Equal(t, "state(42)", installer.State(42).String())
}

func TestState_Terminal(t *testing.T) {
	t.Parallel()

	assert.True(t, installer.Done.Terminal())
	assert.True(t, installer.Failed.Terminal())
	assert.False(t, installer.Downloading.Terminal())
	assert.False(t, installer.Idle.Terminal())
}

func TestStageError_Message(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	prepare := fmt.Errorf("%w: creating /opt/bin: permission denied", installer.ErrFilesystem)
	create := fmt.Errorf("%w: opening /opt/bin/faas-cli: permission denied", getter.ErrFilesystem)
	chmod := fmt.Errorf("%w: chmod /opt/bin/faas-cli: permission denied", installer.ErrFilesystem)

	tests := []struct {
		name     string
		stage    installer.State
		cause    error
		expected string
	}{
		{name: "resolve", stage: installer.ResolvingPlatform, cause: boom, expected: "boom"},
		{name: "locate", stage: installer.LocatingRelease, cause: boom, expected: "Download failed! boom"},
		{name: "download", stage: installer.Downloading, cause: boom, expected: "Download failed! boom"},
		{
			name:     "prepare dest",
			stage:    installer.LocatingRelease,
			cause:    prepare,
			expected: "filesystem error: creating /opt/bin: permission denied",
		},
		{
			name:     "open dest",
			stage:    installer.Downloading,
			cause:    create,
			expected: "filesystem error: opening /opt/bin/faas-cli: permission denied",
		},
		{
			name:     "chmod",
			stage:    installer.FixingPermissions,
			cause:    chmod,
			expected: "Setting permissions failed! filesystem error: chmod /opt/bin/faas-cli: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := &installer.StageError{Stage: tt.stage, Err: tt.cause}
			assert.Equal(t, tt.expected, err.Error())
			assert.ErrorIs(t, err, tt.cause)
		})
	}
}
