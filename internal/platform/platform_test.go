package platform_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/faas-installer/internal/platform"
)

func TestSuffix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		osFamily string
		arch     string
		expected string
	}{
		{name: "windows", osFamily: "Windows_NT", arch: "", expected: ".exe"},
		{name: "windows ignores arch", osFamily: "Windows_NT", arch: "aarch64", expected: ".exe"},
		{name: "linux x64", osFamily: "Linux", arch: "x64", expected: ""},
		{name: "linux arm64", osFamily: "Linux", arch: "aarch64", expected: "-arm64"},
		{name: "linux armhf 6", osFamily: "Linux", arch: "armv61", expected: "-armhf"},
		{name: "linux armhf 7", osFamily: "Linux", arch: "armv71", expected: "-armhf"},
		{name: "macos", osFamily: "Darwin", arch: "", expected: "-darwin"},
		{name: "macos ignores arch", osFamily: "Darwin", arch: "aarch64", expected: "-darwin"},
		{name: "goos spelling", osFamily: "linux", arch: "x64", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := platform.Suffix(tt.osFamily, tt.arch)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSuffix_Unsupported(t *testing.T) {
	t.Parallel()

	tests := []struct {
		osFamily string
		arch     string
	}{
		{osFamily: "BadType", arch: "BadArch"},
		{osFamily: "Linux", arch: "mips"},
		{osFamily: "Linux", arch: ""},
		{osFamily: "FreeBSD", arch: "x64"},
	}

	for _, tt := range tests {
		t.Run(tt.osFamily+"/"+tt.arch, func(t *testing.T) {
			t.Parallel()

			_, err := platform.Suffix(tt.osFamily, tt.arch)
			require.ErrorIs(t, err, platform.ErrUnsupportedPlatform)
			assert.Contains(t, err.Error(), tt.osFamily)
			assert.Contains(t, err.Error(), tt.arch)
		})
	}
}

func TestArtifactName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		osFamily string
		arch     string
		expected string
	}{
		{osFamily: "Windows_NT", arch: "x64", expected: "faas-cli.exe"},
		{osFamily: "Linux", arch: "x64", expected: "faas-cli"},
		{osFamily: "Linux", arch: "aarch64", expected: "faas-cli-arm64"},
		{osFamily: "Linux", arch: "armv61", expected: "faas-cli-armhf"},
		{osFamily: "Linux", arch: "armv71", expected: "faas-cli-armhf"},
		{osFamily: "Darwin", arch: "x64", expected: "faas-cli-darwin"},
		{osFamily: "Darwin", arch: "aarch64", expected: "faas-cli-darwin"},
	}

	for _, tt := range tests {
		t.Run(tt.expected+"/"+tt.arch, func(t *testing.T) {
			t.Parallel()

			name, err := platform.ArtifactName(platform.DefaultBaseName, tt.osFamily, tt.arch)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, name)
		})
	}
}

func TestArtifactName_Unsupported(t *testing.T) {
	t.Parallel()

	name, err := platform.ArtifactName(platform.DefaultBaseName, "BadType", "BadArch")
	require.ErrorIs(t, err, platform.ErrUnsupportedPlatform)
	assert.Empty(t, name)
	assert.Equal(t, "unsupported platform: BadType BadArch", err.Error())
}

func TestParseFamily(t *testing.T) {
	t.Parallel()

	assert.Equal(t, platform.Windows, platform.ParseFamily("Windows_NT"))
	assert.Equal(t, platform.Windows, platform.ParseFamily("windows"))
	assert.Equal(t, platform.Linux, platform.ParseFamily("Linux"))
	assert.Equal(t, platform.Darwin, platform.ParseFamily("darwin"))
	assert.Equal(t, platform.Other, platform.ParseFamily("plan9"))
	assert.Equal(t, platform.Other, platform.ParseFamily(""))
}

func TestKey_OS(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "BadType", platform.NewKey("BadType", "x").OS())
	assert.Equal(t, "Linux", platform.Key{Family: platform.Linux, Arch: "x64"}.OS())
	assert.Equal(t, "Darwin aarch64", platform.Key{Family: platform.Darwin, Arch: "aarch64"}.String())
}

func TestIsWindowsArtifact(t *testing.T) {
	t.Parallel()

	assert.True(t, platform.IsWindowsArtifact("faas-cli.exe"))
	assert.False(t, platform.IsWindowsArtifact("faas-cli"))
	assert.False(t, platform.IsWindowsArtifact("faas-cli-darwin"))
}

func TestDetect(t *testing.T) {
	t.Parallel()

	key := platform.Detect(t.Context())
	assert.Equal(t, platform.ParseFamily(runtime.GOOS), key.Family)
	assert.NotEmpty(t, key.Arch)
}

func TestNormalizeKernelArch(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"x86_64":  "x64",
		"aarch64": "aarch64",
		"arm64":   "aarch64",
		"armv6l":  "armv61",
		"armv7l":  "armv71",
		"riscv64": "",
		"":        "",
	}

	for in, expected := range tests {
		assert.Equal(t, expected, platform.NormalizeKernelArch(in), "machine %q", in)
	}
}

func TestNormalizeGoArch(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"amd64": "x64",
		"arm64": "aarch64",
		"arm":   "armv71",
		"mips":  "mips",
		"s390x": "s390x",
	}

	for in, expected := range tests {
		assert.Equal(t, expected, platform.NormalizeGoArch(in), "goarch %q", in)
	}
}
