// Package platform maps the host OS family and CPU architecture to the name of
// the prebuilt release artifact.
package platform

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/host"
)

// DefaultBaseName is the artifact base name published on every release.
const DefaultBaseName = "faas-cli"

// WindowsExt is the suffix of the Windows artifact. It is also the marker the
// installer uses to skip the executable-bit fix-up.
const WindowsExt = ".exe"

// ErrUnsupportedPlatform is returned when no artifact is published for the
// OS family and architecture pair.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// Family is the operating system family as reported by the host.
type Family int

const (
	// Other covers every OS family without a published artifact.
	Other Family = iota
	Windows
	Linux
	Darwin
)

// String returns the release-index spelling of the family.
func (f Family) String() string {
	switch f {
	case Windows:
		return "Windows_NT"
	case Linux:
		return "Linux"
	case Darwin:
		return "Darwin"
	default:
		return "Other"
	}
}

// ParseFamily accepts both the os.type() spelling ("Windows_NT", "Linux",
// "Darwin") and GOOS values ("windows", "linux", "darwin"). Anything else
// is Other.
func ParseFamily(s string) Family {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "windows_nt", "windows":
		return Windows
	case "linux":
		return Linux
	case "darwin":
		return Darwin
	default:
		return Other
	}
}

// Key identifies the host platform. Arch uses the release vocabulary:
// "x64", "aarch64", "armv61", "armv71".
type Key struct {
	Family Family
	Arch   string
	// raw is the family string as given, kept so errors name what the caller
	// actually passed in.
	raw string
}

// NewKey builds a Key from an OS family string and an architecture.
func NewKey(osFamily, arch string) Key {
	return Key{Family: ParseFamily(osFamily), Arch: arch, raw: osFamily}
}

// OS returns the OS family as the caller spelled it, or the canonical name
// when the key was built from a Family value.
func (k Key) OS() string {
	if k.raw != "" {
		return k.raw
	}

	return k.Family.String()
}

// String renders "<os> <arch>".
func (k Key) String() string {
	return k.OS() + " " + k.Arch
}

// Suffix returns the artifact suffix for the key. The first matching rule
// wins, so the Windows suffix never combines with any other.
func (k Key) Suffix() (string, error) {
	switch k.Family {
	case Windows:
		return WindowsExt, nil
	case Linux:
		switch k.Arch {
		case "x64":
			return "", nil
		case "aarch64":
			return "-arm64", nil
		case "armv61", "armv71":
			return "-armhf", nil
		}
	case Darwin:
		return "-darwin", nil
	case Other:
	}

	return "", fmt.Errorf("%w: %s", ErrUnsupportedPlatform, k)
}

// ArtifactName returns base + suffix for the key.
func (k Key) ArtifactName(base string) (string, error) {
	suffix, err := k.Suffix()
	if err != nil {
		return "", err
	}

	return base + suffix, nil
}

// Suffix is a convenience wrapper around NewKey(osFamily, arch).Suffix().
func Suffix(osFamily, arch string) (string, error) {
	return NewKey(osFamily, arch).Suffix()
}

// ArtifactName is a convenience wrapper around NewKey(osFamily, arch).ArtifactName(base).
func ArtifactName(base, osFamily, arch string) (string, error) {
	return NewKey(osFamily, arch).ArtifactName(base)
}

// IsWindowsArtifact reports whether name is the Windows executable.
func IsWindowsArtifact(name string) bool {
	return strings.HasSuffix(name, WindowsExt)
}

// Detect returns the current platform. On Linux the kernel machine string is
// preferred over GOARCH because it distinguishes armv6 from armv7.
func Detect(ctx context.Context) Key {
	key := Key{Family: ParseFamily(runtime.GOOS)}

	if key.Family == Linux {
		if info, err := host.InfoWithContext(ctx); err == nil {
			if arch := normalizeKernelArch(info.KernelArch); arch != "" {
				key.Arch = arch

				return key
			}
		}
	}

	key.Arch = normalizeGoArch(runtime.GOARCH)

	return key
}

// normalizeKernelArch maps uname -m output to the release vocabulary.
// Unknown values return "".
func normalizeKernelArch(machine string) string {
	switch strings.ToLower(strings.TrimSpace(machine)) {
	case "x86_64", "amd64":
		return "x64"
	case "aarch64", "arm64":
		return "aarch64"
	case "armv6l":
		return "armv61"
	case "armv7l":
		return "armv71"
	default:
		return ""
	}
}

// normalizeGoArch maps GOARCH to the release vocabulary. Values without a
// mapping pass through unchanged so Suffix can reject them by name.
func normalizeGoArch(goarch string) string {
	switch goarch {
	case "amd64":
		return "x64"
	case "arm64":
		return "aarch64"
	case "arm":
		return "armv71"
	default:
		return goarch
	}
}
