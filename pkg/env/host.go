package env

import (
	"fmt"
	"os"
	"strings"
)

// DefaultOSReleasePath is the standard location of the OS identity file.
const DefaultOSReleasePath = "/etc/os-release"

// Host describes the operating system identity of the machine we are
// provisioning, read once from the os-release file.
type Host struct {
	Name       string
	Version    string
	PrettyName string
}

// ReadOSRelease reads and parses the os-release file at the given path.
// A missing file is reported as-is so callers can treat it as an
// unsupported platform.
func ReadOSRelease(path string) (*Host, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read OS identity file %s: %w", path, err)
	}

	host := &Host{}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		value = strings.Trim(value, `"'`)

		switch key {
		case "NAME":
			host.Name = value
		case "VERSION_ID":
			host.Version = value
		case "PRETTY_NAME":
			host.PrettyName = value
		}
	}

	if host.Name == "" {
		return nil, fmt.Errorf("OS identity file %s does not declare a NAME", path)
	}

	return host, nil
}

// IsFamily reports whether the host's declared name contains the given
// distribution family token (case-insensitive).
func (h *Host) IsFamily(token string) bool {
	return strings.Contains(strings.ToLower(h.Name), strings.ToLower(token))
}

// Describe returns a short human-readable host description.
func (h *Host) Describe() string {
	if h.PrettyName != "" {
		return h.PrettyName
	}
	if h.Version != "" {
		return h.Name + " " + h.Version
	}
	return h.Name
}

// IsPrivileged reports whether the current process runs as the superuser.
// Privileged operations are escalated per-step instead, so a privileged
// invocation is a usage error.
func IsPrivileged() bool {
	return os.Geteuid() == 0
}
