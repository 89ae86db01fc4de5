package domain

import (
	"fmt"
	"runtime"
	"strings"
)

// Platform selects the make binary, shell and target naming rules
type Platform int

const (
	// Posix covers linux, darwin and the BSDs
	Posix Platform = iota
	// Windows uses mingw32-make, cmd.exe and .exe target names
	Windows
)

// DetectPlatform returns the platform of the running process
func DetectPlatform() Platform {
	if runtime.GOOS == "windows" {
		return Windows
	}
	return Posix
}

// ParsePlatform parses a platform name as given on the command line
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "posix", "linux", "darwin", "unix":
		return Posix, nil
	case "windows", "win":
		return Windows, nil
	}
	return Posix, fmt.Errorf("unknown platform %q (expected posix or windows)", s)
}

func (p Platform) String() string {
	if p == Windows {
		return "windows"
	}
	return "posix"
}

// MarshalText stores the platform by name in run reports
func (p Platform) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText is the inverse of MarshalText
func (p *Platform) UnmarshalText(text []byte) error {
	parsed, err := ParsePlatform(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
