package discovery

import (
	"strings"

	"runtests/internal/domain"
)

const (
	// TestSuffix marks a C++ test source file
	TestSuffix = "_test.cpp"
	// TargetSuffix replaces TestSuffix in make target names
	TargetSuffix = "_test"
	// ExeSuffix is appended to test targets on windows
	ExeSuffix = ".exe"
)

// MapName converts a test path into the make target that builds it.
// "src/test/unit/foo_test.cpp" becomes "test/unit/foo_test" on posix and
// "test/unit/foo_test.exe" on windows. Paths that are not test sources pass
// through untouched apart from the src/ prefix.
func MapName(path string, platform domain.Platform) string {
	name := path
	if strings.HasPrefix(name, "src") || strings.HasPrefix(name, "./src") {
		name = strings.Replace(name, "src/", "", 1)
	}
	if !strings.HasSuffix(name, TestSuffix) {
		return name
	}

	// a replacement can splice a new suffix together ("x_test.cpp.cpp_test.cpp")
	for strings.Contains(name, TestSuffix) {
		name = strings.ReplaceAll(name, TestSuffix, TargetSuffix)
	}
	if platform == domain.Windows {
		name += ExeSuffix
		name = strings.ReplaceAll(name, `\\`, "/")
		name = strings.ReplaceAll(name, `\`, "/")
	}
	return name
}

// MapNames applies MapName to every path
func MapNames(paths []string, platform domain.Platform) []string {
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, MapName(p, platform))
	}
	return names
}
