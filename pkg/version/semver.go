package version

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var semVerPattern = regexp.MustCompile(`^v?(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-([0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*))?(?:\+([0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*))?$`)

// SemVer is a parsed release version of the binary.
type SemVer struct {
	Major int64
	Minor int64
	Patch int64

	PreRelease string
	Build      string
}

// Parse parses a semantic version with an optional "v" prefix.
func Parse(raw string) (SemVer, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return SemVer{}, errors.New("version cannot be empty")
	}
	matches := semVerPattern.FindStringSubmatch(raw)
	if matches == nil {
		return SemVer{}, fmt.Errorf("invalid semantic version: %q", raw)
	}

	var numbers [3]int64
	for i := range numbers {
		n, err := strconv.ParseInt(matches[i+1], 10, 64)
		if err != nil {
			return SemVer{}, fmt.Errorf("invalid semantic version %q: %w", raw, err)
		}
		numbers[i] = n
	}
	for _, id := range strings.Split(matches[4], ".") {
		if len(id) > 1 && id[0] == '0' && isNumeric(id) {
			return SemVer{}, fmt.Errorf("invalid prerelease identifier %q: leading zero", id)
		}
	}

	return SemVer{
		Major:      numbers[0],
		Minor:      numbers[1],
		Patch:      numbers[2],
		PreRelease: matches[4],
		Build:      matches[5],
	}, nil
}

// IsValid reports whether raw parses as a semantic version.
func IsValid(raw string) bool {
	_, err := Parse(raw)
	return err == nil
}

func (v SemVer) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.PreRelease != "" {
		s += "-" + v.PreRelease
	}
	if v.Build != "" {
		s += "+" + v.Build
	}
	return s
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
