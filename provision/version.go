package provision

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// Latest can be passed as version when the newest release should be provisioned.
const Latest = "latest"

var ErrInvalidVersion = errors.New("invalid version")

// ValidateVersion checks that version is either [Latest] or a semantic version,
// with or without the leading "v".
func ValidateVersion(version string) error {
	if version == "" {
		return fmt.Errorf("%w: version must be set", ErrInvalidVersion)
	}

	if version == Latest {
		return nil
	}

	if !semver.IsValid(canonical(version)) {
		return fmt.Errorf("%w: %q is not a semantic version", ErrInvalidVersion, version)
	}

	return nil
}

// canonical prefixes the version with "v", which is what semver expects.
func canonical(version string) string {
	return "v" + strings.TrimPrefix(version, "v")
}
