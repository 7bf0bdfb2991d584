package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/argo-modular/pkg/errors"
)

// CheckConfigCompatibility checks whether a run configuration written for
// configVersion can be loaded by a library at libraryVersion.
//
// Compatibility Rules:
//   - An empty config version or "main" on either side skips the check
//   - Major versions must match
//   - The library must be at least the config version
//
// Examples:
//   - Library 1.2.0, Config 1.2.0 -> OK
//   - Library 1.4.2, Config 1.2.0 -> OK (newer library)
//   - Library 1.2.0, Config 1.3.0 -> ERROR (config needs a newer library)
//   - Library 2.0.0, Config 1.2.0 -> ERROR (major differs)
func CheckConfigCompatibility(libraryVersion, configVersion string) error {
	libraryVersion = strings.TrimPrefix(strings.TrimSpace(libraryVersion), "v")
	configVersion = strings.TrimPrefix(strings.TrimSpace(configVersion), "v")

	if configVersion == "" || libraryVersion == "main" || configVersion == "main" {
		return nil
	}

	librarySemver, err := semver.NewVersion(libraryVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid library version '%s'", libraryVersion)
	}

	configSemver, err := semver.NewVersion(configVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid config version '%s'", configVersion)
	}

	if librarySemver.Major() != configSemver.Major() {
		return errors.Newf(errors.ErrCodeVersionMismatch, "major version mismatch: library is %d.x.x but config requires %d.x.x",
			librarySemver.Major(), configSemver.Major())
	}

	// prereleases of the library still load configs of the same release
	constraint, err := semver.NewConstraint(fmt.Sprintf(">= %d.%d.0-0", configSemver.Major(), configSemver.Minor()))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidVersion, "invalid version constraint", err)
	}

	if !constraint.Check(librarySemver) {
		return errors.Newf(errors.ErrCodeVersionMismatch, "library %s is older than config version %s",
			librarySemver.String(), configSemver.String())
	}

	return nil
}
