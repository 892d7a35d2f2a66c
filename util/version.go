package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrUnsupportedSchema is returned for payloads whose schema version falls outside the accepted range
var ErrUnsupportedSchema = errors.New("unsupported schema version")

// CheckSchemaVersion validates version against a semver constraint such as "^1"
func CheckSchemaVersion(version, constraint string) error {
	clean := strings.TrimPrefix(strings.TrimSpace(version), "v")
	if clean == "" {
		return fmt.Errorf("%w: missing version", ErrUnsupportedSchema)
	}

	v, err := semver.NewVersion(clean)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrUnsupportedSchema, version, err)
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid schema constraint %q: %w", constraint, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrUnsupportedSchema, v, constraint)
	}
	return nil
}
