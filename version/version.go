/*
 * Copyright (c) 2026 The Sonne Authors.
 * See the LICENSE file for more information.
 */

package version

import (
	"fmt"
)

// Version is the current application version.
var Version = NewVersion(0, 1, 0)

// SemanticVersion represents a semantic version value.
type SemanticVersion struct {
	major uint
	minor uint
	patch uint
}

// NewVersion initializes a new SemanticVersion instance.
func NewVersion(major, minor, patch uint) *SemanticVersion {
	return &SemanticVersion{
		major: major,
		minor: minor,
		patch: patch,
	}
}

// String returns a string representation of the semantic version.
func (v *SemanticVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.major, v.minor, v.patch)
}

// IsEqual returns true in case version instance is equal to the one passed as parameter.
func (v *SemanticVersion) IsEqual(v2 *SemanticVersion) bool {
	return v.compare(v2) == 0
}

// IsLess returns true in case version instance is less than the one passed as parameter.
func (v *SemanticVersion) IsLess(v2 *SemanticVersion) bool {
	return v.compare(v2) < 0
}

// IsLessOrEqual returns true in case version instance is less or equal than the one passed as parameter.
func (v *SemanticVersion) IsLessOrEqual(v2 *SemanticVersion) bool {
	return v.compare(v2) <= 0
}

// IsGreater returns true in case version instance is greater than the one passed as parameter.
func (v *SemanticVersion) IsGreater(v2 *SemanticVersion) bool {
	return v.compare(v2) > 0
}

// IsGreaterOrEqual returns true in case version instance is greater or equal than the one passed as parameter.
func (v *SemanticVersion) IsGreaterOrEqual(v2 *SemanticVersion) bool {
	return v.compare(v2) >= 0
}

func (v *SemanticVersion) compare(v2 *SemanticVersion) int {
	if v.major != v2.major {
		if v.major < v2.major {
			return -1
		}
		return 1
	}
	if v.minor != v2.minor {
		if v.minor < v2.minor {
			return -1
		}
		return 1
	}
	if v.patch != v2.patch {
		if v.patch < v2.patch {
			return -1
		}
		return 1
	}
	return 0
}
