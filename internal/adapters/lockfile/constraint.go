package lockfile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/uplock/internal/core/domain"
)

var (
	stabilityFlag = regexp.MustCompile(`(?i)@(dev|alpha|beta|rc|stable)\b`)
	twoPartTilde  = regexp.MustCompile(`~\s*v?(\d+)\.(\d+)(\.\d+|\.\*)?`)
	versionParts  = regexp.MustCompile(`^v?(\d+(?:\.\d+)*)(.*)$`)
	branchAlias   = regexp.MustCompile(`(?i)\bv?(\d+(?:\.\d+)*)\.x-dev\b`)
	preBound      = regexp.MustCompile(`\d-[0-9A-Za-z]`)
)

// branchAliasFill stands in for the open components of an "N.x-dev" branch alias.
const branchAliasFill = "9999999"

// MatchConstraint reports whether version satisfies a Composer constraint expression.
//
// Composer syntax is translated to semver constraints first. Matching ignores stability:
// a pre-release satisfies a range when its release version lies inside the range, so
// "1.3.0-RC1" matches "^1.2" but "2.0.0-RC1" does not match "<2.0". A bare version only
// matches itself, pre-release included. Versions that are not semantic (branch names such
// as "dev-main") only match "*" or the identical literal.
func MatchConstraint(version, constraint string) bool {
	c := normalizeConstraint(constraint)
	if c == "" || c == domain.AnyConstraint {
		return true
	}

	v, err := semver.NewVersion(normalizeVersion(version))
	if err != nil {
		return strings.EqualFold(c, strings.TrimSpace(version))
	}

	if exact, err := semver.NewVersion(c); err == nil {
		return v.Equal(exact)
	}

	constraints, err := semver.NewConstraint(c)
	if err != nil {
		return false
	}
	if v.Prerelease() == "" || preBound.MatchString(c) {
		return constraints.Check(v)
	}

	release, err := v.SetPrerelease("")
	if err != nil {
		return false
	}
	return constraints.Check(&release)
}

func normalizeConstraint(constraint string) string {
	c := strings.TrimSpace(constraint)

	// "dev-main as 1.0.x-dev" aliases resolve to the left-hand side.
	if left, _, ok := strings.Cut(c, " as "); ok {
		c = strings.TrimSpace(left)
	}

	c = stabilityFlag.ReplaceAllString(c, "")
	c = branchAlias.ReplaceAllStringFunc(c, expandBranchAlias)
	c = strings.ReplaceAll(c, "self.version", domain.AnyConstraint)
	c = strings.ReplaceAll(c, "||", "|")
	c = strings.ReplaceAll(c, "|", "||")
	c = twoPartTilde.ReplaceAllStringFunc(c, rewriteTilde)

	return strings.TrimSpace(c)
}

// rewriteTilde expands "~X.Y" to Composer's meaning, >=X.Y <X+1.0.
// Three-part tildes already agree with semver and are left alone.
func rewriteTilde(term string) string {
	m := twoPartTilde.FindStringSubmatch(term)
	if m == nil || m[3] != "" {
		return term
	}
	major, err := strconv.Atoi(m[1])
	if err != nil {
		return term
	}
	return fmt.Sprintf(">=%s.%s, <%d.0", m[1], m[2], major+1)
}

// expandBranchAlias maps "2.x-dev" to "2.9999999.9999999-dev" and "1.0.x-dev" to
// "1.0.9999999-dev".
func expandBranchAlias(alias string) string {
	m := branchAlias.FindStringSubmatch(alias)
	if m == nil {
		return alias
	}
	parts := strings.Split(m[1], ".")
	for len(parts) < 3 {
		parts = append(parts, branchAliasFill)
	}
	return strings.Join(parts[:3], ".") + "-dev"
}

// normalizeVersion trims the "v" prefix, expands "N.x-dev" branch aliases and drops a
// fourth numeric component.
func normalizeVersion(version string) string {
	version = strings.TrimSpace(version)
	if branchAlias.MatchString(version) {
		return expandBranchAlias(version)
	}
	m := versionParts.FindStringSubmatch(version)
	if m == nil {
		return version
	}
	parts := strings.Split(m[1], ".")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return strings.Join(parts, ".") + m[2]
}
