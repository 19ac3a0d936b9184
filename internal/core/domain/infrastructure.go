package domain

import "strings"

// platformNames are the runtime and plugin API names that the local platform always satisfies.
var platformNames = map[string]struct{}{
	"php":                  {},
	"hhvm":                 {},
	"composer-plugin-api":  {},
	"composer-runtime-api": {},
}

// IsInfrastructure reports whether name is a platform or virtual runtime package.
// Such names are never resolved against the upstream lock and never pinned.
func IsInfrastructure(name string) bool {
	if _, ok := platformNames[name]; ok {
		return true
	}
	return strings.HasPrefix(name, "ext-") || strings.HasPrefix(name, "lib-")
}
