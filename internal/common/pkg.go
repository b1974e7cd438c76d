package common

import (
	"path"
	"reflect"
	"strings"
)

// UnknownStr is rendered for enum values without a known name.
const UnknownStr = "unknown"

// PkgAlias returns the package alias (last element of path) for a given package path.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}

// TypeName returns "alias.Name" for named types, stripping generic
// instantiation parameters, and t.String() for unnamed ones.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	name := t.Name()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}

	if name == "" {
		return t.String()
	}

	if alias := PkgAlias(t.PkgPath()); alias != "" {
		return alias + "." + name
	}

	return name
}
