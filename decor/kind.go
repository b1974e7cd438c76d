package decor

import "fmt"

//go:generate go tool stringer -type=KindEnum -linecomment -output=kind_string.go

// KindEnum names a decoration.
type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (invalid) value for KindEnum

	KindButton   // button
	KindProgress // progress
	KindList     // list
	KindStrings  // strings
	KindRange    // range
	KindInfo     // info
	KindEnumFlag // enumflag
	KindSubclass // subclass
)

var kinds = []KindEnum{KindButton, KindProgress, KindList, KindStrings, KindRange, KindInfo, KindEnumFlag, KindSubclass}

// ParseKind parses the textual form produced by KindEnum.String.
func ParseKind(s string) (KindEnum, error) {
	for _, k := range kinds {
		if k.String() == s {
			return k, nil
		}
	}

	return 0, fmt.Errorf("%w: unknown decoration %q", ErrBadDecoration, s)
}

// ModeEnum tells when a button may be pressed.
type ModeEnum string

const (
	ModeAlways   ModeEnum = "always"
	ModeEditor   ModeEnum = "editor"
	ModePlaymode ModeEnum = "playmode"
)

// Enabled reports whether the mode allows pressing under host.
func (m ModeEnum) Enabled(host Host) bool {
	switch m {
	case ModeAlways, "":
		return true
	case ModeEditor:
		return !host.Playing
	case ModePlaymode:
		return host.Playing
	default:
		return false
	}
}
