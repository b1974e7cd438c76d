// Package decor evaluates inspector decorations.
//
// A decoration is declared on a field with a struct tag
//
//	Health float64 `inspect:"progress:max=MaxHealth,label=HP;info:text=Regenerates"`
//
// or with a manifest entry using the same syntax. Evaluating a decoration
// against a live object graph produces a render model: the numbers, labels
// and callbacks a widget needs, or a warning explaining what is wrong.
package decor

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"inspector-binding/internal/common"
	"inspector-binding/internal/diagnostic"
)

// ErrBadDecoration is returned for decorations that cannot be parsed.
var ErrBadDecoration = errors.New("malformed decoration")

// Decoration is one parsed decoration of a field.
type Decoration struct {
	Kind KindEnum
	Args map[string]string
}

// Arg returns the argument key, or def when it is absent or blank.
func (d Decoration) Arg(key, def string) string {
	if v := strings.TrimSpace(d.Args[key]); v != "" {
		return v
	}

	return def
}

// String renders d in tag syntax with sorted arguments.
func (d Decoration) String() string {
	keys := make([]string, 0, len(d.Args))
	for k := range d.Args {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var sb strings.Builder
	sb.WriteString(d.Kind.String())
	for i, k := range keys {
		if i == 0 {
			sb.WriteByte(':')
		} else {
			sb.WriteByte(',')
		}
		sb.WriteString(k + "=" + d.Args[k])
	}

	return sb.String()
}

// required lists the arguments each kind cannot do without.
var required = map[KindEnum][]string{
	KindButton:   {"method"},
	KindProgress: {"max"},
	KindList:     {"values"},
	KindStrings:  {"from"},
	KindRange:    {"min", "max"},
	KindInfo:     {"text"},
}

// Parse parses a decoration list: "kind:key=value,...;kind2:...".
// Keys are case-insensitive; a bare key means "true".
func Parse(tag string) ([]Decoration, error) {
	var out []Decoration

	for part := range strings.SplitSeq(tag, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, rest, _ := strings.Cut(part, ":")
		kind, err := ParseKind(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}

		d := Decoration{Kind: kind, Args: map[string]string{}}
		for arg := range strings.SplitSeq(rest, ",") {
			arg = strings.TrimSpace(arg)
			if arg == "" {
				continue
			}

			key, value, found := strings.Cut(arg, "=")
			key = strings.ToLower(strings.TrimSpace(key))
			if key == "" {
				return nil, fmt.Errorf("%w: %s: empty argument name", ErrBadDecoration, kind)
			}
			if !found {
				value = "true"
			}
			if _, dup := d.Args[key]; dup {
				return nil, fmt.Errorf("%w: %s: duplicate argument %q", ErrBadDecoration, kind, key)
			}
			d.Args[key] = strings.TrimSpace(value)
		}

		for _, key := range required[kind] {
			if d.Arg(key, "") == "" {
				return nil, fmt.Errorf("%w: %s: missing %q", ErrBadDecoration, kind, key)
			}
		}

		out = append(out, d)
	}

	return out, nil
}

// Field is a decorated field, addressed by its path from the root type.
type Field struct {
	Path        string
	Decorations []Decoration
}

// Collect gathers the decorations declared with tagKey on t and on the
// struct-valued fields nested in it. Malformed tags are reported and skipped.
func Collect(t reflect.Type, tagKey string) ([]Field, diagnostic.Diagnostics) {
	var (
		fields []Field
		diags  diagnostic.Diagnostics
	)

	collect(common.Deref(t), "", tagKey, &fields, &diags, map[reflect.Type]bool{})

	return fields, diags
}

func collect(t reflect.Type, prefix, tagKey string, fields *[]Field, diags *diagnostic.Diagnostics, seen map[reflect.Type]bool) {
	if t == nil || t.Kind() != reflect.Struct || seen[t] {
		return
	}
	seen[t] = true
	defer delete(seen, t)

	for i := range t.NumField() {
		sf := t.Field(i)
		path := sf.Name
		if prefix != "" {
			path = prefix + "." + sf.Name
		}

		if tag, ok := sf.Tag.Lookup(tagKey); ok {
			decorations, err := Parse(tag)
			if err != nil {
				diags.AddError(diagnostic.CodeBadDecoration, err.Error(), common.TypeName(t), path)
			} else if len(decorations) > 0 {
				*fields = append(*fields, Field{Path: path, Decorations: decorations})
			}
		}

		if sf.Type.Kind() == reflect.Struct {
			collect(sf.Type, path, tagKey, fields, diags, seen)
		}
	}
}
