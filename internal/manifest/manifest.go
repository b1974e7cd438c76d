package manifest

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"inspector-binding/binding"
	"inspector-binding/decor"
	"inspector-binding/graphpath"
	"inspector-binding/internal/diagnostic"
)

// File is a decoration manifest.
type File struct {
	Version string `yaml:"version"`

	// Engine overrides the binding rules; absent keys keep their defaults.
	Engine binding.Config `yaml:"engine"`

	Decorations []Entry `yaml:"decorations,omitempty"`

	// Shorthand maps paths to decoration lists, see Normalize.
	Shorthand map[string]string `yaml:"fields,omitempty"`
}

// Entry decorates the field at a path with a decoration list in tag syntax.
type Entry struct {
	Field   string `yaml:"field"`
	Inspect string `yaml:"inspect"`
}

// LoadFile loads and parses a manifest from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	f := File{Engine: binding.DefaultConfig()}

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}

	applyDefaults(&f)
	Normalize(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	def := binding.DefaultConfig()

	if f.Version == "" {
		f.Version = "1"
	}
	if f.Engine.TagKey == "" {
		f.Engine.TagKey = def.TagKey
	}
	if f.Engine.GetterPrefix == "" {
		f.Engine.GetterPrefix = def.GetterPrefix
	}
	if f.Engine.SetterPrefix == "" {
		f.Engine.SetterPrefix = def.SetterPrefix
	}
}

// Normalize expands Shorthand into Decorations entries, in path order, and
// clears it.
func Normalize(f *File) {
	if len(f.Shorthand) == 0 {
		return
	}

	paths := make([]string, 0, len(f.Shorthand))
	for p := range f.Shorthand {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	for _, p := range paths {
		f.Decorations = append(f.Decorations, Entry{Field: p, Inspect: f.Shorthand[p]})
	}
	f.Shorthand = nil
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// WriteFile writes a File to the given path.
func WriteFile(f *File, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}

	return nil
}

// Validate checks every entry without touching an object graph: paths must
// parse, decorations must parse, and the same decoration kind should not be
// declared twice on one field.
func Validate(f *File) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	if f.Version != "1" {
		diags.AddError(diagnostic.CodeBadDecoration, fmt.Sprintf("unsupported manifest version %q", f.Version), "", "")
	}

	seen := map[string]map[decor.KindEnum]bool{}
	for i, e := range f.Decorations {
		field := e.Field
		if field == "" {
			field = fmt.Sprintf("decorations[%d]", i)
		}

		if _, err := graphpath.Parse(e.Field); err != nil {
			diags.AddError(diagnostic.CodePathUnresolved, err.Error(), "", field)
			continue
		}

		ds, err := decor.Parse(e.Inspect)
		if err != nil {
			diags.AddError(diagnostic.CodeBadDecoration, err.Error(), "", field)
			continue
		}
		if len(ds) == 0 {
			diags.AddWarning(diagnostic.CodeBadDecoration, "no decorations declared", "", field)
		}

		if seen[e.Field] == nil {
			seen[e.Field] = map[decor.KindEnum]bool{}
		}
		for _, d := range ds {
			if seen[e.Field][d.Kind] {
				diags.AddWarning(diagnostic.CodeBadDecoration, fmt.Sprintf("%s declared more than once", d.Kind), "", field)
			}
			seen[e.Field][d.Kind] = true
		}
	}

	return diags
}

// Fields parses the entries into decorated fields, merging entries that
// name the same path. Entries that do not parse are skipped; Validate
// reports them.
func (f *File) Fields() []decor.Field {
	var (
		out   []decor.Field
		index = map[string]int{}
	)

	for _, e := range f.Decorations {
		if _, err := graphpath.Parse(e.Field); err != nil {
			continue
		}
		ds, err := decor.Parse(e.Inspect)
		if err != nil || len(ds) == 0 {
			continue
		}

		if i, ok := index[e.Field]; ok {
			out[i].Decorations = append(out[i].Decorations, ds...)
			continue
		}

		index[e.Field] = len(out)
		out = append(out, decor.Field{Path: e.Field, Decorations: ds})
	}

	return out
}
