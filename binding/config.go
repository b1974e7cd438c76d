package binding

import (
	"inspector-binding/member"
)

// DefaultTagKey is the struct tag carrying decorations.
const DefaultTagKey = "inspect"

// Config holds the binding rules shared by every lookup of an Engine.
type Config struct {
	// TagKey is the struct tag key decorations are read from.
	TagKey string `yaml:"tag_key"`
	// GetterPrefix marks property getters ("Get" in GetHealth).
	GetterPrefix string `yaml:"getter_prefix"`
	// SetterPrefix marks property setters ("Set" in SetHealth).
	SetterPrefix string `yaml:"setter_prefix"`
	// IncludeUnexported lets sources name unexported fields.
	IncludeUnexported bool `yaml:"include_unexported"`
	// Suggestions caps the "did you mean" list of NotFound results.
	Suggestions int `yaml:"suggestions"`
}

// DefaultConfig returns the rules used when none are given.
func DefaultConfig() Config {
	mc := member.DefaultConfig()

	return Config{
		TagKey:            DefaultTagKey,
		GetterPrefix:      mc.GetterPrefix,
		SetterPrefix:      mc.SetterPrefix,
		IncludeUnexported: mc.IncludeUnexported,
		Suggestions:       3,
	}
}

func (c Config) member() member.Config {
	return member.Config{
		GetterPrefix:      c.GetterPrefix,
		SetterPrefix:      c.SetterPrefix,
		IncludeUnexported: c.IncludeUnexported,
	}
}
