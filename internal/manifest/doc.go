// Package manifest loads decoration manifests: YAML files declaring
// decorations for fields of an object graph without touching its types.
//
//	version: "1"
//	engine:
//	  suggestions: 5
//	decorations:
//	  - field: Items[0].Value
//	    inspect: progress:max=Max
//	fields:
//	  Label: info:text=Shown in the title bar
//
// The fields map is shorthand for decorations entries; it is expanded by
// Normalize, after the explicit entries.
package manifest
