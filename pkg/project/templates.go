package project

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

//go:embed templates/*.yaml
var templateFS embed.FS

// Templates lists the built-in analysis templates by name
func Templates() []string {
	entries, err := fs.ReadDir(templateFS, "templates")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())))
	}
	return names
}

// Template loads a built-in template as a new project with no landmarks
// placed
func Template(name string) (*Project, error) {
	data, err := templateFS.ReadFile(path.Join("templates", strings.ToLower(name)+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("unknown template %q (available: %s)", name, strings.Join(Templates(), ", "))
	}
	p, err := DecodeYAML(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}
	return p, nil
}
