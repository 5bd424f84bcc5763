// Package prompt loads TOML persona templates that override the built-in
// system prompt for AI commands.
package prompt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Prompt is the structure of a TOML prompt file. The {{input}} placeholder
// in either field is replaced with the passage text.
type Prompt struct {
	System string  `toml:"system"`
	User   string  `toml:"user"`
	Model  *string `toml:"model,omitempty"` // optional "provider:model" override
}

// LoadPrompt decodes one prompt file.
func LoadPrompt(filePath string) (*Prompt, error) {
	var p Prompt
	if _, err := toml.DecodeFile(filePath, &p); err != nil {
		return nil, fmt.Errorf("decoding prompt file: %w", err)
	}
	return &p, nil
}

// Find locates a prompt template by name across the configured directories.
// Later directories take precedence over earlier ones.
func Find(name string, promptDirs []string) (*Prompt, error) {
	file := name
	if !strings.HasSuffix(file, ".toml") {
		file += ".toml"
	}

	var path string
	for _, dir := range promptDirs {
		candidate := filepath.Join(dir, file)
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}
	if path == "" {
		return nil, fmt.Errorf("prompt file %q not found in any of the prompt directories: %v", file, promptDirs)
	}
	return LoadPrompt(path)
}

// Expand substitutes the {{input}} placeholder in a template field.
func Expand(template, input string) string {
	return strings.ReplaceAll(template, "{{input}}", input)
}
