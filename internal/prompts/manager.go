package prompts

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// embeds all .yaml files in the templates folder at compile time
//
//go:embed templates/*.yaml
var templateFS embed.FS

// PromptProvider is what callers need from the prompt layer.
type PromptProvider interface {
	BuildPrompt(name string, data map[string]string) (string, error)
	SystemInstruction(name string) string
}

// loaded prompt template
type promptTemplate struct {
	System string `yaml:"system"`
	Prompt string `yaml:"prompt"`
}

type Manager struct {
	templates map[string]promptTemplate
}

// creates a new prompt manager and loads templates
func NewManager() (*Manager, error) {
	m := &Manager{templates: make(map[string]promptTemplate)}
	if err := m.loadTemplates(); err != nil {
		return nil, fmt.Errorf("failed to load prompt templates: %w", err)
	}
	return m, nil
}

// BuildPrompt fills a template's placeholders with the given data. Simple
// string replacement instead of template execution.
func (m *Manager) BuildPrompt(name string, data map[string]string) (string, error) {
	tmpl, exists := m.templates[name]
	if !exists {
		return "", fmt.Errorf("template not found: %s", name)
	}
	result := tmpl.Prompt
	for key, value := range data {
		result = strings.ReplaceAll(result, "{{."+key+"}}", value)
	}
	return result, nil
}

// SystemInstruction returns the system prompt for a template, empty when the
// template has none.
func (m *Manager) SystemInstruction(name string) string {
	return m.templates[name].System
}

func (m *Manager) loadTemplates() error {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return fmt.Errorf("failed to read templates directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		data, err := templateFS.ReadFile("templates/" + entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", entry.Name(), err)
		}

		var tmpl promptTemplate
		if err := yaml.Unmarshal(data, &tmpl); err != nil {
			return fmt.Errorf("failed to parse template file %s: %w", entry.Name(), err)
		}
		if strings.TrimSpace(tmpl.Prompt) == "" {
			return fmt.Errorf("template file %s has an empty prompt", entry.Name())
		}

		m.templates[strings.TrimSuffix(entry.Name(), ".yaml")] = tmpl
	}
	return nil
}
