package prompts

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// embeds all .yaml files in the templates folder into the binary
//
//go:embed templates/*.yaml
var templateFS embed.FS

// PromptProvider is implemented by the prompt manager (and test doubles).
type PromptProvider interface {
	BuildPrompt(mode, variant, role, jobDescription string) (string, error)
	GetTemplates() []string
}

type PromptManager struct {
	prompts map[string]map[string]string // mode -> variant -> complete prompt
}

// loaded prompt template
type PromptTemplate struct {
	BasePrompt string            `yaml:"base_prompt"`
	Variants   map[string]string `yaml:"variants"`
}

// creates a new prompt manager and loads templates
func NewPromptManager() (*PromptManager, error) {
	pm := &PromptManager{
		prompts: make(map[string]map[string]string),
	}

	if err := pm.loadPrompts(); err != nil {
		return nil, fmt.Errorf("failed to load prompt templates: %w", err)
	}

	return pm, nil
}

// builds a prompt for the given mode, variant and session context
func (pm *PromptManager) BuildPrompt(mode, variant, role, jobDescription string) (string, error) {
	modePrompts, exists := pm.prompts[mode]
	if !exists {
		return "", fmt.Errorf("template not found for mode: %s", mode)
	}

	promptTemplate, exists := modePrompts[variant]
	if !exists {
		return "", fmt.Errorf("variant '%s' not found for mode '%s'", variant, mode)
	}

	// Simple string replacement instead of template execution
	result := strings.ReplaceAll(promptTemplate, "{{.Role}}", role)
	result = strings.ReplaceAll(result, "{{.JobDescription}}", jobDescription)

	return result, nil
}

// GetTemplates returns the loaded template modes, used by readiness checks.
func (pm *PromptManager) GetTemplates() []string {
	modes := make([]string, 0, len(pm.prompts))
	for mode := range pm.prompts {
		modes = append(modes, mode)
	}
	return modes
}

// loadPrompts loads all YAML prompt files from the embedded filesystem
func (pm *PromptManager) loadPrompts() error {
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

		var promptTemplate PromptTemplate
		if err := yaml.Unmarshal(data, &promptTemplate); err != nil {
			return fmt.Errorf("failed to parse template file %s: %w", entry.Name(), err)
		}

		name := strings.TrimSuffix(entry.Name(), ".yaml")
		pm.prompts[name] = make(map[string]string)

		for variant, variantPrompt := range promptTemplate.Variants {
			var fullPrompt strings.Builder
			if promptTemplate.BasePrompt != "" {
				fullPrompt.WriteString(strings.TrimSpace(promptTemplate.BasePrompt))
				fullPrompt.WriteString(" ")
			}
			fullPrompt.WriteString(strings.TrimSpace(variantPrompt))

			pm.prompts[name][variant] = fullPrompt.String()
		}
	}

	return nil
}
