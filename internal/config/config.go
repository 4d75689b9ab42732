package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the preset tables the tool works from. The built-in defaults
// can be extended or overridden by a YAML file in the user's config
// directory.
type Config struct {
	ExtensionPresets map[string][]string `yaml:"extension_presets"`
	BaseExclusions   []string            `yaml:"base_exclusions"`
	PresetExclusions map[string][]string `yaml:"preset_exclusions"`
	PromptLibrary    map[string]string   `yaml:"prompt_library"`
}

// Default returns a Config populated with the built-in presets.
func Default() *Config {
	cfg := &Config{
		ExtensionPresets: make(map[string][]string, len(extensionPresets)),
		BaseExclusions:   make([]string, len(baseExclusions)),
		PresetExclusions: make(map[string][]string, len(presetExclusions)),
		PromptLibrary:    make(map[string]string, len(promptLibrary)),
	}
	for k, v := range extensionPresets {
		cfg.ExtensionPresets[k] = append([]string(nil), v...)
	}
	copy(cfg.BaseExclusions, baseExclusions)
	for k, v := range presetExclusions {
		cfg.PresetExclusions[k] = append([]string(nil), v...)
	}
	for k, v := range promptLibrary {
		cfg.PromptLibrary[k] = v
	}
	return cfg
}

// Load returns the built-in defaults merged with the user config file, if
// one exists. A missing file is not an error.
func Load() (*Config, error) {
	return load(userConfigFile())
}

func load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var user Config
	if err := yaml.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.merge(&user)
	return cfg, nil
}

// merge overlays user-provided tables onto the defaults. User entries win
// per key; list fields replace wholesale.
func (c *Config) merge(user *Config) {
	for k, v := range user.ExtensionPresets {
		c.ExtensionPresets[k] = v
	}
	if len(user.BaseExclusions) > 0 {
		c.BaseExclusions = user.BaseExclusions
	}
	for k, v := range user.PresetExclusions {
		c.PresetExclusions[k] = v
	}
	for k, v := range user.PromptLibrary {
		c.PromptLibrary[k] = v
	}
}

func userConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "prompter", "config.yaml")
}
