package config

import "sort"

// Built-in project presets. A preset bundles a set of file extensions with
// the directories that are usually noise for that kind of project.

var extensionPresets = map[string][]string{
	"None":                     {".py", ".js", ".ts", ".html", ".css", ".json"},
	"Academic Code":            {".py", ".ipynb", ".r", ".csv", ".txt"},
	"Android (Kotlin/Java)":    {".kt", ".java", ".xml"},
	"Backend (General)":        {".py", ".js", ".ts", ".java", ".c", ".cpp", ".cs", ".go", ".php"},
	"Bioinformatics":           {".py", ".ipynb", ".r", ".csv", ".tsv", ".txt"},
	"Data Science":             {".py", ".ipynb", ".r", ".csv", ".tsv", ".txt"},
	"Django":                   {".py", ".html", ".css", ".js"},
	"Frontend (JS/TS)":         {".html", ".css", ".js", ".ts", ".json"},
	"Machine Learning":         {".py", ".ipynb", ".csv", ".txt"},
	"React":                    {".js", ".jsx", ".ts", ".tsx", ".json", ".html", ".css"},
	"VueJS":                    {".html", ".css", ".vue", ".js", ".ts", ".json"},
	"Angular":                  {".html", ".css", ".ts", ".json"},
	"iOS (Swift)":              {".swift", ".h", ".m", ".mm", ".plist"},
	"Performance Optimization": {".py", ".js", ".ts", ".html", ".css", ".json"},
}

var baseExclusions = []string{
	".git",
	".gitignore",
	".pycache",
	"pycache",
	"__pycache__",
	"node_modules",
	".ipynb_checkpoints",
}

var presetExclusions = map[string][]string{
	"Django":                {"venv", "migrations"},
	"Machine Learning":      {"venv", ".ipynb_checkpoints"},
	"Frontend (JS/TS)":      {"node_modules"},
	"Backend (General)":     {"venv", "node_modules"},
	"VueJS":                 {"node_modules"},
	"Angular":               {"node_modules"},
	"React":                 {"node_modules"},
	"iOS (Swift)":           {"Pods"},
	"Android (Kotlin/Java)": {"build", ".gradle"},
	"Data Science":          {"venv", ".ipynb_checkpoints"},
}

var promptLibrary = map[string]string{
	"None (No Template)":       "",
	"Academic Code":            "Check academic code correctness. If needed, propose short fixes.",
	"Bioinformatics":           "Make succinct improvements for bioinformatics data processing or analysis.",
	"Bug Fix / Debug":          "You are a specialized debugging model. Identify and fix any bugs succinctly.",
	"Database Schema Advice":   "Suggest best-practice improvements for database-related code.",
	"ML Model Tuning":          "Optimize the ML code or pipeline with short recommended changes.",
	"Performance Optimization": "Optimize the code or architecture concisely for better performance.",
	"Refactoring":              "Refactor the code for clarity and maintainability.",
	"Security Audit":           "Review code for security issues. Provide short, direct mitigations.",
	"Testing Strategy":         "Propose a concise testing strategy for the given code or system.",
}

// ExtensionsFor returns the extension allow-list for a preset name. Unknown
// presets fall back to "None".
func (c *Config) ExtensionsFor(preset string) []string {
	exts, ok := c.ExtensionPresets[preset]
	if !ok {
		exts = c.ExtensionPresets["None"]
	}
	out := make([]string, len(exts))
	copy(out, exts)
	return out
}

// ExclusionsFor returns the base exclusion tokens plus the preset-specific
// ones, sorted and deduplicated.
func (c *Config) ExclusionsFor(preset string) []string {
	set := make(map[string]struct{})
	for _, e := range c.BaseExclusions {
		set[e] = struct{}{}
	}
	for _, e := range c.PresetExclusions[preset] {
		set[e] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for e := range set {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// TemplateFor returns the prompt template text for a library key, or "" for
// unknown keys.
func (c *Config) TemplateFor(key string) string {
	return c.PromptLibrary[key]
}

// PresetNames returns the known preset names in sorted order.
func (c *Config) PresetNames() []string {
	names := make([]string, 0, len(c.ExtensionPresets))
	for name := range c.ExtensionPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
