package domain

// Config mirrors ~/.config/cmdmenu/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	MaxCommands         int               `yaml:"max_commands"`
	ConfirmExecution    bool              `yaml:"confirm_execution"`
	SortMethod          SortMethod        `yaml:"sort_method"`
	ExcludedPatterns    []string          `yaml:"excluded_patterns"`
	CategoryFilters     []string          `yaml:"category_filters"`
	Shell               string            `yaml:"shell"`
	Security            SecuritySettings  `yaml:"security"`
	Execution           ExecutionSettings `yaml:"execution"`
}

// SecuritySettings defines guardrail behavior.
type SecuritySettings struct {
	Enabled   bool   `yaml:"enabled"`
	RulesFile string `yaml:"rules_file"`
}

// ExecutionSettings controls how selected commands run.
type ExecutionSettings struct {
	Shell         string `yaml:"shell"`
	ExpandAliases bool   `yaml:"expand_aliases"`
}

// ShowsCategory reports whether entries of the given category pass the
// configured filter. An empty filter set shows everything.
func (c Config) ShowsCategory(category string) bool {
	if len(c.CategoryFilters) == 0 {
		return true
	}
	for _, f := range c.CategoryFilters {
		if f == category {
			return true
		}
	}
	return false
}
