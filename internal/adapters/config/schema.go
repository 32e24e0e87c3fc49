package config

// Kilnfile represents the structure of the kiln.yaml configuration file.
// Pointer fields distinguish "absent" from an explicit zero value; non-zero
// defaults survive partial configuration files.
type Kilnfile struct {
	PackagePath    string   `yaml:"package_path"`
	Product        string   `yaml:"product"`
	SDK            string   `yaml:"sdk"`
	Embedded       bool     `yaml:"embedded"`
	UnicodeLinking *bool    `yaml:"unicode_linking"`
	Configuration  string   `yaml:"configuration"`
	ExtraArgs      []string `yaml:"extra_args"`
	Toolchain      string   `yaml:"toolchain"`
	Optimizer      string   `yaml:"optimizer"`
	Optimize       *bool    `yaml:"optimize"`
	OptimizerArgs  []string `yaml:"optimizer_args"`
	Watch          []string `yaml:"watch"`
	DebounceMS     *int     `yaml:"debounce_ms"`
}
