package spec

// Config is the on-disk shape of .llamachat/config.yml.
type Config struct {
	Version  int            `yaml:"version"`
	Strict   bool           `yaml:"strict"`
	Runner   RunnerConfig   `yaml:"runner"`
	Messages MessagesConfig `yaml:"messages"`
}

// RunnerConfig selects the model runner executable and how its argv is built.
type RunnerConfig struct {
	Preset         string   `yaml:"preset"`
	Binary         string   `yaml:"binary"`
	Model          string   `yaml:"model"`
	Args           []string `yaml:"args"`
	Script         string   `yaml:"script"`
	MaxTokens      int      `yaml:"max_tokens"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
}

// MessagesConfig overrides the fixed human-readable response strings.
type MessagesConfig struct {
	EmptyPrompt  string `yaml:"empty_prompt"`
	Timeout      string `yaml:"timeout"`
	NotInstalled string `yaml:"not_installed"`
	ErrorPrefix  string `yaml:"error_prefix"`
}
