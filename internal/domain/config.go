package domain

// Config mirrors ~/.blackline/config.yaml.
type Config struct {
	ConfigFormatVersion string          `yaml:"config_format_version"`
	Black               BlackSettings   `yaml:"black"`
	Blackd              BlackdSettings  `yaml:"blackd"`
	Cache               CacheSettings   `yaml:"cache"`
	Project             ProjectSettings `yaml:"project"`
}

// BlackSettings captures formatter invocation options.
type BlackSettings struct {
	Command                 string   `yaml:"command"`
	LineLength              int      `yaml:"line_length"`
	Fast                    bool     `yaml:"fast"`
	SkipStringNormalization bool     `yaml:"skip_string_normalization"`
	Py36                    bool     `yaml:"py36"`
	TargetVersions          []string `yaml:"target_versions"`
	DefaultEncoding         string   `yaml:"default_encoding"`
	UsePreCommit            bool     `yaml:"use_precommit"`
}

// BlackdSettings configures the long-running formatting daemon.
type BlackdSettings struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

// CacheSettings bounds the formatted-content cache.
type CacheSettings struct {
	MaxEntries int `yaml:"max_entries"`
}

// ProjectSettings controls project-wide formatting.
type ProjectSettings struct {
	Include string `yaml:"include"`
	Exclude string `yaml:"exclude"`
}
