package config

// Config is the dispatchr tool configuration
type Config struct {
	Logging  Logging  `koanf:"logging"`
	Output   Output   `koanf:"output"`
	Manifest Manifest `koanf:"manifest"`
}

// Logging controls logger setup
type Logging struct {
	Verbosity int  `koanf:"verbosity"`
	File      bool `koanf:"file"`
}

// Output controls how results are rendered
type Output struct {
	Format string `koanf:"format"`
}

// Manifest locates the routing manifest
type Manifest struct {
	// Path is used as-is when set
	Path string `koanf:"path"`
	// SearchPaths are tried in order relative to the working directory
	SearchPaths []string `koanf:"search_paths"`
}

// ValidFormats lists accepted output.format values
var ValidFormats = []string{"auto", "term", "text", "json", "toml", "yaml"}
