package config

import (
	_ "embed"
)

//go:embed defaults/kiwi.yaml
var defaultKiwiYAML []byte

// Default returns the hardcoded configuration used when no file and no
// embedded default can be read.
func Default() Config {
	return Config{
		Levels: LevelsConfig{
			Root: "",
			List: "levels/list.yaml",
		},
		Runtime: RuntimeConfig{
			PollTimeoutMS: 100,
			PollRetries:   25,
		},
		Viewport: ViewportConfig{
			RunnerMargin: 5,
			EditorMargin: 2,
		},
		Editor: EditorConfig{
			NewWidth:  250,
			NewHeight: 250,
		},
		Storage: StorageConfig{
			DBPath: "~/.kiwi/progress.db",
		},
		Log: LogConfig{
			Path:  "~/.kiwi/kiwi.log",
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultKiwiYAML
}
