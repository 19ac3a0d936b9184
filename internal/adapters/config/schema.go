package config

// SchemaVersion is the only supported uplock.yaml version.
const SchemaVersion = "1"

// Uplockfile represents the structure of the uplock.yaml configuration file.
type Uplockfile struct {
	Version   string `yaml:"version"`
	LockFile  string `yaml:"lock-file"`
	AllowHTTP bool   `yaml:"allow-http"`
	Offline   bool   `yaml:"offline"`
	CacheDir  string `yaml:"cache-dir"`
	LogLevel  string `yaml:"log-level"`
}
