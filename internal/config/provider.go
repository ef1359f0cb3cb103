package config

// Provider hands out a configuration snapshot for one processing call.
// Implementations must return a value the caller can use without
// worrying about concurrent edits.
type Provider interface {
	Snapshot() (*Config, error)
}

// FileProvider re-reads the configuration files on every call, so
// configuration edits apply to the next processed item.
type FileProvider struct{}

func (FileProvider) Snapshot() (*Config, error) {
	return Load()
}

// Static wraps a fixed configuration, mainly for tests.
type Static struct {
	Cfg *Config
}

func (s Static) Snapshot() (*Config, error) {
	if s.Cfg == nil {
		return Default(), nil
	}
	return s.Cfg, nil
}
