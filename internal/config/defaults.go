package config

const (
	defaultDataDir          = "./dragon_bugs"
	defaultOutputDir        = "./dist"
	defaultSubpathOutputDir = "./dist-github"
	defaultConcurrency      = 4
	defaultPort             = 3000
)

func applyDefaults(cfg *Config) {
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir
	}
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = defaultOutputDir
	}
	if cfg.Output.SubpathDirectory == "" {
		cfg.Output.SubpathDirectory = defaultSubpathOutputDir
	}
	if cfg.Output.Concurrency <= 0 {
		cfg.Output.Concurrency = defaultConcurrency
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
}
