package config

import (
	"path/filepath"

	"git.home.luguber.info/inful/mirview/internal/foundation/errors"
)

// Validate checks a defaulted configuration.
func Validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return errors.ValidationError("server.port must be between 1 and 65535").
			WithContext("port", cfg.Server.Port).
			Build()
	}
	out := filepath.Clean(cfg.Output.Directory)
	if out == filepath.Clean(cfg.Output.SubpathDirectory) {
		return errors.ValidationError("output.directory and output.subpath_directory must differ").
			WithContext("directory", cfg.Output.Directory).
			Build()
	}
	if out == filepath.Clean(cfg.DataDir) {
		return errors.ValidationError("output.directory must not be the data directory").
			WithContext("directory", cfg.Output.Directory).
			Build()
	}
	return nil
}

// normalize case-folds the enumerations and rejects unknown values.
func normalize(cfg *Config) error {
	level, err := logLevelNormalizer.NormalizeWithError(string(cfg.Logging.Level))
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid logging.level").Build()
	}
	format, err := logFormatNormalizer.NormalizeWithError(string(cfg.Logging.Format))
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid logging.format").Build()
	}
	cfg.Logging.Level = level
	cfg.Logging.Format = format
	return nil
}
