package config

func ValidateForRun(cfg *Config) error {
	if cfg.DatabasePath == "" {
		return ErrDatabasePathMissing
	}
	return nil
}
