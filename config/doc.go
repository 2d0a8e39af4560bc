// Package config loads lego configuration.
//
// Viper reads config.yml from the standard locations (or an explicit path),
// a .env file is loaded with godotenv, and environment variables override
// file values by their underscore-separated path:
//
//	QUERY_MAX_LIMIT=100 lego run ...
//
// # Usage
//
//	var cfg config.ServiceConfig
//	if err := config.LoadConfig("lego", &cfg); err != nil {
//	    return err
//	}
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config
