// Package config loads typed configuration structs from environment
// variables, with optional .env file support for local development.
//
// Structs declare their surface with `env` tags from
// github.com/caarlos0/env:
//
//	type ServerConfig struct {
//		Addr string `env:"SERVER_ADDR" envDefault:":8080"`
//	}
//
//	var cfg ServerConfig
//	config.MustLoad(&cfg)
//
// Load returns an error; MustLoad panics, for configuration the process
// cannot run without.
package config
