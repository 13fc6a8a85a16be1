// Package config loads the f1nalyzer configuration.
//
// # Resolution Order
//
//  1. Defaults
//  2. ~/.config/f1nalyzer/config.toml (or the --config path), blank values ignored
//  3. F1_* environment variables, e.g. F1_MAP_API_KEY
//  4. Explicitly set command line flags
//
// A missing config file is not an error.
//
// # TOML Format
//
//	map_api_key = ""
//	driver_api_base = "http://localhost:5000/api"
//	circuit_api_base = "https://api.jolpi.ca/ergast/f1"
//	results_api_base = "http://localhost:5000/api"
//	openf1_api_base = "https://api.openf1.org/v1"
//	log_file = "~/.local/state/f1nalyzer/f1nalyzer.log"
//	log_level = "info"
//	listen_addr = "127.0.0.1:5000"
//
// Tilde expansion is applied to log_file.
//
// # Validation
//
// Validate runs once at start and reports every bad key together. Base URLs
// must be absolute http or https URLs and listen_addr must be host:port.
// An empty map_api_key is valid; circuit maps then show setup instructions.
package config
