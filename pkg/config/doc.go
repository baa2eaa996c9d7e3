// Package config loads apidash configuration from a YAML file and environment
// variables, tracking the source of every attribute. Environment variables
// take precedence over file values, which take precedence over defaults.
package config
