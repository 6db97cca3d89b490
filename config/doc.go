// Package config loads configuration for dikit composition roots.
//
// It uses Viper to read a YAML file, godotenv to load a .env file, and binds
// PREFIX_SECTION_KEY environment variables for every key declared with a
// mapstructure tag.
//
// # Usage
//
//	var cfg DemoConfig
//	err := config.LoadConfig("dikit-demo", &cfg)
//
// With the default prefix, DIKIT_DEMO_CONTAINER_DUPLICATE_POLICY=replace
// overrides container.duplicate_policy.
package config
