// Package cli implements the stadium command-line interface.
//
// The root command starts the scoreboard monitor and HTTP API; subcommands
// cover operator chores: blinking the configured light fleet and validating
// configuration before a deploy. Configuration comes from the environment
// (optionally seeded from a .env file) with flag overrides for the JSON
// config files.
package cli
