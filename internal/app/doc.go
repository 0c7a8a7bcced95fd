// Package app wires application dependencies for the CLI.
//
// It reads Config through viper, builds the tint logger, the file-backed
// stores and the auth service, exposing them via the Wire struct for
// commands to use.
package app
