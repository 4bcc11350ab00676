// Package utils exposes the ambient infrastructure shared by the command
// surface.
//
// It houses the ConfigurationLoader and LoggerFactory abstractions that
// integrate Viper, environment variables, and zap logging for the CLI.
package utils
