// Package app is the composition root for both upload clients.
//
// # Configuration
//
// LoadConfig layers, in order: built-in defaults, the TOML config file, an
// optional .env file and the process environment. The CLI applies its flags
// on top through Overrides.
//
// # Interactive Client
//
// Run wires the pieces together and blocks in the terminal UI:
//
//	LoadConfig()          config file, .env, environment
//	OpenLog()             slog text handler on the log file
//	raceshot.NewClient()  multipart client for the configured endpoint
//	credential.Store      token file; Load prefills the form
//	prefs.Load()          theme and last form values
//	ui.Run()              blocks until quit or context cancellation
//
// The stored token wins over api_token from the config because it is the
// one a previous batch proved valid.
//
// # Command-line Client
//
// Upload runs one batch and writes the report to the given writer. Check
// does every local check Upload would do and sends nothing.
package app
