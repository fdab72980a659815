// Package config loads the upload client's TOML configuration.
//
// # Resolution Order
//
// Values are layered, later layers winning:
//
//  1. Built-in defaults
//  2. The config file (~/.config/raceshot/config.toml unless a path is given)
//  3. The environment, after an optional .env file is loaded (LoadDotenv)
//  4. Command-line flags, applied by the caller
//
// A missing config file is not an error; defaults are used instead.
//
// # TOML Format
//
//	endpoint   = "https://api.raceshot.app/api/photographer/upload"
//	api_token  = "YOUR_API_TOKEN"
//	token_file = ".raceshot_token"
//	timeout    = "0s"
//	log_file   = "~/.local/state/raceshot/upload.log"
//
//	[photo]
//	event_id   = "00000"
//	bib_number = "123"
//	location   = "Finish line"
//	price      = 100
//	images     = ["assets/sample-image.jpg"]
//
// Every field is optional. A timeout of zero leaves the HTTP client without
// a deadline. The token file path is kept as written and expanded by the
// credential store; log_file is expanded here.
//
// # Environment
//
//   - RACESHOT_API_TOKEN: replaces api_token
//   - RACESHOT_ENDPOINT: replaces endpoint
//
// Blank values are ignored.
//
// # Error Handling
//
// Load returns errors for unreadable files, invalid TOML and invalid
// timeouts. The sample token YOUR_API_TOKEN is accepted by Load; callers
// check HasPlaceholderToken before sending anything.
package config
