// Catascii serves random cat pictures rendered as ASCII art.
//
// Every GET / fetches a random image descriptor from The Cat API, downloads
// the image, converts it to HTML ASCII art and returns it. Any failure is
// logged and answered with a plain 500.
//
// Usage:
//
//	# Serve on 0.0.0.0:5000 with defaults
//	catascii serve
//
//	# Serve with a config file, reloading the log level when it changes
//	catascii serve --config config.yaml --watch
//
//	# Render a local file, or a random cat, to a file
//	catascii render photo.png --output cat.html
//	catascii render --output cat.html
//
//	# Show version information
//	catascii version
//
// Log verbosity comes from CATASCII_LOG_LEVEL (debug, info, warn, error,
// or an offset such as info+2). An invalid value aborts startup.
package main

func main() {
	Execute()
}
