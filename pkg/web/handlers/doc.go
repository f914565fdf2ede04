// Package handlers contains the public HTTP handler that serves cat art.
package handlers
