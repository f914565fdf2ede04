// Package logging provides the structured logger used across catascii.
//
// It wraps log/slog with:
//   - JSON (default) or text output, to stdout unless another writer is given
//   - A level held in a slog.LevelVar, adjustable at runtime via SetLevel
//   - Automatic request_id on every record logged with a request context
//   - Masking of sensitive attributes such as api_key
//
// # Usage
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "json"})
//	if err != nil {
//	    return err
//	}
//	slog.SetDefault(logger.Slog())
//
//	ctx = logging.WithRequestID(ctx, "4f1c...")
//	slog.InfoContext(ctx, "image fetched", "bytes", n) // includes request_id
//
// Level expressions follow slog: "debug", "INFO", "warn", "error" and offsets
// such as "info+2" or "debug-4". Anything else is rejected by New.
package logging
