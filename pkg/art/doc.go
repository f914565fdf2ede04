// Package art fetches random cat images and turns them into pixels.
//
// A request flows through three steps:
//
//  1. Client.RandomImage queries the search endpoint and selects the last
//     descriptor of the returned JSON array.
//  2. Client.FetchImage downloads the raw image bytes, capped at a
//     configured size.
//  3. Decoder.Decode sniffs the format (JPEG, PNG, GIF, WebP, BMP) and
//     decodes the bytes after checking the pixel budget.
//
// Every failure is reported as one of the typed errors in errors.go, and
// Kind maps any error onto a stable label for logs and metrics.
package art
