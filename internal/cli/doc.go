// Package cli turns command-line arguments into a report run: it layers flags
// over the loaded configuration, builds the fetcher and reporter, and maps
// failures to process exit codes.
package cli
