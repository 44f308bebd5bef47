// Package files provides discovery of raw source files (CSV and Excel)
// under the configured data directories.
package files
