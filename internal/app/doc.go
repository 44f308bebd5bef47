// Package app assembles the results server: configuration, logging,
// middleware chain, routes and graceful shutdown.
package app
