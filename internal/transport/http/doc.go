// Package http contains the chi HTTP handlers of the results server.
package http
