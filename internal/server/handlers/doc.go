// Package handlers contains the HTTP handlers of the live catalog server.
//
// Page handlers rescan the data directory on every request and render
// through the shared render.Pipeline. Failures are reported through the
// foundation/errors HTTPErrorAdapter as short plain-text bodies.
package handlers
