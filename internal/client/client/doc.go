// Package client is the CLI's transport to the FlyScope accounts server.
//
// GRPCClient keeps the session token returned by Login and attaches it to
// every later call through a unary interceptor. Server statuses are mapped
// back to the sentinels of package common by their message, so callers can
// use errors.Is exactly as in local mode. Transport failures surface as
// ErrUnavailable.
package client
