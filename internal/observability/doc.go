// Package observability builds the service's structured logger.
//
// Every component receives a *zap.Logger through its constructor; nothing
// logs through a package-level global.
package observability
