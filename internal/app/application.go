// Package app holds the Application struct shared across the process: the
// reference catalog, the match engine, and their collaborators, built once
// in cmd and threaded through explicitly.
package app

import (
	"log/slog"

	"reelmatch.org/internal/appconf"
	"reelmatch.org/internal/catalog"
	"reelmatch.org/internal/criteria"
	"reelmatch.org/internal/matcher"
	"reelmatch.org/matchdb"
)

// Application aggregates the process-wide dependencies.
type Application struct {
	Config   appconf.Config
	Logger   *slog.Logger
	Catalog  *catalog.Catalog
	Resolver *criteria.Resolver
	Engine   *matcher.Engine

	// MatchDB is nil when result persistence is disabled.
	MatchDB *matchdb.Client
}
