// Package mdb provides infrastructure for using Mongo from Go.
// This package uses the zerolog logging package.
//
// The Access struct contains the current Mongo client and database objects.
// It is returned from the Connect() function which also pings the database.
// Connection settings come from the mdbenv package, either passed in via Config
// or loaded from the MONGODB_* environment variables.
// Visible variables can be used to change default timeouts.
// The Access object provides a Disconnect() method suitable for use with defer.
//
// NewClient is the bare connection factory: one attempt to connect and ping,
// returning the driver client or the error.
//
// In addition, the Access object can be used to construct collections.
// The Collection() call takes a collection name, an optional validation JSON string,
// and optional list of "finisher" functions intended to create indices
// or otherwise configure the collection after it is created.
// Collections support upserts, bulk inserts, counts, paged queries, and text searches.
//
// The AccessTestSuite struct is provided to wrap database connect/disconnect
// for use in tests that actually hit the database.
// The use of '//go:build database' separates these so that they are only run
// when using 'go test -tags database', without this tag only unit tests are run.
// Tests tagged 'integration' start their own server via testcontainers.
package mdb
