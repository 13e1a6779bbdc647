// Package mdbenv resolves MongoDB connection settings from the process environment.
//
// Read and Lookup return single values with optional fallbacks.
// Load parses the full Settings struct, seeding the environment from a .env file
// in the working directory if one exists.
// Settings.URI assembles the connection URI handed to the mdb package.
//
// Absent values are never an error: they resolve to their defaults (or to the
// empty string) and any resulting problem surfaces when the connection is attempted.
package mdbenv
