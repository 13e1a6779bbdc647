// Package test provides fixture documents for tests that hit the database.
package test
