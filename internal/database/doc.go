// Package database opens the relational store and manages its schema.
//
// The store is PostgreSQL when DATABASE_URL is set and a local sqlite file
// otherwise. Schema changes are ordered, reversible migrations recorded in
// the schema_migrations table; each one runs in its own transaction.
package database
