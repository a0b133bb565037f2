// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports). Core services depend only on these
// interfaces; concrete providers, stores and indexes live in
// internal/adapters/driven.
package driven
