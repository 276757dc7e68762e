// Package store defines the persistence interfaces and sentinel errors the
// rest of the application depends on. Implementations live under
// internal/platform; consumers never import a concrete store directly.
package store
