// Package scheduler implements the study-session scheduling core: the due
// predicate, category priority resolution, mastery-weighted sampling, and
// candidate set construction. Everything in this package is a pure,
// synchronous computation over already-fetched in-memory snapshots; data
// loading and transactions belong to the service layer.
package scheduler
