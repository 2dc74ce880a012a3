// Package tasks sequences writes against the anime store with the refresh that must follow them.
//
// # Core Operations
//
// [Tracker] wraps a [services.AnimeService] and exposes four operations:
//
//  1. [Tracker.Refresh] : reload the full list and today's releases
//  2. [Tracker.Create] : store a new anime, then refresh
//  3. [Tracker.Update] : replace an anime's fields, then refresh
//  4. [Tracker.Delete] : remove an anime after explicit confirmation, then refresh
//
// Each returns a [Snapshot]. A failed write returns an error and no snapshot.
// A refresh that fails after a successful write is logged and leaves the matching
// snapshot field nil so the caller keeps its previous cache.
//
// # Progress Reporting
//
// A Tracker built with [Tracker.WithProgress] emits a [ProgressUpdate] per step.
// Updates use select with default so a slow reader never blocks a request.
package tasks
