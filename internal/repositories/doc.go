// Package repositories implements SQLite persistence for tracked animes.
//
// [AnimeRepository] validates drafts with go-playground/validator before writing,
// stamps created_at/updated_at with second-precision ISO-8601 timestamps, and
// reports missing ids as [shared.ErrNotFound].
package repositories
