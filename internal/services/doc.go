// Package services defines the [AnimeService] interface and implements it over HTTP for the anime store.
//
// # Anime Store Client
//
// [AnimeClient] is a thin JSON client over the store's REST endpoints:
//
//	GET    /api/animes        → []models.Anime
//	GET    /api/animes/today  → models.TodayResponse
//	GET    /api/animes/{id}   → models.Anime
//	POST   /api/animes        → models.Anime
//	PUT    /api/animes/{id}   → models.Anime
//	DELETE /api/animes/{id}
//
// Every call is a single round trip bound to the caller's context. There are no retries.
//
// # Error Handling
//
// Failures fall into two groups:
//   - [shared.ErrTransport] : the request never completed (dial, reset, unreadable body)
//   - [StatusError] : the store answered with a non-2xx status; matches [shared.ErrAPIRequest],
//     and [shared.ErrNotFound] on 404. The raw body is kept for logs.
package services
