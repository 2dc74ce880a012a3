// Package server provides the HTTP side of the anime store: routing, middleware and the REST handlers.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Middleware
//
//   - [RequestID] : tags every request and response with an X-Request-ID (google/uuid)
//   - [Logging] : one structured log line per request (charmbracelet/log)
//   - [RateLimit] : per-client token buckets (golang.org/x/time/rate), 429 when exhausted
//   - [CORS] : cross-origin headers for browser clients (go-chi/cors)
//
// # Anime Handler
//
// [AnimeHandler] serves the /api/animes routes against an [AnimeStore]. Request bodies are
// validated before they reach the store, and every error response is a JSON object with a
// single "detail" field:
//
//	GET    /api/animes          list, most recently updated first
//	GET    /api/animes/today    {"today": "周五", "animes": [...]}
//	GET    /api/animes/{id}     one record
//	POST   /api/animes          create
//	PUT    /api/animes/{id}     replace writable fields
//	DELETE /api/animes/{id}     {"message": "deleted"}
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
