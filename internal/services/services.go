// package services defines interface AnimeService for talking to the anime store over HTTP
package services

import (
	"context"

	"github.com/desertthunder/zhuifan/internal/models"
)

// AnimeService is the REST surface of the anime store as seen by the CLI and TUI.
type AnimeService interface {
	// List returns every tracked anime.
	List(ctx context.Context) ([]models.Anime, error)

	// ListToday returns the animes releasing on the store's current weekday.
	ListToday(ctx context.Context) (*models.TodayResponse, error)

	// Get returns one anime by id.
	Get(ctx context.Context, id int64) (*models.Anime, error)

	// Create stores a new anime and returns it with its assigned id.
	Create(ctx context.Context, draft models.Draft) (*models.Anime, error)

	// Update replaces every writable field of the anime with the given id.
	Update(ctx context.Context, id int64, draft models.Draft) (*models.Anime, error)

	// Delete removes the anime with the given id.
	Delete(ctx context.Context, id int64) error
}
