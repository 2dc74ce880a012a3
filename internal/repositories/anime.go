package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/zhuifan/internal/models"
	"github.com/desertthunder/zhuifan/internal/shared"
)

const animeColumns = `id, title, current_episode, total_episodes, platform, platform_url, status, notes, update_day, created_at, updated_at`

// AnimeRepository persists [models.Anime] records in the animes table.
type AnimeRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewAnimeRepository creates a new [AnimeRepository] with the given database connection
func NewAnimeRepository(db *sql.DB) *AnimeRepository {
	return &AnimeRepository{db: db, now: time.Now}
}

// WithClock returns a copy of r that stamps timestamps with now.
func (r *AnimeRepository) WithClock(now func() time.Time) *AnimeRepository {
	cp := *r
	cp.now = now
	return &cp
}

// Now returns the repository's current time.
func (r *AnimeRepository) Now() time.Time {
	return r.now()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnime(row rowScanner) (*models.Anime, error) {
	var (
		a           models.Anime
		total       sql.NullInt64
		platformURL sql.NullString
		notes       sql.NullString
		updateDay   sql.NullString
		status      string
	)

	err := row.Scan(&a.ID, &a.Title, &a.CurrentEpisode, &total, &a.Platform, &platformURL,
		&status, &notes, &updateDay, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if total.Valid {
		n := int(total.Int64)
		a.TotalEpisodes = &n
	}
	a.PlatformURL = platformURL.String
	a.Status = models.Status(status)
	a.Notes = notes.String
	a.UpdateDay = models.Weekday(updateDay.String)
	return &a, nil
}

// columnValues maps a draft onto the writable columns, storing "" as NULL for optional text.
func columnValues(d models.Draft) []any {
	status := d.Status
	if status == "" {
		status = models.StatusWatching
	}

	var total any
	if d.TotalEpisodes != nil {
		total = *d.TotalEpisodes
	}

	return []any{
		d.Title, d.CurrentEpisode, total, d.Platform, d.PlatformURL,
		string(status), nullString(d.Notes), nullString(string(d.UpdateDay)),
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Create validates and inserts draft, returning the stored record.
func (r *AnimeRepository) Create(d models.Draft) (*models.Anime, error) {
	if err := Validate(d); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	ts := formatTimestamp(r.now())
	query := `
		INSERT INTO animes (title, current_episode, total_episodes, platform, platform_url, status, notes, update_day, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	args := append(columnValues(d), ts, ts)
	result, err := r.db.Exec(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to insert anime: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted id: %w", err)
	}

	return r.Get(id)
}

// Get retrieves an anime by id.
func (r *AnimeRepository) Get(id int64) (*models.Anime, error) {
	query := `SELECT ` + animeColumns + ` FROM animes WHERE id = ?`

	a, err := scanAnime(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %d", shared.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query anime: %w", err)
	}
	return a, nil
}

// Update replaces every writable field of anime id with d and bumps updated_at.
func (r *AnimeRepository) Update(id int64, d models.Draft) (*models.Anime, error) {
	if err := Validate(d); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		UPDATE animes
		SET title = ?, current_episode = ?, total_episodes = ?, platform = ?, platform_url = ?,
		    status = ?, notes = ?, update_day = ?, updated_at = ?
		WHERE id = ?
	`

	args := append(columnValues(d), formatTimestamp(r.now()), id)
	result, err := r.db.Exec(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update anime: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%w: %d", shared.ErrNotFound, id)
	}

	return r.Get(id)
}

// Delete removes anime id.
func (r *AnimeRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM animes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete anime: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %d", shared.ErrNotFound, id)
	}

	return nil
}

// List returns every anime, most recently updated first.
func (r *AnimeRepository) List() ([]models.Anime, error) {
	return r.query(`SELECT `+animeColumns+` FROM animes ORDER BY updated_at DESC, id DESC`)
}

// ListReleasing returns the watching animes scheduled on day, ordered by title.
func (r *AnimeRepository) ListReleasing(day models.Weekday) ([]models.Anime, error) {
	query := `SELECT ` + animeColumns + ` FROM animes WHERE update_day = ? AND status = ? ORDER BY title ASC`
	return r.query(query, string(day), string(models.StatusWatching))
}

func (r *AnimeRepository) query(query string, args ...any) ([]models.Anime, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query animes: %w", err)
	}
	defer rows.Close()

	animes := []models.Anime{}
	for rows.Next() {
		a, err := scanAnime(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan anime: %w", err)
		}
		animes = append(animes, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return animes, nil
}
