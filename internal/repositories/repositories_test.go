package repositories

import (
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/zhuifan/internal/models"
	"github.com/desertthunder/zhuifan/internal/shared"
	tu "github.com/desertthunder/zhuifan/internal/testing"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

// fixedClock returns a clock starting at start that advances one minute per call.
func fixedClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(time.Minute)
		return t
	}
}

func newTestRepo(t *testing.T) *AnimeRepository {
	t.Helper()
	db := setupTestDB(t)
	t.Cleanup(func() { db.Close() })
	return NewAnimeRepository(db).WithClock(fixedClock(time.Date(2025, 10, 17, 20, 0, 0, 0, time.UTC)))
}

func mustCreate(t *testing.T, repo *AnimeRepository, d models.Draft) *models.Anime {
	t.Helper()
	a, err := repo.Create(d)
	if err != nil {
		t.Fatalf("failed to create anime: %v", err)
	}
	return a
}

func TestAnimeRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		repo := newTestRepo(t)
		a := mustCreate(t, repo, models.Draft{
			Title:          "Frieren",
			CurrentEpisode: 3,
			TotalEpisodes:  tu.IntPtr(28),
			Platform:       "哔哩哔哩",
			UpdateDay:      models.Friday,
		})

		if a.ID == 0 {
			t.Error("id should be set after creation")
		}
		if a.Status != models.StatusWatching {
			t.Errorf("expected default status 追番中, got %s", a.Status)
		}
		if a.TotalEpisodes == nil || *a.TotalEpisodes != 28 {
			t.Errorf("expected 28 total episodes, got %v", a.TotalEpisodes)
		}
		if a.CreatedAt != "2025-10-17T20:00:00" || a.UpdatedAt != a.CreatedAt {
			t.Errorf("unexpected timestamps %s %s", a.CreatedAt, a.UpdatedAt)
		}
		if a.Notes != "" || a.PlatformURL != "" {
			t.Errorf("expected empty optional text, got %q %q", a.Notes, a.PlatformURL)
		}
	})

	t.Run("Create Validation", func(t *testing.T) {
		tests := []struct {
			name  string
			draft models.Draft
			field string
		}{
			{"Missing Title", models.Draft{Platform: "优酷"}, "title is required"},
			{"Missing Platform", models.Draft{Title: "x"}, "platform is required"},
			{"Negative Episode", models.Draft{Title: "x", Platform: "优酷", CurrentEpisode: -1}, "current_episode"},
			{"Zero Total", models.Draft{Title: "x", Platform: "优酷", TotalEpisodes: tu.IntPtr(0)}, "total_episodes"},
			{"Unknown Status", models.Draft{Title: "x", Platform: "优酷", Status: "dropped"}, "status"},
			{"Unknown Day", models.Draft{Title: "x", Platform: "优酷", UpdateDay: "Monday"}, "update_day"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := newTestRepo(t)
				_, err := repo.Create(tt.draft)
				if !errors.Is(err, shared.ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				if !strings.Contains(err.Error(), tt.field) {
					t.Errorf("expected %q in %q", tt.field, err.Error())
				}
			})
		}
	})

	t.Run("Get", func(t *testing.T) {
		repo := newTestRepo(t)
		created := mustCreate(t, repo, models.Draft{Title: "Mushishi", Platform: "其他平台", Notes: "rewatch"})

		got, err := repo.Get(created.ID)
		if err != nil {
			t.Fatalf("failed to get anime: %v", err)
		}
		if got.Title != "Mushishi" || got.Platform != "其他平台" || got.Notes != "rewatch" {
			t.Errorf("unexpected anime %+v", got)
		}
		if got.TotalEpisodes != nil {
			t.Errorf("expected nil total, got %v", *got.TotalEpisodes)
		}

		if _, err := repo.Get(999); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Update", func(t *testing.T) {
		repo := newTestRepo(t)
		created := mustCreate(t, repo, models.Draft{Title: "Mob", Platform: "腾讯视频", Notes: "s1", TotalEpisodes: tu.IntPtr(12)})

		d := created.Draft()
		d.CurrentEpisode = 12
		d.Status = models.StatusCompleted
		d.Notes = ""
		d.TotalEpisodes = nil

		updated, err := repo.Update(created.ID, d)
		if err != nil {
			t.Fatalf("failed to update anime: %v", err)
		}
		if updated.CurrentEpisode != 12 || updated.Status != models.StatusCompleted {
			t.Errorf("unexpected anime %+v", updated)
		}
		if updated.Notes != "" || updated.TotalEpisodes != nil {
			t.Error("expected cleared notes and total")
		}
		if updated.CreatedAt != created.CreatedAt {
			t.Error("created_at should not change")
		}
		if updated.UpdatedAt <= created.UpdatedAt {
			t.Errorf("expected updated_at to advance, got %s <= %s", updated.UpdatedAt, created.UpdatedAt)
		}
	})

	t.Run("Update Missing", func(t *testing.T) {
		repo := newTestRepo(t)
		_, err := repo.Update(42, models.Draft{Title: "x", Platform: "优酷"})
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		repo := newTestRepo(t)
		created := mustCreate(t, repo, models.Draft{Title: "x", Platform: "优酷"})

		if err := repo.Delete(created.ID); err != nil {
			t.Fatalf("failed to delete anime: %v", err)
		}
		if _, err := repo.Get(created.ID); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
		if err := repo.Delete(created.ID); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound on second delete, got %v", err)
		}
	})

	t.Run("List Orders By Most Recent Update", func(t *testing.T) {
		repo := newTestRepo(t)
		first := mustCreate(t, repo, models.Draft{Title: "first", Platform: "优酷"})
		second := mustCreate(t, repo, models.Draft{Title: "second", Platform: "优酷"})

		if _, err := repo.Update(first.ID, first.Draft()); err != nil {
			t.Fatalf("failed to touch anime: %v", err)
		}

		animes, err := repo.List()
		if err != nil {
			t.Fatalf("failed to list animes: %v", err)
		}
		if len(animes) != 2 || animes[0].ID != first.ID || animes[1].ID != second.ID {
			t.Errorf("expected [first second], got %+v", animes)
		}
	})

	t.Run("List Empty", func(t *testing.T) {
		animes, err := newTestRepo(t).List()
		if err != nil {
			t.Fatalf("failed to list animes: %v", err)
		}
		if animes == nil || len(animes) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", animes)
		}
	})

	t.Run("ListReleasing", func(t *testing.T) {
		repo := newTestRepo(t)
		mustCreate(t, repo, models.Draft{Title: "Zeta", Platform: "优酷", UpdateDay: models.Sunday})
		mustCreate(t, repo, models.Draft{Title: "Alpha", Platform: "优酷", UpdateDay: models.Sunday})
		mustCreate(t, repo, models.Draft{Title: "Paused", Platform: "优酷", UpdateDay: models.Sunday, Status: models.StatusPaused})
		mustCreate(t, repo, models.Draft{Title: "Monday", Platform: "优酷", UpdateDay: models.Monday})
		mustCreate(t, repo, models.Draft{Title: "Unscheduled", Platform: "优酷"})

		animes, err := repo.ListReleasing(models.Sunday)
		if err != nil {
			t.Fatalf("failed to list releasing animes: %v", err)
		}

		var titles []string
		for _, a := range animes {
			titles = append(titles, a.Title)
		}
		if strings.Join(titles, ",") != "Alpha,Zeta" {
			t.Errorf("expected Alpha,Zeta got %v", titles)
		}
	})
}

func TestValidate(t *testing.T) {
	t.Run("Valid Draft", func(t *testing.T) {
		d := models.Draft{Title: "x", Platform: "优酷", Status: models.StatusPaused, UpdateDay: models.Wednesday}
		if err := Validate(d); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("Lists Every Failure", func(t *testing.T) {
		err := Validate(models.Draft{CurrentEpisode: -2})
		if err == nil {
			t.Fatal("expected error")
		}
		for _, want := range []string{"title is required", "platform is required", "current_episode must be at least 0"} {
			if !strings.Contains(err.Error(), want) {
				t.Errorf("expected %q in %q", want, err.Error())
			}
		}
	})
}
