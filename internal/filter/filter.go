// Package filter derives the visible subset of the anime cache from a set of criteria.
//
// Criteria compose with AND. Each empty criterion is skipped, so a zero [Criteria] lets everything through.
// Results keep the input order.
package filter

import (
	"strings"

	"github.com/desertthunder/zhuifan/internal/models"
	"golang.org/x/text/cases"
)

// Criteria is one screen's filter state.
type Criteria struct {
	Status    models.Status
	Platform  string
	UpdateDay models.Weekday
	Query     string // case-insensitive substring of title, platform or notes
}

// IsZero reports whether no criterion is active.
func (c Criteria) IsZero() bool {
	return c == Criteria{}
}

// Summary renders the active criteria as "key=value" pairs for status lines.
func (c Criteria) Summary() string {
	var parts []string
	if c.Status != "" {
		parts = append(parts, "status="+string(c.Status))
	}
	if c.Platform != "" {
		parts = append(parts, "platform="+c.Platform)
	}
	if c.UpdateDay != "" {
		parts = append(parts, "day="+string(c.UpdateDay))
	}
	if c.Query != "" {
		parts = append(parts, "search="+c.Query)
	}
	if len(parts) == 0 {
		return "all"
	}
	return strings.Join(parts, " ")
}

// Apply returns the animes matching every active criterion, in their original order.
//
// Zero criteria return animes itself.
func Apply(animes []models.Anime, c Criteria) []models.Anime {
	if c.IsZero() {
		return animes
	}

	fold := cases.Fold()
	query := fold.String(c.Query)

	out := make([]models.Anime, 0, len(animes))
	for _, a := range animes {
		if c.Status != "" && a.Status != c.Status {
			continue
		}
		if c.Platform != "" && a.Platform != c.Platform {
			continue
		}
		if c.UpdateDay != "" && a.UpdateDay != c.UpdateDay {
			continue
		}
		if query != "" && !matchesQuery(fold, a, query) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// matchesQuery expects an already folded query. Empty notes never match.
func matchesQuery(fold cases.Caser, a models.Anime, query string) bool {
	if strings.Contains(fold.String(a.Title), query) {
		return true
	}
	if strings.Contains(fold.String(a.Platform), query) {
		return true
	}
	return a.Notes != "" && strings.Contains(fold.String(a.Notes), query)
}

// ByDay returns the animes scheduled on day. An empty day yields nothing.
func ByDay(animes []models.Anime, day models.Weekday) []models.Anime {
	if day == "" {
		return nil
	}
	return Apply(animes, Criteria{UpdateDay: day})
}
