package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/zhuifan/internal/models"
)

var (
	_ list.Item = animeItem{}
)

// animeItem wraps [models.Anime] to implement [list.Item].
type animeItem struct {
	anime models.Anime
	today bool
}

func newAnimeItems(animes []models.Anime, now time.Time) []list.Item {
	items := make([]list.Item, len(animes))
	for i, a := range animes {
		items[i] = animeItem{anime: a, today: models.IsTodayUpdate(a.UpdateDay, now)}
	}
	return items
}

func (i animeItem) FilterValue() string { return i.anime.Title }

func (i animeItem) Title() string {
	title := fmt.Sprintf("%s  %s", i.anime.Title, statusLabel(i.anime.Status))
	if i.today {
		title += " " + styles.badge.Render("今日更新")
	}
	return title
}

func (i animeItem) Description() string {
	parts := []string{i.anime.Platform, "第 " + i.anime.Progress() + " 集"}
	if i.anime.UpdateDay != "" {
		parts = append(parts, "每"+string(i.anime.UpdateDay))
	}
	if i.anime.Notes != "" {
		parts = append(parts, i.anime.Notes)
	}
	return strings.Join(parts, " • ")
}

// newAnimeList builds a list whose own key bindings stay out of the way of the screen keys.
func newAnimeList() list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.DisableQuitKeybindings()
	l.KeyMap.NextPage = key.NewBinding(key.WithKeys("right", "pgdown"))
	l.KeyMap.PrevPage = key.NewBinding(key.WithKeys("left", "pgup"))
	l.KeyMap.GoToStart = key.NewBinding(key.WithKeys("home"))
	l.KeyMap.GoToEnd = key.NewBinding(key.WithKeys("end"))
	l.KeyMap.ShowFullHelp.SetEnabled(false)
	l.KeyMap.CloseFullHelp.SetEnabled(false)
	return l
}

// selectedAnime returns the highlighted record, if any.
func selectedAnime(l list.Model) (models.Anime, bool) {
	item, ok := l.SelectedItem().(animeItem)
	if !ok {
		return models.Anime{}, false
	}
	return item.anime, true
}
