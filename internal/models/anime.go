package models

import (
	"slices"
	"time"
)

// Status is the watch state of a series.
type Status string

const (
	StatusWatching  Status = "追番中"
	StatusCompleted Status = "已完结"
	StatusPaused    Status = "暂停"
)

// Statuses returns every status in display order.
func Statuses() []Status {
	return []Status{StatusWatching, StatusCompleted, StatusPaused}
}

// Valid reports whether s is one of the fixed statuses.
func (s Status) Valid() bool {
	return slices.Contains(Statuses(), s)
}

// Weekday is the day a series releases new episodes. The zero value means no recurring schedule.
type Weekday string

const (
	Monday    Weekday = "周一"
	Tuesday   Weekday = "周二"
	Wednesday Weekday = "周三"
	Thursday  Weekday = "周四"
	Friday    Weekday = "周五"
	Saturday  Weekday = "周六"
	Sunday    Weekday = "周日"
)

// Weekdays returns the weekdays Monday first.
func Weekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// Valid reports whether d is a weekday label. The empty value is not valid.
func (d Weekday) Valid() bool {
	return slices.Contains(Weekdays(), d)
}

// WeekdayOf returns the label of t's weekday in t's location.
func WeekdayOf(t time.Time) Weekday {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// IsTodayUpdate reports whether a series scheduled on day releases on now's weekday.
func IsTodayUpdate(day Weekday, now time.Time) bool {
	if day == "" {
		return false
	}
	return day == WeekdayOf(now)
}

// PlatformOther is the sentinel platform meaning "use the custom platform text instead".
const PlatformOther = "其他"

var knownPlatforms = []string{"腾讯视频", "爱奇艺", "哔哩哔哩", "优酷", "百度云盘", "阿里云盘", "AGE动漫"}

// Platforms returns the known platforms in display order.
func Platforms() []string {
	return slices.Clone(knownPlatforms)
}

// IsKnownPlatform reports whether p is one of the fixed platforms.
func IsKnownPlatform(p string) bool {
	return slices.Contains(knownPlatforms, p)
}

// Anime is a tracked series as stored by the anime store.
type Anime struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	CurrentEpisode int     `json:"current_episode"`
	TotalEpisodes  *int    `json:"total_episodes"`
	Platform       string  `json:"platform"`
	PlatformURL    string  `json:"platform_url"`
	Status         Status  `json:"status"`
	Notes          string  `json:"notes"`
	UpdateDay      Weekday `json:"update_day"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

// Draft returns the writable fields of a.
func (a Anime) Draft() Draft {
	return Draft{
		Title:          a.Title,
		CurrentEpisode: a.CurrentEpisode,
		TotalEpisodes:  cloneInt(a.TotalEpisodes),
		Platform:       a.Platform,
		PlatformURL:    a.PlatformURL,
		Status:         a.Status,
		Notes:          a.Notes,
		UpdateDay:      a.UpdateDay,
	}
}

// Draft holds the writable fields of an [Anime]. It is the body of create and update requests.
type Draft struct {
	Title          string  `json:"title" validate:"required,max=200"`
	CurrentEpisode int     `json:"current_episode" validate:"gte=0"`
	TotalEpisodes  *int    `json:"total_episodes" validate:"omitempty,gt=0"`
	Platform       string  `json:"platform" validate:"required,max=100"`
	PlatformURL    string  `json:"platform_url" validate:"max=500"`
	Status         Status  `json:"status" validate:"omitempty,oneof=追番中 已完结 暂停"`
	Notes          string  `json:"notes" validate:"max=2000"`
	UpdateDay      Weekday `json:"update_day" validate:"omitempty,oneof=周一 周二 周三 周四 周五 周六 周日"`
}

// TodayResponse is returned by GET /api/animes/today.
type TodayResponse struct {
	Today  Weekday `json:"today"`
	Animes []Anime `json:"animes"`
}

// Progress renders "current/total", with "?" for an unknown total.
func (a Anime) Progress() string {
	total := "?"
	if a.TotalEpisodes != nil {
		total = itoa(*a.TotalEpisodes)
	}
	return itoa(a.CurrentEpisode) + "/" + total
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
