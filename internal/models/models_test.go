package models

import (
	"testing"
	"time"
)

func intPtr(n int) *int { return &n }

func TestFormFromAnime(t *testing.T) {
	t.Run("known platform is kept", func(t *testing.T) {
		f := FormFromAnime(Anime{ID: 1, Title: "葬送的芙莉莲", Platform: "哔哩哔哩", Status: StatusWatching})

		if f.Platform != "哔哩哔哩" {
			t.Errorf("expected platform 哔哩哔哩, got %q", f.Platform)
		}
		if f.CustomPlatform != "" {
			t.Errorf("expected empty custom platform, got %q", f.CustomPlatform)
		}
	})

	t.Run("unknown platform moves to custom", func(t *testing.T) {
		f := FormFromAnime(Anime{ID: 2, Title: "A", Platform: "CustomX"})

		if f.Platform != PlatformOther {
			t.Errorf("expected sentinel platform, got %q", f.Platform)
		}
		if f.CustomPlatform != "CustomX" {
			t.Errorf("expected custom platform CustomX, got %q", f.CustomPlatform)
		}
	})

	t.Run("round trip keeps unknown platform", func(t *testing.T) {
		a := Anime{
			ID:             3,
			Title:          "A",
			CurrentEpisode: 4,
			TotalEpisodes:  intPtr(12),
			Platform:       "CustomX",
			PlatformURL:    "https://example.com/a",
			Status:         StatusPaused,
			Notes:          "n",
			UpdateDay:      Friday,
		}

		d := FormFromAnime(a).Draft()
		want := a.Draft()
		if d.TotalEpisodes == nil || *d.TotalEpisodes != 12 {
			t.Fatalf("expected total episodes 12, got %v", d.TotalEpisodes)
		}
		d.TotalEpisodes, want.TotalEpisodes = nil, nil
		if d != want {
			t.Errorf("round trip changed the draft: %+v vs %+v", d, want)
		}
		if d.Platform != "CustomX" {
			t.Errorf("expected platform CustomX, got %q", d.Platform)
		}
	})

	t.Run("total episodes are copied, not shared", func(t *testing.T) {
		a := Anime{Title: "A", Platform: "优酷", TotalEpisodes: intPtr(24)}
		f := FormFromAnime(a)
		*f.TotalEpisodes = 1

		if *a.TotalEpisodes != 24 {
			t.Errorf("editing the form changed the record: %d", *a.TotalEpisodes)
		}
	})
}

func TestFormEffectivePlatform(t *testing.T) {
	tc := []struct {
		name     string
		platform string
		custom   string
		want     string
	}{
		{"known platform", "爱奇艺", "", "爱奇艺"},
		{"known platform ignores custom", "爱奇艺", "CustomX", "爱奇艺"},
		{"sentinel with custom", PlatformOther, "CustomX", "CustomX"},
		{"sentinel without custom", PlatformOther, "", PlatformOther},
		{"free text", "Netflix", "", "Netflix"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			f := Form{Platform: tt.platform, CustomPlatform: tt.custom}
			if got := f.EffectivePlatform(); got != tt.want {
				t.Errorf("EffectivePlatform() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormReset(t *testing.T) {
	f := Form{Title: "x", CurrentEpisode: 9, Platform: PlatformOther, CustomPlatform: "y", Status: StatusPaused}
	f.SetTotalEpisodes(3)
	f.Reset()

	if f.Title != "" || f.CustomPlatform != "" || f.TotalEpisodes != nil {
		t.Errorf("expected cleared form, got %+v", f)
	}
	if f.CurrentEpisode != 1 {
		t.Errorf("expected current episode 1, got %d", f.CurrentEpisode)
	}
	if f.Status != StatusWatching {
		t.Errorf("expected status %s, got %s", StatusWatching, f.Status)
	}
}

func TestSetTotalEpisodes(t *testing.T) {
	var f Form
	f.SetTotalEpisodes(12)
	if f.TotalEpisodes == nil || *f.TotalEpisodes != 12 {
		t.Fatalf("expected 12, got %v", f.TotalEpisodes)
	}
	f.SetTotalEpisodes(0)
	if f.TotalEpisodes != nil {
		t.Errorf("expected nil for 0, got %d", *f.TotalEpisodes)
	}
}

func TestWeekdayOf(t *testing.T) {
	// 2026-10-18 is a Sunday.
	base := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	want := []Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

	for i, w := range want {
		if got := WeekdayOf(base.AddDate(0, 0, i)); got != w {
			t.Errorf("day +%d: WeekdayOf() = %s, want %s", i, got, w)
		}
	}
}

func TestIsTodayUpdate(t *testing.T) {
	now := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)

	if !IsTodayUpdate(Sunday, now) {
		t.Error("expected Sunday to be today's update day")
	}
	if IsTodayUpdate(Monday, now) {
		t.Error("expected Monday not to match")
	}
	if IsTodayUpdate("", now) {
		t.Error("expected empty update day to never match")
	}
}

func TestEnumerations(t *testing.T) {
	if len(Weekdays()) != 7 || Weekdays()[0] != Monday {
		t.Errorf("unexpected weekdays %v", Weekdays())
	}
	if !StatusCompleted.Valid() || Status("done").Valid() {
		t.Error("status validity is wrong")
	}
	if !Friday.Valid() || Weekday("").Valid() {
		t.Error("weekday validity is wrong")
	}
	if !IsKnownPlatform("AGE动漫") || IsKnownPlatform(PlatformOther) {
		t.Error("platform membership is wrong")
	}

	p := Platforms()
	p[0] = "mutated"
	if Platforms()[0] != "腾讯视频" {
		t.Error("Platforms() must return a copy")
	}
}

func TestProgress(t *testing.T) {
	if got := (Anime{CurrentEpisode: 3}).Progress(); got != "3/?" {
		t.Errorf("expected 3/?, got %s", got)
	}
	if got := (Anime{CurrentEpisode: 3, TotalEpisodes: intPtr(12)}).Progress(); got != "3/12" {
		t.Errorf("expected 3/12, got %s", got)
	}
}
