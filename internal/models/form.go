package models

import "strconv"

// Form is the mutable draft behind the creation form and the edit modal.
//
// Platform holds either a known platform, [PlatformOther], or (for forms built by hand) any text.
// CustomPlatform is only read when Platform is [PlatformOther].
type Form struct {
	Title          string
	CurrentEpisode int
	TotalEpisodes  *int
	Platform       string
	CustomPlatform string
	PlatformURL    string
	Status         Status
	Notes          string
	UpdateDay      Weekday
}

// NewForm returns a form holding the defaults.
func NewForm() Form {
	return Form{CurrentEpisode: 1, Status: StatusWatching}
}

// Reset restores the defaults in place.
func (f *Form) Reset() {
	*f = NewForm()
}

// FormFromAnime copies a's editable fields into a new form.
//
// A platform outside the known set is moved to CustomPlatform and Platform becomes [PlatformOther].
func FormFromAnime(a Anime) Form {
	f := Form{
		Title:          a.Title,
		CurrentEpisode: a.CurrentEpisode,
		TotalEpisodes:  cloneInt(a.TotalEpisodes),
		PlatformURL:    a.PlatformURL,
		Status:         a.Status,
		Notes:          a.Notes,
		UpdateDay:      a.UpdateDay,
	}

	if IsKnownPlatform(a.Platform) {
		f.Platform = a.Platform
	} else {
		f.Platform = PlatformOther
		f.CustomPlatform = a.Platform
	}
	return f
}

// EffectivePlatform is the platform that will be submitted.
func (f Form) EffectivePlatform() string {
	if f.Platform == PlatformOther && f.CustomPlatform != "" {
		return f.CustomPlatform
	}
	return f.Platform
}

// Draft converts the form into a request body.
func (f Form) Draft() Draft {
	return Draft{
		Title:          f.Title,
		CurrentEpisode: f.CurrentEpisode,
		TotalEpisodes:  cloneInt(f.TotalEpisodes),
		Platform:       f.EffectivePlatform(),
		PlatformURL:    f.PlatformURL,
		Status:         f.Status,
		Notes:          f.Notes,
		UpdateDay:      f.UpdateDay,
	}
}

// SetTotalEpisodes stores n, with a non-positive n meaning unknown.
func (f *Form) SetTotalEpisodes(n int) {
	if n <= 0 {
		f.TotalEpisodes = nil
		return
	}
	f.TotalEpisodes = &n
}

func itoa(n int) string { return strconv.Itoa(n) }
