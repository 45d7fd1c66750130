package helper

import (
	"path"
	"strings"
	"time"

	"festival_portal/model"
)

const (
	DefaultDirector    = "Unknown"
	DefaultCountry     = "Unknown"
	DefaultDuration    = 120
	placeholderDocSize = 0
)

// ConvertLegacyToEnhanced normalizes a legacy flat film record into the
// enhanced schema. Total: no legacy record is rejected. Array fields win over
// their singular variants; absent values get the documented defaults.
func ConvertLegacyToEnhanced(legacy model.LegacyFilmRecord) model.EnhancedFilmRecord {
	enhanced := model.EnhancedFilmRecord{
		ID:             legacy.ID,
		SchemaVersion:  model.EnhancedSchemaVersion,
		Title:          coalesce(legacy.TitleEn, "Untitled"),
		TitleTh:        legacy.TitleTh,
		Synopsis:       legacy.Synopsis,
		Genres:         coalesceList(legacy.Genres, legacy.Genre),
		Country:        firstOr(legacy.Countries, coalesce(legacy.Country, DefaultCountry)),
		Language:       coalesceList(legacy.Languages, legacy.Language),
		Duration:       legacy.Duration,
		ReleaseYear:    legacy.ReleaseYear,
		Director:       coalesce(legacy.Director, DefaultDirector),
		TargetAudience: legacy.TargetAudience,
		Status:         "published",
		CreatedAt:      legacy.CreatedAt,
	}
	if enhanced.Duration <= 0 {
		enhanced.Duration = DefaultDuration
	}
	if enhanced.ReleaseYear <= 0 {
		enhanced.ReleaseYear = time.Now().Year()
	}

	enhanced.Cast = CastFromActors(legacy.MainActors)
	enhanced.Crew = CrewFromNames(legacy.Director, legacy.Producer)
	enhanced.Files = filesFromLegacy(legacy)
	enhanced.Screenings = screeningsFromLegacy(legacy)
	return enhanced
}

// DeriveGuests builds the guest list synced into the film's subcollection.
// An explicit non-empty guest list wins; otherwise guests are extracted from
// the flat director/producer/actor fields. May be empty.
func DeriveGuests(input model.FilmInput) []model.GuestInput {
	if len(input.Guests) > 0 {
		return input.Guests
	}
	var guests []model.GuestInput
	if name := strings.TrimSpace(input.Director); name != "" {
		guests = append(guests, model.GuestInput{Name: name, Role: "Director"})
	}
	if name := strings.TrimSpace(input.Producer); name != "" {
		guests = append(guests, model.GuestInput{Name: name, Role: "Producer"})
	}
	for _, actor := range splitNames(input.MainActors) {
		guests = append(guests, model.GuestInput{Name: actor, Role: "Actor"})
	}
	return guests
}

// CastFromActors splits a comma-separated actor string into cast entries with
// role "Actor".
func CastFromActors(mainActors string) []model.CastMember {
	names := splitNames(mainActors)
	cast := make([]model.CastMember, 0, len(names))
	for _, name := range names {
		cast = append(cast, model.CastMember{Name: name, Role: "Actor"})
	}
	return cast
}

// CrewFromNames always yields at least a director entry; a blank director
// becomes the documented default name.
func CrewFromNames(director, producer string) []model.CrewMember {
	crew := []model.CrewMember{
		{Name: coalesce(director, DefaultDirector), Role: "Director"},
	}
	if producer := strings.TrimSpace(producer); producer != "" {
		crew = append(crew, model.CrewMember{Name: producer, Role: "Producer"})
	}
	return crew
}

func filesFromLegacy(legacy model.LegacyFilmRecord) model.FilmFiles {
	files := model.FilmFiles{}
	if legacy.PosterURL != "" {
		files.Poster = WrapFileURL(legacy.PosterURL, "image")
	}
	if legacy.TrailerURL != "" {
		files.Trailer = WrapFileURL(legacy.TrailerURL, "video")
	}
	for _, u := range legacy.GalleryUrls {
		if u == "" {
			continue
		}
		files.Stills = append(files.Stills, *WrapFileURL(u, "image"))
	}
	return files
}

// WrapFileURL wraps a bare URL into structured file metadata with synthesized
// name/size/type placeholders, matching what an actual upload would record.
func WrapFileURL(url, kind string) *model.FileMetadata {
	name := path.Base(url)
	if name == "." || name == "/" {
		name = "file"
	}
	return &model.FileMetadata{
		URL:  url,
		Name: name,
		Size: placeholderDocSize,
		Type: kind,
	}
}

func screeningsFromLegacy(legacy model.LegacyFilmRecord) []model.Screening {
	var screenings []model.Screening
	for _, date := range []string{legacy.ScreeningDate1, legacy.ScreeningDate2} {
		if date == "" {
			continue
		}
		screenings = append(screenings, model.Screening{Date: date, Venue: legacy.Venue})
	}
	return screenings
}

func splitNames(joined string) []string {
	if strings.TrimSpace(joined) == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func coalesce(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func coalesceList(values []string, singular string) []string {
	if len(values) > 0 {
		return values
	}
	if strings.TrimSpace(singular) != "" {
		return []string{singular}
	}
	return []string{}
}

func firstOr(values []string, fallback string) string {
	if len(values) > 0 && strings.TrimSpace(values[0]) != "" {
		return values[0]
	}
	return fallback
}
