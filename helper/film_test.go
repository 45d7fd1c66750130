package helper

import (
	"context"
	"fmt"
	"testing"
	"time"

	"festival_portal/docstore"
	"festival_portal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertLegacyEmptyRecordGetsDefaults(t *testing.T) {
	enhanced := ConvertLegacyToEnhanced(model.LegacyFilmRecord{})

	assert.Equal(t, model.EnhancedSchemaVersion, enhanced.SchemaVersion)
	assert.Equal(t, "Untitled", enhanced.Title)
	assert.Equal(t, DefaultDirector, enhanced.Director)
	assert.Equal(t, DefaultCountry, enhanced.Country)
	assert.Equal(t, DefaultDuration, enhanced.Duration)
	assert.Equal(t, time.Now().Year(), enhanced.ReleaseYear)
	assert.Equal(t, "published", enhanced.Status)
	assert.NotNil(t, enhanced.Genres)
	assert.Empty(t, enhanced.Genres)
	assert.NotNil(t, enhanced.Language)

	// crew always carries a director entry
	require.Len(t, enhanced.Crew, 1)
	assert.Equal(t, model.CrewMember{Name: DefaultDirector, Role: "Director"}, enhanced.Crew[0])
	assert.Empty(t, enhanced.Cast)
}

func TestConvertLegacyArrayFieldsWin(t *testing.T) {
	enhanced := ConvertLegacyToEnhanced(model.LegacyFilmRecord{
		Genre:     "Drama",
		Genres:    []string{"Horror", "Comedy"},
		Country:   "Japan",
		Countries: []string{"Thailand", "Laos"},
		Language:  "en",
		Languages: []string{"th", "en"},
	})

	assert.Equal(t, []string{"Horror", "Comedy"}, enhanced.Genres)
	assert.Equal(t, "Thailand", enhanced.Country)
	assert.Equal(t, []string{"th", "en"}, enhanced.Language)
}

func TestConvertLegacySingularFallback(t *testing.T) {
	enhanced := ConvertLegacyToEnhanced(model.LegacyFilmRecord{
		Genre:    "Drama",
		Country:  "Japan",
		Language: "ja",
	})

	assert.Equal(t, []string{"Drama"}, enhanced.Genres)
	assert.Equal(t, "Japan", enhanced.Country)
	assert.Equal(t, []string{"ja"}, enhanced.Language)
}

func TestConvertLegacyCastAndCrew(t *testing.T) {
	enhanced := ConvertLegacyToEnhanced(model.LegacyFilmRecord{
		Director:   "Anong S.",
		Producer:   "P. Wattana",
		MainActors: "Mali K., Somchai T., ",
	})

	require.Len(t, enhanced.Cast, 2)
	assert.Equal(t, model.CastMember{Name: "Mali K.", Role: "Actor"}, enhanced.Cast[0])
	assert.Equal(t, model.CastMember{Name: "Somchai T.", Role: "Actor"}, enhanced.Cast[1])

	require.Len(t, enhanced.Crew, 2)
	assert.Equal(t, model.CrewMember{Name: "Anong S.", Role: "Director"}, enhanced.Crew[0])
	assert.Equal(t, model.CrewMember{Name: "P. Wattana", Role: "Producer"}, enhanced.Crew[1])
}

func TestConvertLegacyWrapsBareURLs(t *testing.T) {
	enhanced := ConvertLegacyToEnhanced(model.LegacyFilmRecord{
		PosterURL:   "https://cdn.example.com/posters/night.jpg",
		TrailerURL:  "https://cdn.example.com/trailers/night.mp4",
		GalleryUrls: []string{"https://cdn.example.com/stills/1.jpg", ""},
	})

	require.NotNil(t, enhanced.Files.Poster)
	assert.Equal(t, "https://cdn.example.com/posters/night.jpg", enhanced.Files.Poster.URL)
	assert.Equal(t, "night.jpg", enhanced.Files.Poster.Name)
	assert.Equal(t, "image", enhanced.Files.Poster.Type)

	require.NotNil(t, enhanced.Files.Trailer)
	assert.Equal(t, "video", enhanced.Files.Trailer.Type)

	// blank gallery entries are dropped
	require.Len(t, enhanced.Files.Stills, 1)
}

func TestConvertLegacyScreenings(t *testing.T) {
	enhanced := ConvertLegacyToEnhanced(model.LegacyFilmRecord{
		ScreeningDate1: "2026-11-02",
		Venue:          "Main Hall",
	})

	require.Len(t, enhanced.Screenings, 1)
	assert.Equal(t, model.Screening{Date: "2026-11-02", Venue: "Main Hall"}, enhanced.Screenings[0])
}

func TestDeriveGuestsExplicitListWins(t *testing.T) {
	input := model.FilmInput{
		Director:   "Anong S.",
		Producer:   "P. Wattana",
		MainActors: "Mali K.",
		Guests:     []model.GuestInput{{Name: "Composer X", Role: "Composer"}},
	}
	guests := DeriveGuests(input)
	require.Len(t, guests, 1)
	assert.Equal(t, "Composer X", guests[0].Name)
}

func TestDeriveGuestsFromFlatFields(t *testing.T) {
	guests := DeriveGuests(model.FilmInput{
		Director:   "Anong S.",
		MainActors: "Mali K., Somchai T.",
	})
	require.Len(t, guests, 3)
	assert.Equal(t, model.GuestInput{Name: "Anong S.", Role: "Director"}, guests[0])
	assert.Equal(t, model.GuestInput{Name: "Mali K.", Role: "Actor"}, guests[1])

	assert.Empty(t, DeriveGuests(model.FilmInput{}))
}

type slugCheckerFunc func(q docstore.Query) ([]docstore.Document, error)

func (f slugCheckerFunc) Query(_ context.Context, q docstore.Query) ([]docstore.Document, error) {
	return f(q)
}

func TestGenerateUniqueFilmSlug(t *testing.T) {
	taken := map[string]bool{"night-over-ping-river": true, "night-over-ping-river-1": true}
	films := slugCheckerFunc(func(q docstore.Query) ([]docstore.Document, error) {
		slug := fmt.Sprint(q.Filters()[0].Value)
		if taken[slug] {
			return []docstore.Document{{ID: slug}}, nil
		}
		return nil, nil
	})

	got := GenerateUniqueFilmSlug(context.Background(), films, "Night Over Ping River")
	assert.Equal(t, "night-over-ping-river-2", got)

	fresh := GenerateUniqueFilmSlug(context.Background(), films, "Dawn Market")
	assert.Equal(t, "dawn-market", fresh)

	// a blank title still yields a usable slug
	assert.Equal(t, "film", GenerateUniqueFilmSlug(context.Background(), films, ""))
}
