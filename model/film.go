package model

import "mime/multipart"

// LegacyFilmRecord is the original flat film schema. Fields come in singular
// and array variants of the same concept; everything is optional.
type LegacyFilmRecord struct {
	ID             string   `json:"id,omitempty"`
	TitleEn        string   `json:"titleEn,omitempty"`
	TitleTh        string   `json:"titleTh,omitempty"`
	Genre          string   `json:"genre,omitempty"`
	Genres         []string `json:"genres,omitempty"`
	Country        string   `json:"country,omitempty"`
	Countries      []string `json:"countries,omitempty"`
	Language       string   `json:"language,omitempty"`
	Languages      []string `json:"languages,omitempty"`
	Synopsis       string   `json:"synopsis,omitempty"`
	Director       string   `json:"director,omitempty"`
	Producer       string   `json:"producer,omitempty"`
	MainActors     string   `json:"mainActors,omitempty"`
	Duration       int      `json:"duration,omitempty"`
	ReleaseYear    int      `json:"releaseYear,omitempty"`
	PosterURL      string   `json:"posterUrl,omitempty"`
	TrailerURL     string   `json:"trailerUrl,omitempty"`
	GalleryUrls    []string `json:"galleryUrls,omitempty"`
	ScreeningDate1 string   `json:"screeningDate1,omitempty"`
	ScreeningDate2 string   `json:"screeningDate2,omitempty"`
	Venue          string   `json:"venue,omitempty"`
	TargetAudience string   `json:"targetAudience,omitempty"`
	CreatedAt      string   `json:"createdAt,omitempty"`
}

type FileMetadata struct {
	URL        string `json:"url"`
	Name       string `json:"name"`
	Size       int64  `json:"size"`
	Type       string `json:"type"`
	UploadedAt string `json:"uploadedAt,omitempty"`
}

type FilmFiles struct {
	Poster   *FileMetadata  `json:"poster,omitempty"`
	Trailer  *FileMetadata  `json:"trailer,omitempty"`
	Stills   []FileMetadata `json:"stills,omitempty"`
	PressKit *FileMetadata  `json:"pressKit,omitempty"`
}

type CastMember struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	Character string `json:"character,omitempty"`
}

type CrewMember struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type Screening struct {
	Date  string `json:"date"`
	Venue string `json:"venue,omitempty"`
}

// EnhancedFilmRecord is the normalized film schema. Every legacy record maps
// onto it; the reverse mapping does not exist.
type EnhancedFilmRecord struct {
	ID             string       `json:"id,omitempty"`
	SchemaVersion  int          `json:"schemaVersion"`
	Title          string       `json:"title"`
	TitleTh        string       `json:"titleTh,omitempty"`
	Synopsis       string       `json:"synopsis,omitempty"`
	Genres         []string     `json:"genres"`
	Country        string       `json:"country"`
	Language       []string     `json:"language"`
	Duration       int          `json:"duration"`
	ReleaseYear    int          `json:"releaseYear"`
	Director       string       `json:"director"`
	Files          FilmFiles    `json:"files"`
	Cast           []CastMember `json:"cast"`
	Crew           []CrewMember `json:"crew"`
	Screenings     []Screening  `json:"screenings,omitempty"`
	Status         string       `json:"status"`
	Slug           string       `json:"slug"`
	TargetAudience string       `json:"targetAudience,omitempty"`
	CreatedBy      string       `json:"createdBy,omitempty"`
	CreatedAt      string       `json:"createdAt,omitempty"`
	UpdatedAt      string       `json:"updatedAt,omitempty"`
	PublishedAt    string       `json:"publishedAt,omitempty"`
	IsDeleted      bool         `json:"isDeleted"`
}

// EnhancedSchemaVersion marks documents already written in the normalized
// shape; records without it are treated as legacy and converted on read.
const EnhancedSchemaVersion = 2

type Guest struct {
	ID     string `json:"id,omitempty"`
	FilmID string `json:"filmId"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

type GuestInput struct {
	Name string `json:"name" validate:"required"`
	Role string `json:"role" validate:"required"`
}

// FilmInput is the create/update payload. File headers and guests are
// transient: they never reach the primary document.
type FilmInput struct {
	Title          string       `json:"title" validate:"required"`
	TitleTh        string       `json:"titleTh"`
	Synopsis       string       `json:"synopsis"`
	Genres         []string     `json:"genres"`
	Country        string       `json:"country"`
	Language       []string     `json:"language"`
	Duration       int          `json:"duration" validate:"omitempty,min=1"`
	ReleaseYear    int          `json:"releaseYear" validate:"omitempty,min=1900"`
	Director       string       `json:"director"`
	Producer       string       `json:"producer"`
	MainActors     string       `json:"mainActors"`
	Screenings     []Screening  `json:"screenings"`
	Status         string       `json:"status" validate:"omitempty,oneof=draft published archived"`
	TargetAudience string       `json:"targetAudience"`
	Guests         []GuestInput `json:"guests"`

	PosterFile   *multipart.FileHeader   `json:"-"`
	TrailerFile  *multipart.FileHeader   `json:"-"`
	GalleryFiles []*multipart.FileHeader `json:"-"`
}

type FilmFilters struct {
	Status  string `query:"status"`
	Genre   string `query:"genre"`
	Country string `query:"country"`
	Search  string `query:"search"`
	Limit   *int   `query:"limit"`
	Page    *int   `query:"page"`
}

// FilmResult mirrors the service contract: Success can be true while
// UploadErrors is non-empty, so callers needing completeness must inspect it.
type FilmResult struct {
	Success      bool                `json:"success"`
	Data         *EnhancedFilmRecord `json:"data,omitempty"`
	Error        string              `json:"error,omitempty"`
	UploadErrors []string            `json:"uploadErrors,omitempty"`
}

type FilmListResult struct {
	Success bool                 `json:"success"`
	Data    []EnhancedFilmRecord `json:"data,omitempty"`
	Error   string               `json:"error,omitempty"`
}
