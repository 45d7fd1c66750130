package service

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"festival_portal/constants"
	"festival_portal/docstore"
	"festival_portal/helper"
	"festival_portal/model"
)

type FilmService struct {
	store    DocStore
	films    DocCollection
	uploader helper.Uploader
}

func NewFilmService(store *docstore.Store, uploader helper.Uploader) *FilmService {
	wrapped := WrapStore(store)
	return &FilmService{
		store:    wrapped,
		films:    wrapped.Collection(constants.COLLECTION_FILMS),
		uploader: uploader,
	}
}

func newFilmServiceWith(store DocStore, uploader helper.Uploader) *FilmService {
	return &FilmService{
		store:    store,
		films:    store.Collection(constants.COLLECTION_FILMS),
		uploader: uploader,
	}
}

func guestCollectionName(filmID string) string {
	return fmt.Sprintf("%s/%s/%s", constants.COLLECTION_FILMS, filmID, constants.SUBCOLLECTION_GUESTS)
}

// CreateFeatureFilm writes the primary document, uploads attached media, and
// synchronizes the guest subcollection. Upload and guest-sync failures are
// collected or logged but never fail the call; only the primary write does.
func (s *FilmService) CreateFeatureFilm(ctx context.Context, input model.FilmInput, userID string) model.FilmResult {
	record := s.recordFromInput(input)
	record.Slug = helper.GenerateUniqueFilmSlug(ctx, s.films, input.Title)
	record.CreatedBy = userID

	data, err := encodeDoc(record)
	if err != nil {
		return model.FilmResult{Error: err.Error()}
	}
	stripTransient(data)

	id, err := s.films.Create(ctx, data)
	if err != nil {
		log.Printf("films: create failed: %v", err)
		return model.FilmResult{Error: err.Error()}
	}

	uploadErrs := s.uploadAndAttachFiles(ctx, id, input, model.FilmFiles{})
	s.syncGuests(ctx, id, input)

	created, err := s.GetFeatureFilm(ctx, id)
	if err != nil {
		log.Printf("films: reload after create %s: %v", id, err)
		record.ID = id
		created = &record
	}
	return model.FilmResult{Success: true, Data: created, UploadErrors: uploadErrs}
}

// UpdateFeatureFilm rewrites the primary document and unconditionally
// replaces the guest subcollection with the freshly derived list, even when
// that list is empty.
func (s *FilmService) UpdateFeatureFilm(ctx context.Context, filmID string, input model.FilmInput, userID string) model.FilmResult {
	existing, err := s.films.Get(ctx, filmID)
	if err != nil {
		return model.FilmResult{Error: err.Error()}
	}

	record := s.recordFromInput(input)
	patch, err := encodeDoc(record)
	if err != nil {
		return model.FilmResult{Error: err.Error()}
	}
	stripTransient(patch)
	delete(patch, "slug")
	delete(patch, "createdBy")
	delete(patch, "createdAt")
	delete(patch, "files")
	if input.Status == "" {
		// an omitted status keeps the stored lifecycle state instead of
		// resetting a published film to draft
		delete(patch, "status")
	}
	patch["updatedAt"] = time.Now().UTC().Format(docstore.TimeLayout)

	if err := s.films.Update(ctx, filmID, patch); err != nil {
		log.Printf("films: update %s failed: %v", filmID, err)
		return model.FilmResult{Error: err.Error()}
	}

	var currentFiles model.FilmFiles
	if raw, ok := existing.Data["files"]; ok {
		if m, ok := raw.(map[string]any); ok {
			if err := decodeDoc(m, &currentFiles); err != nil {
				log.Printf("films: decode files of %s: %v", filmID, err)
			}
		}
	}
	uploadErrs := s.uploadAndAttachFiles(ctx, filmID, input, currentFiles)
	s.syncGuests(ctx, filmID, input)

	updated, err := s.GetFeatureFilm(ctx, filmID)
	if err != nil {
		return model.FilmResult{Success: true, UploadErrors: uploadErrs}
	}
	return model.FilmResult{Success: true, Data: updated, UploadErrors: uploadErrs}
}

func (s *FilmService) recordFromInput(input model.FilmInput) model.EnhancedFilmRecord {
	status := input.Status
	if status == "" {
		status = constants.FILM_STATUS_DRAFT
	}
	return model.EnhancedFilmRecord{
		SchemaVersion:  model.EnhancedSchemaVersion,
		Title:          input.Title,
		TitleTh:        input.TitleTh,
		Synopsis:       input.Synopsis,
		Genres:         orEmpty(input.Genres),
		Country:        defaultString(input.Country, helper.DefaultCountry),
		Language:       orEmpty(input.Language),
		Duration:       defaultInt(input.Duration, helper.DefaultDuration),
		ReleaseYear:    defaultInt(input.ReleaseYear, time.Now().Year()),
		Director:       defaultString(input.Director, helper.DefaultDirector),
		Cast:           helper.CastFromActors(input.MainActors),
		Crew:           helper.CrewFromNames(input.Director, input.Producer),
		Screenings:     input.Screenings,
		Status:         status,
		TargetAudience: input.TargetAudience,
	}
}

// stripTransient removes fields that must never reach the primary document.
func stripTransient(data map[string]any) {
	delete(data, "guests")
	delete(data, "posterFile")
	delete(data, "trailerFile")
	delete(data, "galleryFiles")
	delete(data, "id")
}

// uploadAndAttachFiles uploads each attached file independently. Failures are
// collected, not fatal; if anything succeeded the merged file metadata is
// written back in a second update.
func (s *FilmService) uploadAndAttachFiles(ctx context.Context, filmID string, input model.FilmInput, files model.FilmFiles) []string {
	if s.uploader == nil {
		return nil
	}
	var uploadErrs []string
	uploaded := false

	upload := func(file *multipart.FileHeader, folder, resourceType string) *model.FileMetadata {
		url, err := s.uploader.Upload(ctx, file, folder, resourceType)
		if err != nil {
			uploadErrs = append(uploadErrs, err.Error())
			return nil
		}
		uploaded = true
		return &model.FileMetadata{
			URL:        url,
			Name:       file.Filename,
			Size:       file.Size,
			Type:       resourceType,
			UploadedAt: time.Now().UTC().Format(docstore.TimeLayout),
		}
	}

	if input.PosterFile != nil {
		if meta := upload(input.PosterFile, "films/posters", "image"); meta != nil {
			files.Poster = meta
		}
	}
	if input.TrailerFile != nil {
		if meta := upload(input.TrailerFile, "films/trailers", "video"); meta != nil {
			files.Trailer = meta
		}
	}
	for _, still := range input.GalleryFiles {
		if meta := upload(still, "films/stills", "image"); meta != nil {
			files.Stills = append(files.Stills, *meta)
		}
	}

	if uploaded {
		if err := s.films.Update(ctx, filmID, map[string]any{"files": encodeValue(files)}); err != nil {
			uploadErrs = append(uploadErrs, fmt.Sprintf("attach files: %v", err))
		}
	}
	return uploadErrs
}

// syncGuests fully replaces the guest subcollection: delete-all, then
// recreate from the derived list. Failures are logged and swallowed; the film
// call itself still reports success.
func (s *FilmService) syncGuests(ctx context.Context, filmID string, input model.FilmInput) {
	guests := s.store.Collection(guestCollectionName(filmID))

	existing, err := guests.Query(ctx, docstore.NewQuery())
	if err != nil {
		log.Printf("films: guest sync for %s: list existing: %v", filmID, err)
		return
	}
	for _, doc := range existing {
		if err := guests.Delete(ctx, doc.ID); err != nil {
			log.Printf("films: guest sync for %s: delete %s: %v", filmID, doc.ID, err)
			return
		}
	}

	for _, guest := range helper.DeriveGuests(input) {
		_, err := guests.Create(ctx, map[string]any{
			"filmId": filmID,
			"name":   guest.Name,
			"role":   guest.Role,
		})
		if err != nil {
			log.Printf("films: guest sync for %s: create %s: %v", filmID, guest.Name, err)
		}
	}
}

// GetGuests lists the film's guest subcollection.
func (s *FilmService) GetGuests(ctx context.Context, filmID string) ([]model.Guest, error) {
	docs, err := s.store.Collection(guestCollectionName(filmID)).Query(ctx, docstore.NewQuery())
	if err != nil {
		return nil, fmt.Errorf("films: guests of %s: %w", filmID, err)
	}
	guests := make([]model.Guest, 0, len(docs))
	for _, doc := range docs {
		var g model.Guest
		if err := decodeDoc(doc.Data, &g); err != nil {
			log.Printf("films: skipping malformed guest %s: %v", doc.ID, err)
			continue
		}
		g.ID = doc.ID
		guests = append(guests, g)
	}
	return guests, nil
}

// GetFeatureFilm reads one film. Legacy-origin documents are converted to the
// enhanced shape, so callers cannot tell the schemas apart.
func (s *FilmService) GetFeatureFilm(ctx context.Context, filmID string) (*model.EnhancedFilmRecord, error) {
	doc, err := s.films.Get(ctx, filmID)
	if err != nil {
		return nil, fmt.Errorf("films: get %s: %w", filmID, err)
	}
	record, err := enhancedFromDoc(doc)
	if err != nil {
		return nil, fmt.Errorf("films: get %s: %w", filmID, err)
	}
	return record, nil
}

func (s *FilmService) GetFeatureFilmBySlug(ctx context.Context, slug string) (*model.EnhancedFilmRecord, error) {
	docs, err := s.films.Query(ctx, docstore.NewQuery().
		Where("slug", docstore.OpEqual, slug).
		Limit(1))
	if err != nil {
		return nil, fmt.Errorf("films: get by slug %s: %w", slug, err)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("films: get by slug %s: %w", slug, docstore.ErrNotFound)
	}
	return enhancedFromDoc(docs[0])
}

// GetEnhancedFeatureFilms lists non-deleted films newest first, converting
// every legacy record on the way out. Uses the same tiered degradation as the
// comment reads; total failure yields an empty list.
func (s *FilmService) GetEnhancedFeatureFilms(ctx context.Context, filters model.FilmFilters) model.FilmListResult {
	docs, tier, err := runWithFallback(ctx, constants.COLLECTION_FILMS, s.listTiers(filters))
	if err != nil {
		log.Printf("films: all query tiers failed: %v", err)
		return model.FilmListResult{Success: true, Data: []model.EnhancedFilmRecord{}}
	}

	if tier >= 1 {
		docstore.SortByFieldDesc(docs, "createdAt")
	}
	records := make([]model.EnhancedFilmRecord, 0, len(docs))
	for _, doc := range docs {
		record, err := enhancedFromDoc(doc)
		if err != nil {
			log.Printf("films: skipping malformed record %s: %v", doc.ID, err)
			continue
		}
		if record.IsDeleted {
			continue
		}
		if !matchesFilters(*record, filters) {
			continue
		}
		records = append(records, *record)
	}
	return model.FilmListResult{Success: true, Data: paginate(records, filters.Limit, filters.Page)}
}

func (s *FilmService) listTiers(filters model.FilmFilters) []queryTier {
	base := docstore.NewQuery().Where("isDeleted", docstore.OpEqual, false)
	if filters.Status != "" {
		base = base.Where("status", docstore.OpEqual, filters.Status)
	}
	ordered := base.OrderBy("createdAt", true)
	return []queryTier{
		{
			name: "filtered+ordered",
			run: func(ctx context.Context) ([]docstore.Document, error) {
				return s.films.Query(ctx, ordered)
			},
		},
		{
			name: "filtered",
			run: func(ctx context.Context) ([]docstore.Document, error) {
				return s.films.Query(ctx, base)
			},
		},
		{
			name: "full-scan",
			run: func(ctx context.Context) ([]docstore.Document, error) {
				return s.films.Query(ctx, docstore.NewQuery())
			},
		},
	}
}

// enhancedFromDoc decides by schema version whether the stored document needs
// the legacy conversion.
func enhancedFromDoc(doc docstore.Document) (*model.EnhancedFilmRecord, error) {
	if version, ok := doc.Data["schemaVersion"].(float64); ok && int(version) >= model.EnhancedSchemaVersion {
		var record model.EnhancedFilmRecord
		if err := decodeDoc(doc.Data, &record); err != nil {
			return nil, err
		}
		record.ID = doc.ID
		return &record, nil
	}

	var legacy model.LegacyFilmRecord
	if err := decodeDoc(doc.Data, &legacy); err != nil {
		return nil, err
	}
	record := helper.ConvertLegacyToEnhanced(legacy)
	record.ID = doc.ID
	if deleted, ok := doc.Data["isDeleted"].(bool); ok {
		record.IsDeleted = deleted
	}
	return &record, nil
}

func matchesFilters(record model.EnhancedFilmRecord, filters model.FilmFilters) bool {
	if filters.Status != "" && record.Status != filters.Status {
		return false
	}
	if filters.Country != "" && !strings.EqualFold(record.Country, filters.Country) {
		return false
	}
	if filters.Genre != "" {
		found := false
		for _, g := range record.Genres {
			if strings.EqualFold(g, filters.Genre) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filters.Search != "" {
		needle := strings.ToLower(filters.Search)
		if !strings.Contains(strings.ToLower(record.Title), needle) &&
			!strings.Contains(strings.ToLower(record.TitleTh), needle) &&
			!strings.Contains(strings.ToLower(record.Director), needle) {
			return false
		}
	}
	return true
}

func paginate(records []model.EnhancedFilmRecord, limit, page *int) []model.EnhancedFilmRecord {
	if limit == nil || *limit <= 0 || page == nil || *page < 1 {
		return records
	}
	start := *limit * (*page - 1)
	if start >= len(records) {
		return []model.EnhancedFilmRecord{}
	}
	end := start + *limit
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}

// DeleteFeatureFilm soft-deletes. Idempotent.
func (s *FilmService) DeleteFeatureFilm(ctx context.Context, filmID string) error {
	if err := s.films.Update(ctx, filmID, map[string]any{"isDeleted": true}); err != nil {
		return fmt.Errorf("films: delete %s: %w", filmID, err)
	}
	return nil
}

func (s *FilmService) PublishFeatureFilm(ctx context.Context, filmID string) error {
	patch := map[string]any{
		"status":      constants.FILM_STATUS_PUBLISHED,
		"publishedAt": time.Now().UTC().Format(docstore.TimeLayout),
	}
	if err := s.films.Update(ctx, filmID, patch); err != nil {
		return fmt.Errorf("films: publish %s: %w", filmID, err)
	}
	return nil
}

func (s *FilmService) ArchiveFeatureFilm(ctx context.Context, filmID string) error {
	if err := s.films.Update(ctx, filmID, map[string]any{"status": constants.FILM_STATUS_ARCHIVED}); err != nil {
		return fmt.Errorf("films: archive %s: %w", filmID, err)
	}
	return nil
}

// ArchiveEndedFilms archives published films whose last screening is in the
// past. Scheduler target.
func (s *FilmService) ArchiveEndedFilms(ctx context.Context) {
	result := s.GetEnhancedFeatureFilms(ctx, model.FilmFilters{Status: constants.FILM_STATUS_PUBLISHED})
	now := time.Now()
	for _, record := range result.Data {
		if len(record.Screenings) == 0 {
			continue
		}
		ended := true
		for _, screening := range record.Screenings {
			when, err := parseScreeningDate(screening.Date)
			if err != nil || !when.Before(now) {
				ended = false
				break
			}
		}
		if !ended {
			continue
		}
		if err := s.ArchiveFeatureFilm(ctx, record.ID); err != nil {
			log.Printf("films: auto-archive %s: %v", record.ID, err)
		}
	}
}

func parseScreeningDate(value string) (time.Time, error) {
	for _, layout := range []string{docstore.TimeLayout, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable screening date %q", value)
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func defaultInt(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}
