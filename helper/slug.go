package helper

import (
	"context"
	"fmt"
	"path"
	"strings"

	"festival_portal/docstore"

	"github.com/gosimple/slug"
)

func slugBase(filename string) string {
	base := slug.Make(strings.TrimSuffix(filename, path.Ext(filename)))
	if base == "" {
		base = "upload"
	}
	return base
}

type slugChecker interface {
	Query(ctx context.Context, q docstore.Query) ([]docstore.Document, error)
}

// GenerateUniqueFilmSlug derives a URL slug from the title and suffixes a
// counter until it is unique within the films collection.
func GenerateUniqueFilmSlug(ctx context.Context, films slugChecker, title string) string {
	base := slug.Make(title)
	if base == "" {
		base = "film"
	}
	result := base
	i := 1

	for {
		docs, err := films.Query(ctx, docstore.NewQuery().
			Where("slug", docstore.OpEqual, result).
			Limit(1))
		if err != nil || len(docs) == 0 {
			break
		}
		result = fmt.Sprintf("%s-%d", base, i)
		i++
	}

	return result
}
