package service

import (
	"context"
	"errors"
	"testing"

	"festival_portal/docstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tierReturning(docs []docstore.Document, err error) queryTier {
	return queryTier{
		name: "test",
		run: func(context.Context) ([]docstore.Document, error) {
			return docs, err
		},
	}
}

func TestRunWithFallbackFirstTierWins(t *testing.T) {
	want := []docstore.Document{{ID: "a"}}
	docs, tier, err := runWithFallback(context.Background(), "test", []queryTier{
		tierReturning(want, nil),
		tierReturning(nil, errors.New("must not run")),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, tier)
	assert.Equal(t, want, docs)
}

func TestRunWithFallbackSkipsFailingTiers(t *testing.T) {
	want := []docstore.Document{{ID: "b"}}
	docs, tier, err := runWithFallback(context.Background(), "test", []queryTier{
		tierReturning(nil, docstore.ErrIndexRequired),
		tierReturning(nil, errors.New("filters unsupported")),
		tierReturning(want, nil),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, tier)
	assert.Equal(t, want, docs)
}

func TestRunWithFallbackEmptySuccessIsNotFailure(t *testing.T) {
	docs, tier, err := runWithFallback(context.Background(), "test", []queryTier{
		tierReturning([]docstore.Document{}, nil),
		tierReturning([]docstore.Document{{ID: "never"}}, nil),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, tier)
	assert.Empty(t, docs)
}

func TestRunWithFallbackExhaustion(t *testing.T) {
	last := errors.New("store down")
	docs, tier, err := runWithFallback(context.Background(), "test", []queryTier{
		tierReturning(nil, errors.New("first")),
		tierReturning(nil, last),
	})
	assert.Nil(t, docs)
	assert.Equal(t, -1, tier)
	assert.Equal(t, last, err)
}
