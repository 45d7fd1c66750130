package service

import (
	"context"
	"fmt"
	"log"
	"sort"

	"festival_portal/constants"
	"festival_portal/docstore"
	"festival_portal/model"
)

type PartnerService struct {
	partners DocCollection
}

func NewPartnerService(store *docstore.Store) *PartnerService {
	return &PartnerService{partners: WrapStore(store).Collection(constants.COLLECTION_PARTNERS)}
}

func newPartnerServiceWith(partners DocCollection) *PartnerService {
	return &PartnerService{partners: partners}
}

func (s *PartnerService) CreatePartner(ctx context.Context, input model.CreatePartnerInput) (string, error) {
	data := map[string]any{
		"name":        input.Name,
		"tier":        input.Tier,
		"logoUrl":     input.LogoURL,
		"website":     input.Website,
		"description": input.Description,
		"order":       input.Order,
		"isActive":    true,
		"isDeleted":   false,
	}
	id, err := s.partners.Create(ctx, data)
	if err != nil {
		return "", fmt.Errorf("partners: create: %w", err)
	}
	return id, nil
}

func (s *PartnerService) UpdatePartner(ctx context.Context, partnerID string, input model.UpdatePartnerInput) error {
	patch := map[string]any{}
	if input.Name != nil {
		patch["name"] = *input.Name
	}
	if input.Tier != nil {
		patch["tier"] = *input.Tier
	}
	if input.LogoURL != nil {
		patch["logoUrl"] = *input.LogoURL
	}
	if input.Website != nil {
		patch["website"] = *input.Website
	}
	if input.Description != nil {
		patch["description"] = *input.Description
	}
	if input.Order != nil {
		patch["order"] = *input.Order
	}
	if input.IsActive != nil {
		patch["isActive"] = *input.IsActive
	}
	if len(patch) == 0 {
		return nil
	}
	if err := s.partners.Update(ctx, partnerID, patch); err != nil {
		return fmt.Errorf("partners: update %s: %w", partnerID, err)
	}
	return nil
}

func (s *PartnerService) DeletePartner(ctx context.Context, partnerID string) error {
	if err := s.partners.Update(ctx, partnerID, map[string]any{"isDeleted": true}); err != nil {
		return fmt.Errorf("partners: delete %s: %w", partnerID, err)
	}
	return nil
}

func (s *PartnerService) GetPartner(ctx context.Context, partnerID string) (*model.Partner, error) {
	doc, err := s.partners.Get(ctx, partnerID)
	if err != nil {
		return nil, fmt.Errorf("partners: get %s: %w", partnerID, err)
	}
	var partner model.Partner
	if err := decodeDoc(doc.Data, &partner); err != nil {
		return nil, fmt.Errorf("partners: get %s: %w", partnerID, err)
	}
	partner.ID = doc.ID
	return &partner, nil
}

// GetPartners lists non-deleted partners in display order, degrading through
// the usual tiers. Total failure yields an empty list.
func (s *PartnerService) GetPartners(ctx context.Context, activeOnly bool) []model.Partner {
	base := docstore.NewQuery().Where("isDeleted", docstore.OpEqual, false)
	tiers := []queryTier{
		{
			name: "filtered+ordered",
			run: func(ctx context.Context) ([]docstore.Document, error) {
				return s.partners.Query(ctx, base.OrderBy("order", false))
			},
		},
		{
			name: "filtered",
			run: func(ctx context.Context) ([]docstore.Document, error) {
				return s.partners.Query(ctx, base)
			},
		},
		{
			name: "full-scan",
			run: func(ctx context.Context) ([]docstore.Document, error) {
				return s.partners.Query(ctx, docstore.NewQuery())
			},
		},
	}
	docs, tier, err := runWithFallback(ctx, constants.COLLECTION_PARTNERS, tiers)
	if err != nil {
		log.Printf("partners: all query tiers failed: %v", err)
		return []model.Partner{}
	}

	partners := make([]model.Partner, 0, len(docs))
	for _, doc := range docs {
		var partner model.Partner
		if err := decodeDoc(doc.Data, &partner); err != nil {
			log.Printf("partners: skipping malformed record %s: %v", doc.ID, err)
			continue
		}
		if partner.IsDeleted {
			continue
		}
		if activeOnly && !partner.IsActive {
			continue
		}
		partner.ID = doc.ID
		partners = append(partners, partner)
	}
	if tier >= 1 {
		sortPartnersByOrder(partners)
	}
	return partners
}

func sortPartnersByOrder(partners []model.Partner) {
	sort.SliceStable(partners, func(i, j int) bool {
		return partners[i].Order < partners[j].Order
	})
}
