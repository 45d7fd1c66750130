package service

import (
	"context"
	"testing"

	"festival_portal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPartners(t *testing.T, svc *PartnerService) (sponsor, venue, retired string) {
	t.Helper()
	ctx := context.Background()

	sponsor, err := svc.CreatePartner(ctx, model.CreatePartnerInput{
		Name: "River Cinema Group", Tier: "platinum", Order: 2,
	})
	require.NoError(t, err)

	venue, err = svc.CreatePartner(ctx, model.CreatePartnerInput{
		Name: "Old Town Hall", Tier: "community", Order: 1,
	})
	require.NoError(t, err)

	retired, err = svc.CreatePartner(ctx, model.CreatePartnerInput{
		Name: "Former Sponsor", Tier: "gold", Order: 3,
	})
	require.NoError(t, err)
	require.NoError(t, svc.DeletePartner(ctx, retired))
	return sponsor, venue, retired
}

func TestGetPartnersSortsByDisplayOrder(t *testing.T) {
	coll := newFakeCollection(capFull)
	svc := newPartnerServiceWith(coll)
	seedPartners(t, svc)

	// degraded tiers sort client-side by the order field
	coll.degrade(capNoComposite)
	partners := svc.GetPartners(context.Background(), false)
	require.Len(t, partners, 2)
	assert.Equal(t, "Old Town Hall", partners[0].Name)
	assert.Equal(t, "River Cinema Group", partners[1].Name)
}

func TestGetPartnersPreferredTierNumericOrder(t *testing.T) {
	coll := newFakeCollection(capFull)
	svc := newPartnerServiceWith(coll)
	ctx := context.Background()

	_, err := svc.CreatePartner(ctx, model.CreatePartnerInput{
		Name: "Night Market Collective", Tier: "gold", Order: 10,
	})
	require.NoError(t, err)
	_, err = svc.CreatePartner(ctx, model.CreatePartnerInput{
		Name: "Ping River Fund", Tier: "gold", Order: 2,
	})
	require.NoError(t, err)

	// store-side ordering compares 2 < 10 numerically, not "10" < "2"
	partners := svc.GetPartners(ctx, false)
	require.Len(t, partners, 2)
	assert.Equal(t, "Ping River Fund", partners[0].Name)
	assert.Equal(t, "Night Market Collective", partners[1].Name)
}

func TestGetPartnersActiveOnly(t *testing.T) {
	coll := newFakeCollection(capFull)
	svc := newPartnerServiceWith(coll)
	sponsor, _, _ := seedPartners(t, svc)
	ctx := context.Background()

	inactive := false
	require.NoError(t, svc.UpdatePartner(ctx, sponsor, model.UpdatePartnerInput{IsActive: &inactive}))

	coll.degrade(capNoFilters)
	partners := svc.GetPartners(ctx, true)
	require.Len(t, partners, 1)
	assert.Equal(t, "Old Town Hall", partners[0].Name)
}

func TestUpdatePartnerIgnoresEmptyPatch(t *testing.T) {
	coll := newFakeCollection(capFull)
	svc := newPartnerServiceWith(coll)

	// empty patch never reaches the store, even for a missing document
	assert.NoError(t, svc.UpdatePartner(context.Background(), "missing", model.UpdatePartnerInput{}))
}

func TestGetPartnerAfterSoftDelete(t *testing.T) {
	coll := newFakeCollection(capFull)
	svc := newPartnerServiceWith(coll)
	_, _, retired := seedPartners(t, svc)

	partner, err := svc.GetPartner(context.Background(), retired)
	require.NoError(t, err)
	assert.True(t, partner.IsDeleted)
	assert.Equal(t, "Former Sponsor", partner.Name)
}
