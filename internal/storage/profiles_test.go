package storage

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/freightdesk/internal/common"
	"github.com/dmitrijs2005/freightdesk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countDefaults(t *testing.T, e *Engine, owner int64) int {
	t.Helper()
	list, err := e.GetUserCompanyProfiles(context.Background(), owner)
	require.NoError(t, err)
	n := 0
	for _, p := range list {
		if p.IsDefault {
			n++
		}
	}
	return n
}

func TestCompanyProfile_DefaultIsExclusive(t *testing.T) {
	e, _ := initEngine(t)
	ctx := context.Background()

	first, err := e.SaveCompanyProfile(ctx, &models.CompanyProfile{OwnerUserID: 1, Name: "First", IsDefault: true})
	require.NoError(t, err)
	second, err := e.SaveCompanyProfile(ctx, &models.CompanyProfile{OwnerUserID: 1, Name: "Second", IsDefault: true})
	require.NoError(t, err)
	assert.Equal(t, 1, countDefaults(t, e, 1))

	def, err := e.GetDefaultCompanyProfile(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, def)
	assert.Equal(t, second, def.ID)

	require.NoError(t, e.UpdateCompanyProfile(ctx, first, &models.CompanyProfile{OwnerUserID: 1, Name: "First", IsDefault: true}))
	assert.Equal(t, 1, countDefaults(t, e, 1))

	def, err = e.GetDefaultCompanyProfile(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first, def.ID)

	list, err := e.GetUserCompanyProfiles(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first, list[0].ID, "default profile is listed first")
}

func TestCompanyProfile_DefaultIsPerOwner(t *testing.T) {
	e, _ := initEngine(t)
	ctx := context.Background()

	bob, err := e.SaveUser(ctx, "bob", sampleHash)
	require.NoError(t, err)

	_, err = e.SaveCompanyProfile(ctx, &models.CompanyProfile{OwnerUserID: 1, Name: "Mine", IsDefault: true})
	require.NoError(t, err)
	_, err = e.SaveCompanyProfile(ctx, &models.CompanyProfile{OwnerUserID: bob, Name: "Bob's", IsDefault: true})
	require.NoError(t, err)

	assert.Equal(t, 1, countDefaults(t, e, 1))
	assert.Equal(t, 1, countDefaults(t, e, bob))
}

func TestCompanyProfile_NoDefault(t *testing.T) {
	e, _ := initEngine(t)
	def, err := e.GetDefaultCompanyProfile(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, def)
}

func TestCompanyProfile_Validation(t *testing.T) {
	e, _ := initEngine(t)
	_, err := e.SaveCompanyProfile(context.Background(), &models.CompanyProfile{
		OwnerUserID: 1, Name: "Bad", GSTIN: ptr("short"),
	})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestCompanyProfile_UpdateOtherOwner(t *testing.T) {
	e, _ := initEngine(t)
	ctx := context.Background()

	id, err := e.SaveCompanyProfile(ctx, &models.CompanyProfile{OwnerUserID: 1, Name: "Acme"})
	require.NoError(t, err)

	err = e.UpdateCompanyProfile(ctx, id, &models.CompanyProfile{OwnerUserID: 2, Name: "Stolen"})
	assert.ErrorIs(t, err, common.ErrorNotFound)

	got, err := e.GetCompanyProfile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)
}

func TestCompanyProfile_DeleteDetachesFreight(t *testing.T) {
	e, _ := initEngine(t)
	ctx := context.Background()

	pid, err := e.SaveCompanyProfile(ctx, &models.CompanyProfile{OwnerUserID: 1, Name: "Acme", IsDefault: true})
	require.NoError(t, err)

	rec := sampleFreight(1)
	rec.CompanyProfileID = &pid
	fid, err := e.SaveFreightDetails(ctx, rec)
	require.NoError(t, err)

	assert.ErrorIs(t, e.DeleteCompanyProfile(ctx, pid, 2), common.ErrorNotFound)
	require.NoError(t, e.DeleteCompanyProfile(ctx, pid, 1))

	got, err := e.GetCompanyProfile(ctx, pid)
	require.NoError(t, err)
	assert.Nil(t, got)

	f, err := e.GetFreightDetails(ctx, fid)
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Nil(t, f.CompanyProfileID)
}

func TestCustomFields_Lifecycle(t *testing.T) {
	e, _ := initEngine(t)
	ctx := context.Background()

	lrIn := &models.CustomFieldDefinition{
		OwnerUserID: 1, FieldName: "lr_no", FieldLabel: "LR No", FieldType: models.FieldText, DisplayOrder: 2,
	}
	lr, err := e.SaveCustomField(ctx, lrIn)
	require.NoError(t, err)
	assert.True(t, lrIn.IsActive)

	mode, err := e.SaveCustomField(ctx, &models.CustomFieldDefinition{
		OwnerUserID: 1, FieldName: "mode", FieldLabel: "Mode", FieldType: models.FieldSelect,
		Options: []string{"road", "rail"}, DisplayOrder: 1, IsRequired: true,
	})
	require.NoError(t, err)

	list, err := e.GetUserCustomFields(ctx, 1, false)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, mode, list[0].ID)
	assert.Equal(t, []string{"road", "rail"}, list[0].Options)
	assert.True(t, list[0].IsRequired)

	upd := list[0]
	upd.FieldLabel = "Transport mode"
	upd.Options = []string{"road", "rail", "air"}
	require.NoError(t, e.UpdateCustomField(ctx, mode, &upd))

	got, err := e.GetCustomField(ctx, mode)
	require.NoError(t, err)
	assert.Equal(t, "Transport mode", got.FieldLabel)
	assert.Len(t, got.Options, 3)

	assert.ErrorIs(t, e.DeleteCustomField(ctx, lr, 2), common.ErrorNotFound)
	require.NoError(t, e.DeleteCustomField(ctx, lr, 1))

	list, err = e.GetUserCustomFields(ctx, 1, false)
	require.NoError(t, err)
	require.Len(t, list, 1)

	all, err := e.GetUserCustomFields(ctx, 1, true)
	require.NoError(t, err)
	require.Len(t, all, 2)

	kept, err := e.GetCustomField(ctx, lr)
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.False(t, kept.IsActive)
}

func TestCustomFields_Validation(t *testing.T) {
	e, _ := initEngine(t)
	ctx := context.Background()

	_, err := e.SaveCustomField(ctx, &models.CustomFieldDefinition{
		OwnerUserID: 1, FieldName: "lr_no ", FieldLabel: "x", FieldType: models.FieldText,
	})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = e.SaveCustomField(ctx, &models.CustomFieldDefinition{
		OwnerUserID: 1, FieldName: "mode", FieldLabel: "Mode", FieldType: models.FieldSelect,
	})
	assert.ErrorIs(t, err, common.ErrValidation)
}
