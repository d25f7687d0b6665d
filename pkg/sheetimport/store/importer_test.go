package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/clinicapay/sheetimport/pkg/sheetimport/models"
	"github.com/clinicapay/sheetimport/pkg/sheetimport/store"
	"github.com/clinicapay/sheetimport/pkg/sheetimport/store/mocks"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *models.ParseResult {
	code := "CODE1"
	res := models.NewParseResult(models.TenantIdentity{ExternalTaxID: "12345678000190", ExternalCode: &code})
	ten, twelve := int64(10), int64(12)
	rate := 0.05
	res.Records[models.KindIssuedInvoices] = []models.Record{
		&models.IssuedInvoices{MonthRef: "2024-07", Count: &ten},
		&models.IssuedInvoices{MonthRef: "2024-08", Count: &twelve},
	}
	res.Records[models.KindDelinquencyByBand] = []models.Record{
		&models.DelinquencyByBand{MonthRef: "2024-07", Band: "0-7", Rate: &rate},
	}
	return res
}

func TestImporterImport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	res := sampleResult()
	mockStore := mocks.NewMockStore(ctrl)

	gomock.InOrder(
		mockStore.EXPECT().ResolveTenant(ctx, res.Identity).Return("42", nil),
		mockStore.EXPECT().Upsert(ctx, models.KindIssuedInvoices, "42", gomock.Len(2)).Return(2, nil),
		mockStore.EXPECT().Upsert(ctx, models.KindDelinquencyByBand, "42", gomock.Len(1)).Return(1, nil),
	)

	var logged store.ImportLog
	mockStore.EXPECT().RecordImport(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, entry store.ImportLog) error {
			logged = entry
			return nil
		})

	summary, err := store.NewImporter(mockStore, nil).Import(ctx, "export.xlsx", res)
	require.NoError(t, err)

	assert.Equal(t, "42", summary.TenantID)
	assert.Equal(t, store.StatusDone, summary.Status)
	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, 2, summary.Counts[models.KindIssuedInvoices])
	assert.Equal(t, 1, summary.Counts[models.KindDelinquencyByBand])
	assert.Equal(t, 0, summary.Counts[models.KindDelinquencyRate])
	assert.Len(t, summary.Counts, 7)

	assert.Equal(t, summary.RunID, logged.ID)
	assert.Equal(t, "42", logged.TenantID)
	assert.Equal(t, "export.xlsx", logged.FileName)
	assert.Equal(t, 3, logged.TotalRows)
	require.NotNil(t, logged.MonthRef)
	assert.Equal(t, "2024-07", *logged.MonthRef)
	assert.False(t, logged.ImportedAt.IsZero())
}

func TestImporterNothingToUpsert(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	res := models.NewParseResult(models.TenantIdentity{ExternalTaxID: "1"})
	mockStore := mocks.NewMockStore(ctrl)
	mockStore.EXPECT().ResolveTenant(ctx, res.Identity).Return("7", nil)
	mockStore.EXPECT().Upsert(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	mockStore.EXPECT().RecordImport(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, entry store.ImportLog) error {
			assert.Nil(t, entry.MonthRef)
			assert.Equal(t, 0, entry.TotalRows)
			return nil
		})

	_, err := store.NewImporter(mockStore, nil).Import(ctx, "empty.xlsx", res)
	require.NoError(t, err)
}

func TestImporterErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	t.Run("tenant", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockStore := mocks.NewMockStore(ctrl)
		mockStore.EXPECT().ResolveTenant(ctx, gomock.Any()).Return("", boom)

		_, err := store.NewImporter(mockStore, nil).Import(ctx, "f.xlsx", sampleResult())
		assert.ErrorIs(t, err, boom)
	})

	t.Run("upsert stops the import", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockStore := mocks.NewMockStore(ctrl)
		mockStore.EXPECT().ResolveTenant(ctx, gomock.Any()).Return("42", nil)
		mockStore.EXPECT().Upsert(ctx, models.KindIssuedInvoices, "42", gomock.Any()).Return(0, boom)

		_, err := store.NewImporter(mockStore, nil).Import(ctx, "f.xlsx", sampleResult())
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "issued_invoices")
	})
}
