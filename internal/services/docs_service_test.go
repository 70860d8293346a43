package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"adminhub/internal/domain"
	"adminhub/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiptLoader(userID domain.ID) func(context.Context, domain.ID) (receiptData, error) {
	return func(_ context.Context, id domain.ID) (receiptData, error) {
		return receiptData{
			Assignment: models.Assignment{
				ID:             id,
				Type:           domain.AssignmentIssue,
				AssignmentDate: fixedNow,
				Condition:      "Çizik yok",
				AssetID:        5,
				UserID:         userID,
				User:           &models.UserRef{ID: userID, Name: "Ayşe Kaya"},
				AssignedByUser: &models.UserRef{ID: 1, Name: "Şükrü Işık"},
			},
			Asset: models.Asset{ID: 5, Name: "Dizüstü Bilgisayar", AssetCode: "DMB 001/A", Brand: "Dell"},
		}, nil
	}
}

func TestDocsServiceReceipt(t *testing.T) {
	svc := DocsService{Loader: receiptLoader(11), Now: func() time.Time { return fixedNow }}

	pdf, filename, err := svc.Receipt(context.Background(), admin, 42)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.Equal(t, "ZIMMET_42_DMB_001_A.pdf", filename)
}

func TestDocsServiceReceiptOwnerOnly(t *testing.T) {
	svc := DocsService{Loader: receiptLoader(11)}

	_, _, err := svc.Receipt(context.Background(), domain.RequestContext{UserID: 11, Role: domain.RolePersonnel}, 42)
	require.NoError(t, err)

	_, _, err = svc.Receipt(context.Background(), domain.RequestContext{UserID: 12, Role: domain.RolePersonnel}, 42)
	assert.True(t, domain.IsForbidden(err))
}
