package service

import (
	"context"
	"testing"

	"ai-homematch-be/internal/dto"
	"ai-homematch-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportCreatesProjectPerInquiry(t *testing.T) {
	store := newFakeStore()
	svc := NewInquiryService(&fakeUow{store: store}, nil, logger.NewNopLogger())

	res, err := svc.Import(context.Background(), &dto.ImportInquiriesRequest{
		Inquiries: []dto.InquiryInput{
			{ExternalId: "JDS-1001", CustomerName: "Sato family", Email: "agent@example.com", Requirements: "3LDK, near a school"},
			{ExternalId: "JDS-1002", CustomerName: "Suzuki family", Requirements: "quiet area, parking"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Imported)
	assert.Zero(t, res.Duplicates)
	assert.Len(t, res.ProjectIds, 2)
	assert.Len(t, store.projects, 2)
	assert.Len(t, store.inquiries, 2)

	for _, project := range store.projects {
		assert.NotEmpty(t, project.ExternalId)
		assert.Zero(t, project.CurrentRound)
		assert.False(t, project.Completed)
	}
}

func TestImportSkipsDuplicatesByExternalId(t *testing.T) {
	store := newFakeStore()
	svc := NewInquiryService(&fakeUow{store: store}, nil, logger.NewNopLogger())

	first, err := svc.Import(context.Background(), &dto.ImportInquiriesRequest{
		Inquiries: []dto.InquiryInput{{ExternalId: "JDS-2001", CustomerName: "Tanaka family"}},
	})
	require.NoError(t, err)
	require.Equal(t, 1, first.Imported)

	// Re-running the scrape delivers the same record again.
	second, err := svc.Import(context.Background(), &dto.ImportInquiriesRequest{
		Inquiries: []dto.InquiryInput{
			{ExternalId: "JDS-2001", CustomerName: "Tanaka family"},
			{ExternalId: "JDS-2002", CustomerName: "Yamada family"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, second.Imported)
	assert.Equal(t, 1, second.Duplicates)
	assert.Len(t, store.projects, 2)
	assert.Len(t, store.inquiries, 2)
}
