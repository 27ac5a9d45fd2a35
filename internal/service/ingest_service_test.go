package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"ai-homematch-be/internal/constant"
	"ai-homematch-be/internal/dto"
	"ai-homematch-be/internal/pkg/apperror"
	"ai-homematch-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingPublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *capturingPublisher) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

func TestIngestDocumentOneHousePerPage(t *testing.T) {
	store := newFakeStore()
	project := seedProject(store, 0)
	pub := &capturingPublisher{}
	svc := NewIngestService(&fakeUow{store: store}, pub, logger.NewNopLogger())

	res, err := svc.IngestDocument(context.Background(), &dto.IngestDocumentRequest{
		ProjectId:  project.Id,
		SourceName: "suumo-batch-7.pdf",
		Pages: []string{
			"2LDK, Setagaya, 28M yen",
			"", // blank page from the PDF splitter
			"   \n  ",
			"3LDK, Chofu, 35M yen",
		},
	})
	require.NoError(t, err)

	assert.Len(t, res.HouseIds, 2)
	assert.Equal(t, 2, res.Skipped)
	assert.Len(t, store.houses, 2)
	for _, house := range store.houses {
		assert.Equal(t, "suumo-batch-7.pdf", house.SourceName)
		assert.Equal(t, project.Id, house.ProjectId)
	}

	// One embed job per created house.
	require.Len(t, pub.payloads, 2)
	var msg dto.PublishEmbedHouseMessage
	require.NoError(t, json.Unmarshal(pub.payloads[0], &msg))
	assert.Contains(t, res.HouseIds, msg.HouseId)
}

func TestIngestDocumentSplitsRawTextIntoPages(t *testing.T) {
	store := newFakeStore()
	project := seedProject(store, 0)
	pub := &capturingPublisher{}
	svc := NewIngestService(&fakeUow{store: store}, pub, logger.NewNopLogger())

	res, err := svc.IngestDocument(context.Background(), &dto.IngestDocumentRequest{
		ProjectId:  project.Id,
		SourceName: "raw-extract.pdf",
		Text:       "2LDK, Setagaya, 28M yen\f   \n\f3LDK, Chofu, 35M yen",
	})
	require.NoError(t, err)

	// Form-feed page breaks, blank page dropped by the splitter.
	assert.Len(t, res.HouseIds, 2)
	assert.Equal(t, 0, res.Skipped)
	assert.Len(t, store.houses, 2)
	assert.Len(t, pub.payloads, 2)
}

func TestIngestDocumentKeepsFailedExtractionsButSkipsEmbedding(t *testing.T) {
	store := newFakeStore()
	project := seedProject(store, 0)
	pub := &capturingPublisher{}
	svc := NewIngestService(&fakeUow{store: store}, pub, logger.NewNopLogger())

	res, err := svc.IngestDocument(context.Background(), &dto.IngestDocumentRequest{
		ProjectId:  project.Id,
		SourceName: "scanned.pdf",
		Pages:      []string{constant.ExtractionFailedSentinel, "1K, Nakano, 9M yen"},
	})
	require.NoError(t, err)

	// The unreadable page still becomes a recommendable house.
	assert.Len(t, res.HouseIds, 2)
	assert.Len(t, store.houses, 2)

	// But no embed job is queued for it.
	assert.Len(t, pub.payloads, 1)
}

func TestIngestDocumentUnknownProject(t *testing.T) {
	svc := NewIngestService(&fakeUow{store: newFakeStore()}, &capturingPublisher{}, logger.NewNopLogger())

	_, err := svc.IngestDocument(context.Background(), &dto.IngestDocumentRequest{
		ProjectId:  uuid.New(),
		SourceName: "x.pdf",
		Pages:      []string{"content"},
	})
	assert.ErrorIs(t, err, apperror.ErrProjectNotFound)
}

func TestIngestDocumentRejectedWhenCompleted(t *testing.T) {
	store := newFakeStore()
	project := seedProject(store, 0)
	project.Completed = true
	svc := NewIngestService(&fakeUow{store: store}, &capturingPublisher{}, logger.NewNopLogger())

	_, err := svc.IngestDocument(context.Background(), &dto.IngestDocumentRequest{
		ProjectId:  project.Id,
		SourceName: "late.pdf",
		Pages:      []string{"content"},
	})
	assert.ErrorIs(t, err, apperror.ErrProjectCompleted)
}
