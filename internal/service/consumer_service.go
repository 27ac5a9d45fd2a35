package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ai-homematch-be/internal/constant"
	"ai-homematch-be/internal/dto"
	"ai-homematch-be/internal/entity"
	"ai-homematch-be/internal/repository/specification"
	"ai-homematch-be/internal/repository/unitofwork"
	"ai-homematch-be/pkg/embedding"
	"ai-homematch-be/pkg/splitter"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedHouseMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	house, err := uow.HouseRepository().FindOne(ctx, specification.ByID{ID: payload.HouseId})
	if err != nil {
		log.Printf("[ERROR] Failed to get house %s: %v", payload.HouseId, err)
		msg.Nack()
		return
	}
	if house == nil {
		log.Printf("[WARN] House not found, skipping embedding: %s", payload.HouseId)
		msg.Ack() // House deleted? Ack.
		return
	}

	// Extraction-failed pages carry no usable text. Keep them recommendable
	// by random fill but give the vector index nothing to mislead on.
	if house.Content == constant.ExtractionFailedSentinel {
		log.Printf("[WARN] House %s has no extracted text, skipping embedding", house.Id)
		msg.Ack()
		return
	}

	chunks := splitter.SplitText(house.Content, constant.EmbedChunkSize, constant.EmbedChunkOverlap)
	log.Printf("[INFO] House %s split into %d chunks", house.Id, len(chunks))

	var newEmbeddings []*entity.HouseEmbedding

	for i, chunk := range chunks {
		res, err := cs.embeddingProvider.Generate(chunk, "RETRIEVAL_DOCUMENT")
		if err != nil {
			log.Printf("[ERROR] Failed to generate embedding for chunk %d of house %s: %v", i, house.Id, err)
			msg.Nack()
			return
		}

		newEmbeddings = append(newEmbeddings, &entity.HouseEmbedding{
			Id:             uuid.New(),
			Document:       chunk,
			EmbeddingValue: res.Embedding.Values,
			HouseId:        house.Id,
			ChunkIndex:     i,
			CreatedAt:      time.Now(),
		})
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	if err := uow.HouseEmbeddingRepository().DeleteByHouseId(ctx, house.Id); err != nil {
		log.Printf("[ERROR] Failed to delete old embeddings: %v", err)
		msg.Nack()
		return
	}

	if len(newEmbeddings) > 0 {
		if err := uow.HouseEmbeddingRepository().CreateBulk(ctx, newEmbeddings); err != nil {
			log.Printf("[ERROR] Failed to create bulk embeddings: %v", err)
			msg.Nack()
			return
		}
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit transaction: %v", err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] House embedded: %d chunks for HouseId: %s", len(newEmbeddings), house.Id)
	msg.Ack()
}
