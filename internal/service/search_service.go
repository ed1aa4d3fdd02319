package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Sodstar/mountain-pos/internal/dto"
	"github.com/Sodstar/mountain-pos/internal/repository"
	"github.com/Sodstar/mountain-pos/pkg/errs"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"
)

const defaultSearchLimit = 20

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type SearchServiceImpl struct {
	searchRepo  repository.SearchRepository
	breaker     *gobreaker.CircuitBreaker[[]dto.ProductDocument]
	kafkaReader messageReader
}

// CreateSearchService builds the read side of the catalog. searchRepo may be
// nil when no search cluster is configured, and kafkaReader may be nil when no
// broker is configured.
func CreateSearchService(searchRepo repository.SearchRepository, breaker *gobreaker.CircuitBreaker[[]dto.ProductDocument], kafkaReader *kafka.Reader) SearchService {
	s := &SearchServiceImpl{searchRepo: searchRepo, breaker: breaker}
	if kafkaReader != nil {
		s.kafkaReader = kafkaReader
	}
	return s
}

func (s *SearchServiceImpl) SearchProducts(ctx context.Context, query string, limit int) (data []dto.ProductDocument, err error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is required: %w", errs.ErrValidation)
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	if s.searchRepo == nil {
		return nil, fmt.Errorf("search index is not configured: %w", errs.ErrServiceUnavailable)
	}

	data, err = s.breaker.Execute(func() ([]dto.ProductDocument, error) {
		return s.searchRepo.SearchProducts(ctx, query, limit)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("search index: %w", errs.ErrServiceUnavailable)
	}
	if err != nil {
		return nil, retrievalError("search results", err)
	}

	return data, nil
}

// HandleEvent applies one catalog event to the search index.
func (s *SearchServiceImpl) HandleEvent(ctx context.Context, msg dto.KafkaMessage) (err error) {
	if s.searchRepo == nil {
		return fmt.Errorf("search index is not configured: %w", errs.ErrServiceUnavailable)
	}

	var document dto.ProductDocument
	dataBytes, err := json.Marshal(msg.Data)
	if err != nil {
		return
	}
	if err = json.Unmarshal(dataBytes, &document); err != nil {
		return
	}

	switch msg.EventType {
	case dto.EventAddProduct, dto.EventUpdateProduct:
		return s.searchRepo.IndexProduct(ctx, document)
	case dto.EventDeleteProduct:
		return s.searchRepo.DeleteProduct(ctx, document.ID)
	default:
		log.Ctx(ctx).Warn().Str("component", "HandleEvent").Str("event_type", msg.EventType).Msg("unknown event type")
		return nil
	}
}

// ConsumeEvent indexes catalog events until ctx is cancelled.
func (s *SearchServiceImpl) ConsumeEvent(ctx context.Context) {
	if s.kafkaReader == nil {
		return
	}

	for {
		msg, err := s.kafkaReader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return
			}
			log.Error().Err(err).Str("component", "ConsumeEvent").Msg("")
			continue
		}

		var receivedMsg dto.KafkaMessage
		if err := json.Unmarshal(msg.Value, &receivedMsg); err != nil {
			log.Error().Err(err).Str("component", "ConsumeEvent").Msg("")
			continue
		}

		if err := s.HandleEvent(ctx, receivedMsg); err != nil {
			log.Error().Err(err).Str("component", "ConsumeEvent").Str("event_type", receivedMsg.EventType).Msg("")
			continue
		}

		log.Debug().Str("component", "ConsumeEvent").Str("event_type", receivedMsg.EventType).Msg("catalog event indexed")
	}
}
