package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Sodstar/mountain-pos/internal/dto"
	pkgdto "github.com/Sodstar/mountain-pos/pkg/dto"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/rs/zerolog/log"
)

type ElasticSearchProductRepositoryImpl struct {
	client *elasticsearch.Client
	index  string
}

func CreateNewElasticSearchRepository(client *elasticsearch.Client, index string) SearchRepository {
	return &ElasticSearchProductRepositoryImpl{client: client, index: index}
}

func (r *ElasticSearchProductRepositoryImpl) IndexProduct(ctx context.Context, data dto.ProductDocument) (err error) {
	requestPayload, err := json.Marshal(data)
	if err != nil {
		return
	}

	res, err := r.client.Index(
		r.index,
		bytes.NewReader(requestPayload),
		r.client.Index.WithDocumentID(data.ID),
		r.client.Index.WithContext(ctx),
	)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "IndexProduct").Msg("")
		return
	}
	defer res.Body.Close()

	return responseError(res, "IndexProduct")
}

// DeleteProduct treats a missing document as already deleted.
func (r *ElasticSearchProductRepositoryImpl) DeleteProduct(ctx context.Context, id string) (err error) {
	res, err := r.client.Delete(r.index, id, r.client.Delete.WithContext(ctx))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProduct").Msg("")
		return
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil
	}

	return responseError(res, "DeleteProduct")
}

func (r *ElasticSearchProductRepositoryImpl) SearchProducts(ctx context.Context, query string, limit int) (data []dto.ProductDocument, err error) {
	param := map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"title^3", "code^2", "barcode", "description"},
				"fuzziness": "AUTO",
			},
		},
	}

	var buf bytes.Buffer
	if err = json.NewEncoder(&buf).Encode(param); err != nil {
		return
	}

	res, err := r.client.Search(
		r.client.Search.WithContext(ctx),
		r.client.Search.WithIndex(r.index),
		r.client.Search.WithBody(&buf),
	)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "SearchProducts").Msg("")
		return
	}
	defer res.Body.Close()

	if err = responseError(res, "SearchProducts"); err != nil {
		return
	}

	var parsedResponseBody pkgdto.ElasticsearchResponse
	if err = json.NewDecoder(res.Body).Decode(&parsedResponseBody); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "SearchProducts").Msg("")
		return
	}

	return parsedResponseBody.Documents(), nil
}

func responseError(res *esapi.Response, component string) error {
	if !res.IsError() {
		return nil
	}

	err := fmt.Errorf("elasticsearch %s: %s", component, res.Status())
	log.Error().Err(err).Str("component", component).Msg("")
	return err
}
