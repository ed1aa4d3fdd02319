package repository

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Sodstar/mountain-pos/internal/dto"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
}

func setupTestElasticsearch(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (SearchRepository, *[]recordedRequest) {
	var requests []recordedRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests = append(requests, recordedRequest{Method: r.Method, Path: r.URL.Path, Body: string(body)})

		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{server.URL}})
	require.NoError(t, err)

	return CreateNewElasticSearchRepository(client, "products"), &requests
}

func TestElasticsearch_IndexProduct(t *testing.T) {
	repo, requests := setupTestElasticsearch(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"result":"created"}`))
	})

	err := repo.IndexProduct(context.Background(), dto.ProductDocument{ID: "abc", Title: "Green Tea", Price: decimal.RequireFromString("1000")})
	require.NoError(t, err)

	require.Len(t, *requests, 1)
	assert.Equal(t, http.MethodPut, (*requests)[0].Method)
	assert.Equal(t, "/products/_doc/abc", (*requests)[0].Path)
	assert.Contains(t, (*requests)[0].Body, `"title":"Green Tea"`)
}

func TestElasticsearch_DeleteMissingIsNotAnError(t *testing.T) {
	repo, _ := setupTestElasticsearch(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"result":"not_found"}`))
	})

	assert.NoError(t, repo.DeleteProduct(context.Background(), "gone"))
}

func TestElasticsearch_SearchProducts(t *testing.T) {
	repo, requests := setupTestElasticsearch(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"took": 2,
			"hits": {
				"total": {"value": 2, "relation": "eq"},
				"hits": [
					{"_index": "products", "_id": "1", "_score": 2.0, "_source": {"id": "1", "title": "Green Tea", "price": "1000"}},
					{"_index": "products", "_id": "2", "_score": 1.0, "_source": {"id": "2", "title": "Black Tea", "price": "1500"}}
				]
			}
		}`))
	})

	result, err := repo.SearchProducts(context.Background(), "tea", 10)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "Green Tea", result[0].Title)
	assert.True(t, decimal.RequireFromString("1500").Equal(result[1].Price))

	require.Len(t, *requests, 1)
	assert.True(t, strings.HasSuffix((*requests)[0].Path, "/products/_search"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte((*requests)[0].Body), &body))
	assert.Equal(t, float64(10), body["size"])
}

func TestElasticsearch_SearchErrorStatus(t *testing.T) {
	repo, _ := setupTestElasticsearch(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	})

	_, err := repo.SearchProducts(context.Background(), "tea", 10)
	assert.Error(t, err)
}
