package elasticsearch

import (
	"net/http"

	"github.com/Sodstar/mountain-pos/config"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/rs/zerolog/log"
)

func CreateElasticsearchClient(conf config.ElasticsearchConfig) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{conf.DBHost},
		Transport: http.DefaultTransport,
	})
	if err != nil {
		log.Error().Err(err).Str("component", "CreateElasticsearchClient").Msg("failed to create client")
		return nil, err
	}

	res, err := client.Info()
	if err != nil {
		log.Error().Err(err).Str("component", "CreateElasticsearchClient").Msg("failed to reach cluster")
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Warn().Str("component", "CreateElasticsearchClient").Str("response", res.String()).Msg("cluster returned an error")
	}

	return client, nil
}
