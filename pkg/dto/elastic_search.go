package dto

import "github.com/Sodstar/mountain-pos/internal/dto"

type ElasticsearchResponse struct {
	Took     int        `json:"took"`
	TimedOut bool       `json:"timed_out"`
	Shards   ShardsInfo `json:"_shards"`
	Hits     HitsInfo   `json:"hits"`
}

type ShardsInfo struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
}

type HitsInfo struct {
	Total    TotalHitsInfo `json:"total"`
	MaxScore float64       `json:"max_score"`
	Hits     []Hit         `json:"hits"`
}

type TotalHitsInfo struct {
	Value    int    `json:"value"`
	Relation string `json:"relation"`
}

type Hit struct {
	Index  string              `json:"_index"`
	ID     string              `json:"_id"`
	Score  float64             `json:"_score"`
	Source dto.ProductDocument `json:"_source"`
}

// Documents returns the hit sources in ranking order.
func (r ElasticsearchResponse) Documents() []dto.ProductDocument {
	documents := make([]dto.ProductDocument, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		documents = append(documents, hit.Source)
	}
	return documents
}
