// Package queries builds Elasticsearch search requests against the scheme
// document index.
package queries

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var ErrMissingIndex = errors.New("index name is required")

// SchemeQuery describes one search over the scheme index.
type SchemeQuery struct {
	Index    string
	Text     string
	Category string
	State    string
	Language string
	Filters  map[string]interface{}
	From     int
	Size     int
}

// Build assembles the search request. Free text searches name and
// description with fuzziness; category, state and language narrow the hit
// set as keyword filters. A state filter also admits central schemes.
func Build(q SchemeQuery) (*esapi.SearchRequest, error) {
	if q.Index == "" {
		return nil, ErrMissingIndex
	}
	if q.Size <= 0 {
		q.Size = 10
	}

	must := []map[string]interface{}{}
	filter := []map[string]interface{}{}

	if q.Text != "" {
		must = append(must, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     q.Text,
				"fields":    []string{"name^2", "description", "keywords"},
				"fuzziness": "AUTO",
			},
		})
	}
	if q.Category != "" {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"category": strings.ToLower(q.Category)},
		})
	}
	if q.State != "" {
		filter = append(filter, map[string]interface{}{
			"bool": map[string]interface{}{
				"should": []map[string]interface{}{
					{"term": map[string]interface{}{"state": q.State}},
					{"term": map[string]interface{}{"level": "central"}},
				},
				"minimum_should_match": 1,
			},
		})
	}
	if q.Language != "" {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"languages": q.Language},
		})
	}
	for field, value := range q.Filters {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{field: value},
		})
	}

	boolQuery := map[string]interface{}{}
	if len(must) > 0 {
		boolQuery["must"] = must
	}
	if len(filter) > 0 {
		boolQuery["filter"] = filter
	}

	var queryBody map[string]interface{}
	if len(boolQuery) == 0 {
		queryBody = map[string]interface{}{
			"query": map[string]interface{}{"match_all": map[string]interface{}{}},
		}
	} else {
		queryBody = map[string]interface{}{
			"query": map[string]interface{}{"bool": boolQuery},
		}
	}

	body, err := json.Marshal(queryBody)
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	return &esapi.SearchRequest{
		Index: []string{q.Index},
		Body:  strings.NewReader(string(body)),
		From:  &q.From,
		Size:  &q.Size,
	}, nil
}

// Body re-serializes the query body for inspection in logs and tests.
func Body(q SchemeQuery) (map[string]interface{}, error) {
	req, err := Build(q)
	if err != nil {
		return nil, err
	}
	var out map[string]interface{}
	if err := json.NewDecoder(req.Body.(*strings.Reader)).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
