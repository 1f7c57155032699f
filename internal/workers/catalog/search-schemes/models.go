// internal/workers/catalog/search-schemes/models.go
package searchschemes

type Input struct {
	QueryText  string                 `json:"queryText,omitempty"`
	Category   string                 `json:"category,omitempty"`
	State      string                 `json:"state,omitempty"`
	Language   string                 `json:"language,omitempty"`
	Filters    map[string]interface{} `json:"filters,omitempty"`
	Pagination Pagination             `json:"pagination,omitempty"`
}

type Pagination struct {
	From int `json:"from"`
	Size int `json:"size"`
}

type Output struct {
	Schemes   []map[string]interface{} `json:"schemes"`
	TotalHits int                      `json:"totalHits"`
	MaxScore  float64                  `json:"maxScore"`
	Took      int                      `json:"took"`
}
