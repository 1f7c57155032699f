// pkg/registry/schema.go
package registry

// TaskRegistry catalogs every worker task the assistant exposes, with the
// JSON schemas its inputs and outputs must satisfy. Workflow tooling and the
// build-reply validator both read from it.
type TaskRegistry struct {
	Version     string           `json:"version"`
	LastUpdated string           `json:"lastUpdated"`
	Tasks       []TaskDefinition `json:"tasks"`
}

type TaskDefinition struct {
	ID           string                 `json:"id"`
	DisplayName  string                 `json:"displayName"`
	Description  string                 `json:"description"`
	Category     string                 `json:"category"`
	TaskType     string                 `json:"taskType"`
	InputSchema  map[string]interface{} `json:"inputSchema"`
	OutputSchema map[string]interface{} `json:"outputSchema"`
	ErrorCodes   []string               `json:"errorCodes"`
	Timeout      string                 `json:"timeout"`
	Retries      int                    `json:"retries"`
	Workflows    []string               `json:"workflows"`
	Tags         []string               `json:"tags"`
}
