package api

type HealthResponse struct {
	Status   string `json:"status" description:"Service status"`
	Version  string `json:"version" description:"API version"`
	Provider string `json:"provider" description:"Configured LLM provider"`
	Model    string `json:"model" description:"Configured model ID"`
}
