package model

type RequestLog struct {
	RequestID   string `json:"request_id"`
	Method      string `json:"method"`
	Path        string `json:"path"`
	Route       string `json:"route,omitempty"`
	Query       string `json:"query,omitempty"`
	ProjectName string `json:"project_name,omitempty"`
	Body        string `json:"body,omitempty"`
	IPHash      string `json:"ip_hash,omitempty"`
	UserAgent   string `json:"user_agent,omitempty"`
	Version     string `json:"version,omitempty"`
	RequestTS   string `json:"request_ts"`
	LoggedAt    string `json:"logged_at"`
}
