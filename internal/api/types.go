package api

// BackendHealthStatus is the result of a one-shot backend liveness check.
type BackendHealthStatus struct {
	Running bool   `json:"running"`
	URL     string `json:"url"`
}

// ComponentStatus describes one supervised component.
type ComponentStatus struct {
	Label string `json:"label"`
	State string `json:"state"`
}

// LaunchStatus is the combined status surfaced to the shell layer.
type LaunchStatus struct {
	SessionID string          `json:"sessionId"`
	Backend   ComponentStatus `json:"backend"`
	Web       ComponentStatus `json:"web"`
	WebURL    string          `json:"webUrl"`
}
