package api

import "sync"

// Registry holds the launcher API implementation registered at startup.
// This gives the cmd layer access to the running orchestrator without
// creating circular dependencies.
type Registry struct {
	mu          sync.RWMutex
	launcherAPI LauncherAPI
}

// Global registry instance
var globalRegistry = &Registry{}

// SetLauncherAPI sets the launcher API in the registry.
func SetLauncherAPI(api LauncherAPI) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.launcherAPI = api
}

// GetLauncherAPI gets the launcher API from the registry.
func GetLauncherAPI() LauncherAPI {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	return globalRegistry.launcherAPI
}

// Clear clears the registry (useful for testing).
func Clear() {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.launcherAPI = nil
}
