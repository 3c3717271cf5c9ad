package service

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToTeam(teamID string, msgType string, payload interface{})
}
