package service

// Broadcaster pushes session-scoped events to connected simulator clients.
// Implemented by the websocket hub.
type Broadcaster interface {
	NotifySession(token string, event string, payload interface{})
}
