package websocket

import "time"

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// Playback messages
	MessageTypePlaybackState MessageType = "playback_state"
	MessageTypeFrame         MessageType = "frame"

	// Resource lifecycle messages
	MessageTypeResourceLoaded MessageType = "resource_loaded"
	MessageTypeResourceError  MessageType = "resource_error"
)

// Message represents a WebSocket message
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// PlaybackStateData represents a playback state transition
type PlaybackStateData struct {
	State    string  `json:"state"`
	Previous string  `json:"previous_state"`
	Progress float64 `json:"progress"`
}

// FrameData is emitted by the render loop whenever the visible portion
// of the path changes
type FrameData struct {
	State         string  `json:"state"`
	Progress      float64 `json:"progress"`
	VisiblePoints int     `json:"visible_points"`
	TotalPoints   int     `json:"total_points"`
}

// ResourceData represents a resource slot event
type ResourceData struct {
	Slot  string `json:"slot"`
	Name  string `json:"name"`
	Error string `json:"error,omitempty"`
}

// NewMessage creates a new message with current timestamp
func NewMessage(msgType MessageType, data interface{}) Message {
	return Message{
		Type:      msgType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

func NewPlaybackStateMessage(state, previous string, progress float64) Message {
	return NewMessage(MessageTypePlaybackState, PlaybackStateData{
		State:    state,
		Previous: previous,
		Progress: progress,
	})
}

func NewFrameMessage(state string, progress float64, visible, total int) Message {
	return NewMessage(MessageTypeFrame, FrameData{
		State:         state,
		Progress:      progress,
		VisiblePoints: visible,
		TotalPoints:   total,
	})
}

func NewResourceLoadedMessage(slot, name string) Message {
	return NewMessage(MessageTypeResourceLoaded, ResourceData{Slot: slot, Name: name})
}

func NewResourceErrorMessage(slot, name, errMsg string) Message {
	return NewMessage(MessageTypeResourceError, ResourceData{Slot: slot, Name: name, Error: errMsg})
}
