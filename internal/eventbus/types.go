package eventbus

import "time"

// Topic represents an event topic.
type Topic string

const (
	TopicTurnAppended     Topic = "turn_appended"
	TopicSessionLoaded    Topic = "session_loaded"
	TopicSessionEvicted   Topic = "session_evicted"
	TopicPersistenceError Topic = "persistence_error"
	TopicLLMRequest       Topic = "llm_request"
	TopicLLMResponse      Topic = "llm_response"
	TopicError            Topic = "error"
)

// Event is a message passed through the event bus.
type Event struct {
	ID        string
	Topic     Topic
	Payload   any
	Timestamp time.Time
}

// Handler processes an event.
type Handler func(Event)
