package app

// Topic names an event stream on the bus.
type Topic string

const (
	// TopicNotice carries user-facing notifications such as "operation failed".
	TopicNotice Topic = "notice"
	// TopicPostChanged carries a post whose counters changed inside the dialog.
	TopicPostChanged Topic = "post.changed"
)

// Event is a single published message.
type Event struct {
	Topic   Topic
	Payload any
}

// Handler receives events for a topic.
type Handler func(Event)

// EventBus is the publish/subscribe collaborator used for cross-component signaling.
// Subscribers own their lifecycle: the returned func unsubscribes.
type EventBus interface {
	Subscribe(topic Topic, h Handler) (unsubscribe func())
	Publish(e Event)
}

// Notice is the payload of TopicNotice.
type Notice struct {
	Text  string
	Err   error
	Level NoticeLevel
}

// NoticeLevel grades a notice for display.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeError
)
