package types

// Message describes a handshake message exchanged between the two roles.
type Message interface {
	// NewEmpty returns a new empty message of the same type.
	NewEmpty() Message

	// Name returns the unique name of the message type.
	Name() string

	// String returns a one-line description of the message.
	String() string

	// HTML returns an HTML representation of the message.
	HTML() string
}
