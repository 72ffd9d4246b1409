package types

import "fmt"

// ClientHelloMessage

// NewEmpty implements types.Message.
func (c ClientHelloMessage) NewEmpty() Message {
	return &ClientHelloMessage{}
}

// Name implements types.Message.
func (ClientHelloMessage) Name() string {
	return "clienthello"
}

// String implements types.Message.
func (c ClientHelloMessage) String() string {
	return fmt.Sprintf("<clienthello:%s>", c.RequestedGroup)
}

// HTML implements types.Message.
func (c ClientHelloMessage) HTML() string {
	return c.String()
}

// ServerHelloMessage

// NewEmpty implements types.Message.
func (c ServerHelloMessage) NewEmpty() Message {
	return &ServerHelloMessage{}
}

// Name implements types.Message.
func (ServerHelloMessage) Name() string {
	return "serverhello"
}

// String implements types.Message.
func (c ServerHelloMessage) String() string {
	return fmt.Sprintf("<serverhello:%s:%s>", c.SelectedGroup, c.Params)
}

// HTML implements types.Message.
func (c ServerHelloMessage) HTML() string {
	return c.String()
}

// ClientKeyShareMessage

// NewEmpty implements types.Message.
func (c ClientKeyShareMessage) NewEmpty() Message {
	return &ClientKeyShareMessage{}
}

// Name implements types.Message.
func (ClientKeyShareMessage) Name() string {
	return "clientkeyshare"
}

// String implements types.Message.
func (c ClientKeyShareMessage) String() string {
	return fmt.Sprintf("<clientkeyshare:%v>", c.Public)
}

// HTML implements types.Message.
func (c ClientKeyShareMessage) HTML() string {
	return c.String()
}

// ServerKeyShareMessage

// NewEmpty implements types.Message.
func (c ServerKeyShareMessage) NewEmpty() Message {
	return &ServerKeyShareMessage{}
}

// Name implements types.Message.
func (ServerKeyShareMessage) Name() string {
	return "serverkeyshare"
}

// String implements types.Message.
func (c ServerKeyShareMessage) String() string {
	return fmt.Sprintf("<serverkeyshare:%v>", c.Public)
}

// HTML implements types.Message.
func (c ServerKeyShareMessage) HTML() string {
	return c.String()
}

// FinishedMessage

// NewEmpty implements types.Message.
func (c FinishedMessage) NewEmpty() Message {
	return &FinishedMessage{}
}

// Name implements types.Message.
func (FinishedMessage) Name() string {
	return "finished"
}

// String implements types.Message.
func (c FinishedMessage) String() string {
	return fmt.Sprintf("<finished:%t>", c.OK)
}

// HTML implements types.Message.
func (c FinishedMessage) HTML() string {
	return c.String()
}
