package chat

import "errors"

// ErrNoChatService is returned when the view has no chat service wired.
var ErrNoChatService = errors.New("chat service not available")
