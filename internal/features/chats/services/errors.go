package chats_services

import "errors"

// Sentinel errors shared by the REST controller and the websocket
// handlers, both surfaces map them to their own error shapes.
var (
	ErrNotFound     = errors.New("chat or message not found")
	ErrAccessDenied = errors.New("access denied")
	ErrEmptyContent = errors.New("content cannot be empty")
)
