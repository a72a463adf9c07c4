package chat

import "errors"

var (
	ErrNotFound     = errors.New("conversation not found")
	ErrForbidden    = errors.New("not a participant")
	ErrEmptyMessage = errors.New("message body is empty")
	ErrSelfChat     = errors.New("cannot start a conversation with yourself")
)
