package core

// SessionID identifies one live client connection for its whole lifetime.
type SessionID string
