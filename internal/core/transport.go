package core

//go:generate mockgen -source=transport.go -destination=mocks/transport_mock.go -package=mocks

// Transport pushes events to live sessions.
// Both calls are best-effort and never block; unknown sessions are skipped.
type Transport interface {
	SendTo(sid SessionID, event string, payload any)
	SendToMany(sids []SessionID, event string, payload any)
}
