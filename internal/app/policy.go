package app

import (
	"fmt"

	"github.com/dkeye/Canvas/internal/core"
)

type BackpressureAction int

const (
	DropFrame BackpressureAction = iota
	KickMember
)

// Policy decides what happens to a session whose send buffer is full.
type Policy interface {
	OnBackPressure(sid core.SessionID) BackpressureAction
}

type SimplePolicy struct {
	Action BackpressureAction
}

func (p SimplePolicy) OnBackPressure(core.SessionID) BackpressureAction {
	return p.Action
}

// ParsePolicy maps the slow_client_policy config value onto a Policy.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "", "drop":
		return SimplePolicy{Action: DropFrame}, nil
	case "kick":
		return SimplePolicy{Action: KickMember}, nil
	default:
		return nil, fmt.Errorf("unknown slow client policy %q", name)
	}
}
