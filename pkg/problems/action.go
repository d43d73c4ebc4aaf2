package problems

import (
	"fmt"

	"github.com/yaklabco/diagview/pkg/diagnostic"
)

// Action is the outcome of a click. It is one of ToggleCollapse,
// JumpToLocation or NoTarget.
type Action interface {
	isAction()
}

// ToggleCollapse flips the collapse flag of a file section.
type ToggleCollapse struct {
	Path string
}

// JumpToLocation asks the host to open Path at Position.
type JumpToLocation struct {
	Path     string
	Position diagnostic.Position
}

// NoTarget means the click resolved to nothing actionable.
type NoTarget struct {
	Reason NoTargetReason
}

func (ToggleCollapse) isAction() {}
func (JumpToLocation) isAction() {}
func (NoTarget) isAction()       {}

func (a ToggleCollapse) String() string {
	return "toggle " + a.Path
}

func (a JumpToLocation) String() string {
	return fmt.Sprintf("jump %s:%s", a.Path, a.Position)
}

func (a NoTarget) String() string {
	return "no target: " + a.Reason.String()
}

// NoTargetReason says why a click produced no action.
type NoTargetReason int

const (
	// ReasonOutOfRange is a click outside the flattened line range.
	ReasonOutOfRange NoTargetReason = iota
	// ReasonCollapsed is a click on a body line of a collapsed file.
	ReasonCollapsed
	// ReasonExhausted means a file's span claimed the line but no entry did.
	ReasonExhausted
	// ReasonBadLocation is a related entry whose URI is not a file path.
	ReasonBadLocation
)

func (r NoTargetReason) String() string {
	switch r {
	case ReasonOutOfRange:
		return "out of range"
	case ReasonCollapsed:
		return "collapsed"
	case ReasonExhausted:
		return "exhausted"
	case ReasonBadLocation:
		return "bad location"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}
