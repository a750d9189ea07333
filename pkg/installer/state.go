package installer

import "strconv"

// State is the lifecycle position of a Controller.
type State int

const (
	StateIdle State = iota
	StateAwaitingSubmission
	StateWriting
	StateDone
	StateUninstalling
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingSubmission:
		return "awaiting_submission"
	case StateWriting:
		return "writing"
	case StateDone:
		return "done"
	case StateUninstalling:
		return "uninstalling"
	default:
		return "state(" + strconv.Itoa(int(s)) + ")"
	}
}

// Action distinguishes a first install from an update.
type Action int

const (
	ActionInstall Action = iota
	ActionUpdate
)

func (a Action) String() string {
	if a == ActionUpdate {
		return "update"
	}
	return "install"
}
