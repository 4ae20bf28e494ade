package robot

// State is the robot's behavioural mode.
type State int

const (
	Exploring State = iota // Free roaming with wall-following near obstacles
	Cleaning               // Spot cleaning a poorly covered area
	Returning              // Heading back to the dock to recharge
	Stuck                  // Spinning out of a position it could not leave
	NumStates
)

func (s State) String() string {
	switch s {
	case Exploring:
		return "exploring"
	case Cleaning:
		return "cleaning"
	case Returning:
		return "returning"
	case Stuck:
		return "stuck"
	default:
		return "unknown"
	}
}

// TransitionFunc observes state changes.
type TransitionFunc func(from, to State)
