package bootstrap

// State is a position in the bootstrap state machine:
//
//	Start → VersionChecked → Provisioned → Installed → LogDirReady → Done
//
// Any failing step moves the machine to Failed, which is terminal.
type State int

const (
	StateStart State = iota
	StateVersionChecked
	StateProvisioned
	StateInstalled
	StateLogDirReady
	StateDone
	StateFailed
)

var stateNames = map[State]string{
	StateStart:          "Start",
	StateVersionChecked: "VersionChecked",
	StateProvisioned:    "Provisioned",
	StateInstalled:      "Installed",
	StateLogDirReady:    "LogDirReady",
	StateDone:           "Done",
	StateFailed:         "Failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Terminal reports whether no further transition can happen from s.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}
