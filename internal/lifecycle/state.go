package lifecycle

// State tracks where the process is in its lifetime. It is owned
// exclusively by the Manager; other components only read it.
type State int32

const (
	// StateInitializing covers everything before the listener is bound:
	// configuration is loaded and dependency initialization is running.
	StateInitializing State = iota
	// StateReady means all dependencies are up and the listener accepts
	// connections.
	StateReady
	// StateShuttingDown means a termination signal was received: the
	// listener no longer accepts connections and in-flight requests are
	// draining.
	StateShuttingDown
	// StateStopped means the listener is closed and all work has drained
	// (or the drain window elapsed).
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateShuttingDown:
		return "shutting down"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}
