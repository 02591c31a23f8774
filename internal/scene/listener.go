package scene

// Listener marks the node whose world transform drives sound spatialization.
// It carries no data of its own; position and orientation come from the node.
type Listener struct{}

func (Listener) Kind() string { return "listener" }
