package app

// ApplicationRecorder receives lifecycle events for metrics.
type ApplicationRecorder interface {
	ApplicationCreated()
	StatusChanged(status string)
	ApplicationDeleted()
}

// AuthRecorder receives register and login outcomes for metrics.
type AuthRecorder interface {
	AuthAttempt(action string, success bool)
}

type noopRecorder struct{}

func (noopRecorder) ApplicationCreated()      {}
func (noopRecorder) StatusChanged(string)     {}
func (noopRecorder) ApplicationDeleted()      {}
func (noopRecorder) AuthAttempt(string, bool) {}
