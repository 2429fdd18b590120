package gateway

// NoticeLevel grades a user-visible message.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeError
)

// Notice is a transient user-visible message.
type Notice struct {
	Level   NoticeLevel
	Message string
}

// Signals receives the upward effects of settled outcomes.
type Signals interface {
	// Refresh asks the host to reload the resource from the store.
	Refresh()
	// Notify surfaces a transient message.
	Notify(n Notice)
}

// Settle turns an outcome into signals: a refresh on success, an error
// notice on failure. Failures stop here; local state is left as it is.
func Settle(o Outcome, s Signals) {
	if s == nil {
		return
	}
	if o.Err != nil {
		s.Notify(Notice{Level: NoticeError, Message: o.Err.Error()})
		return
	}
	s.Refresh()
}
