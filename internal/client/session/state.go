package session

// State is the lifecycle phase of the client session.
//
// Transitions:
//
//	Uninitialized → Restoring → {Authenticated, Anonymous}
//	Authenticated → Anonymous   (logout or any 401)
//	Anonymous     → Authenticated (login)
type State int

const (
	StateUninitialized State = iota
	StateRestoring
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRestoring:
		return "restoring"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}
