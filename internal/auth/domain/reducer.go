package domain

type Action interface {
	Kind() string
}

// LoginStarted moves LoggedOut -> Authenticating. Applied only when no
// other sign-in is in flight, which makes a second concurrent attempt
// observable to its caller: the state keeps the first attempt id.
type LoginStarted struct {
	Attempt string
}

func (LoginStarted) Kind() string { return "AUTH_LOGIN_START" }

type LoggedIn struct {
	Attempt string
	Epoch   uint64
	Session Session
}

func (LoggedIn) Kind() string { return "AUTH_LOGIN_SUCCESS" }

func (a LoggedIn) AuthEpoch() uint64 { return a.Epoch }

type LoginFailed struct {
	Attempt string
	Epoch   uint64
}

func (LoginFailed) Kind() string { return "AUTH_LOGIN_FAIL" }

func (a LoginFailed) AuthEpoch() uint64 { return a.Epoch }

// LoggedOut ends the session. Other reducers react to it as well: the
// cart empties and user-scoped views unbind in the same commit.
type LoggedOut struct {
	Expired bool
}

func (LoggedOut) Kind() string { return "AUTH_LOGOUT" }

func Reduce(s State, a Action) State {
	switch act := a.(type) {
	case LoginStarted:
		if s.Status != StatusLoggedOut {
			return s
		}
		s.Status = StatusAuthenticating
		s.Attempt = act.Attempt
		s.Session = Session{}
	case LoggedIn:
		if s.Status != StatusAuthenticating || s.Attempt != act.Attempt {
			return s
		}
		s.Status = StatusLoggedIn
		s.Session = act.Session
		s.Attempt = ""
		s.Epoch++
	case LoginFailed:
		if s.Status != StatusAuthenticating || s.Attempt != act.Attempt {
			return s
		}
		s.Status = StatusLoggedOut
		s.Attempt = ""
		s.Session = Session{}
	case LoggedOut:
		if s.Status == StatusLoggedOut && s.Attempt == "" {
			return s
		}
		s = State{Status: StatusLoggedOut, Epoch: s.Epoch + 1}
	}
	return s
}
