package practice

// sessionStartedMsg is sent when question generation finishes.
type sessionStartedMsg struct {
	Err error
}

// bankResetMsg is sent after the used-question pool has been cleared.
type bankResetMsg struct {
	Err error
}
