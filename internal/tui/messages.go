package tui

// fetchDoneMsg reports the end of a question fetch started by the model.
type fetchDoneMsg struct {
	err error
}
