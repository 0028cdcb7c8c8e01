package results

// StatusNotifyMsg tells the app to show a message in the status bar,
// e.g. after a CSV copy completes.
type StatusNotifyMsg struct {
	Message string
}
