// ABOUTME: Groups the ports wired into the feed service at start-up
// ABOUTME: cmd/api fills it from configuration, tests fill it with mocks

package interfaces

// Dependencies are the collaborators of blikifeed.Service
type Dependencies struct {
	Store  WikiStore
	Cache  Cache
	Logger Logger
}
