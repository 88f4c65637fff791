package port

import "time"

// WorkspaceMetrics records catalog fetch outcomes. mode is "replace" or "append".
type WorkspaceMetrics interface {
	FetchStarted(mode string)
	FetchCompleted(mode string, rows int, elapsed time.Duration)
	FetchFailed(mode string)
	FetchDiscarded(mode string)
	MutationCompleted(kind string, err error)
}
