package metrics

import "time"

// ResultLabel enumerates result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// Result maps an error to its label.
func Result(err error) ResultLabel {
	if err != nil {
		return ResultFailed
	}
	return ResultSuccess
}

// Recorder defines observability hooks for scans, renders and builds.
type Recorder interface {
	IncScan(result ResultLabel)
	ObserveRender(template string, d time.Duration, result ResultLabel)
	IncArtifactReadFailure()
	ObserveBuildDuration(target string, d time.Duration)
	IncBuildOutcome(target string, result ResultLabel)
	AddPagesWritten(target string, n int)
	ObserveHTTPRequest(route string, status int, d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncScan(ResultLabel)                              {}
func (NoopRecorder) ObserveRender(string, time.Duration, ResultLabel) {}
func (NoopRecorder) IncArtifactReadFailure()                          {}
func (NoopRecorder) ObserveBuildDuration(string, time.Duration)       {}
func (NoopRecorder) IncBuildOutcome(string, ResultLabel)              {}
func (NoopRecorder) AddPagesWritten(string, int)                      {}
func (NoopRecorder) ObserveHTTPRequest(string, int, time.Duration)    {}
