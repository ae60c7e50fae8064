package audit

import "fmt"

// ConfigurationError means the run cannot start: no workspace, no matching
// project, or unusable settings. No report is sent.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Msg
}

// UpstreamFetchError wraps a failure of the entry source. No report is sent.
type UpstreamFetchError struct {
	Op  string
	Err error
}

func (e *UpstreamFetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.Op, e.Err)
}

func (e *UpstreamFetchError) Unwrap() error { return e.Err }

// DispatchError wraps a failure of the report sink. The report is dropped.
type DispatchError struct {
	Err error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatching report: %v", e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }
