package model

// WorkflowState represents the current step of the processing workflow
type WorkflowState string

const (
	// WorkflowIdle means no file is selected and nothing is in progress
	WorkflowIdle WorkflowState = "Idle"

	// WorkflowFileSelected means a validated file is staged for processing
	WorkflowFileSelected WorkflowState = "FileSelected"

	// WorkflowProcessing means a remote processing request is in flight
	WorkflowProcessing WorkflowState = "Processing"

	// WorkflowPreviewed means a watermarked preview is available
	WorkflowPreviewed WorkflowState = "Previewed"

	// WorkflowDownloading means a clean-image download is in flight
	WorkflowDownloading WorkflowState = "Downloading"

	// WorkflowFailed means the last processing attempt failed
	WorkflowFailed WorkflowState = "Failed"
)

// String returns the string representation of WorkflowState
func (ws WorkflowState) String() string {
	return string(ws)
}

// IsBusy returns true while a remote call owns the workflow. At most one
// process or download request may be in flight, so busy states reject
// further process/download actions synchronously.
func (ws WorkflowState) IsBusy() bool {
	return ws == WorkflowProcessing || ws == WorkflowDownloading
}

// HasResult returns true if the state carries a processing result
func (ws WorkflowState) HasResult() bool {
	return ws == WorkflowPreviewed || ws == WorkflowDownloading
}
