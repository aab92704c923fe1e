package models

// Analysis job states reported by the backend.
const (
	AnalysisStatePending   = "pending"
	AnalysisStateRunning   = "running"
	AnalysisStateCompleted = "completed"
	AnalysisStateFailed    = "failed"
	AnalysisStateError     = "error"
)

// AnalysisStatus is one poll's view of a running video-analysis job.
type AnalysisStatus struct {
	JobID    string `json:"jobId"`
	State    string `json:"state"`
	Progress int    `json:"progress"` // percent
	Message  string `json:"message,omitempty"`
}

// Terminal reports whether the job will make no further progress.
func (s AnalysisStatus) Terminal() bool {
	switch s.State {
	case AnalysisStateCompleted, AnalysisStateFailed, AnalysisStateError:
		return true
	}
	return false
}

// AnalysisResult is the completed job's payload.
type AnalysisResult struct {
	JobID      string             `json:"jobId"`
	Summary    string             `json:"summary"`
	Transcript string             `json:"transcript,omitempty"`
	Scores     map[string]float64 `json:"scores,omitempty"`
	Feedback   []string           `json:"feedback,omitempty"`
}

// STTResult is the speech-to-text portion of a completed analysis.
type STTResult struct {
	JobID      string  `json:"jobId"`
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence,omitempty"`
}

// VoiceAnalysis carries delivery metrics computed from the audio track.
type VoiceAnalysis struct {
	JobID        string  `json:"jobId"`
	WordsPerMin  float64 `json:"wordsPerMin,omitempty"`
	FillerCount  int     `json:"fillerCount,omitempty"`
	PauseSeconds float64 `json:"pauseSeconds,omitempty"`
	PitchVar     float64 `json:"pitchVariance,omitempty"`
}
