package model

type ErrorResponse struct {
	Error string `json:"detail"`
	// Line is set for chart content errors.
	Line int `json:"line,omitempty"`
}

type ParseResponse struct {
	Chart       *Chart   `json:"chart"`
	Diagnostics []string `json:"diagnostics"`
}

type CreatedResponse struct {
	ID          string   `json:"id"`
	Diagnostics []string `json:"diagnostics"`
}

type Summary struct {
	AudioOffset              int     `json:"audio_offset"`
	TimingPointDensityFactor float64 `json:"timing_point_density_factor"`
	GroupCount               int     `json:"group_count"`
	NoteCount                int     `json:"note_count"`
	ArcTapCount              int     `json:"arctap_count"`
	JudgableNoteCount        int     `json:"judgable_note_count"`
	// Duration is in milliseconds.
	Duration int `json:"duration"`
}

func NewSummary(c *Chart) Summary {
	return Summary{
		AudioOffset:              c.AudioOffset,
		TimingPointDensityFactor: c.TimingPointDensityFactor,
		GroupCount:               c.GroupCount(),
		NoteCount:                c.NoteCount(),
		ArcTapCount:              c.ArcTapCount(),
		JudgableNoteCount:        c.JudgableNoteCount(),
		Duration:                 c.Duration(),
	}
}
