package domain

// TimelineEntry is one milestone in the restaurant's history.
type TimelineEntry struct {
	Year        string `yaml:"year" json:"year"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Details     string `yaml:"details" json:"details"`
}

// Experience is a dining format on the experience page.
type Experience struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Features    []string `yaml:"features" json:"features"`
	Icon        string   `yaml:"icon" json:"icon"`
}

// ClampTimelineIndex keeps a requested milestone index inside [0, n).
func ClampTimelineIndex(index, n int) int {
	if n <= 0 || index < 0 {
		return 0
	}
	if index >= n {
		return n - 1
	}
	return index
}

// TimelineProgress is the width of the progress bar in percent: each milestone adds 20.
func TimelineProgress(index int) int {
	progress := (index + 1) * 20
	if progress > 100 {
		return 100
	}
	if progress < 0 {
		return 0
	}
	return progress
}
