package types

// Allocation requests that Size lines be written to Destination.
type Allocation struct {
	// Destination names the output (usually a file path). Must be unique.
	Destination string `yaml:"destination"`

	// Size is a line count or a fraction of the input lines.
	Size Target `yaml:"size"`
}

// AllocationResult holds the lines drawn for one destination.
type AllocationResult struct {
	Destination string
	Lines       []string
}
