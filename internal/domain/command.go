package domain

// Extraction is the source/destination pair pulled out of a voice command.
// Both fields set means success; a nil field means nothing matched.
type Extraction struct {
	Source      *string `json:"source"`
	Destination *string `json:"destination"`
}

// Ok reports whether both fields were captured.
func (e Extraction) Ok() bool {
	return e.Source != nil && e.Destination != nil
}

// Usable reports whether the pair can drive a route lookup. Empty captures
// are valid matches but carry no location.
func (e Extraction) Usable() bool {
	return e.Ok() && *e.Source != "" && *e.Destination != ""
}

// RouteExtractor turns a free-text command into an Extraction
type RouteExtractor interface {
	// ExtractSourceDestination never fails; no match yields two nil fields
	ExtractSourceDestination(commandText string) Extraction
	// Extract also names the rule that matched, or "" when none did
	Extract(commandText string) (Extraction, string)
}
