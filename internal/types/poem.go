package types

// GeneratedPoem is one generation result. It is never mutated in place;
// a remix produces a new instance.
type GeneratedPoem struct {
	Title string `json:"title"`
	Poem  string `json:"poem"`
}

// ShareData is the union of the wizard input and the generated poem, the
// sole unit of shareable state. Its lifetime is exactly the lifetime of
// the URL the user keeps.
type ShareData struct {
	Nickname     string   `json:"nickname"`
	Relationship string   `json:"relationship,omitempty"`
	Traits       []string `json:"traits,omitempty"`
	Vibe         string   `json:"vibe,omitempty"`
	Title        string   `json:"title"`
	Poem         string   `json:"poem"`
}
