package rebase

// EditableCommit is one entry of a rebase plan. Plans are ordered oldest
// first, matching the order of a rebase todo script.
type EditableCommit struct {
	OID     string `yaml:"oid" json:"oid"`
	ShortID string `yaml:"short-id" json:"shortId"`

	// Summary is the first line of the commit message when the plan was
	// loaded. It is never rewritten by the engine.
	Summary string `yaml:"summary" json:"summary"`
	Action  Action `yaml:"action" json:"action"`

	// NewMessage is the replacement message for a reword. Nil, or a value
	// equal to Summary, means the message is unchanged.
	NewMessage *string `yaml:"new-message,omitempty" json:"newMessage,omitempty"`
}

// HasMessageChange returns true if the commit is a reword whose new message
// differs from its original summary.
func (c EditableCommit) HasMessageChange() bool {
	return c.Action == ActionReword && c.NewMessage != nil && *c.NewMessage != c.Summary
}

// PreviewCommit is one row of the projected history after the rebase.
type PreviewCommit struct {
	ShortID      string   `yaml:"short-id" json:"shortId"`
	Summary      string   `yaml:"summary" json:"summary"`
	IsSquashed   bool     `yaml:"is-squashed" json:"isSquashed"`
	SquashedFrom []string `yaml:"squashed-from,omitempty" json:"squashedFrom,omitempty"`

	// Error is set only for a squash or fixup with nothing to combine with.
	Error string `yaml:"error,omitempty" json:"error,omitempty"`
}

// HasError returns true if the row carries a validation error.
func (p PreviewCommit) HasError() bool {
	return p.Error != ""
}

// Stats summarizes what a plan does to the commit range.
type Stats struct {
	Kept     int `yaml:"kept" json:"kept"`
	Squashed int `yaml:"squashed" json:"squashed"`
	Dropped  int `yaml:"dropped" json:"dropped"`
	Reworded int `yaml:"reworded" json:"reworded"`
}

// Total returns the number of commits the stats were computed over.
// Reworded commits are already counted in Kept.
func (s Stats) Total() int {
	return s.Kept + s.Squashed + s.Dropped
}
