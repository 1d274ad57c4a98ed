package types

import "github.com/go-playground/validator/v10"

// PoemRequest represents the request body for POST /api/poem. All fields are
// optional; the generator clamps them to the wizard vocabulary before use.
// Validation only rejects structurally hopeless payloads.
type PoemRequest struct {
	Nickname     string   `json:"nickname,omitempty" validate:"max=200"`
	Relationship string   `json:"relationship,omitempty" validate:"max=40"`
	Traits       []string `json:"traits,omitempty" validate:"max=16,dive,max=60"`
	Vibe         string   `json:"vibe,omitempty" validate:"max=120"`
}

// Validate validates the PoemRequest using the validator.
func (r *PoemRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
