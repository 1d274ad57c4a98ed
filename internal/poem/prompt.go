package poem

import (
	"fmt"
	"strings"

	"github.com/jonathan/valentino/internal/prompts"
	"github.com/jonathan/valentino/internal/types"
)

// promptInput is a PoemRequest after clamping: every field is inside the
// wizard vocabulary and length caps.
type promptInput struct {
	Nickname     string
	Relationship string
	Traits       []string
	Vibe         string
}

// clampRequest normalizes user-supplied fields before they reach a prompt.
// Unknown enum values fall back to defaults rather than erroring; the wizard
// UI cannot produce them, so they only appear in hand-crafted requests.
func clampRequest(req *types.PoemRequest) promptInput {
	in := promptInput{
		Nickname:     types.SafeNickname(req.Nickname),
		Relationship: req.Relationship,
		Traits:       types.ClampTraits(req.Traits),
		Vibe:         req.Vibe,
	}

	if !types.ValidRelationship(in.Relationship) {
		in.Relationship = string(types.RelationshipFriend)
	}

	if runes := []rune(in.Vibe); len(runes) > types.MaxVibeLength {
		in.Vibe = string(runes[:types.MaxVibeLength])
	}
	if !types.ValidVibe(in.Vibe) {
		in.Vibe = string(types.VibeSweet)
	}

	return in
}

// buildSystemPrompt renders the persona and output contract for one request.
func buildSystemPrompt(in promptInput) string {
	template := prompts.MustGet("poem.json", "compose-system")
	return prompts.Format(template, map[string]string{
		"Vibe":     in.Vibe,
		"VibeNote": vibePreview(in.Vibe),
	})
}

// buildUserPrompt renders the per-request facts the poem should draw on.
func buildUserPrompt(in promptInput) string {
	traits := strings.Join(in.Traits, ", ")
	if traits == "" {
		traits = "unnamed but unmistakable"
	}

	template := prompts.MustGet("poem.json", "compose-user")
	return prompts.Format(template, map[string]string{
		"Nickname":         in.Nickname,
		"Relationship":     in.Relationship,
		"RelationshipNote": types.RelationshipDescription(in.Relationship),
		"Traits":           traits,
		"Memory":           memoryLine(in),
		"Vibe":             in.Vibe,
	})
}

// memoryLine derives a one-line "memory" summary seeding the poem with a
// concrete image instead of a bare attribute list.
func memoryLine(in promptInput) string {
	if len(in.Traits) == 0 {
		return fmt.Sprintf("an ordinary day that %s made feel rare", in.Nickname)
	}
	return fmt.Sprintf("the way %s being %s turns an ordinary day into something worth keeping",
		in.Nickname, strings.ToLower(strings.Join(in.Traits, " and ")))
}

func vibePreview(vibe string) string {
	for _, v := range types.Vibes {
		if string(v.Key) == vibe {
			return v.Preview
		}
	}
	return ""
}
