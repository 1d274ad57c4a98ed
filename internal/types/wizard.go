// Package types provides type definitions for structured data used throughout the valentino system.
package types

import "strings"

// Relationship describes who the poem is for.
type Relationship string

// Relationship values match the wizard's relationship cards.
const (
	RelationshipPartner Relationship = "Partner"
	RelationshipCrush   Relationship = "Crush"
	RelationshipFriend  Relationship = "Friend"
	RelationshipFamily  Relationship = "Family"
)

// Vibe selects the emotional register of the poem.
type Vibe string

// Vibe values match the wizard's vibe cards.
const (
	VibeSweet      Vibe = "Sweet"
	VibeFunny      Vibe = "Funny"
	VibeDeep       Vibe = "Deep"
	VibeConfession Vibe = "Confession"
)

const (
	// MaxNicknameLength caps user-supplied nicknames.
	MaxNicknameLength = 40
	// MaxVibeLength caps user-supplied vibe strings.
	MaxVibeLength = 30
	// MaxTraits caps how many traits a poem request may carry.
	MaxTraits = 3
	// DefaultNickname is used when the wizard submits an empty nickname.
	DefaultNickname = "someone"
)

// RelationshipInfo pairs a relationship with its register description,
// used to steer the prompt's tone.
type RelationshipInfo struct {
	Key         Relationship
	Description string
}

// Relationships is the fixed relationship vocabulary.
var Relationships = []RelationshipInfo{
	{RelationshipPartner, "steady, close, true"},
	{RelationshipCrush, "shy sparks & suspense"},
	{RelationshipFriend, "easy laughter, loyal"},
	{RelationshipFamily, "warm roots, always"},
}

// VibeInfo pairs a vibe with a short preview of its register.
type VibeInfo struct {
	Key     Vibe
	Preview string
}

// Vibes is the fixed vibe vocabulary.
var Vibes = []VibeInfo{
	{VibeSweet, "Soft devotion, gentle details, bright warmth."},
	{VibeFunny, "Playful lines, clever turns, affectionate mischief."},
	{VibeDeep, "Quiet gravity, intimate imagery, heart-level truth."},
	{VibeConfession, "A brave admission, close to the edge of saying it."},
}

// Traits is the fixed 8-item trait vocabulary.
var Traits = []string{
	"Funny",
	"Kind",
	"Chaotic",
	"Creative",
	"Calm",
	"Brave",
	"Weird",
	"Caring",
}

// WizardState is the wizard's accumulated selections. It is mutated
// incrementally client-side and becomes immutable once submitted.
type WizardState struct {
	Nickname     string   `json:"nickname"`
	Relationship string   `json:"relationship,omitempty"`
	Traits       []string `json:"traits,omitempty"`
	Vibe         string   `json:"vibe,omitempty"`
}

// ValidRelationship reports whether s is one of the four relationship values.
func ValidRelationship(s string) bool {
	for _, r := range Relationships {
		if string(r.Key) == s {
			return true
		}
	}
	return false
}

// ValidVibe reports whether s is one of the four vibe values.
func ValidVibe(s string) bool {
	for _, v := range Vibes {
		if string(v.Key) == s {
			return true
		}
	}
	return false
}

// RelationshipDescription returns the register description for a relationship,
// or the empty string for unknown values.
func RelationshipDescription(s string) string {
	for _, r := range Relationships {
		if string(r.Key) == s {
			return r.Description
		}
	}
	return ""
}

// SafeNickname trims and caps a user-supplied nickname, substituting
// DefaultNickname when nothing usable remains. The cap counts runes so
// multi-byte nicknames are never split mid-character.
func SafeNickname(nickname string) string {
	trimmed := strings.TrimSpace(nickname)
	if trimmed == "" {
		return DefaultNickname
	}
	runes := []rune(trimmed)
	if len(runes) > MaxNicknameLength {
		trimmed = string(runes[:MaxNicknameLength])
	}
	return trimmed
}

// ClampTraits drops empty entries, deduplicates, and caps the list at
// MaxTraits, preserving order.
func ClampTraits(traits []string) []string {
	out := make([]string, 0, MaxTraits)
	seen := make(map[string]bool)
	for _, t := range traits {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
		if len(out) == MaxTraits {
			break
		}
	}
	return out
}
