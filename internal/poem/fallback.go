package poem

import (
	"strings"

	"github.com/jonathan/valentino/internal/prompts"
	"github.com/jonathan/valentino/internal/types"
)

// fallbackTemplate is one built-in poem per vibe, used when extraction fails
// completely. Substitution is pure string work with no I/O, so this path can
// never fail.
type fallbackTemplate struct {
	title string
	poem  string
}

var fallbackTemplates = map[types.Vibe]fallbackTemplate{
	types.VibeSweet: {
		title: "For {{.Nickname}}",
		poem: "In every moment, big or small,\n" +
			"{{.Nickname}}, you're the sweetest of them all.\n" +
			"A heart so {{.Trait}}, a soul so true,\n" +
			"So much love I have for you.\n" +
			"\n" +
			"Like morning light on quiet days,\n" +
			"You brighten up my darkest haze.\n" +
			"Forever grateful, forever near,\n" +
			"My heart belongs to you, my dear.",
	},
	types.VibeFunny: {
		title: "Ode to {{.Nickname}}",
		poem: "{{.Nickname}}, you're amazing, that's no lie,\n" +
			"But you're also {{.Trait}}, I won't deny.\n" +
			"From dad jokes to puns so bad,\n" +
			"You're the best fun I've ever had.\n" +
			"\n" +
			"So here's to us, a perfect pair,\n" +
			"Two weirdos with love to spare.\n" +
			"I'd choose you every single day,\n" +
			"{{.Nickname}}, in your own special way.",
	},
	types.VibeDeep: {
		title: "To {{.Nickname}}",
		poem: "There are words that never leave the tongue,\n" +
			"And feelings that can't be undone.\n" +
			"In you, {{.Nickname}}, I've found a kindred soul,\n" +
			"A love that makes me completely whole.\n" +
			"\n" +
			"You're {{.Trait}} in ways untold,\n" +
			"Worth more than silver, more than gold.\n" +
			"This quiet truth I hold so dear,\n" +
			"Hoping you might one day hear.",
	},
	types.VibeConfession: {
		title: "A Secret for {{.Nickname}}",
		poem: "I've kept this hidden in my heart,\n" +
			"Not knowing really where to start.\n" +
			"{{.Nickname}}, you're {{.Trait}}, you're kind, you're true,\n" +
			"And I can't stop thinking of you.\n" +
			"\n" +
			"This Valentine's, I'll take the chance,\n" +
			"To show you this shy romance.\n" +
			"Whatever comes, I want you to know,\n" +
			"You're the reason my heart can grow.",
	},
}

// Fallback deterministically synthesizes a poem from the built-in per-vibe
// templates, substituting the nickname and first trait. Unknown vibes get the
// Sweet template; a missing trait gets a neutral adjective.
func Fallback(nickname, trait, vibe string) types.GeneratedPoem {
	tpl, ok := fallbackTemplates[types.Vibe(vibe)]
	if !ok {
		tpl = fallbackTemplates[types.VibeSweet]
	}

	nickname = types.SafeNickname(nickname)
	trait = strings.TrimSpace(strings.ToLower(trait))
	if trait == "" {
		trait = "wonderful"
	}

	data := map[string]string{
		"Nickname": nickname,
		"Trait":    trait,
	}

	return types.GeneratedPoem{
		Title: prompts.Format(tpl.title, data),
		Poem:  prompts.Format(tpl.poem, data),
	}
}
