package profile

import (
	"fmt"
	"math/rand"
	"strings"
)

// Fixed pools for the local generator. Three forms are drawn without
// replacement; colour and challenge are single draws.
var (
	lightsaberForms = []string{
		"Form I: Shii-Cho",
		"Form II: Makashi",
		"Form III: Soresu",
		"Form IV: Ataru",
		"Form V: Shien / Djem So",
		"Form VI: Niman",
		"Form VII: Juyo / Vaapad",
	}

	lightsaberColors = []string{"blue", "green", "purple", "yellow", "orange", "white"}

	trainingChallenges = []string{
		"Spend a week meditating at sunrise and practising Form III parries against remotes to sharpen your focus.",
		"Build a makeshift shelter in the wilderness using only the Force and your wits; survive three nights.",
		"Translate an ancient Jedi scroll without relying on technology, trusting your intuition to uncover its meaning.",
		"Guide a youngling through lightsaber drills while blindfolded, relying on the Force to sense their movements.",
		"Travel to a remote world to negotiate peace between feuding tribes without drawing your weapon.",
	}
)

const fallbackTemplate = `## Jedi Profile

**Name:** %s

**Lightsaber Forms:**

- **Primary:** %s - You show natural aptitude for this form.
- **Secondary:** %s - An area you draw upon when needed.
- **Tertiary:** %s - A form you dabble in to round out your abilities.

**Force Alignment:** A balanced practitioner of the light who values harmony and knowledge.

**Lightsaber Details:** Your blade glows %s, with a traditional hilt and a crisp ignition sound reminiscent of training sabres.

**Robes/Armour:** Simple yet elegant robes with minimal armour, signifying agility and wisdom.

**Symbolic Item:** A weathered holocron passed down through generations.

**Backstory:** Raised in the Jedi Temple, you dedicated yourself to understanding the mysteries of the Force. Years of meditation and sparring honed your skills and shaped your calm demeanour.

**Famous Jedi Comparisons:** Much like Plo Koon and Ahsoka Tano, you balance compassion with a readiness to act.

**Theme Song:** "Binary Sunset" - a reflective piece capturing your introspective nature.

**Training Challenge:** %s

**Holo-message:** *"To know the Force is to know oneself; seek balance and you will find peace."*
`

// fallbackResult composes a profile locally, without any external call.
func fallbackResult(name string, rng *rand.Rand) Result {
	forms := pickWithoutReplacement(lightsaberForms, 3, rng)
	color := lightsaberColors[rng.Intn(len(lightsaberColors))]
	challenge := trainingChallenges[rng.Intn(len(trainingChallenges))]

	personaName := strings.TrimSpace(name)
	if personaName == "" {
		personaName = "Unknown"
	}

	text := fmt.Sprintf(fallbackTemplate,
		personaName, forms[0], forms[1], forms[2], color, challenge)

	return Result{
		Profile: text,
		Data: &Attributes{
			Color:     color,
			Forms:     forms,
			Challenge: challenge,
		},
	}
}

func pickWithoutReplacement(items []string, count int, rng *rand.Rand) []string {
	pool := make([]string, len(items))
	copy(pool, items)
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if count > len(pool) {
		count = len(pool)
	}
	return pool[:count]
}
