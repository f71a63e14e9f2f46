package generator

import (
	"math/rand"
	"strings"

	"github.com/gosimple/slug"
	"github.com/hashicorp/go-uuid"
)

var attributes = []string{
	"beautiful", "bright", "broken", "clever", "dark", "dusty", "deadly",
	"delicious", "colorful", "encouraging", "epic", "fantastic", "fast",
	"gigantic", "great", "heavy", "hidden", "icy", "invisible", "lazy",
	"light", "magic", "monumental", "motivating", "spicy", "mystic", "old",
	"revitalizing", "rusty", "shady", "shiny", "slow", "smart", "young",
	"wild", "domestic", "loud", "silent", "fine", "common", "deceptive",
	"serious", "terrifying", "drowned", "insulting", "foul", "shattering",
	"funky", "legendary", "ultimate", "supreme", "true", "false", "frosted",
	"extraterrestrial",
}

var colors = []string{
	"aquamarine", "blue", "cyan", "golden", "green", "grey", "iron", "ivory",
	"khaki", "magenta", "olive", "orange", "orchid", "pink", "platin", "plum",
	"purple", "red", "sand", "silver", "turquoise", "violet", "white", "yellow",
}

var things = []string{
	"alpaca", "antelope", "armor", "axe", "ballista", "boot", "bottle", "bow",
	"burger", "butterfly", "cake", "caravel", "carrot", "cart", "cat",
	"catapult", "charger", "claymore", "clownfish", "club", "cobra", "cog",
	"cow", "crab", "crossbow", "destrier", "dog", "dolphin", "dragon", "dwarf",
	"elephant", "falchion", "falcon", "flail", "fox", "frog", "galley",
	"giant", "giraffe", "glaive", "glove", "grizzly", "halbert", "hat",
	"helmet", "hippo", "horse", "impala", "jaguar", "lance", "lemming", "lion",
	"longship", "longsword", "rhinoceros", "maul", "monkey", "mortar", "mouse",
	"musket", "ocelot", "onion", "panda", "parrot", "penguin", "pig", "pike",
	"pillow", "potato", "quarterstaff", "rat", "salmon", "seal", "shark",
	"snail", "snake", "soup", "spear", "squirrel", "stag", "steak", "sword",
	"trebuchet", "turtle", "unicorn", "witch", "wolf", "zebra", "zweihander",
	"pencil", "anvil", "cloud", "token", "medal", "amulett", "wizard", "beer",
}

// randomName returns a readable name such as "shiny-purple-dragon".
func randomName(r *rand.Rand) string {
	return slug.Make(strings.Join([]string{
		attributes[r.Intn(len(attributes))],
		colors[r.Intn(len(colors))],
		things[r.Intn(len(things))],
	}, " "))
}

// newID returns a 32 character hex id. Ids are drawn from r so a seeded
// generator produces the same ids on every run.
func newID(r *rand.Rand) (string, error) {
	id, err := uuid.GenerateUUIDWithReader(r)
	if err != nil {
		return "", err
	}

	return strings.ReplaceAll(id, "-", ""), nil
}
