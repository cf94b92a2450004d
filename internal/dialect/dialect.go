// Package dialect guesses the regional variant of an English text from
// spelling and vocabulary patterns. It is a heuristic layered on top of
// the provider's language detection, not a hard law.
package dialect

import "strings"

// Vocabulary typically associated with US English.
var USEnglishWords = []string{
	"color", "honor", "flavor", "labor", "neighbor", "humor", "favor", "splendor", "tumor", "rumor",
	"center", "meter", "liter", "theater", "fiber",
	"organize", "realize", "recognize", "apologize", "airplane", "truck", "elevator", "sidewalk", "trunk",
	"gasoline", "subway", "restroom", "french fries", "cookie", "candy", "garbage", "trash",
	"faucet", "vacation", "soccer", "parentheses",
	"mailbox", "drugstore", "vest", "pants", "diaper", "flashlight",
	"gotten", "jelly", "suspenders", "zucchini",
}

// Vocabulary typically associated with British English.
var GBEnglishWords = []string{
	"colour", "honour", "flavour", "labour", "neighbour", "humour", "favour", "splendour", "tumour", "rumour", "valour",
	"centre", "metre", "litre", "theatre", "fibre",
	"organise", "realise", "recognise", "apologise", "analyse", "paralyse", "aeroplane", "lorry", "pavement", "autumn",
	"petrol", "loo", "crisps", "biscuit", "sweets", "rubbish", "dustbin",
	"timetable", "holiday", "full stop", "square brackets",
	"postbox", "chemist's", "waistcoat", "trousers", "nappy", "torch",
	"jam", "braces", "courgette", "cheque",
}

// DefaultDominanceRatio is how much more common one region's vocabulary
// must be before a bias is called.
const DefaultDominanceRatio = 1.5

// Detector scores a text against the two word lists.
type Detector struct {
	// Ratio overrides DefaultDominanceRatio when > 0.
	Ratio float64
}

// Detect returns "en-US" or "en-GB" when one vocabulary dominates the
// other by the configured ratio, or "" when no strong bias exists.
func (d Detector) Detect(text string) string {
	ratio := d.Ratio
	if ratio <= 0 {
		ratio = DefaultDominanceRatio
	}

	lower := strings.ToLower(text)
	usScore := score(lower, USEnglishWords)
	gbScore := score(lower, GBEnglishWords)

	switch {
	case usScore > 0 && float64(usScore) >= float64(gbScore)*ratio:
		return "en-US"
	case gbScore > 0 && float64(gbScore) >= float64(usScore)*ratio:
		return "en-GB"
	default:
		return ""
	}
}

func score(lower string, words []string) int {
	total := 0
	for _, w := range words {
		total += strings.Count(lower, w)
	}
	return total
}
