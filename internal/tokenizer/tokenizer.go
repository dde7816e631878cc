package tokenizer

import (
	"regexp"
	"strings"
)

// whitespaceRegex matches runs of whitespace for collapsing.
var whitespaceRegex = regexp.MustCompile(`\s+`)

// quantityRegex matches numeric quantities: integers, decimals, simple
// fractions (1/2) and hyphenated ranges (2-3, 1.5 - 2).
var quantityRegex = regexp.MustCompile(`\b\d+(?:[./]\d+)?(?:\s*-\s*\d+(?:[./]\d+)?)?\b`)

// vulgarFractionRegex matches unicode vulgar fraction characters.
var vulgarFractionRegex = regexp.MustCompile(`[¼½¾⅓⅔⅛⅜⅝⅞]`)

// unitRegex matches units of measure as whole words, including plurals and
// common abbreviations.
var unitRegex = regexp.MustCompile(
	`\b(` +
		`tsp|tsps|teaspoon|teaspoons|tbsp|tbsps|tablespoon|tablespoons|` +
		`cup|cups|oz|ounce|ounces|lb|lbs|pound|pounds|` +
		`g|gram|grams|kg|kgs|kilogram|kilograms|` +
		`ml|milliliter|milliliters|l|liter|liters|` +
		`stick|sticks|clove|cloves|rib|ribs|slice|slices|` +
		`pint|pints|quart|quarts|pinch|dash|inch|inches` +
		`)\b`)

// parenRegex matches parenthetical asides like "(optional)" or "(divided)".
var parenRegex = regexp.MustCompile(`\([^)]*\)`)

// separatorRegex splits a raw ingredient phrase into independent sub-phrases.
var separatorRegex = regexp.MustCompile(`(?i)\s*(?:,|;|/|&| and )\s*`)

// punctRegex matches punctuation except word characters, whitespace and
// hyphens (hyphens are converted to spaces separately).
var punctRegex = regexp.MustCompile(`[^\w\s-]`)

// stopwords are dropped from ingredient phrases before token assembly:
// articles and glue words, prep-state descriptors, count/part words, and
// appliance noise.
var stopwords = map[string]struct{}{
	// articles / glue
	"a": {}, "an": {}, "the": {}, "or": {}, "and": {}, "of": {}, "at": {},
	"into": {}, "for": {}, "such": {}, "such_as": {}, "in": {}, "very": {},
	// common descriptors / states
	"fresh": {}, "large": {}, "small": {}, "medium": {}, "extra": {},
	"extra_virgin": {}, "to": {}, "taste": {}, "optional": {},
	"chopped": {}, "diced": {}, "minced": {}, "sliced": {}, "ground": {},
	"crushed": {}, "grated": {}, "shredded": {},
	"skinless": {}, "boneless": {}, "divided": {}, "plus": {}, "serving": {},
	"slivered": {},
	"finely": {}, "freshly": {}, "thinly": {}, "coarsely": {}, "roughly": {},
	"lightly": {}, "beaten": {},
	"melted": {}, "softened": {}, "room": {}, "temperature": {},
	"room_temperature": {}, "more": {}, "about": {}, "total": {}, "cored": {},
	"garnish": {}, "twist": {}, "casing_removed": {}, "torn": {}, "cut": {},
	"piece": {}, "pieces": {}, "loaf": {}, "stick": {}, "qt": {},
	// prep tokens
	"halved": {}, "trimmed": {}, "drained": {}, "rinsed": {}, "toasted": {},
	"seeded": {}, "lengthwise": {}, "cube": {}, "cubes": {},
	"thick": {}, "quartered": {}, "crosswise": {}, "pitted": {},
	"separated": {}, "scrubbed": {}, "stemmed": {}, "smashed": {},
	"thawed": {}, "wedge": {}, "white": {}, "split": {}, "patted_dry": {},
	// peel/stalk/leaf/count words
	"peeled": {}, "sprig": {}, "stalk": {}, "stalks": {}, "leaf": {},
	"leaves": {}, "bunch": {}, "handful": {},
	// appliance noise
	"electric": {}, "pressure": {}, "cooker": {}, "instant": {}, "pot": {},
	"nonstick": {}, "spray": {},
}

// rewriteRule is one canonicalization step: a pattern and its replacement,
// applied to the assembled underscore-joined token.
type rewriteRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rewriteRules collapse known synonym and variant surface forms to one
// canonical spelling. Order matters: sodium-qualifier stripping must run
// before the stock->broth suffix rule, and the olive-oil collapse must run
// after the wedge and qualifier rules.
var rewriteRules = []rewriteRule{
	// salts / sugars / extracts
	{regexp.MustCompile(`^(coarse_)?kosher_salt$`), "kosher_salt"},
	{regexp.MustCompile(`^(fine_|flaky_)?sea_salt$`), "sea_salt"},
	{regexp.MustCompile(`^(granulated_)?sugar$`), "sugar"},
	{regexp.MustCompile(`^(pure_)?vanilla_extract$`), "vanilla_extract"},
	// herbs / cheeses
	{regexp.MustCompile(`^italian_parsley$`), "parsley"},
	{regexp.MustCompile(`^parmesan_cheese$`), "parmesan"},
	{regexp.MustCompile(`^parmigiano_reggiano$`), "parmesan"},
	// fats / butter
	{regexp.MustCompile(`^chilled_unsalted_butter$`), "unsalted_butter"},
	// citrus zest and wedges
	{regexp.MustCompile(`^lemon_peel$`), "lemon_zest"},
	{regexp.MustCompile(`^(\w+)_wedge$`), "${1}"},
	// broths/stocks: drop sodium qualifiers first, then fold stock to broth
	{regexp.MustCompile(`^(low_salt|low_sodium|reduced_sodium)_(.+)$`), "${2}"},
	{regexp.MustCompile(`_stock$`), "_broth"},
	// cooking sprays are not ingredients
	{regexp.MustCompile(`^nonstick_.*spray$`), ""},
	// single-token leftovers to drop
	{regexp.MustCompile(`^(very|at|white|split|patted_dry)$`), ""},
	// celery parts
	{regexp.MustCompile(`^celery_(stalk|stalks|leaf|leaves)$`), "celery"},
	// parsley variants
	{regexp.MustCompile(`^(sprig_|flat_(leaf_)?)?parsley$`), "parsley"},
	// white bread tail collapse
	{regexp.MustCompile(`^.*white_bread.*$`), "white_bread"},
	// any *olive_oil -> olive_oil
	{regexp.MustCompile(`^.*olive_oil$`), "olive_oil"},
	// sprig prefix/suffix (sprig_thyme -> thyme, thyme_sprig -> thyme)
	{regexp.MustCompile(`^sprig_`), ""},
	{regexp.MustCompile(`_sprig$`), ""},
	// cream variants
	{regexp.MustCompile(`^heavy_whipping_cream$`), "heavy_cream"},
	// bare bay means the leaf
	{regexp.MustCompile(`^bay$`), "bay_leaf"},
	// dry wine variants
	{regexp.MustCompile(`^dry_white_wine$`), "white_wine"},
	{regexp.MustCompile(`^dry_red_wine$`), "red_wine"},
	{regexp.MustCompile(`^dry_wine$`), "white_wine"},
	// chicken_part / chicken_parts -> chicken
	{regexp.MustCompile(`^(.+)_part(s?)$`), "${1}"},
}

// foldPlural folds a naive English plural to its singular form. Short words
// (length <= 3) are left unchanged; "ies" becomes "y"; "oes"/"ses" drop the
// trailing "es" (potatoes -> potato); a trailing "s" is dropped unless the
// word ends in "ss".
func foldPlural(word string) string {
	if len(word) <= 3 {
		return word
	}
	if strings.HasSuffix(word, "ies") {
		return word[:len(word)-3] + "y"
	}
	if strings.HasSuffix(word, "oes") || strings.HasSuffix(word, "ses") {
		return word[:len(word)-2]
	}
	if strings.HasSuffix(word, "s") && !strings.HasSuffix(word, "ss") {
		return word[:len(word)-1]
	}
	return word
}

// Normalize converts a raw ingredient phrase into a single canonical token:
// a lowercase, underscore-joined identifier for one ingredient concept.
// Quantities, units, parentheticals, stopwords and punctuation are stripped,
// plurals are folded, and known synonym surface forms are collapsed via the
// rewrite table. The result may be empty when the phrase carries no
// ingredient content (e.g. "2 cups, chopped").
func Normalize(raw string) string {
	t := strings.ToLower(raw)
	t = parenRegex.ReplaceAllString(t, " ")
	t = vulgarFractionRegex.ReplaceAllString(t, " ")
	t = quantityRegex.ReplaceAllString(t, " ")
	t = unitRegex.ReplaceAllString(t, " ")
	t = punctRegex.ReplaceAllString(t, " ")
	t = strings.ReplaceAll(t, "-", " ")
	t = strings.TrimSpace(whitespaceRegex.ReplaceAllString(t, " "))

	words := make([]string, 0, 8)
	for _, w := range strings.Split(t, " ") {
		if w == "" {
			continue
		}
		if _, stop := stopwords[w]; stop {
			continue
		}
		words = append(words, foldPlural(w))
	}

	token := strings.Join(words, "_")
	for _, rule := range rewriteRules {
		token = rule.pattern.ReplaceAllString(token, rule.replacement)
	}
	return token
}

// SplitAndNormalize splits a raw phrase on ingredient separators (comma,
// semicolon, slash, ampersand, and the word "and"), normalizes each
// sub-phrase independently, and returns the resulting tokens de-duplicated
// in first-seen order. Empty tokens are discarded.
func SplitAndNormalize(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}

	tokens := make([]string, 0, 4)
	seen := make(map[string]struct{})
	for _, part := range separatorRegex.Split(raw, -1) {
		if strings.TrimSpace(part) == "" {
			continue
		}
		token := Normalize(part)
		if token == "" {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		tokens = append(tokens, token)
	}
	return tokens
}

// NormalizeTitle collapses whitespace and sentence-cases a recipe title.
func NormalizeTitle(raw string) string {
	s := strings.TrimSpace(whitespaceRegex.ReplaceAllString(raw, " "))
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
