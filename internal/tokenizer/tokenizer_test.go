package tokenizer

import (
	"reflect"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty string", "", ""},
		{"whitespace only", "   \t ", ""},
		{"simple ingredient", "garlic", "garlic"},
		{"quantity and unit", "2 tbsp extra-virgin olive oil", "olive_oil"},
		{"fraction quantity", "1 1/2 cups chopped fresh parsley", "parsley"},
		{"unicode fraction", "½ cup sugar", "sugar"},
		{"decimal quantity", "1.5 lbs chicken thighs", "chicken_thigh"},
		{"hyphenated range", "2-3 cloves garlic", "garlic"},
		{"parenthetical", "1 onion (optional)", "onion"},
		{"units only", "2 cups", ""},
		{"stopwords only", "finely chopped", ""},
		{"plural fold ies", "2 cherries", "cherry"},
		{"plural fold oes", "3 potatoes", "potato"},
		{"plural fold ses", "molasses", "molasse"},
		{"double s kept", "watercress", "watercress"},
		{"short word kept", "peas", "pea"},
		{"kosher salt variant", "coarse kosher salt", "kosher_salt"},
		{"sea salt variant", "flaky sea salt", "sea_salt"},
		{"granulated sugar", "granulated sugar", "sugar"},
		{"vanilla extract", "pure vanilla extract", "vanilla_extract"},
		{"italian parsley", "Italian parsley", "parsley"},
		{"parmesan cheese", "grated parmesan cheese", "parmesan"},
		{"parmigiano", "parmigiano-reggiano", "parmesan"},
		{"lemon peel", "lemon peel", "lemon_zest"},
		{"lime wedge", "lime wedge", "lime"},
		{"sodium qualifier and stock", "low sodium chicken stock", "chicken_broth"},
		{"stock to broth", "beef stock", "beef_broth"},
		{"cooking spray noise", "nonstick cooking spray", "cooking"},
		{"celery stalk", "celery stalk", "celery"},
		{"olive oil suffix collapse", "extra virgin olive oil", "olive_oil"},
		{"thyme sprig", "thyme sprig", "thyme"},
		{"heavy whipping cream", "heavy whipping cream", "heavy_cream"},
		{"bare bay", "1 bay", "bay_leaf"},
		{"dry white wine", "dry white wine", "white_wine"},
		{"chicken parts", "chicken parts", "chicken"},
		{"mixed case input", "Kosher Salt", "kosher_salt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// Tokens are fixed points: re-feeding a canonical token (underscores read as
// spaces) through Normalize yields the same token.
func TestNormalizeIdempotent(t *testing.T) {
	tokens := []string{"olive_oil", "parsley", "chicken_broth", "kosher_salt", "heavy_cream"}
	for _, tok := range tokens {
		asText := strings.ReplaceAll(tok, "_", " ")
		if got := Normalize(asText); got != tok {
			t.Errorf("Normalize(%q) = %q, want fixed point %q", asText, got, tok)
		}
	}
}

func TestSplitAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty string", "", []string{}},
		{"single phrase", "2 cups flour", []string{"flour"}},
		{"comma separated", "salt, pepper, olive oil", []string{"salt", "pepper", "olive_oil"}},
		{"semicolon and slash", "flour; sugar / butter", []string{"flour", "sugar", "butter"}},
		{"ampersand", "salt & pepper", []string{"salt", "pepper"}},
		{"the word and", "salt and pepper", []string{"salt", "pepper"}},
		{"case-insensitive and", "salt AND pepper", []string{"salt", "pepper"}},
		{"duplicates removed", "olive oil, extra-virgin olive oil", []string{"olive_oil"}},
		{"empty tokens dropped", "2 cups, flour", []string{"flour"}},
		{"order preserved", "flour, egg, butter", []string{"flour", "egg", "butter"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitAndNormalize(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitAndNormalize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"simple", "chicken soup", "Chicken soup"},
		{"all caps", "CHICKEN SOUP", "Chicken soup"},
		{"extra whitespace", "  chicken   soup  ", "Chicken soup"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTitle(tt.input); got != tt.want {
				t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
