package asciifier

// replacementMap is a named, individually toggleable group of
// character replacements.
type replacementMap struct {
	name  string
	pairs map[rune]string
}

// defaultMaps are the built-in replacement categories. Characters not
// covered here fall through to diacritic folding in ToASCII.
var defaultMaps = []replacementMap{
	{
		name: "alpha",
		pairs: map[rune]string{
			'Å': "AA",
			'å': "aa",
			'Æ': "AE",
			'æ': "ae",
			'Œ': "OE",
			'œ': "oe",
			'ẞ': "ss",
			'ß': "ss",
			'Ø': "O",
			'ø': "o",
			'Ł': "L",
			'ł': "l",
			'Þ': "Th",
			'þ': "th",
			'Ð': "D",
			'ð': "d",
		},
	},
	{
		name: "punct",
		pairs: map[rune]string{
			'¡': "!",
			'¿': "?",
			'–': "--",
			'—': "--",
			'―': "--",
			'«': "<<",
			'»': ">>",
			'‘': "'",
			'’': "'",
			'‚': ",",
			'‛': "'",
			'“': `"`,
			'”': `"`,
			'„': ",,",
			'‟': `"`,
			'‹': "<",
			'›': ">",
			'⹂': ",,",
			'「': "|-",
			'」': "-|",
			'『': "|-",
			'』': "-|",
			'〝': `"`,
			'〞': `"`,
			'〟': ",,",
			'﹁': "-|",
			'﹂': "|-",
			'﹃': "-|",
			'﹄': "|-",
			'｢': "|-",
			'｣': "-|",
			'・': ".",
		},
	},
	{
		name: "math",
		pairs: map[rune]string{
			'≠': "!=",
			'≤': "<=",
			'≥': ">=",
			'±': "+-",
			'∓': "-+",
			'×': "x",
			'·': ".",
			'÷': "/",
			'√': "\\/",
			'∑': "E",
			'≪': "<<",
			'≫': ">>",
		},
	},
	{
		name: "other",
		pairs: map[rune]string{
			'°': "o",
			'µ': "u",
			'ı': "i",
			'†': "t",
			'©': "(c)",
			'®': "(R)",
			'♥': "<3",
			'→': "-->",
			'☆': "*",
			'★': "*",
		},
	},
}

// MapNames returns the names of the built-in replacement categories.
func MapNames() []string {
	names := make([]string, len(defaultMaps))
	for i, m := range defaultMaps {
		names[i] = m.name
	}
	return names
}

// buildTable merges the enabled categories into a single lookup table.
// Later categories win on duplicate characters.
func buildTable(disabled []string) map[rune]string {
	skip := make(map[string]bool, len(disabled))
	for _, name := range disabled {
		skip[name] = true
	}
	table := make(map[rune]string)
	for _, m := range defaultMaps {
		if skip[m.name] {
			continue
		}
		for ch, repl := range m.pairs {
			table[ch] = repl
		}
	}
	return table
}
