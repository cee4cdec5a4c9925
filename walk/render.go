package walk

import (
	"strings"

	"wordnet-walk/hierarchy"
)

/*
Render joins the lemma names of a sentence with spaces.

With splitMWE the words of multi-word lemmas are separated by spaces instead
of MWEJoiner. A possessive "'s" becomes its own token.
*/
func Render(sentence []LemmaRef, splitMWE bool) string {
	names := make([]string, len(sentence))
	for i, ref := range sentence {
		name := ref.Lemma.Name
		if splitMWE {
			name = strings.ReplaceAll(name, hierarchy.MWEJoiner, " ")
		}
		names[i] = name
	}
	text := strings.ReplaceAll(strings.Join(names, " "), "'s", " 's")
	return strings.TrimRight(text, " ")
}
