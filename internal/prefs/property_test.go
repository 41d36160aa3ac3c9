package prefs

import (
	"reflect"
	"testing"

	"github.com/blackwell-systems/brew-update-helper/internal/brew"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genName produces Homebrew-like package names.
func genName() gopter.Gen {
	return gen.RegexMatch(`[a-z][a-z0-9@._+-]{0,15}`)
}

// genSpacedName produces a name with whitespace inside, which the document
// format cannot represent.
func genSpacedName() gopter.Gen {
	return gopter.CombineGens(genName(), genName(), gen.OneConstOf(' ', '\t', '\u00a0', '\u0085', '\u2003', '\u3000')).
		Map(func(v []interface{}) string {
			return v[0].(string) + string(v[2].(rune)) + v[1].(string)
		})
}

func genNames() gopter.Gen {
	return gen.SliceOf(gen.Weighted([]gen.WeightedGen{
		{Weight: 9, Gen: genName()},
		{Weight: 1, Gen: genSpacedName()},
	}))
}

// genDocument builds documents the way users get them: by merging.
func genDocument() gopter.Gen {
	return gopter.CombineGens(genNames(), genNames(), gen.Bool(), gen.SliceOfN(32, gen.Bool())).
		Map(func(v []interface{}) *Document {
			doc, _ := Merge(&Document{}, v[0].([]string), v[1].([]string), v[2].(bool))
			// Flip some flags so documents contain both states.
			flips := v[3].([]bool)
			for i := range doc.Formulae {
				if i < len(flips) && flips[i] {
					doc.Formulae[i].Enabled = !doc.Formulae[i].Enabled
				}
			}
			for i := range doc.Casks {
				if j := i + len(doc.Formulae); j < len(flips) && flips[j] {
					doc.Casks[i].Enabled = !doc.Casks[i].Enabled
				}
			}
			return doc
		})
}

func sameDocument(a, b *Document) bool {
	return a.GeneratedAt.Equal(b.GeneratedAt) &&
		reflect.DeepEqual(a.Formulae, b.Formulae) &&
		reflect.DeepEqual(a.Casks, b.Casks)
}

// TestRoundTripProperty checks that parsing a rendered document gives back
// the same document.
func TestRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.MaxSize = 12

	properties := gopter.NewProperties(parameters)

	properties.Property("Parse(Render(d)) == d", prop.ForAll(
		func(doc *Document) bool {
			parsed, skipped := Parse(Render(doc))
			return len(skipped) == 0 && sameDocument(parsed, doc)
		},
		genDocument(),
	))

	properties.Property("merged document survives a second merge round trip", prop.ForAll(
		func(doc *Document, formulae, casks []string) bool {
			merged, _ := Merge(doc, formulae, casks, true)
			parsed, _ := Parse(Render(merged))
			return sameDocument(parsed, merged)
		},
		genDocument(),
		genNames(),
		genNames(),
	))

	properties.TestingRun(t)
}

// TestMergeAdditiveProperty checks that merging never drops an entry, never
// changes a flag, and never reorders existing entries.
func TestMergeAdditiveProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.MaxSize = 12

	properties := gopter.NewProperties(parameters)

	properties.Property("existing entries are a prefix of the merged section", prop.ForAll(
		func(doc *Document, formulae, casks []string, defaultEnabled bool) bool {
			merged, _ := Merge(doc, formulae, casks, defaultEnabled)
			return hasPrefix(merged.Formulae, doc.Formulae) && hasPrefix(merged.Casks, doc.Casks)
		},
		genDocument(),
		genNames(),
		genNames(),
		gen.Bool(),
	))

	properties.Property("every discovered name is configured after merge", prop.ForAll(
		func(doc *Document, formulae, casks []string) bool {
			merged, _ := Merge(doc, formulae, casks, false)
			known := merged.Known()
			for _, name := range formulae {
				if !validName(name) {
					continue
				}
				if _, ok := merged.Lookup(entryItem(name, false)); !ok || !known[entryItem(name, false)] {
					return false
				}
			}
			for _, name := range casks {
				if !validName(name) {
					continue
				}
				if _, ok := merged.Lookup(entryItem(name, true)); !ok {
					return false
				}
			}
			return true
		},
		genDocument(),
		genNames(),
		genNames(),
	))

	properties.Property("no duplicate names within a section", prop.ForAll(
		func(doc *Document, formulae, casks []string) bool {
			merged, _ := Merge(doc, formulae, casks, true)
			for _, section := range [][]Entry{merged.Formulae, merged.Casks} {
				seen := map[string]bool{}
				for _, e := range section {
					if seen[e.Item.Name] {
						return false
					}
					seen[e.Item.Name] = true
				}
			}
			return true
		},
		genDocument(),
		genNames(),
		genNames(),
	))

	properties.TestingRun(t)
}

func entryItem(name string, isCask bool) brew.Item {
	if isCask {
		return brew.Item{Name: name, Kind: brew.Cask}
	}
	return brew.Item{Name: name, Kind: brew.Formula}
}

// hasPrefix reports whether section starts with exactly the entries in prefix.
func hasPrefix(section, prefix []Entry) bool {
	if len(section) < len(prefix) {
		return false
	}
	for i := range prefix {
		if section[i] != prefix[i] {
			return false
		}
	}
	return true
}
