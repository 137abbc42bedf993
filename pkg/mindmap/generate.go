package mindmap

import (
	"strconv"
	"strings"

	"github.com/matzehuels/abclisten/pkg/kawa"
	"github.com/matzehuels/abclisten/pkg/wordlist"
)

// FromList generates the mind map of an ABC-List.
//
// Letters without entries (absent or empty buckets) are left out. Each
// remaining letter shows at most [MaxWordsPerLetter] words in stored order;
// further words stay in the list but are not drawn.
func FromList(name string, buckets wordlist.Buckets) Graph {
	var b builder
	b.node(RootID, RootAnchor, NodeData{
		Label:      name,
		Type:       TypeRoot,
		SourceID:   name,
		SourceType: SourceABCList,
	})

	letters := buckets.Letters()
	ring := Radial{Center: CanvasCenter, Radius: LetterRadius, Count: len(letters)}
	words := Radial{Center: CanvasCenter, Radius: WordRadius, Fan: WordFan}

	for k, letter := range letters {
		angle := ring.Angle(k)
		letterID := "letter-" + letter
		b.node(letterID, ring.At(angle), NodeData{
			Label:         strings.ToUpper(letter),
			Type:          TypeLetter,
			LetterContext: letter,
		})
		b.edge(RootID, letterID)

		entries := buckets[letter]
		for i := range min(len(entries), MaxWordsPerLetter) {
			wordID := "word-" + letter + "-" + strconv.Itoa(i)
			b.node(wordID, words.FanAt(angle, i), NodeData{
				Label:         entries[i].Text,
				Type:          TypeWord,
				LetterContext: letter,
			})
			b.edge(letterID, wordID)
		}
	}
	return b.graph()
}

// FromKawa generates the mind map of a KaWa given as a letter-keyed
// association map. Every position of word is looked up separately, so
// repeated letters each get their own node (sharing the same text).
func FromKawa(word string, associations map[string]string) Graph {
	letters := splitLetters(word)
	entries := make([]string, len(letters))
	for i, l := range letters {
		entries[i] = kawa.Lookup(associations, l)
	}
	return fromKawaPositions(word, letters, entries)
}

// FromKawaEntries generates the mind map of a positional KaWa.
func FromKawaEntries(k kawa.Kawa) Graph {
	letters := k.Letters()
	entries := make([]string, len(letters))
	for i := range letters {
		entries[i] = k.At(i)
	}
	return fromKawaPositions(k.Word, letters, entries)
}

func fromKawaPositions(word string, letters, entries []string) Graph {
	var b builder
	b.node(RootID, RootAnchor, NodeData{
		Label:      word,
		Type:       TypeRoot,
		SourceID:   word,
		SourceType: SourceKawa,
	})

	var filled []int
	for pos, text := range entries {
		if text != "" {
			filled = append(filled, pos)
		}
	}

	ring := Radial{Center: CanvasCenter, Radius: LetterRadius, Count: len(filled)}
	outer := Radial{Center: CanvasCenter, Radius: KawaWordRadius}

	for k, pos := range filled {
		angle := ring.Angle(k)
		letter := strings.ToUpper(letters[pos])
		suffix := strconv.Itoa(pos)

		letterID := "kawa-letter-" + suffix
		b.node(letterID, ring.At(angle), NodeData{
			Label:         letter,
			Type:          TypeKawaLetter,
			LetterContext: letter,
		})
		b.edge(RootID, letterID)

		wordID := "kawa-word-" + suffix
		b.node(wordID, outer.At(angle), NodeData{
			Label:         entries[pos],
			Type:          TypeKawaWord,
			LetterContext: letter,
		})
		b.edge(letterID, wordID)
	}
	return b.graph()
}

// CombinedInput selects the lists and KaWas shown in the combined view.
// A nil slice means "not provided" and an empty slice "provided, none";
// both render nothing for that source.
type CombinedInput struct {
	Lists []wordlist.List
	Kawas []kawa.Kawa
}

// Combined generates the overview map: a synthetic root with one child per
// list followed by one child per KaWa. Children are not expanded.
func Combined(in CombinedInput) Graph {
	var b builder
	b.node(RootID, CombinedCenter, NodeData{
		Label: KnowledgeBaseLabel,
		Type:  TypeRoot,
	})

	ring := Radial{Center: CombinedCenter, Radius: CombinedRadius, Count: len(in.Lists) + len(in.Kawas)}
	k := 0
	for i, l := range in.Lists {
		id := "list-" + strconv.Itoa(i)
		b.node(id, ring.Place(k), NodeData{
			Label:      l.Name,
			Type:       TypeRoot,
			SourceID:   l.Name,
			SourceType: SourceABCList,
		})
		b.edge(RootID, id)
		k++
	}
	for i, kw := range in.Kawas {
		id := "kawa-" + strconv.Itoa(i)
		b.node(id, ring.Place(k), NodeData{
			Label:      strings.ToUpper(kw.Word),
			Type:       TypeRoot,
			SourceID:   kw.Word,
			SourceType: SourceKawa,
		})
		b.edge(RootID, id)
		k++
	}
	return b.graph()
}

func splitLetters(word string) []string {
	runes := []rune(word)
	out := make([]string, len(runes))
	for i, r := range runes {
		out[i] = string(r)
	}
	return out
}
