package io

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/abclisten/pkg/kawa"
	"github.com/matzehuels/abclisten/pkg/wordlist"
)

// ListMarkdown renders a list as Markdown: a title, then one section per
// non-empty letter with a bullet per word.
func ListMarkdown(list wordlist.List) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n", mdEscape(list.Name))
	letters := list.Letters()
	if len(letters) == 0 {
		buf.WriteString("\n_No words yet._\n")
	}
	for _, letter := range letters {
		fmt.Fprintf(&buf, "\n## %s\n\n", strings.ToUpper(letter))
		for _, e := range list.Entries(letter) {
			if e.Explanation != "" {
				fmt.Fprintf(&buf, "- **%s**: %s\n", mdEscape(e.Text), mdEscape(e.Explanation))
			} else {
				fmt.Fprintf(&buf, "- **%s**\n", mdEscape(e.Text))
			}
		}
	}
	return buf.Bytes()
}

// KawaMarkdown renders a KaWa as a Markdown table with one row per letter
// position. Empty positions are shown with a dash.
func KawaMarkdown(k kawa.Kawa) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# KaWa: %s\n\n", mdEscape(strings.ToUpper(k.Word)))
	buf.WriteString("| Letter | Association |\n")
	buf.WriteString("| --- | --- |\n")
	for i, l := range k.Letters() {
		text := k.At(i)
		if text == "" {
			text = "-"
		}
		fmt.Fprintf(&buf, "| %s | %s |\n", strings.ToUpper(l), mdEscape(text))
	}
	return buf.Bytes()
}

// WriteListMarkdown writes [ListMarkdown] to w.
func WriteListMarkdown(list wordlist.List, w io.Writer) error {
	_, err := w.Write(ListMarkdown(list))
	return err
}

// WriteKawaMarkdown writes [KawaMarkdown] to w.
func WriteKawaMarkdown(k kawa.Kawa, w io.Writer) error {
	_, err := w.Write(KawaMarkdown(k))
	return err
}

var mdReplacer = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "|", `\|`,
	"[", `\[`, "]", `\]`, "<", `\<`, ">", `\>`, "#", `\#`,
)

// mdEscape escapes Markdown syntax in user text and folds newlines.
func mdEscape(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return mdReplacer.Replace(s)
}
