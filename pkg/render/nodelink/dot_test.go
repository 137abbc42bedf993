package nodelink

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/abclisten/pkg/mindmap"
	"github.com/matzehuels/abclisten/pkg/wordlist"
)

func sampleGraph() mindmap.Graph {
	return mindmap.FromList("Obst", wordlist.Buckets{
		"a": {{Text: "Apfel", Version: 1}},
		"b": {{Text: "Birne \"Williams\"", Version: 1}},
	})
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleGraph(), Options{})

	for _, want := range []string{
		"digraph G {",
		"inputscale=72;",
		`"root" [label="Obst", pos="400.00,-50.00!", shape=ellipse`,
		`"letter-a" [label="A"`,
		`label="Birne \"Williams\""`,
		`"root" -> "letter-a";`,
		`"letter-b" -> "word-b-0";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
	if strings.Count(dot, "->") != 4 {
		t.Errorf("expected 4 edges, got %d", strings.Count(dot, "->"))
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(sampleGraph(), Options{Detailed: true})
	if !strings.Contains(dot, `label="Apfel\nword\nletter: a"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestToDOTEmptyGraph(t *testing.T) {
	dot := ToDOT(mindmap.Combined(mindmap.CombinedInput{}), Options{})
	if !strings.Contains(dot, `"root" [label="Knowledge Base"`) {
		t.Errorf("combined root missing:\n%s", dot)
	}
	if strings.Contains(dot, "->") {
		t.Error("empty combined graph should have no edges")
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(sampleGraph(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !bytes.HasPrefix(bytes.TrimSpace(svg), []byte("<?xml")) && !bytes.Contains(svg, []byte("<svg")) {
		t.Fatalf("output is not SVG: %.80s", svg)
	}
	if !bytes.Contains(svg, []byte("Apfel")) {
		t.Error("SVG missing node label")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.50 200.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.50 200.00" width="100" height="200"><g/></svg>`
	if out != want {
		t.Errorf("normalizeViewBox =\n%s\nwant\n%s", out, want)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("no viewBox should be unchanged, got %s", got)
	}
}
