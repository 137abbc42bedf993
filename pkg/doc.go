// Package pkg provides the core libraries for abclisten, a toolkit for the
// ABC-List and KaWa learning techniques.
//
// # Overview
//
// An ABC-List collects words per starting letter; a KaWa associates one word
// with each letter of a target word. abclisten stores both, exports them as
// documents, and draws them as radial mind maps. The pkg directory is
// organized into four areas:
//
//  1. Domain models: [wordlist], [kawa], [mindmap]
//  2. Persistence: [store], [library], [accessibility]
//  3. Output: [io], [render], [pipeline]
//  4. Shared infrastructure: [config], [errors], [observability], [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	store.Store (memory, file, redis, mongo)
//	         ↓
//	    [library] (lists and KaWas by name)
//	         ↓
//	    [mindmap] (radial graph: root, letters, words)
//	         ↓
//	    [render/nodelink] (Graphviz DOT, SVG, PDF, PNG)
//
// [pipeline] runs the last three steps with an artifact cache and is shared
// by the CLI and the HTTP server.
//
// # Quick Start
//
//	s, _ := store.Open(ctx, store.Options{Backend: store.BackendMemory})
//	lib := library.New(s)
//
//	list, _ := wordlist.New("Tiere")
//	list, _ = list.Add("", wordlist.NewEntry("Affe", "", time.Now()))
//	_ = lib.SaveList(ctx, list)
//
//	runner := pipeline.NewRunner(lib, nil, nil)
//	res, _ := runner.Execute(ctx, pipeline.Options{
//	    Source:  pipeline.SourceList,
//	    Name:    "Tiere",
//	    Formats: []string{pipeline.FormatSVG},
//	})
//
// # Testing
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/mindmap/...    # Specific package
//	go test -run Example ./...   # Examples only
//
// [wordlist]: https://pkg.go.dev/github.com/matzehuels/abclisten/pkg/wordlist
// [kawa]: https://pkg.go.dev/github.com/matzehuels/abclisten/pkg/kawa
// [mindmap]: https://pkg.go.dev/github.com/matzehuels/abclisten/pkg/mindmap
// [store]: https://pkg.go.dev/github.com/matzehuels/abclisten/pkg/store
// [library]: https://pkg.go.dev/github.com/matzehuels/abclisten/pkg/library
// [accessibility]: https://pkg.go.dev/github.com/matzehuels/abclisten/pkg/accessibility
// [io]: https://pkg.go.dev/github.com/matzehuels/abclisten/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/abclisten/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/abclisten/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/abclisten/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/matzehuels/abclisten/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/abclisten/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/abclisten/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/abclisten/pkg/buildinfo
package pkg
