/*
Copyright 2026 The Sydney-Go Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Command sydney is a thin front end over two of the query-execution
// packages (vector, fulltext); it does not drive dplan. It exists to exercise the
// packages end to end from the command line, not to be a production
// server; a real deployment drives them through Go APIs embedded in a
// larger process, the way Perkeep's cmd/* tools drive pkg/client.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"sydneygo.dev/sydney/pkg/catalog"
	"sydneygo.dev/sydney/pkg/fulltext"
	"sydneygo.dev/sydney/pkg/physfile"
	"sydneygo.dev/sydney/pkg/trans"
	"sydneygo.dev/sydney/pkg/vector"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("sydney: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch cmd := os.Args[1]; cmd {
	case "query":
		err = runQuery(os.Args[2:])
	case "vector-demo":
		err = runVectorDemo(os.Args[2:])
	case "help", "-h", "--help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "sydney: unknown command %q\n\n", cmd)
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: sydney <command> [flags]")
	fmt.Fprintln(os.Stderr, "commands:")
	fmt.Fprintln(os.Stderr, "  query        run a tea-string query against a built-in demo index")
	fmt.Fprintln(os.Stderr, "  vector-demo  round-trip a few rows through an on-disk VectorFile")
}

// demoIndex is a small fulltext.Index backed by literal postings, used
// so `sydney query` has something to run against without a real
// inverted-index driver wired in.
type demoIndex map[string]*fulltext.MemoryPostingList

func (idx demoIndex) Lookup(text, lang string, match fulltext.MatchCode) (fulltext.PostingList, error) {
	list, ok := idx[text]
	if !ok {
		return fulltext.NewMemoryPostingList(nil, nil), nil
	}
	return list.Clone(), nil
}

func newDemoIndex() demoIndex {
	return demoIndex{
		"go": fulltext.NewMemoryPostingList(
			map[fulltext.DocID]uint32{1: 4, 2: 1, 3: 2},
			map[fulltext.DocID]uint64{1: 40, 2: 20, 3: 30},
		),
		"database": fulltext.NewMemoryPostingList(
			map[fulltext.DocID]uint32{1: 2, 3: 5},
			map[fulltext.DocID]uint64{1: 40, 3: 30},
		),
		"rust": fulltext.NewMemoryPostingList(
			map[fulltext.DocID]uint32{2: 3},
			map[fulltext.DocID]uint64{2: 20},
		),
	}
}

func runQuery(args []string) error {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: sydney query '<tea-expr>'")
	}

	idx := newDemoIndex()
	info := fulltext.NewSearchInformation(fulltext.Word)
	info.DocumentCount = 3
	info.TotalDocumentLength = 90
	info.TotalDocumentFrequency = 3

	q, err := fulltext.BuildQuery(fs.Arg(0), idx, info)
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	for id := fulltext.DocID(0); ; {
		next := q.Root.LowerBound(info, id, false)
		if next == fulltext.UndefinedDocID {
			break
		}
		fmt.Printf("doc %d\tscore %.4f\n", next, q.Root.Score(info))
		id = next + 1
	}
	return nil
}

func runVectorDemo(args []string) error {
	fs := flag.NewFlagSet("vector-demo", flag.ExitOnError)
	dir := fs.String("dir", "", "directory to hold the demo file (default: a temp dir)")
	fs.Parse(args)

	base := *dir
	if base == "" {
		var err error
		base, err = os.MkdirTemp("", "sydney-vector-demo")
		if err != nil {
			return err
		}
	}

	fid := &vector.FileIdentifier{
		PageSizeKiB: 4,
		Version:     1,
		Columns: []catalog.Column{
			{Name: "key", Type: catalog.UInt32},
			{Name: "payload", Type: catalog.UInt32},
		},
	}
	vf := vector.New("sydney-demo-lock", func() (physfile.File, error) {
		return physfile.OpenHeapFile(
			filepath.Join(base, "data.heap"),
			filepath.Join(base, "meta.ldb"),
			fid.PageSizeBytes(),
		)
	})
	if err := vf.Create(fid); err != nil {
		return fmt.Errorf("create: %w", err)
	}

	opt, err := vector.ParseOpenOption(map[string]interface{}{"OpenMode": "Update"})
	if err != nil {
		return err
	}
	if err := vf.Open(opt, trans.ReadOnlyTransaction()); err != nil {
		return fmt.Errorf("open for insert: %w", err)
	}
	for i := uint32(1); i <= 3; i++ {
		if err := vf.Insert([]interface{}{i, i * 100}); err != nil {
			return fmt.Errorf("insert %d: %w", i, err)
		}
	}
	if err := vf.Close(); err != nil {
		return fmt.Errorf("close after insert: %w", err)
	}

	scanOpt, err := vector.ParseOpenOption(map[string]interface{}{"OpenMode": "Read", "ReadSubMode": "Scan"})
	if err != nil {
		return err
	}
	if err := vf.Open(scanOpt, trans.ReadOnlyTransaction()); err != nil {
		return fmt.Errorf("open for scan: %w", err)
	}
	defer vf.Close()

	fmt.Printf("stored rows in %s:\n", base)
	for {
		tuple, err := vf.Get()
		if err != nil {
			break
		}
		fmt.Printf("  %v\n", tuple)
	}
	return nil
}
