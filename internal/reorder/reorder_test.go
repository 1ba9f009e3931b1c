package reorder_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"corpusprep/internal/corpus"
	"corpusprep/internal/logging"
	"corpusprep/internal/reorder"
	"corpusprep/internal/testsupport"
)

type fixture struct {
	dir       string
	canonical string
	srcs      []string
	hyps      []string
}

func newFixture(t *testing.T, canonical []string, pairs ...[2][]string) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{dir: dir, canonical: filepath.Join(dir, "orig.en")}
	testsupport.WriteLines(t, f.canonical, canonical...)
	for i, pair := range pairs {
		src := filepath.Join(dir, "scrambled", "cluster"+string(rune('0'+i))+".en")
		hyp := filepath.Join(dir, "scrambled", "cluster"+string(rune('0'+i))+".de")
		testsupport.WriteLines(t, src, pair[0]...)
		testsupport.WriteLines(t, hyp, pair[1]...)
		f.srcs = append(f.srcs, src)
		f.hyps = append(f.hyps, hyp)
	}
	return f
}

func defaultOptions() reorder.Options {
	return reorder.Options{Corpus: corpus.DefaultOptions(), Lock: true}
}

func TestMatchAndWriteRestoresCanonicalOrder(t *testing.T) {
	f := newFixture(t, []string{"a", "b", "a"},
		[2][]string{{"a", "a", "b"}, {"h1", "h2", "h3"}},
	)
	opts := defaultOptions()

	table, err := reorder.MatchOrder(f.canonical, f.srcs, f.hyps, opts)
	if err != nil {
		t.Fatalf("MatchOrder: %v", err)
	}
	outDir := filepath.Join(f.dir, "out")
	results, err := reorder.WriteOutput(table, []string{"restored.de"}, outDir, opts)
	if err != nil {
		t.Fatalf("WriteOutput: %v", err)
	}
	if len(results) != 1 || results[0].Lines != 3 || results[0].Path != filepath.Join(outDir, "restored.de") {
		t.Fatalf("unexpected results: %+v", results)
	}
	got := testsupport.ReadLines(t, results[0].Path)
	if want := []string{"h1", "h3", "h2"}; !slices.Equal(got, want) {
		t.Fatalf("got %q want %q", got, want)
	}
	testsupport.AssertNoFile(t, filepath.Join(outDir, corpus.LockFileName))
}

func TestRoundTripReproducesHypothesisFile(t *testing.T) {
	canonical := []string{"The cat.", "A dog.", "The cat.", "Birds fly."}
	hyps := []string{"Die Katze.", "Ein Hund.", "Die Katze!", "Vögel fliegen."}
	f := newFixture(t, canonical, [2][]string{canonical, hyps})
	opts := defaultOptions()

	table, err := reorder.MatchOrder(f.canonical, f.srcs, f.hyps, opts)
	if err != nil {
		t.Fatalf("MatchOrder: %v", err)
	}
	results, err := reorder.WriteOutput(table, []string{"copy.de"}, f.dir, opts)
	if err != nil {
		t.Fatalf("WriteOutput: %v", err)
	}
	want, err := os.ReadFile(f.hyps[0])
	if err != nil {
		t.Fatalf("read hyps: %v", err)
	}
	got, err := os.ReadFile(results[0].Path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("round trip changed bytes:\n got %q\nwant %q", got, want)
	}
}

func TestMultiSlotOutputsDoNotLeak(t *testing.T) {
	canonical := []string{"s1", "s2", "s3", "s4"}
	f := newFixture(t, canonical,
		[2][]string{{"s3", "s1", "s4", "s2"}, {"A3", "A1", "A4", "A2"}},
		[2][]string{{"s2", "s4", "s1", "s3"}, {"B2", "B4", "B1", "B3"}},
	)
	opts := defaultOptions()

	table, err := reorder.MatchOrder(f.canonical, f.srcs, f.hyps, opts)
	if err != nil {
		t.Fatalf("MatchOrder: %v", err)
	}
	results, err := reorder.WriteOutput(table, []string{"a.out", "b.out"}, f.dir, opts)
	if err != nil {
		t.Fatalf("WriteOutput: %v", err)
	}
	for i, prefix := range []string{"A", "B"} {
		got := testsupport.ReadLines(t, results[i].Path)
		want := []string{prefix + "1", prefix + "2", prefix + "3", prefix + "4"}
		if !slices.Equal(got, want) {
			t.Fatalf("slot %d: got %q want %q", i, got, want)
		}
	}
}

func TestMismatchedReferencesFailBeforeOutput(t *testing.T) {
	f := newFixture(t, []string{"a", "b"},
		[2][]string{{"a", "c"}, {"h1", "h2"}},
	)
	_, err := reorder.MatchOrder(f.canonical, f.srcs, f.hyps, defaultOptions())
	if !errors.Is(err, reorder.ErrReferenceMismatch) {
		t.Fatalf("expected ErrReferenceMismatch, got %v", err)
	}
	if !strings.Contains(err.Error(), f.srcs[0]) {
		t.Fatalf("error should name the scrambled file: %v", err)
	}
}

func TestShortHypothesisFileFailsWithoutPartialOutput(t *testing.T) {
	f := newFixture(t, []string{"a", "b", "c"},
		[2][]string{{"c", "b", "a"}, {"hc", "hb"}},
	)
	opts := defaultOptions()
	table, err := reorder.MatchOrder(f.canonical, f.srcs, f.hyps, opts)
	if err != nil {
		t.Fatalf("MatchOrder: %v", err)
	}
	want := []reorder.LengthMismatch{{Slot: 0, SourceLines: 3, HypothesisLines: 2}}
	if got := table.LengthMismatches(); !slices.Equal(got, want) {
		t.Fatalf("LengthMismatches = %v, want %v", got, want)
	}
	outDir := filepath.Join(f.dir, "out")
	_, err = reorder.WriteOutput(table, []string{"restored.de"}, outDir, opts)
	if !errors.Is(err, reorder.ErrMissingSlot) {
		t.Fatalf("expected ErrMissingSlot, got %v", err)
	}
	entries, readErr := os.ReadDir(outDir)
	if readErr != nil {
		t.Fatalf("ReadDir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no files after failed write, found %v", entries)
	}
}

func TestIdempotentRuns(t *testing.T) {
	canonical := []string{"x", "y", "x", "z"}
	f := newFixture(t, canonical,
		[2][]string{{"z", "x", "y", "x"}, {"Z", "X1", "Y", "X2"}},
	)
	opts := defaultOptions()

	var outputs [][]byte
	for range 2 {
		table, err := reorder.MatchOrder(f.canonical, f.srcs, f.hyps, opts)
		if err != nil {
			t.Fatalf("MatchOrder: %v", err)
		}
		results, err := reorder.WriteOutput(table, []string{"out.txt"}, f.dir, opts)
		if err != nil {
			t.Fatalf("WriteOutput: %v", err)
		}
		data, err := os.ReadFile(results[0].Path)
		if err != nil {
			t.Fatalf("read output: %v", err)
		}
		outputs = append(outputs, data)
	}
	if !bytes.Equal(outputs[0], outputs[1]) {
		t.Fatalf("runs differ: %q vs %q", outputs[0], outputs[1])
	}
	if string(outputs[0]) != "X1\nY\nX2\nZ\n" {
		t.Fatalf("unexpected output %q", outputs[0])
	}
}

func TestMatchOrderWarnsOnDuplicates(t *testing.T) {
	f := newFixture(t, []string{"dup", "dup", "solo"},
		[2][]string{{"solo", "dup", "dup"}, {"s", "d1", "d2"}},
	)
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	opts := defaultOptions()
	opts.Logger = logger

	if _, err := reorder.MatchOrder(f.canonical, f.srcs, f.hyps, opts); err != nil {
		t.Fatalf("MatchOrder: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "WARNING reorder: duplicate lines in original source") {
		t.Fatalf("expected duplicate warning, got %q", out)
	}
	if !strings.Contains(out, "duplicated_values=1") {
		t.Fatalf("expected duplicate count, got %q", out)
	}
}

func TestMatchOrderRejectsUnequalLists(t *testing.T) {
	f := newFixture(t, []string{"a"}, [2][]string{{"a"}, {"h"}})
	_, err := reorder.MatchOrder(f.canonical, f.srcs, append(f.hyps, f.hyps[0]), defaultOptions())
	if !errors.Is(err, reorder.ErrSlotCount) {
		t.Fatalf("expected ErrSlotCount, got %v", err)
	}
}

func TestWriteOutputValidatesNames(t *testing.T) {
	f := newFixture(t, []string{"a"},
		[2][]string{{"a"}, {"h"}},
		[2][]string{{"a"}, {"g"}},
	)
	opts := defaultOptions()
	table, err := reorder.MatchOrder(f.canonical, f.srcs, f.hyps, opts)
	if err != nil {
		t.Fatalf("MatchOrder: %v", err)
	}

	if _, err := reorder.WriteOutput(table, []string{"only-one"}, f.dir, opts); !errors.Is(err, reorder.ErrSlotCount) {
		t.Fatalf("expected ErrSlotCount, got %v", err)
	}
	if _, err := reorder.WriteOutput(table, []string{"same", "./same"}, f.dir, opts); err == nil {
		t.Fatal("expected duplicate output names to be rejected")
	}
	if _, err := reorder.WriteOutput(table, []string{"ok", " "}, f.dir, opts); err == nil {
		t.Fatal("expected empty output name to be rejected")
	}
}

func TestWriteOutputRespectsDirectoryLock(t *testing.T) {
	f := newFixture(t, []string{"a"}, [2][]string{{"a"}, {"h"}})
	opts := defaultOptions()
	table, err := reorder.MatchOrder(f.canonical, f.srcs, f.hyps, opts)
	if err != nil {
		t.Fatalf("MatchOrder: %v", err)
	}
	outDir := filepath.Join(f.dir, "locked")
	lock, err := corpus.LockDir(outDir)
	if err != nil {
		t.Fatalf("LockDir: %v", err)
	}
	t.Cleanup(func() { _ = lock.Unlock() })

	if _, err := reorder.WriteOutput(table, []string{"out"}, outDir, opts); err == nil {
		t.Fatal("expected locked output directory to be refused")
	}
	opts.Lock = false
	if _, err := reorder.WriteOutput(table, []string{"out"}, outDir, opts); err != nil {
		t.Fatalf("WriteOutput without lock: %v", err)
	}
}
