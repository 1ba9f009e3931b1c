package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"corpusprep/internal/config"
	"corpusprep/internal/reorder"
	"corpusprep/internal/symlinks"
	"corpusprep/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	base := testsupport.BaseDir(cfg)
	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	text, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func (env *cliTestEnv) path(parts ...string) string {
	return filepath.Join(append([]string{env.baseDir}, parts...)...)
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()

	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireCLI(t *testing.T, args []string, configPath string) string {
	t.Helper()
	out, stderr, err := runCLI(t, args, configPath)
	if err != nil {
		t.Fatalf("%s failed: %v\nstderr: %s", strings.Join(args, " "), err, stderr)
	}
	return out
}

func TestReorderCommandRestoresCanonicalOrder(t *testing.T) {
	env := setupCLITestEnv(t)
	orig := env.path("orig.en")
	testsupport.WriteLines(t, orig, "a", "b", "a", "c")
	testsupport.WriteLines(t, env.path("c0.en"), "c", "a", "b", "a")
	testsupport.WriteLines(t, env.path("c0.de"), "C", "A1", "B", "A2")
	testsupport.WriteLines(t, env.path("c1.en"), "a", "b", "a", "c")
	testsupport.WriteLines(t, env.path("c1.de"), "x1", "x2", "x3", "x4")

	out := requireCLI(t, []string{
		"reorder",
		"--orig-src", orig,
		"--srcs", env.path("c0.en") + "," + env.path("c1.en"),
		"--hyps", env.path("c0.de"),
		"--hyps", env.path("c1.de"),
		"--hyp-names", "first.de,second.de",
	}, env.configPath)

	first := testsupport.ReadLines(t, filepath.Join(env.cfg.Output.Dir, "first.de"))
	if want := []string{"A1", "B", "A2", "C"}; !slices.Equal(first, want) {
		t.Fatalf("first.de = %v, want %v", first, want)
	}
	second := testsupport.ReadLines(t, filepath.Join(env.cfg.Output.Dir, "second.de"))
	if want := []string{"x1", "x2", "x3", "x4"}; !slices.Equal(second, want) {
		t.Fatalf("second.de = %v, want %v", second, want)
	}
	for _, want := range []string{"first.de", "second.de", "[OK] 2 file(s)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestReorderCommandHonorsOutputPath(t *testing.T) {
	env := setupCLITestEnv(t)
	orig := env.path("orig.en")
	testsupport.WriteLines(t, orig, "x", "y")
	testsupport.WriteLines(t, env.path("c0.en"), "y", "x")
	testsupport.WriteLines(t, env.path("c0.de"), "Y", "X")

	target := env.path("elsewhere")
	requireCLI(t, []string{
		"reorder",
		"--orig-src", orig,
		"--srcs", env.path("c0.en"),
		"--hyps", env.path("c0.de"),
		"--hyp-names", "out.de",
		"--output-path", target,
	}, env.configPath)

	if got := testsupport.ReadLines(t, filepath.Join(target, "out.de")); !slices.Equal(got, []string{"X", "Y"}) {
		t.Fatalf("unexpected output %v", got)
	}
	testsupport.AssertNoFile(t, filepath.Join(env.cfg.Output.Dir, "out.de"))
}

func TestReorderCommandRejectsUnequalLists(t *testing.T) {
	env := setupCLITestEnv(t)
	orig := env.path("orig.en")
	testsupport.WriteLines(t, orig, "x")

	_, _, err := runCLI(t, []string{
		"reorder",
		"--orig-src", orig,
		"--srcs", env.path("a.en") + "," + env.path("b.en"),
		"--hyps", env.path("a.de") + "," + env.path("b.de"),
		"--hyp-names", "only.de",
	}, env.configPath)
	if !errors.Is(err, reorder.ErrSlotCount) {
		t.Fatalf("expected ErrSlotCount, got %v", err)
	}
	testsupport.AssertNoFile(t, filepath.Join(env.cfg.Output.Dir, "only.de"))
}

func TestReorderCommandFailsOnReferenceMismatch(t *testing.T) {
	env := setupCLITestEnv(t)
	orig := env.path("orig.en")
	testsupport.WriteLines(t, orig, "a", "b", "c")
	testsupport.WriteLines(t, env.path("c0.en"), "a", "b", "d")
	testsupport.WriteLines(t, env.path("c0.de"), "A", "B", "D")

	_, _, err := runCLI(t, []string{
		"reorder",
		"--orig-src", orig,
		"--srcs", env.path("c0.en"),
		"--hyps", env.path("c0.de"),
		"--hyp-names", "out.de",
	}, env.configPath)
	if !errors.Is(err, reorder.ErrReferenceMismatch) {
		t.Fatalf("expected ErrReferenceMismatch, got %v", err)
	}
	if !strings.Contains(err.Error(), "c0.en") {
		t.Fatalf("expected offending file in error, got %v", err)
	}
	testsupport.AssertNoFile(t, filepath.Join(env.cfg.Output.Dir, "out.de"))
}

func TestReorderCommandLogsRunID(t *testing.T) {
	env := setupCLITestEnv(t)
	orig := env.path("orig.en")
	testsupport.WriteLines(t, orig, "dup", "dup")
	testsupport.WriteLines(t, env.path("c0.en"), "dup", "dup")
	testsupport.WriteLines(t, env.path("c0.de"), "D1", "D2")

	stdout, stderr, err := runCLI(t, []string{
		"--log-level", "warn",
		"reorder",
		"--orig-src", orig,
		"--srcs", env.path("c0.en"),
		"--hyps", env.path("c0.de"),
		"--hyp-names", "out.de",
	}, env.configPath)
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	for _, want := range []string{"duplicate lines in original source", "run_id="} {
		if !strings.Contains(stderr, want) {
			t.Fatalf("expected %q in log output:\n%s", want, stderr)
		}
	}
	if !strings.Contains(stdout, "Duplicates:") || !strings.Contains(stdout, "[WARN] 1 repeated line(s), 1 extra occurrence(s)") {
		t.Fatalf("expected duplicate warning in summary:\n%s", stdout)
	}
}

func TestReorderCommandReportsShortHypotheses(t *testing.T) {
	env := setupCLITestEnv(t)
	orig := env.path("orig.en")
	testsupport.WriteLines(t, orig, "a", "b", "c")
	testsupport.WriteLines(t, env.path("c0.en"), "c", "b", "a")
	testsupport.WriteLines(t, env.path("c0.de"), "C", "B")

	stdout, _, err := runCLI(t, []string{
		"reorder",
		"--orig-src", orig,
		"--srcs", env.path("c0.en"),
		"--hyps", env.path("c0.de"),
		"--hyp-names", "out.de",
	}, env.configPath)
	if !errors.Is(err, reorder.ErrMissingSlot) {
		t.Fatalf("expected ErrMissingSlot, got %v", err)
	}
	for _, want := range []string{"Slot 0:", "[WARN]", "has 3 line(s)", "[ERROR] 0 of 1 file(s)"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("expected %q in summary:\n%s", want, stdout)
		}
	}
	testsupport.AssertNoFile(t, filepath.Join(env.cfg.Output.Dir, "out.de"))
}

func TestSeparateAndConcatCommands(t *testing.T) {
	env := setupCLITestEnv(t)
	base := env.path("data", "train")
	testsupport.WriteLines(t, base+".en", "s0", "s1", "s2", "s3")
	testsupport.WriteLines(t, base+".de", "t0", "t1", "t2", "t3")
	indices := env.path("data", "ids.txt")
	testsupport.WriteLines(t, indices, "1", "0", "1", "0")

	out := requireCLI(t, []string{
		"separate",
		"--input-file", base,
		"--indices", indices,
		"--src-lang", "en",
		"--trg-lang", "de",
		"--n-clusters", "2",
	}, env.configPath)
	if !strings.Contains(out, "[OK] 4 line(s) into 2 cluster(s)") {
		t.Fatalf("unexpected separate output:\n%s", out)
	}
	if got := testsupport.ReadLines(t, base+"_cluster0.en"); !slices.Equal(got, []string{"s1", "s3"}) {
		t.Fatalf("cluster0.en = %v", got)
	}
	if got := testsupport.ReadLines(t, base+"_cluster1.de"); !slices.Equal(got, []string{"t0", "t2"}) {
		t.Fatalf("cluster1.de = %v", got)
	}

	out = requireCLI(t, []string{
		"concat",
		"--input-file", base,
		"--src-lang", "en",
		"--trg-lang", "de",
		"--n-clusters", "2",
	}, env.configPath)
	if !strings.Contains(out, "train_clusterorder.en") {
		t.Fatalf("unexpected concat output:\n%s", out)
	}
	if got := testsupport.ReadLines(t, base+"_clusterorder.en"); !slices.Equal(got, []string{"s1", "s3", "s0", "s2"}) {
		t.Fatalf("clusterorder.en = %v", got)
	}
	if got := testsupport.ReadLines(t, base+"_clusterorder.de"); !slices.Equal(got, []string{"t1", "t3", "t0", "t2"}) {
		t.Fatalf("clusterorder.de = %v", got)
	}
}

func TestSeparateCommandUsesConfiguredClusterCount(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.Clusters.Count = 3
	writeTestConfig(t, env.configPath, env.cfg)

	base := env.path("train")
	testsupport.WriteLines(t, base+".en", "s0")
	testsupport.WriteLines(t, base+".de", "t0")
	indices := env.path("ids.txt")
	testsupport.WriteLines(t, indices, "2")

	out := requireCLI(t, []string{
		"separate",
		"--input-file", base,
		"--indices", indices,
		"--src-lang", "en",
		"--trg-lang", "de",
	}, env.configPath)
	if !strings.Contains(out, "[WARN]") {
		t.Fatalf("expected empty-cluster warning:\n%s", out)
	}
	if got := testsupport.ReadLines(t, base+"_cluster2.en"); !slices.Equal(got, []string{"s0"}) {
		t.Fatalf("cluster2.en = %v", got)
	}
	if got := testsupport.ReadLines(t, base+"_cluster0.en"); len(got) != 0 {
		t.Fatalf("cluster0.en should be empty, got %v", got)
	}
}

func TestSymlinkCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	target := env.path("train.en")
	testsupport.WriteLines(t, target, "hello")
	link := env.path("aliases", "nested", "train.en")

	out := requireCLI(t, []string{"symlink", "--files", target, "--links", link}, env.configPath)
	if !strings.Contains(out, "[OK]") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	resolved, err := os.Readlink(link)
	if err != nil {
		t.Fatalf("readlink: %v", err)
	}
	if resolved != target {
		t.Fatalf("link points to %q, want %q", resolved, target)
	}

	if _, _, err := runCLI(t, []string{"symlink", "--files", target, "--links", link}, env.configPath); err == nil {
		t.Fatal("expected error for existing link without --force")
	}
	requireCLI(t, []string{"symlink", "--files", target, "--links", link, "--force"}, env.configPath)

	_, _, err = runCLI(t, []string{"symlink", "--files", target + "," + target, "--links", link}, env.configPath)
	if !errors.Is(err, symlinks.ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestConfigCommands(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "corpusprep.toml")

	out := requireCLI(t, []string{"config", "init", "--path", target}, target)
	if !strings.Contains(out, target) {
		t.Fatalf("unexpected init output: %s", out)
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, target); err == nil {
		t.Fatal("expected init to refuse overwriting without --overwrite")
	}
	requireCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, target)

	out = requireCLI(t, []string{"config", "validate"}, target)
	if !strings.Contains(out, "[OK] valid") || !strings.Contains(out, target) {
		t.Fatalf("unexpected validate output: %s", out)
	}

	out = requireCLI(t, []string{"config", "show"}, target)
	for _, want := range []string{"[corpus]", "count = 4", "console"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in config show output:\n%s", want, out)
		}
	}
}

func TestConfigValidateReportsInvalidFile(t *testing.T) {
	cases := map[string]string{
		"normalization": "[corpus]\nnormalization = \"nfd\"\n",
		"format":        "[logging]\nformat = \"yaml\"\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.toml")
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, err := runCLI(t, []string{"config", "validate"}, path)
			if err == nil || !strings.Contains(err.Error(), "load config") || !strings.Contains(err.Error(), name) {
				t.Fatalf("expected load config error naming %s, got %v", name, err)
			}
		})
	}
}
