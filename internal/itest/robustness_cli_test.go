//go:build integration

package itest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"
)

const cliTimeout = 30 * time.Second

type robustCase struct {
	name            string
	args            func(t *testing.T, repoRoot string) []string
	env             map[string]string
	wantContains    []string
	wantNotContains []string
}

type cliRunResult struct {
	exitCode int
	output   string
}

func TestRobustness_ArgsValidation(t *testing.T) {
	repoRoot := mustRepoRoot(t)
	sample := filepath.Join(repoRoot, "internal", "itest", "testdata", "talk.json")

	cases := []robustCase{
		{
			name: "no args",
			args: staticArgs("run"),
			wantContains: []string{
				"requires at least 1 arg(s), only received 0",
			},
		},
		{
			name: "unknown command",
			args: staticArgs("cut", sample),
			wantContains: []string{
				`unknown command "cut"`,
			},
		},
		{
			name: "unknown flag",
			args: staticArgs("run", sample, "--wat"),
			wantContains: []string{
				"unknown flag: --wat",
			},
		},
		{
			name: "length non int",
			args: staticArgs("run", sample, "--length", "nope"),
			wantContains: []string{
				`invalid argument "nope" for "--length"`,
			},
		},
		{
			name: "workers zero",
			args: staticArgs("run", sample, "--workers", "0"),
			wantContains: []string{
				"config: workers must be > 0",
			},
		},
		{
			name: "unknown platform",
			args: staticArgs("run", sample, "--platform", "myspace"),
			wantContains: []string{
				`config: unknown platform "myspace"`,
			},
		},
		{
			name: "highlights too many args",
			args: staticArgs("highlights", sample, "extra"),
			wantContains: []string{
				"accepts 1 arg(s), received 2",
			},
		},
	}

	runRobustCases(t, repoRoot, cases)
}

func TestRobustness_InvalidInputs(t *testing.T) {
	repoRoot := mustRepoRoot(t)
	sample := filepath.Join(repoRoot, "internal", "itest", "testdata", "talk.json")

	cases := []robustCase{
		{
			name: "missing input path",
			args: staticArgs("run", filepath.Join(repoRoot, "internal", "itest", "testdata", "does-not-exist.json")),
			wantContains: []string{
				"config: stat input:",
			},
		},
		{
			name: "input is directory",
			args: staticArgs("run", filepath.Join(repoRoot, "internal", "itest", "testdata")),
			wantContains: []string{
				"is a directory",
			},
		},
		{
			name: "input is not json",
			args: staticArgs("run", filepath.Join(repoRoot, "internal", "itest", "testdata", "not-json.txt")),
			wantContains: []string{
				"parse metadata not-json.txt",
			},
		},
		{
			name: "source video with batch",
			args: staticArgs("run", sample, sample, "--source-video", sample),
			wantContains: []string{
				"source video requires exactly one input, got 2",
			},
		},
		{
			name: "out points to file",
			args: func(t *testing.T, _ string) []string {
				t.Helper()
				tmp := t.TempDir()
				outFile := filepath.Join(tmp, "out-file")
				if err := os.WriteFile(outFile, []byte("x"), 0o644); err != nil {
					t.Fatalf("write out file fixture: %v", err)
				}
				return []string{"run", sample, "--out", outFile}
			},
			wantContains: []string{
				"not a directory",
			},
		},
	}

	runRobustCases(t, repoRoot, cases)
}

func TestRobustness_ConfigAndEnv(t *testing.T) {
	repoRoot := mustRepoRoot(t)
	sample := filepath.Join(repoRoot, "internal", "itest", "testdata", "talk.json")

	writeConfig := func(name, body string) func(t *testing.T, _ string) []string {
		return func(t *testing.T, _ string) []string {
			t.Helper()
			p := filepath.Join(t.TempDir(), name)
			if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
				t.Fatalf("write config fixture: %v", err)
			}
			return []string{"run", sample, "--config", p}
		}
	}

	cases := []robustCase{
		{
			name: "config unknown key",
			args: writeConfig("c.yaml", "engagement_treshold: 0.5\n"),
			wantContains: []string{
				"field engagement_treshold not found",
			},
		},
		{
			name: "config zero slot template",
			args: writeConfig("c.yaml", "templates:\n  empty:\n    structure: []\n"),
			wantContains: []string{
				"invalid config",
				"empty",
			},
		},
		{
			name: "config threshold out of range",
			args: writeConfig("c.toml", "engagement_threshold = 1.5\n"),
			wantContains: []string{
				"engagement_threshold",
			},
		},
		{
			name: "config from env",
			args: staticArgs("run", sample),
			env: map[string]string{
				"REPURPOSE_CONFIG": filepath.Join(repoRoot, "internal", "itest", "testdata", "missing.yaml"),
			},
			wantContains: []string{
				"read config:",
			},
		},
		{
			name: "log format from env",
			args: staticArgs("run", sample),
			env: map[string]string{
				"REPURPOSE_LOG_FORMAT": "xml",
			},
			wantContains: []string{
				`log format: unsupported value "xml"`,
			},
			wantNotContains: []string{
				"manifest written",
			},
		},
	}

	runRobustCases(t, repoRoot, cases)
}

func runRobustCases(t *testing.T, repoRoot string, cases []robustCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := runCLI(t, repoRoot, tc.args(t, repoRoot), tc.env)
			if res.exitCode == 0 {
				t.Fatalf("expected non-zero exit code, got 0\noutput:\n%s", res.output)
			}
			for _, want := range tc.wantContains {
				if !strings.Contains(res.output, want) {
					t.Fatalf("expected output to contain %q\noutput:\n%s", want, res.output)
				}
			}
			for _, notWant := range tc.wantNotContains {
				if strings.Contains(res.output, notWant) {
					t.Fatalf("expected output to not contain %q\noutput:\n%s", notWant, res.output)
				}
			}
		})
	}
}

func runCLI(t *testing.T, repoRoot string, args []string, env map[string]string) cliRunResult {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), cliTimeout)
	defer cancel()

	cmdArgs := append([]string{"run", "./cmd/repurpose"}, args...)
	cmd := exec.CommandContext(ctx, "go", cmdArgs...)
	cmd.Dir = repoRoot
	cmd.Env = mergeEnv(
		os.Environ(),
		map[string]string{
			"NO_COLOR": "1",
			"TERM":     "dumb",
		},
		env,
	)

	out, err := cmd.CombinedOutput()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		t.Fatalf("command timed out after %s: go %s", cliTimeout, strings.Join(cmdArgs, " "))
	}

	res := cliRunResult{output: string(out)}
	if err == nil {
		res.exitCode = 0
		return res
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.exitCode = exitErr.ExitCode()
		return res
	}

	t.Fatalf("run command: %v\noutput:\n%s", err, string(out))
	return cliRunResult{}
}

func mergeEnv(base []string, overrides ...map[string]string) []string {
	env := make(map[string]string, len(base))
	for _, kv := range base {
		i := strings.IndexByte(kv, '=')
		if i <= 0 {
			continue
		}
		env[kv[:i]] = kv[i+1:]
	}

	for _, set := range overrides {
		for k, v := range set {
			env[k] = v
		}
	}

	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(out)
	return out
}

func mustRepoRoot(t *testing.T) string {
	t.Helper()

	repoRoot, err := findRepoRoot()
	if err != nil {
		t.Fatalf("repo root: %v", err)
	}
	return repoRoot
}

func staticArgs(args ...string) func(t *testing.T, _ string) []string {
	clone := append([]string(nil), args...)
	return func(t *testing.T, _ string) []string {
		t.Helper()
		return append([]string(nil), clone...)
	}
}
