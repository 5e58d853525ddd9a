package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/xaled/okhash/checksum"
	"github.com/xaled/okhash/internal/config"
	"github.com/xaled/okhash/internal/logger"
	"github.com/xaled/okhash/okhash"
	"github.com/xaled/okhash/util"
)

// isolateConfig keeps tests away from any config file of the user running them.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvPath, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

// stubExit records the status passed to exit instead of ending the process.
func stubExit(t *testing.T) *int {
	t.Helper()
	code := 0
	prev := exit
	exit = func(c int) { code = c }
	t.Cleanup(func() { exit = prev })
	return &code
}

type runResult struct {
	stdout string
	stderr string
	code   int
	err    error
}

func execute(t *testing.T, c *cobra.Command, stdin string, args ...string) runResult {
	t.Helper()
	isolateConfig(t)
	code := stubExit(t)

	var out, errOut bytes.Buffer
	c.SetIn(strings.NewReader(stdin))
	c.SetOut(&out)
	c.SetErr(&errOut)
	c.SetArgs(args)
	err := c.ExecuteContext(context.Background())
	return runResult{stdout: out.String(), stderr: errOut.String(), code: *code, err: err}
}

func testEnv(stdin string) (*env, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	in := strings.NewReader(stdin)
	return &env{
		cfg:    config.Default(),
		stdin:  in,
		stdout: &out,
		stderr: &errOut,
		log:    logger.Nop(),
		summer: util.Summer{Stdin: in},
	}, &out, &errOut
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func sumHex(t *testing.T, data []byte, k int) string {
	t.Helper()
	sum, err := okhash.ComputeBytes(data, k)
	if err != nil {
		t.Fatalf("ComputeBytes: %v", err)
	}
	return sum.Hex()
}

// pattern returns n bytes that do not repeat within a kilobyte.
func pattern(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i*31 + 7)
	}
	return b
}

func TestRootSum(t *testing.T) {
	dir := t.TempDir()
	hello := []byte("hello\n")
	big := pattern(3000)
	a := writeFile(t, dir, "a.txt", hello)
	b := writeFile(t, dir, "b.bin", big)
	missing := filepath.Join(dir, "missing")

	tests := []struct {
		name       string
		stdin      string
		args       []string
		wantOut    string
		wantErrSub string
		wantCode   int
	}{
		{
			name:    "single file",
			args:    []string{a},
			wantOut: sumHex(t, hello, 2) + "  " + a + "\n",
		},
		{
			name:    "several files keep argument order",
			args:    []string{"-j", "4", b, a},
			wantOut: sumHex(t, big, 2) + "  " + b + "\n" + sumHex(t, hello, 2) + "  " + a + "\n",
		},
		{
			name:    "strength",
			args:    []string{"-K", "1", b},
			wantOut: sumHex(t, big, 1) + "  " + b + "\n",
		},
		{
			name:    "zero terminated",
			args:    []string{"-z", a},
			wantOut: sumHex(t, hello, 2) + "  " + a + "\x00",
		},
		{
			name:    "stdin by default",
			stdin:   "hello\n",
			wantOut: sumHex(t, hello, 2) + "  -\n",
		},
		{
			name:       "missing file",
			args:       []string{missing, a},
			wantOut:    sumHex(t, hello, 2) + "  " + a + "\n",
			wantErrSub: "okhash: " + missing + ": No such file or directory",
			wantCode:   1,
		},
		{
			name:       "directory",
			args:       []string{dir},
			wantErrSub: "okhash: " + dir + ": Is a directory",
			wantCode:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, NewRootCmd(), tt.stdin, tt.args...)
			if res.err != nil {
				t.Fatalf("unexpected error: %v", res.err)
			}
			if res.stdout != tt.wantOut {
				t.Errorf("stdout = %q, want %q", res.stdout, tt.wantOut)
			}
			if tt.wantErrSub != "" && !strings.Contains(res.stderr, tt.wantErrSub) {
				t.Errorf("stderr = %q, want it to contain %q", res.stderr, tt.wantErrSub)
			}
			if res.code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", res.code, tt.wantCode)
			}
		})
	}
}

func TestRootRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"zero strength", []string{"-K", "0"}, okhash.ErrInvalidK},
		{"quiet without check", []string{"--quiet"}, errCheckOnly},
		{"status without check", []string{"--status"}, errCheckOnly},
		{"strict without check", []string{"--strict"}, errCheckOnly},
		{"ignore-missing without check", []string{"--ignore-missing"}, errCheckOnly},
		{"warn without check", []string{"-w"}, errCheckOnly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(t, NewRootCmd(), "", tt.args...)
			if !errors.Is(res.err, tt.wantErr) {
				t.Errorf("error = %v, want %v", res.err, tt.wantErr)
			}
			if res.stdout != "" {
				t.Errorf("stdout = %q, want nothing", res.stdout)
			}
		})
	}
}

func TestRootUsesConfig(t *testing.T) {
	dir := t.TempDir()
	big := pattern(3000)
	b := writeFile(t, dir, "b.bin", big)
	cfgPath := writeFile(t, dir, "config.toml", []byte("default_k = 1\nzero = true\n"))

	res := execute(t, NewRootCmd(), "", "--config", cfgPath, b)
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}
	want := sumHex(t, big, 1) + "  " + b + "\x00"
	if res.stdout != want {
		t.Errorf("stdout = %q, want %q", res.stdout, want)
	}

	// flags win over the file
	res = execute(t, NewRootCmd(), "", "--config", cfgPath, "-K", "2", "--zero=false", b)
	want = sumHex(t, big, 2) + "  " + b + "\n"
	if res.stdout != want {
		t.Errorf("stdout = %q, want %q", res.stdout, want)
	}
}

func TestRootBadConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.toml", []byte("default_k = 0\n"))

	res := execute(t, NewRootCmd(), "", "--config", cfgPath)
	if !errors.Is(res.err, config.ErrInvalidConfig) {
		t.Errorf("error = %v, want %v", res.err, config.ErrInvalidConfig)
	}
}

func TestRootCheck(t *testing.T) {
	dir := t.TempDir()
	hello := []byte("hello\n")
	big := pattern(3000)
	a := writeFile(t, dir, "a.txt", hello)
	b := writeFile(t, dir, "b.bin", big)
	missing := filepath.Join(dir, "missing")

	good := sumHex(t, hello, 2) + "  " + a + "\n"
	bad := sumHex(t, []byte("other\n"), 2) + "  " + a + "\n"
	gone := sumHex(t, hello, 2) + "  " + missing + "\n"
	// a K=1 line still verifies a file whose sum has two levels
	weak := sumHex(t, big, 1) + "\t" + b + "\n"
	strong := sumHex(t, big, 3) + "  " + b + "\n"

	tests := []struct {
		name       string
		list       string
		flags      []string
		wantOut    string
		wantErrSub []string
		wantCode   int
	}{
		{
			name:    "all ok",
			list:    good + weak + strong,
			wantOut: a + ": OK\n" + b + ": OK\n" + b + ": OK\n",
		},
		{
			name:       "mismatch",
			list:       good + bad,
			wantOut:    a + ": OK\n" + a + ": FAILED\n",
			wantErrSub: []string{"WARNING: 1 computed checksum did NOT match"},
			wantCode:   1,
		},
		{
			name:    "missing",
			list:    good + gone,
			wantOut: a + ": OK\n" + missing + ": FAILED open or read\n",
			wantErrSub: []string{
				"okhash: " + missing + ": No such file or directory",
				"WARNING: 1 listed file could not be read",
			},
			wantCode: 1,
		},
		{
			name:    "ignore missing",
			list:    good + gone,
			flags:   []string{"--ignore-missing"},
			wantOut: a + ": OK\n",
		},
		{
			name:       "ignore missing with nothing verified",
			list:       gone,
			flags:      []string{"--ignore-missing"},
			wantErrSub: []string{checksum.ErrNoneVerified.Error()},
			wantCode:   1,
		},
		{
			name:  "quiet",
			list:  good + bad,
			flags: []string{"--quiet"},
			// failures are still reported
			wantOut:  a + ": FAILED\n",
			wantCode: 1,
		},
		{
			name:     "status",
			list:     good + bad + gone,
			flags:    []string{"--status"},
			wantCode: 1,
		},
		{
			name:       "malformed line is tolerated",
			list:       good + "not a checksum line\n",
			wantOut:    a + ": OK\n",
			wantErrSub: []string{"WARNING: 1 line is improperly formatted"},
		},
		{
			name:       "malformed line with warn",
			list:       good + "abc  " + a + "\n",
			flags:      []string{"--warn"},
			wantOut:    a + ": OK\n",
			wantErrSub: []string{": 2: improperly formatted O(K)Hash checksum line"},
		},
		{
			name:     "malformed line with strict",
			list:     good + "abc  " + a + "\n",
			flags:    []string{"--strict"},
			wantOut:  a + ": OK\n",
			wantCode: 1,
		},
		{
			name:       "no valid lines",
			list:       "nothing here\n",
			wantErrSub: []string{checksum.ErrNoValidLines.Error()},
			wantCode:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := writeFile(t, t.TempDir(), "SUMS", []byte(tt.list))
			args := append([]string{"-c"}, tt.flags...)
			args = append(args, list)

			res := execute(t, NewRootCmd(), "", args...)
			if res.err != nil {
				t.Fatalf("unexpected error: %v", res.err)
			}
			if res.stdout != tt.wantOut {
				t.Errorf("stdout = %q, want %q", res.stdout, tt.wantOut)
			}
			for _, sub := range tt.wantErrSub {
				if !strings.Contains(res.stderr, sub) {
					t.Errorf("stderr = %q, want it to contain %q", res.stderr, sub)
				}
			}
			if res.code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", res.code, tt.wantCode)
			}
		})
	}
}

func TestRunCheckStdinAndMissingList(t *testing.T) {
	dir := t.TempDir()
	hello := []byte("hello\n")
	a := writeFile(t, dir, "a.txt", hello)

	e, out, _ := testEnv(sumHex(t, hello, 1) + "  " + a + "\n")
	opts := &sumOptions{k: 2, check: true}
	if code := runCheck(context.Background(), e, opts, nil); code != 0 {
		t.Errorf("runCheck(stdin) = %d, want 0", code)
	}
	if got, want := out.String(), a+": OK\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}

	e, _, errOut := testEnv("")
	if code := runCheck(context.Background(), e, opts, []string{filepath.Join(dir, "nope")}); code != 1 {
		t.Errorf("runCheck(missing list) = %d, want 1", code)
	}
	if !strings.Contains(errOut.String(), "No such file or directory") {
		t.Errorf("stderr = %q, want a missing file message", errOut.String())
	}
}

func TestRunCheckStdinListNamesStdin(t *testing.T) {
	dir := t.TempDir()
	hello := []byte("hello\n")
	a := writeFile(t, dir, "a.txt", hello)

	list := sumHex(t, hello, 1) + "  " + a + "\n" + sumHex(t, hello, 1) + "  -\n"
	e, out, errOut := testEnv(list)
	if code := runCheck(context.Background(), e, &sumOptions{k: 2, check: true}, nil); code != 1 {
		t.Errorf("runCheck = %d, want 1", code)
	}
	if got, want := out.String(), a+": OK\n-: FAILED open or read\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
	for _, sub := range []string{
		"okhash: -: " + util.ErrStdinInUse.Error(),
		"WARNING: 1 listed file could not be read",
	} {
		if !strings.Contains(errOut.String(), sub) {
			t.Errorf("stderr = %q, want it to contain %q", errOut.String(), sub)
		}
	}
}

func TestRunCheckListFileNamesStdin(t *testing.T) {
	hello := []byte("hello\n")
	list := writeFile(t, t.TempDir(), "SUMS", []byte(sumHex(t, hello, 1)+"  -\n"))

	e, out, _ := testEnv("hello\n")
	if code := runCheck(context.Background(), e, &sumOptions{k: 2, check: true}, []string{list}); code != 0 {
		t.Errorf("runCheck = %d, want 0", code)
	}
	if got, want := out.String(), "-: OK\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
}

func TestRunSumCancelled(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", []byte("hello\n"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e, out, errOut := testEnv("")
	if code := runSum(ctx, e, &sumOptions{k: 2, jobs: 1}, []string{a}); code != 1 {
		t.Errorf("runSum = %d, want 1", code)
	}
	if out.Len() != 0 {
		t.Errorf("stdout = %q, want nothing", out.String())
	}
	if !strings.Contains(errOut.String(), context.Canceled.Error()) {
		t.Errorf("stderr = %q, want %q", errOut.String(), context.Canceled)
	}
}
