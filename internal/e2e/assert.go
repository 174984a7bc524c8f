package e2e

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// AssertSuccess fails the test if the command returned an error.
func AssertSuccess(t *testing.T, r *Result) {
	t.Helper()
	if !r.Success() {
		t.Fatalf("command failed: %v\nstdout: %s\nstderr: %s", r.Err, r.Stdout, r.Stderr)
	}
}

// AssertError fails the test if the command succeeded.
func AssertError(t *testing.T, r *Result) {
	t.Helper()
	if r.Success() {
		t.Fatalf("command succeeded, want error\nstdout: %s\nstderr: %s", r.Stdout, r.Stderr)
	}
}

// AssertErrorContains fails the test unless the command failed with an error
// mentioning substr.
func AssertErrorContains(t *testing.T, r *Result, substr string) {
	t.Helper()
	AssertError(t, r)
	if !strings.Contains(r.Err.Error(), substr) {
		t.Errorf("error %q does not contain %q", r.Err, substr)
	}
}

// AssertExitCode fails the test if the exit code differs from want.
func AssertExitCode(t *testing.T, r *Result, want int) {
	t.Helper()
	if r.ExitCode != want {
		t.Errorf("exit code = %d, want %d (error: %v)", r.ExitCode, want, r.Err)
	}
}

// AssertOutOfSync fails the test unless check failed because destinations
// differ from their sources.
func AssertOutOfSync(t *testing.T, r *Result) {
	t.Helper()
	if !r.OutOfSync() {
		t.Fatalf("want out-of-sync failure, got: %v\nstderr: %s", r.Err, r.Stderr)
	}
}

// AssertInSync runs check and fails the test unless every destination matches.
func AssertInSync(t *testing.T, h *Harness, args ...string) {
	t.Helper()
	r := h.Run(append([]string{"check"}, args...)...)
	AssertSuccess(t, r)
	AssertStderrContains(t, r, "All destinations are in sync.")
}

// AssertOutputContains checks stdout, where machine-readable reports go.
func AssertOutputContains(t *testing.T, r *Result, substr string) {
	t.Helper()
	assertContains(t, "stdout", r.Stdout, substr)
}

// AssertStderrContains checks stderr, where logs and the operator report go.
func AssertStderrContains(t *testing.T, r *Result, substr string) {
	t.Helper()
	assertContains(t, "stderr", r.Stderr, substr)
}

func assertContains(t *testing.T, stream, got, substr string) {
	t.Helper()
	if !strings.Contains(got, substr) {
		t.Errorf("%s does not contain %q\n%s", stream, substr, got)
	}
}

// AssertOutputEquals fails the test unless stdout is exactly want.
func AssertOutputEquals(t *testing.T, r *Result, want string) {
	t.Helper()
	if r.Stdout != want {
		t.Errorf("stdout = %q, want %q", r.Stdout, want)
	}
}

// AssertOutputMatches compares stdout with testdataDir/name.golden.
// Run the tests with -update to rewrite it.
func AssertOutputMatches(t *testing.T, r *Result, testdataDir, name string) {
	t.Helper()
	golden := filepath.Join(testdataDir, name+".golden")

	if UpdateGolden() {
		if err := os.MkdirAll(testdataDir, 0o750); err != nil {
			t.Fatalf("create %s: %v", testdataDir, err)
		}
		if err := os.WriteFile(golden, []byte(r.Stdout), 0o600); err != nil {
			t.Fatalf("write %s: %v", golden, err)
		}
		return
	}

	// #nosec G304 - golden lives under the package testdata directory
	want, err := os.ReadFile(golden)
	if err != nil {
		t.Fatalf("read %s: %v (run with -update to create it)", golden, err)
	}
	if r.Stdout != string(want) {
		t.Errorf("%s mismatch\n--- got ---\n%s\n--- want ---\n%s", name, r.Stdout, want)
	}
}

// AssertFileExists fails the test if path does not exist.
func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("%s: %v", path, err)
	}
}

// AssertFileNotExists fails the test if path exists.
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("%s exists, want it absent", path)
	}
}

// AssertFileEquals fails the test unless path holds exactly want.
func AssertFileEquals(t *testing.T, path, want string) {
	t.Helper()
	// #nosec G304 - path is provided by test code
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	if string(data) != want {
		t.Errorf("%s = %q, want %q", path, data, want)
	}
}

var updateGolden bool

// SetUpdateGolden is called from TestMain with the -update flag.
func SetUpdateGolden(update bool) {
	updateGolden = update
}

// UpdateGolden reports whether golden files are being rewritten.
func UpdateGolden() bool {
	return updateGolden
}
