package runner

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const flatConfig = `# exported from a running node
fukuii.network.peer.max-outgoing-peers = 15
fukuii.db.rocksdb.block-cache-size = 16777216
fukuii.sync.max-concurrent-requests = 5
fukuii.network.rpc.http.interface = "localhost"
`

func TestImportListsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "node.conf")
	writeFile(t, path, flatConfig)

	var stdout, stderr bytes.Buffer
	code := Import(testOptions(&stdout, &stderr), &ImportRequest{Files: []string{path}})
	if code != ExitOK {
		t.Fatalf("exit %d; stderr: %s", code, stderr.String())
	}

	want := "fukuii.network.peer.max-outgoing-peers = 15\n" +
		"fukuii.db.rocksdb.block-cache-size = 16777216\n" +
		"fukuii.sync.max-concurrent-requests = 5\n" +
		"fukuii.network.rpc.http.interface = localhost\n"
	if got := stdout.String(); got != want {
		t.Errorf("stdout:\nwant %q\ngot  %q", want, got)
	}

	for _, msg := range []string{
		"Successfully loaded configuration from node.conf",
		"4 keys imported",
		"Profile: raspberrypi",
	} {
		if !strings.Contains(stderr.String(), msg) {
			t.Errorf("stderr missing %q: %s", msg, stderr.String())
		}
	}
	if strings.Contains(stderr.String(), "Complex HOCON") {
		t.Errorf("flat file should not warn: %s", stderr.String())
	}
}

func TestImportEmitState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "node.conf")
	writeFile(t, path, flatConfig)

	var stdout, stderr bytes.Buffer
	code := Import(testOptions(&stdout, &stderr), &ImportRequest{
		Files:     []string{path},
		EmitState: StdioName,
	})
	if code != ExitOK {
		t.Fatalf("exit %d; stderr: %s", code, stderr.String())
	}

	out := stdout.String()
	for _, want := range []string{
		"profile: raspberrypi\n",
		"chain: etc\n",
		"fukuii.sync.max-concurrent-requests: 5\n",
		"- fukuii.sync.block-headers-per-request\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in state:\n%s", want, out)
		}
	}

	// The emitted state renders the same values it was built from.
	var rendered, renderErr bytes.Buffer
	opts := testOptions(&rendered, &renderErr)
	opts.Stdin = strings.NewReader(out)
	code = Render(t.Context(), opts, &RenderRequest{
		Session: SessionRequest{StateFile: StdioName},
		Output:  OutputRequest{Stdout: true},
	})
	if code != ExitOK {
		t.Fatalf("render emitted state: exit %d; stderr: %s", code, renderErr.String())
	}
	if strings.Contains(rendered.String(), "block-headers-per-request") {
		t.Errorf("unset preset key rendered:\n%s", rendered.String())
	}
	if !strings.Contains(rendered.String(), "    max-concurrent-requests = 5\n") {
		t.Errorf("missing imported value:\n%s", rendered.String())
	}
}

func TestImportEmitStateFileAndRender(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "node.conf")
	writeFile(t, path, flatConfig)
	statePath := filepath.Join(dir, "state", "session.yaml")

	var stdout, stderr bytes.Buffer
	code := Import(testOptions(&stdout, &stderr), &ImportRequest{
		Files:     []string{path},
		EmitState: statePath,
		Render:    true,
	})
	if code != ExitOK {
		t.Fatalf("exit %d; stderr: %s", code, stderr.String())
	}

	data, err := os.ReadFile(statePath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "profile: raspberrypi\n") {
		t.Errorf("state file:\n%s", data)
	}
	if !strings.Contains(stdout.String(), "# Profile: raspberrypi\n") {
		t.Errorf("expected rendered config on stdout:\n%s", stdout.String())
	}
}

func TestImportStdinNested(t *testing.T) {
	var stdout, stderr bytes.Buffer
	opts := testOptions(&stdout, &stderr)
	opts.Stdin = strings.NewReader("fukuii {\n  a = 1\n}\n")

	code := Import(opts, &ImportRequest{})
	if code != ExitOK {
		t.Fatalf("exit %d; stderr: %s", code, stderr.String())
	}
	if got := stdout.String(); got != "a = 1\n" {
		t.Errorf("stdout: got %q", got)
	}
	for _, msg := range []string{
		"Successfully loaded configuration from <stdin>",
		"Complex HOCON structures detected",
		"No matching profile detected",
	} {
		if !strings.Contains(stderr.String(), msg) {
			t.Errorf("stderr missing %q: %s", msg, stderr.String())
		}
	}
}

func TestImportLaterFilesWin(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.conf")
	second := filepath.Join(dir, "b.conf")
	writeFile(t, first, "x = 1\ny = 1\n")
	writeFile(t, second, "y = 2\n")

	var stdout, stderr bytes.Buffer
	code := Import(testOptions(&stdout, &stderr), &ImportRequest{Files: []string{first, second}})
	if code != ExitOK {
		t.Fatalf("exit %d; stderr: %s", code, stderr.String())
	}
	if got := stdout.String(); got != "x = 1\ny = 2\n" {
		t.Errorf("stdout: got %q", got)
	}
}

func TestImportSeedProfile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	opts := testOptions(&stdout, &stderr)
	opts.Stdin = strings.NewReader("unrelated.key = on\n")

	code := Import(opts, &ImportRequest{Profile: "miner"})
	if code != ExitOK {
		t.Fatalf("exit %d; stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stderr.String(), "Profile: miner") {
		t.Errorf("seed profile should be kept when nothing is detected: %s", stderr.String())
	}
	if !strings.Contains(stdout.String(), "fukuii.mining.mining-enabled = true\n") {
		t.Errorf("seed preset missing:\n%s", stdout.String())
	}
}

func TestImportMissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Import(testOptions(&stdout, &stderr), &ImportRequest{Files: []string{"/nonexistent/node.conf"}})
	if code != ExitError {
		t.Errorf("got %d, want %d", code, ExitError)
	}
	if !strings.Contains(stderr.String(), "Failed to parse configuration") {
		t.Errorf("stderr: %s", stderr.String())
	}
}
