package cidtool

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestNewCLIDefaults(t *testing.T) {
	cli := NewCLI()
	if cli.binary != "cid" {
		t.Fatalf("expected default binary %q, got %q", "cid", cli.binary)
	}
	if cli.version != 0 {
		t.Fatalf("expected default version 0, got %d", cli.version)
	}
}

func TestNewCLIOptions(t *testing.T) {
	cli := NewCLI(WithBinary("/opt/cid"), WithVersion(1))
	if cli.binary != "/opt/cid" {
		t.Fatalf("expected binary override to be applied, got %q", cli.binary)
	}
	if cli.version != 1 {
		t.Fatalf("expected version override to be applied, got %d", cli.version)
	}
}

func TestComputeRequiresPath(t *testing.T) {
	cli := NewCLI()
	if _, err := cli.Compute(context.Background(), ""); err == nil {
		t.Fatal("expected error when file path is empty")
	}
}

func TestComputeArgsAndOutput(t *testing.T) {
	var capturedName string
	var capturedArgs []string
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		capturedName = name
		capturedArgs = append([]string(nil), args...)
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "CIDTOOL_HELPER_MODE=success")
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})

	cli := NewCLI(WithBinary("cid"), WithVersion(1))
	cid, err := cli.Compute(context.Background(), "/images/art1.png")
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if cid != "QmHelperCID" {
		t.Fatalf("expected trimmed helper CID, got %q", cid)
	}

	if capturedName != "cid" {
		t.Fatalf("expected cid binary, got %q", capturedName)
	}
	wantArgs := []string{"--cid-version=1", "/images/art1.png"}
	if len(capturedArgs) != len(wantArgs) {
		t.Fatalf("got args %v, want %v", capturedArgs, wantArgs)
	}
	for i := range wantArgs {
		if capturedArgs[i] != wantArgs[i] {
			t.Fatalf("got args %v, want %v", capturedArgs, wantArgs)
		}
	}
}

func TestComputeFailureNamesPathAndStderr(t *testing.T) {
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "CIDTOOL_HELPER_MODE=failure")
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})

	cli := NewCLI()
	_, err := cli.Compute(context.Background(), "/images/broken.png")
	if err == nil {
		t.Fatal("expected error for nonzero exit")
	}
	if !strings.Contains(err.Error(), "/images/broken.png") {
		t.Fatalf("error should name the offending path, got %v", err)
	}
	if !strings.Contains(err.Error(), "unreadable input") {
		t.Fatalf("error should carry stderr text, got %v", err)
	}
}

func TestComputeEmptyOutput(t *testing.T) {
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "CIDTOOL_HELPER_MODE=empty")
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})

	cli := NewCLI()
	if _, err := cli.Compute(context.Background(), "/images/art1.png"); err == nil {
		t.Fatal("expected error when the tool prints nothing")
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	switch os.Getenv("CIDTOOL_HELPER_MODE") {
	case "success":
		fmt.Println("QmHelperCID")
		os.Exit(0)
	case "failure":
		fmt.Fprintln(os.Stderr, "cid: unreadable input")
		os.Exit(1)
	case "empty":
		os.Exit(0)
	}
	os.Exit(0)
}
