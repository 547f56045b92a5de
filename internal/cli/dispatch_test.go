package cli_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	"tasksync/internal/cli"
	"tasksync/internal/commands"
	"tasksync/internal/config"
	"tasksync/internal/exitcode"
	"tasksync/internal/service"
	"tasksync/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config, log *slog.Logger) (service.Service, error) {
		return svc, nil
	}
}

// setEnv clears the TODOS_* variables and sets the given pairs.
func setEnv(t *testing.T, kv ...string) {
	t.Helper()
	for _, k := range []string{"TODOS_USER_ID", "TODOS_API_URL", "TODOS_LATENCY", "TODOS_NOTIFICATION_TIMEOUT", "TODOS_MAX_CONCURRENCY"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	for i := 0; i+1 < len(kv); i += 2 {
		t.Setenv(kv[i], kv[i+1])
	}
}

func seeded() *testutil.FakeService {
	svc := testutil.NewFakeService(4)
	svc.AddTask(1, "Buy milk", false)
	svc.AddTask(2, "Walk dog", true)
	return svc
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	setEnv(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(seeded()))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"unknowncmd"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	setEnv(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(seeded()))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"--quiet"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_HelpWithoutOwner(t *testing.T) {
	setEnv(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(seeded()))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"help"}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr.String() != "" {
		t.Errorf("expected no stderr, got %q", stderr.String())
	}
	if !bytes.Contains(stdout.Bytes(), []byte("Usage:")) {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	setEnv(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(seeded()))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"version"}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout.String() != "tasksync 0.1.0\n" {
		t.Errorf("expected 'tasksync 0.1.0\\n', got %q", stdout.String())
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	setEnv(t)
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(seeded()))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"help", "--unknown"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_MissingFlagValue(t *testing.T) {
	setEnv(t, "TODOS_USER_ID", "4")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(seeded()))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"list", "--filter"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -filter\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_MissingOwner(t *testing.T) {
	setEnv(t)
	svc := seeded()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"list"}, &stdout, &stderr)

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	if !strings.HasPrefix(stderr.String(), "error: TODOS_USER_ID is not set\n") {
		t.Errorf("expected configuration warning, got %q", stderr.String())
	}
	if svc.CallCount() != 0 {
		t.Errorf("expected no requests, got %d", svc.CallCount())
	}
}

func TestDispatcher_InvalidEnv(t *testing.T) {
	setEnv(t, "TODOS_USER_ID", "4", "TODOS_LATENCY", "soon")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(seeded()))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"list"}, &stdout, &stderr)

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	if !strings.HasPrefix(stderr.String(), "error: config: ") {
		t.Errorf("expected config error, got %q", stderr.String())
	}
}

func TestDispatcher_NoArgsLists(t *testing.T) {
	setEnv(t, "TODOS_USER_ID", "4")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(seeded()))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), nil, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d; stderr %q", exitcode.Success, code, stderr.String())
	}
	expected := "   1  [ ] Buy milk\n   2  [x] Walk dog\n1 items left\n"
	if stdout.String() != expected {
		t.Errorf("expected %q, got %q", expected, stdout.String())
	}
}

func TestDispatcher_FlagsOverrideEnv(t *testing.T) {
	setEnv(t, "TODOS_USER_ID", "4")

	var got *config.Config
	factory := func(ctx context.Context, cfg *config.Config, log *slog.Logger) (service.Service, error) {
		got = cfg
		return seeded(), nil
	}
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"list", "--user", "9", "--api", "http://example.test", "--quiet"}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d; stderr %q", exitcode.Success, code, stderr.String())
	}
	if got.OwnerID != 9 {
		t.Errorf("expected owner 9, got %d", got.OwnerID)
	}
	if got.BaseURL != "http://example.test" {
		t.Errorf("expected %q, got %q", "http://example.test", got.BaseURL)
	}
	if !got.Quiet {
		t.Error("expected quiet to be set")
	}
}

func TestDispatcher_LoadFailure(t *testing.T) {
	setEnv(t, "TODOS_USER_ID", "4")
	svc := seeded()
	svc.ListErr = testutil.ErrInjected
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"done", "1"}, &stdout, &stderr)

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	expected := "error: Unable to load todos\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
	if n := len(svc.CallsFor("update")); n != 0 {
		t.Errorf("expected no update request, got %d", n)
	}
}

func TestDispatcher_InteractiveSurvivesLoadFailure(t *testing.T) {
	setEnv(t, "TODOS_USER_ID", "4")
	svc := seeded()
	svc.ListErr = testutil.ErrInjected

	shell := &commands.ShellCmd{}
	shell.SetInput(strings.NewReader("add Call mom\nlist\n"))
	registry := commands.NewRegistry()
	if err := registry.Register(shell); err != nil {
		t.Fatal(err)
	}
	dispatcher := cli.NewDispatcher(registry, testFactory(svc))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"shell", "--quiet"}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d; stderr %q", exitcode.Success, code, stderr.String())
	}
	if stderr.String() != "error: Unable to load todos\n" {
		t.Errorf("expected load banner, got %q", stderr.String())
	}
	if stdout.String() != "   1  [ ] Call mom\n" {
		t.Errorf("expected only the new task, got %q", stdout.String())
	}
}

func TestDispatcher_DebugLogs(t *testing.T) {
	setEnv(t, "TODOS_USER_ID", "4")
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(seeded()))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"list", "--debug", "--quiet"}, &stdout, &stderr)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stderr.String(), "loaded tasks") {
		t.Errorf("expected debug log on stderr, got %q", stderr.String())
	}
}

func TestDispatcher_HelpWithMalformedEnv(t *testing.T) {
	for _, kv := range [][]string{{"TODOS_LATENCY", "x"}, {"TODOS_USER_ID", "abc"}} {
		setEnv(t, kv...)
		dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(seeded()))

		for _, name := range []string{"help", "version"} {
			var stdout, stderr bytes.Buffer
			code := dispatcher.Run(context.Background(), []string{name}, &stdout, &stderr)

			if code != exitcode.Success {
				t.Errorf("%s with %s=%s: expected exit code %d, got %d", name, kv[0], kv[1], exitcode.Success, code)
			}
			if stderr.String() != "" {
				t.Errorf("%s with %s=%s: expected no stderr, got %q", name, kv[0], kv[1], stderr.String())
			}
		}
	}
}

func TestDispatcher_NonNumericOwnerShowsWarning(t *testing.T) {
	setEnv(t, "TODOS_USER_ID", "abc")
	svc := seeded()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"list"}, &stdout, &stderr)

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	if !strings.HasPrefix(stderr.String(), "error: TODOS_USER_ID is not set\n") {
		t.Errorf("expected configuration warning, got %q", stderr.String())
	}
	if svc.CallCount() != 0 {
		t.Errorf("expected no requests, got %d", svc.CallCount())
	}
}
