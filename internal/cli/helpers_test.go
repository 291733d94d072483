package cli

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/rpdform/internal/config"
	"github.com/alexanderramin/rpdform/internal/domain"
	"github.com/alexanderramin/rpdform/internal/service"
)

// testApp returns an App over the embedded dataset and stage document.
func testApp(t *testing.T) *App {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	ws, err := service.NewWorkspace(service.WorkspaceOptions{StagesTimeout: time.Second, Logger: logger})
	require.NoError(t, err)
	require.NoError(t, ws.LoadStages(context.Background(), ""))
	return &App{Data: ws, Config: config.DefaultConfig(), Logger: logger}
}

// testAppWithoutStages returns an App whose stage document never loaded.
func testAppWithoutStages(t *testing.T) *App {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	ws, err := service.NewWorkspace(service.WorkspaceOptions{Logger: logger})
	require.NoError(t, err)
	return &App{Data: ws, Config: config.DefaultConfig(), Logger: logger}
}

// executeCmd runs the root command with args and returns stdout, stderr.
func executeCmd(t *testing.T, app *App, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd(app)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return stripANSI(out.String()), stripANSI(errOut.String()), err
}

func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func completeSelection() domain.Selection {
	return domain.Selection{
		ClassSection: "22602658#0",
		Student:      "31550011#0",
		Service:      "5",
		Stage1:       "18",
		Stage2:       "181",
		Stage3:       "1811",
		Date:         "2025-03-10",
		StartTime:    "10:00",
		EndTime:      "10:40",
		Location:     "1",
	}
}
