package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	main "github.com/fwojciec/xmd/cmd/xmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	statusURL = "https://x.com/alice/status/1234567890"
	tweetHTML = `<html><body><article role="article">` +
		`<div data-testid="User-Name"><a href="/alice"><span>Alice</span></a><a href="/alice"><span>@alice</span></a></div>` +
		`<time datetime="2026-01-02T03:04:05.000Z">Jan 2</time>` +
		`<div data-testid="tweetText"><span>Hello world</span></div>` +
		`</article></body></html>`
)

// testContext returns a background context for tests.
func testContext() context.Context {
	return context.Background()
}

// writeHTML saves a page snapshot and returns its path.
func writeHTML(t *testing.T, html string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(html), 0644))
	return path
}

func newTestMain(t *testing.T) *main.Main {
	t.Helper()
	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")
	return m
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("no arguments shows help and fails", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := newTestMain(t).Run(testContext(), nil, stdout, &bytes.Buffer{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
		assert.Contains(t, stdout.String(), "Usage:")
	})

	t.Run("extract prints markdown from a saved page", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := newTestMain(t).Run(testContext(), []string{
			"extract", statusURL, "--html", writeHTML(t, tweetHTML), "--stdout",
		}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Equal(t, "# Alice (@alice)\n\nHello world\n\n---\n\n> Source: "+statusURL+"\n> Date: 2026-01-02T03:04:05.000Z\n", stdout.String())
	})

	t.Run("extract writes a file to the output directory", func(t *testing.T) {
		t.Parallel()

		out := t.TempDir()
		stdout := &bytes.Buffer{}
		err := newTestMain(t).Run(testContext(), []string{
			"extract", statusURL, "--html", writeHTML(t, tweetHTML), "--out", out, "--frontmatter",
		}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		path := filepath.Join(out, "alice-1234567890.md")
		assert.Equal(t, "Tweet saved: "+path+"\n", stdout.String())

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "kind: tweet\n")
		assert.Contains(t, string(content), "Hello world")
	})

	t.Run("extract rejects a non-status URL", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		err := newTestMain(t).Run(testContext(), []string{
			"extract", "https://x.com/alice", "--html", writeHTML(t, tweetHTML), "--stdout",
		}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "Not on an X.com status page")
	})

	t.Run("archived documents appear in list and show", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		dbPath := m.DBPath

		err := m.Run(testContext(), []string{
			"extract", statusURL, "--html", writeHTML(t, tweetHTML), "--stdout", "--archive",
		}, &bytes.Buffer{}, &bytes.Buffer{})
		require.NoError(t, err)

		stdout := &bytes.Buffer{}
		m = main.NewMain()
		err = m.Run(testContext(), []string{"--db", dbPath, "list", "--handle", "alice"}, stdout, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "@alice")
		assert.Contains(t, stdout.String(), "Hello world")
	})

	t.Run("list on an empty archive", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := newTestMain(t).Run(testContext(), []string{"list"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No documents found")
	})
}
