package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, body := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
}

func TestClassifyCommand(t *testing.T) {
	t.Setenv("L10NFILTER_LOG_LEVEL", "error")

	out, err := execute(t, "classify", "--product", "mail", "--module", "mail",
		"--path", "chrome/messenger-region/region.properties", "--entity", "browser.search.order.3")
	require.NoError(t, err)
	assert.Contains(t, out, "ignore")
	assert.Contains(t, out, "region-search-order")

	// Module derived from a tree-relative path.
	out, err = execute(t, "classify", "--product", "suite", "--path", "suite/chrome/mailnews/region.properties",
		"--entity", "mail.addr_book.mapit_url.6")
	require.NoError(t, err)
	assert.Contains(t, out, "error")

	out, err = execute(t, "classify", "--product", "im", "--module", "im", "--path", "searchplugins/google.xml")
	require.NoError(t, err)
	assert.Contains(t, out, "false")

	_, err = execute(t, "classify", "--product", "firefox", "--module", "browser", "--path", "x")
	assert.Error(t, err)
}

func TestRulesCommand(t *testing.T) {
	t.Setenv("L10NFILTER_LOG_LEVEL", "error")
	out, err := execute(t, "rules", "calendar")
	require.NoError(t, err)
	assert.Contains(t, out, "calendar")
	assert.Contains(t, out, "timezones")
	assert.NotContains(t, out, "mapit")
}

func TestAuditAndWaivers(t *testing.T) {
	t.Setenv("L10NFILTER_LOG_LEVEL", "error")
	dir := t.TempDir()
	ref, l10n := filepath.Join(dir, "en-US"), filepath.Join(dir, "it")
	writeTree(t, ref, map[string]string{
		"mail/chrome/messenger/a.properties":             "k=v\nk2=v2\n",
		"mail/chrome/messenger-region/region.properties": "browser.search.order.1=Google\n",
		"browser/chrome/browser/ignored.properties":      "x=y\n",
		"extensions/spellcheck/hunspell/en-US.dic":       "words\n",
	})
	writeTree(t, l10n, map[string]string{
		"mail/chrome/messenger/a.properties":             "k=v\n",
		"mail/chrome/messenger-region/region.properties": "",
	})
	db := filepath.Join(dir, "l10n.db")
	out := filepath.Join(dir, "reports")
	args := []string{"--db", db, "audit", "--product", "mail", "--reference", ref,
		"--locale-dir", l10n, "--out", out}

	stdout, err := execute(t, args...)
	assert.ErrorIs(t, err, errAuditFailed)
	assert.Contains(t, stdout, "Audit FAIL")
	assert.Contains(t, stdout, "Errors: 1")
	assert.Contains(t, stdout, "Locale: it")

	stdout, err = execute(t, "--db", db, "waivers", "add", "--product", "mail",
		"--path", "chrome/messenger/a.properties", "--entity", "k2", "--reason", "pending string freeze")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Waiver 1 created")

	stdout, err = execute(t, args...)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Audit PASS")
	assert.Contains(t, stdout, "Waived: 1")

	stdout, err = execute(t, "--db", db, "waivers", "list", "--active")
	require.NoError(t, err)
	assert.Contains(t, stdout, "pending string freeze")

	_, err = execute(t, "--db", db, "waivers", "revoke", "1")
	require.NoError(t, err)
	stdout, err = execute(t, "--db", db, "waivers", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "revoked")

	stdout, err = execute(t, "--db", db, "report", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Report OK")
}

func TestParseExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	got, err := parseExpiry("", now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(defaultWaiverTTL), got)

	got, err = parseExpiry("48h", now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(48*time.Hour), got)

	got, err = parseExpiry("2026-06-30", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC), got)

	_, err = parseExpiry("-1h", now)
	assert.Error(t, err)
	_, err = parseExpiry("someday", now)
	assert.Error(t, err)
}

func TestAuditRejectsMissingTree(t *testing.T) {
	t.Setenv("L10NFILTER_LOG_LEVEL", "error")
	dir := t.TempDir()
	l10n := filepath.Join(dir, "de")
	writeTree(t, l10n, map[string]string{
		"mail/chrome/messenger/a.properties": "k=v\n",
	})

	stdout, err := execute(t, "--db", filepath.Join(dir, "l10n.db"), "audit", "--product", "mail",
		"--reference", filepath.Join(dir, "en-US-typo"), "--locale-dir", l10n, "--out", filepath.Join(dir, "reports"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, errAuditFailed)
	assert.Contains(t, err.Error(), "en-US-typo")
	assert.NotContains(t, stdout, "Audit PASS")

	_, err = os.Stat(filepath.Join(dir, "l10n.db"))
	assert.True(t, os.IsNotExist(err), "no run should be stored")
}
