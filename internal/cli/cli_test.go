package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

const psychopathScript = `const root = {
	"docs": [],
	"modules": [],
	"packages": [
		"psychopath"
	],
	"types": [
		{"modifiers": {"#": "java.util.Collections$UnmodifiableSet",}, "name": "Directory", "packageName": "psychopath", "type": "Class"},
		{"modifiers": {"#": "java.util.Collections$UnmodifiableSet",}, "name": "File", "packageName": "psychopath", "type": "Class"},
		{"modifiers": {"#": "java.util.Collections$UnmodifiableSet",}, "name": "Folder", "packageName": "psychopath", "type": "Class"},
		{"modifiers": {"#": "java.util.Collections$UnmodifiableSet",}, "name": "Location", "packageName": "psychopath", "type": "AbstractClass"},
		{"modifiers": {"#": "java.util.Collections$UnmodifiableSet",}, "name": "Locator", "packageName": "psychopath", "type": "Class"},
		{"modifiers": {"#": "java.util.Collections$UnmodifiableSet",}, "name": "Option", "packageName": "psychopath", "type": "Class"},
		{"modifiers": {"#": "java.util.Collections$UnmodifiableSet",}, "name": "Progress", "packageName": "psychopath", "type": "Class"}
	]
}`

// resetFlags restores package-level flag variables between command runs.
func resetFlags() {
	catalogSources = nil
	verbose = false
	showJSON = false
	typesJSON = false
	packagesJSON = false
	searchKindFilter = ""
	searchPackageFilter = ""
	searchJSON = false
	validateStrict = false
	exportFormat = "json"
	exportOutput = ""
	versionShort = false
	versionJSON = false
	versionCheck = ""
}

// setupCatalogEnv writes files into a temp dir, isolates HOME, and points
// DOCCAT_CATALOGS at the first file. Returns the directory.
func setupCatalogEnv(t *testing.T, files map[string]string, primary string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DOCCAT_CATALOGS", filepath.Join(dir, primary))
	return dir
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeCapture(t, args...)
	return out, err
}

// executeCapture runs the root command with args and returns stdout and stderr.
func executeCapture(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}
