//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // HOME, holds .doccat/config.yaml
	CatalogDir string // generated catalog files
}

// setupTestEnv creates isolated temp directories and points HOME at one of
// them so no user configuration leaks into the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:    t.TempDir(),
		CatalogDir: t.TempDir(),
	}
	t.Setenv("HOME", env.HomeDir)
	t.Setenv("DOCCAT_CATALOGS", "")
	return env
}

// setupCatalogs writes a generator-style script catalog for psychopath and a
// JSON catalog for its archiver subpackage. Returns both paths.
func setupCatalogs(t *testing.T, catalogDir string) (string, string) {
	t.Helper()

	var types []string
	for _, tt := range [][2]string{
		{"Directory", "Class"},
		{"File", "Class"},
		{"Folder", "Class"},
		{"Location", "AbstractClass"},
		{"Locator", "Class"},
		{"Option", "Class"},
		{"Progress", "Class"},
	} {
		types = append(types, `		{
			"modifiers": {
				"#": "java.util.Collections$UnmodifiableSet",},
			"name": "`+tt[0]+`",
			"packageName": "psychopath",
			"type": "`+tt[1]+`"
		}`)
	}
	script := "const root = {\n\t\"docs\": [],\n\t\"modules\": [],\n\t\"packages\": [\n\t\t\"psychopath\"\n\t],\n\t\"types\": [\n" +
		strings.Join(types, ",\n") + "\n\t]\n}"
	scriptPath := filepath.Join(catalogDir, "root.js")
	writeFile(t, scriptPath, script)

	archiverPath := filepath.Join(catalogDir, "archiver.json")
	writeFile(t, archiverPath, `{
  "docs": [],
  "modules": [],
  "packages": ["psychopath.archiver"],
  "types": [
    {"name": "Archiver", "packageName": "psychopath.archiver", "type": "Class"},
    {"name": "RARArchiveStreamProvider", "packageName": "psychopath.archiver", "type": "Class"},
    {"name": "SevenZipArchiveStreamProvider", "packageName": "psychopath.archiver", "type": "Class"}
  ]
}`)

	return scriptPath, archiverPath
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
