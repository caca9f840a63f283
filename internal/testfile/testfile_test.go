// Copyright Divvun, UiT The Arctic University of Norway, 2026. All rights reserved.

package testfile

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `Config:
  Spec: pipespec.xml
  Variants:
    - smegram-dev
Tests:
  - "dat lea {boallu}€{boalu} dáppe"
  - "eará cealkka"
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, t.TempDir(), "tests.yaml", validYAML)

	f, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(filepath.Dir(path), "pipespec.xml"), f.Spec)
	assert.Equal(t, "smegram-dev", f.Variant())
	assert.Len(t, f.Tests, 2)
}

func TestLoadStructureErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad syntax", "Config: [unclosed"},
		{"no spec", "Config:\n  Variants: [a]\nTests: [x]\n"},
		{"no variants", "Config:\n  Spec: s.xml\nTests: [x]\n"},
		{"no tests", "Config:\n  Spec: s.xml\n  Variants: [a]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "tests.yaml", tt.content)
			_, err := Load(path)
			var serr *StructureError
			require.ErrorAs(t, err, &serr)
		})
	}
}

const pipespecXML = `<pipespec language="se" default-pipe="smegram">
  <pipeline name="smegram"><sh prog="divvun-blanktag"/></pipeline>
  <pipeline name="smegram-dev"><sh prog="divvun-blanktag"/></pipeline>
</pipespec>`

func TestReadPipespec(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pipespec.xml", pipespecXML)

	spec, err := ReadPipespec(path)
	require.NoError(t, err)

	assert.Equal(t, "smegram", spec.DefaultPipe)
	assert.Equal(t, []string{"smegram", "smegram-dev"}, spec.Pipelines)
}

func writeZcheck(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "se.zcheck")
	out, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(out)
	member, err := zw.Create("pipespec.xml")
	require.NoError(t, err)
	_, err = member.Write([]byte(pipespecXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, out.Close())
	return path
}

func TestReadPipespecFromArchive(t *testing.T) {
	path := writeZcheck(t, t.TempDir())

	spec, err := ReadPipespec(path)
	require.NoError(t, err)
	assert.Equal(t, "smegram", spec.DefaultPipe)
}

func TestResolveVariant(t *testing.T) {
	dir := t.TempDir()
	xmlPath := writeFile(t, dir, "pipespec.xml", pipespecXML)
	zcheckPath := writeZcheck(t, dir)

	variant, err := ResolveVariant(xmlPath, []string{"smegram-dev"})
	require.NoError(t, err)
	assert.Equal(t, "smegram-dev", variant)

	// The -dev suffix only exists in source pipespecs, not in compiled
	// archives.
	variant, err = ResolveVariant(zcheckPath, []string{"smegram-dev"})
	require.NoError(t, err)
	assert.Equal(t, "smegram", variant)

	variant, err = ResolveVariant(xmlPath, nil)
	require.NoError(t, err)
	assert.Equal(t, "smegram", variant)

	_, err = ResolveVariant(xmlPath, []string{"nosuch"})
	var serr *StructureError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Msg, "smegram-dev")
}

func TestCheckerCommand(t *testing.T) {
	assert.Equal(t,
		[]string{"divvun-checker", "--spec", "p.xml", "--variant", "smegram"},
		CheckerCommand("p.xml", "smegram"))
	assert.Equal(t,
		[]string{"divvun-checker", "--archive", "se.zcheck", "--variant", "smegram"},
		CheckerCommand("se.zcheck", "smegram"))
}

func TestRemoveDupes(t *testing.T) {
	content := `Config:
  Spec: pipespec.xml
  Variants:
    - smegram
Tests:
  - "first test"
  - "dupe test"
  - "dupe test"
  - 'single quoted'
`
	path := writeFile(t, t.TempDir(), "tests.yaml", content)
	f, err := Load(path)
	require.NoError(t, err)

	dupes, err := RemoveDupes(f)
	require.NoError(t, err)
	require.Equal(t, []string{"dupe test"}, dupes)

	rewritten, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `Config:
  Spec: pipespec.xml
  Variants:
    - smegram
Tests:
  - "first test"
  - "dupe test"
  - 'single quoted'
`, string(rewritten))
}

func TestRemoveDupesNoChangeWithoutDupes(t *testing.T) {
	path := writeFile(t, t.TempDir(), "tests.yaml", validYAML)
	f, err := Load(path)
	require.NoError(t, err)

	dupes, err := RemoveDupes(f)
	require.NoError(t, err)
	assert.Empty(t, dupes)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, validYAML, string(data))
}

func TestMigrateTestsFromFail(t *testing.T) {
	dir := t.TempDir()
	content := `Config:
  Spec: pipespec.xml
  Variants:
    - smegram
Tests:
  - "now passing"
  - "still failing"
`
	path := writeFile(t, dir, "tests_FAIL.yaml", content)
	f, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, MigrateTests(f, []bool{true, false}))

	failData, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(failData), "now passing")
	assert.Contains(t, string(failData), "still failing")

	passData, err := os.ReadFile(filepath.Join(dir, "tests_PASS.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(passData), `- "now passing"`)
	assert.Contains(t, string(passData), "Tests:")
}

func TestMigrateTestsFromPassAppendsToExistingFail(t *testing.T) {
	dir := t.TempDir()
	passPath := writeFile(t, dir, "tests_PASS.yaml", `Config:
  Spec: pipespec.xml
  Variants:
    - smegram
Tests:
  - "regressed"
  - "fine"
`)
	failPath := writeFile(t, dir, "tests_FAIL.yaml", `Config:
  Spec: pipespec.xml
  Variants:
    - smegram
Tests:
  - "old failure"
`)
	f, err := Load(passPath)
	require.NoError(t, err)

	require.NoError(t, MigrateTests(f, []bool{false, true}))

	failData, err := os.ReadFile(failPath)
	require.NoError(t, err)
	assert.Contains(t, string(failData), "old failure")
	assert.Contains(t, string(failData), `- "regressed"`)

	passData, err := os.ReadFile(passPath)
	require.NoError(t, err)
	assert.NotContains(t, string(passData), "regressed")
	assert.Contains(t, string(passData), "fine")
}

func TestMigrateTestsPlainFileUntouched(t *testing.T) {
	path := writeFile(t, t.TempDir(), "tests.yaml", validYAML)
	f, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, MigrateTests(f, []bool{false, true}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, validYAML, string(data))
}
