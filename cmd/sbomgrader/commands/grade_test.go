package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalSPDXDoc = `{
  "spdxVersion": "SPDX-2.3",
  "packages": [
    {
      "name": "curl",
      "downloadLocation": "https://example.com/curl.tar.gz",
      "externalRefs": [
        {"referenceType": "purl", "referenceLocator": "pkg:generic/curl@7.85.0"}
      ]
    }
  ]
}`

func writeTempDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSetupGradeFlags(t *testing.T) {
	fs, flags := SetupGradeFlags()

	assert.Equal(t, "default", flags.Cookbook)
	assert.Equal(t, "C", flags.Passing)
	assert.False(t, flags.Quiet)

	args := []string{"--cookbook", "default,default", "--decisive", "default", "--passing", "B", "-q", "doc.json"}
	require.NoError(t, fs.Parse(args))
	assert.Equal(t, "default,default", flags.Cookbook)
	assert.Equal(t, "default", flags.Decisive)
	assert.Equal(t, "B", flags.Passing)
	assert.True(t, flags.Quiet)
	assert.Equal(t, "doc.json", fs.Arg(0))
}

func TestHandleGrade_NoArgs(t *testing.T) {
	err := HandleGrade([]string{})
	assert.Error(t, err)
}

func TestHandleGrade_Help(t *testing.T) {
	err := HandleGrade([]string{"--help"})
	assert.NoError(t, err)
}

func TestHandleGrade_InvalidPassing(t *testing.T) {
	path := writeTempDoc(t, "doc.json", minimalSPDXDoc)
	err := HandleGrade([]string{"--passing", "Z", path})
	assert.Error(t, err)
}

func TestHandleGrade_UnknownCookbook(t *testing.T) {
	path := writeTempDoc(t, "doc.json", minimalSPDXDoc)
	err := HandleGrade([]string{"--cookbook", "nonexistent", path})
	assert.Error(t, err)
}

func TestHandleGrade_PassesWithLenientThreshold(t *testing.T) {
	path := writeTempDoc(t, "doc.json", minimalSPDXDoc)
	err := HandleGrade([]string{"-q", "--passing", "F", path})
	assert.NoError(t, err)
}

func TestHandleGrade_Bundle(t *testing.T) {
	path := writeTempDoc(t, "doc.json", minimalSPDXDoc)
	err := HandleGrade([]string{"-q", "--cookbook", "default,default", "--decisive", "default", "--passing", "F", path})
	assert.NoError(t, err)
}
