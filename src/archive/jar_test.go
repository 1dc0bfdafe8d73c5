package archive

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestJar(t *testing.T, entries map[string]string) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoErrorf(t, err, "creating entry %s", name)
		_, err = w.Write([]byte(content))
		require.NoErrorf(t, err, "writing entry %s", name)
	}
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "test.jar")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestArchive_ReadClassAndClassNames(t *testing.T) {
	path := writeTestJar(t, map[string]string{
		"com/example/Foo.class": "not real bytecode, just a fixture",
		"com/example/Bar.class": "also a fixture",
		"README.txt":            "not a class",
	})

	a, err := NewJarFile(path)
	require.NoError(t, err)
	defer a.Close()

	names := a.ClassNames()
	assert.Len(t, names, 2)

	data, ok, err := a.ReadClass("com/example/Foo.class")
	require.NoError(t, err)
	require.True(t, ok, "expected Foo.class to be found")
	assert.Equal(t, "not real bytecode, just a fixture", string(data))

	_, ok, err = a.ReadClass("com/example/Missing.class")
	require.NoError(t, err)
	assert.False(t, ok, "expected Missing.class to be absent")
}

func TestArchive_MainClass(t *testing.T) {
	path := writeTestJar(t, map[string]string{
		"META-INF/MANIFEST.MF": "Manifest-Version: 1.0\nMain-Class: com.example.Foo\n",
		"com/example/Foo.class": "fixture",
	})

	a, err := NewJarFile(path)
	require.NoError(t, err)
	defer a.Close()

	main, err := a.MainClass()
	require.NoError(t, err)
	assert.Equal(t, "com.example.Foo", main)
}

func TestArchive_MainClass_NoManifest(t *testing.T) {
	path := writeTestJar(t, map[string]string{
		"com/example/Foo.class": "fixture",
	})

	a, err := NewJarFile(path)
	require.NoError(t, err)
	defer a.Close()

	main, err := a.MainClass()
	require.NoError(t, err)
	assert.Equal(t, "", main)
}
