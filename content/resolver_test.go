package content

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func writeContentTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := map[string]string{
		"README.md": "# Climate tutorials",
		"tutorials/02_temperature/02_temperature.ipynb": "{}",
		"tutorials/03_sea_ice/03_sea_ice.md":            "# Sea ice",
		"tutorials/03_sea_ice/notes.txt":                "not a content document",
	}
	for name, body := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(p, []byte(body), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return root
}

func TestDirResolve(t *testing.T) {
	root := writeContentTree(t)
	d := NewDir(root, nil)

	tests := []struct {
		name     string
		ref      string
		resolved string
		ok       bool
	}{
		{"extension-less markdown", "README", "README.md", true},
		{"extension-less notebook", "tutorials/02_temperature/02_temperature", "tutorials/02_temperature/02_temperature.ipynb", true},
		{"explicit extension", "tutorials/03_sea_ice/03_sea_ice.md", "tutorials/03_sea_ice/03_sea_ice.md", true},
		{"unsupported extension", "tutorials/03_sea_ice/notes.txt", "", false},
		{"missing document", "tutorials/04_sea_level/04_sea_level", "", false},
		{"escape from root", "../README", "", false},
		{"absolute path", "/etc/passwd", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved, ok := d.Resolve(tt.ref)
			if ok != tt.ok || resolved != tt.resolved {
				t.Errorf("Resolve(%q) = (%q, %v), want (%q, %v)", tt.ref, resolved, ok, tt.resolved, tt.ok)
			}
		})
	}
}

func TestDirResolveExtensionOrder(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"intro.md", "intro.ipynb"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte("x"), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}

	// first configured extension wins
	if resolved, ok := NewDir(root, []string{".md", ".ipynb"}).Resolve("intro"); !ok || resolved != "intro.md" {
		t.Errorf("Resolve() = (%q, %v), want intro.md", resolved, ok)
	}
	if resolved, ok := NewDir(root, []string{".ipynb", ".md"}).Resolve("intro"); !ok || resolved != "intro.ipynb" {
		t.Errorf("Resolve() = (%q, %v), want intro.ipynb", resolved, ok)
	}
}

func writeContentArchive(t *testing.T) string {
	t.Helper()
	zipPath := filepath.Join(t.TempDir(), "book.zip")

	f, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create archive: %v", err)
	}
	w := zip.NewWriter(f)
	for name, body := range map[string]string{
		"README.md": "# Climate tutorials",
		"tutorials/02_temperature/02_temperature.ipynb": "{}",
	} {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("Failed to create archive entry: %v", err)
		}
		fw.Write([]byte(body))
	}
	w.Close()
	f.Close()
	return zipPath
}

func TestZipResolve(t *testing.T) {
	z, err := NewZip(writeContentArchive(t), nil)
	if err != nil {
		t.Fatalf("NewZip() error = %v", err)
	}

	if resolved, ok := z.Resolve("README"); !ok || resolved != "README.md" {
		t.Errorf("Resolve(README) = (%q, %v)", resolved, ok)
	}
	if resolved, ok := z.Resolve("tutorials/02_temperature/02_temperature"); !ok || resolved != "tutorials/02_temperature/02_temperature.ipynb" {
		t.Errorf("Resolve(notebook) = (%q, %v)", resolved, ok)
	}
	if _, ok := z.Resolve("missing"); ok {
		t.Error("Resolve(missing) succeeded")
	}

	data, err := z.Open("README.md")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if string(data) != "# Climate tutorials" {
		t.Errorf("Open() = %q", data)
	}
}

func TestStat(t *testing.T) {
	t.Run("dir", func(t *testing.T) {
		d := NewDir(writeContentTree(t), nil)
		size, mtime, err := d.Stat("README.md")
		if err != nil {
			t.Fatalf("Stat() error = %v", err)
		}
		if size != int64(len("# Climate tutorials")) || mtime == 0 {
			t.Errorf("Stat() = (%d, %d)", size, mtime)
		}
	})

	t.Run("zip", func(t *testing.T) {
		z, err := NewZip(writeContentArchive(t), nil)
		if err != nil {
			t.Fatalf("NewZip() error = %v", err)
		}
		size, _, err := z.Stat("README.md")
		if err != nil {
			t.Fatalf("Stat() error = %v", err)
		}
		if size != int64(len("# Climate tutorials")) {
			t.Errorf("Stat() size = %d", size)
		}
		if _, _, err := z.Stat("missing.md"); err == nil {
			t.Error("Stat(missing) succeeded")
		}
	})
}
