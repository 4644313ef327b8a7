package artifact

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestPackRoundTrip(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "model.bin"), "weights")
	writeFile(t, filepath.Join(src, "code", "inference.py"), "def handler(): pass")

	outPath := filepath.Join(t.TempDir(), "model.tar.gz")
	info, err := Pack(src, outPath)
	if err != nil {
		t.Fatalf("Pack returned error: %v", err)
	}
	if info.Files != 2 {
		t.Errorf("Files = %d, want 2", info.Files)
	}
	if info.SizeBytes <= 0 {
		t.Errorf("SizeBytes = %d, want > 0", info.SizeBytes)
	}
	if len(info.SHA256) != 64 {
		t.Errorf("SHA256 = %q, want 64 hex chars", info.SHA256)
	}

	// Reopen and list entries.
	f, err := os.Open(outPath)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	gz, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("archive is not gzip: %v", err)
	}
	tr := tar.NewReader(gz)

	entries := map[string]string{}
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("read tar: %v", err)
		}
		if hdr.Typeflag == tar.TypeDir {
			entries[hdr.Name] = ""
			continue
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			t.Fatal(err)
		}
		entries[hdr.Name] = string(data)
	}

	if entries["model.bin"] != "weights" {
		t.Errorf("model.bin content = %q, want %q", entries["model.bin"], "weights")
	}
	if entries["code/inference.py"] == "" {
		t.Error("code/inference.py missing from archive")
	}
	if _, ok := entries["code/"]; !ok {
		t.Error("directory entry code/ missing from archive")
	}
}

func TestPackDigestMatchesFile(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "payload.json"), `{"instances": [[1, 2, 3]]}`)

	outPath := filepath.Join(t.TempDir(), "payload.tar.gz")
	info, err := Pack(src, outPath)
	if err != nil {
		t.Fatal(err)
	}

	onDisk, err := FileSHA256(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if onDisk != info.SHA256 {
		t.Errorf("FileSHA256 = %s, Pack reported %s", onDisk, info.SHA256)
	}
}

func TestPackRejectsNonDirectory(t *testing.T) {
	src := filepath.Join(t.TempDir(), "file.txt")
	writeFile(t, src, "x")
	if _, err := Pack(src, filepath.Join(t.TempDir(), "out.tar.gz")); err == nil {
		t.Error("Pack accepted a non-directory source")
	}
}

func TestValidateModelDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "inference.py"), "ok")

	if err := ValidateModelDir(dir, "inference.py"); err != nil {
		t.Errorf("ValidateModelDir returned error for present script: %v", err)
	}
	if err := ValidateModelDir(dir, "train.py"); err == nil {
		t.Error("ValidateModelDir accepted a missing script")
	}
	if err := ValidateModelDir(dir, ""); err != nil {
		t.Errorf("empty entry script should be accepted: %v", err)
	}
}

func TestDefaultKey(t *testing.T) {
	tests := []struct {
		prefix, path, want string
	}{
		{"models/resnet50", "/tmp/model.tar.gz", "models/resnet50/model.tar.gz"},
		{"/models/", "model.tar.gz", "models/model.tar.gz"},
		{"", "/tmp/x/payload.tar.gz", "payload.tar.gz"},
	}
	for _, tt := range tests {
		if got := DefaultKey(tt.prefix, tt.path); got != tt.want {
			t.Errorf("DefaultKey(%q, %q) = %q, want %q", tt.prefix, tt.path, got, tt.want)
		}
	}
}
