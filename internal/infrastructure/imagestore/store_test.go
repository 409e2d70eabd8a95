package imagestore

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quick_chat_server/pkg/errorx"
)

func pngDataURI(payload []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)
}

func TestSaveWritesFileAndReturnsURL(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir)

	url, err := store.Save(pngDataURI([]byte("fake png bytes")))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasPrefix(url, URLPrefix+"/") {
		t.Fatalf("url = %q, want %s prefix", url, URLPrefix)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Fatalf("url = %q, want .png suffix", url)
	}

	data, err := os.ReadFile(filepath.Join(dir, filepath.Base(url)))
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "fake png bytes" {
		t.Fatalf("saved content mismatch")
	}
}

func TestSaveRejectsNonDataURI(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	cases := []string{
		"https://example.com/a.png",
		"data:text/plain;base64,aGVsbG8=",
		"data:image/png,raw-not-base64",
		"data:image/png;base64,%%%invalid%%%",
		"data:image/tiff;base64,AAAA",
	}
	for _, in := range cases {
		if _, err := store.Save(in); errorx.GetCode(err) != errorx.CodeInvalidParam {
			t.Errorf("Save(%q): code = %d, want CodeInvalidParam", in, errorx.GetCode(err))
		}
	}
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	store := NewLocalStore(t.TempDir())

	first, err := store.Save(pngDataURI([]byte("a")))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	second, err := store.Save(pngDataURI([]byte("b")))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if first == second {
		t.Fatalf("two saves produced the same name %q", first)
	}
}
