package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lalalagugugu/lvmh-portfolio-tagged/internal/model"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
		t.Fatalf("touch %s: %v", name, err)
	}
}

func TestMentionsFileName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		year    string
		variant model.FileVariant
		want    string
	}{
		{"2024", model.VariantStandardizedVerified, "lvmh_2024FY_maison_mentions_standardized_verified.xlsx"},
		{"2024", model.VariantOriginal, "lvmh_2024FY_maison_mentions.xlsx"},
		{"2025H1", model.VariantVerified, "lvmh_2025H1_maison_mentions_verified.xlsx"},
		{"2025H1", model.VariantOriginal, "lvmh_2025H1_maison_mentions.xlsx"},
	}

	for _, c := range cases {
		if got := MentionsFileName(c.year, c.variant); got != c.want {
			t.Errorf("MentionsFileName(%s, %s) = %q, want %q", c.year, c.variant, got, c.want)
		}
	}
}

func TestResolveMentionsFilePriority(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, dir, "lvmh_2024FY_maison_mentions.xlsx")
	touch(t, dir, "lvmh_2024FY_maison_mentions_verified.xlsx")

	_, variant, ok := ResolveMentionsFile(dir, "2024")
	if !ok {
		t.Fatal("expected file to resolve")
	}
	if variant != model.VariantVerified {
		t.Fatalf("variant = %s, want verified", variant)
	}

	// 加入更高优先级的文件后应当改选它
	touch(t, dir, "lvmh_2024FY_maison_mentions_standardized_verified.xlsx")

	path, variant, ok := ResolveMentionsFile(dir, "2024")
	if !ok || variant != model.VariantStandardizedVerified {
		t.Fatalf("variant = %s, want standardized_verified", variant)
	}
	if filepath.Base(path) != "lvmh_2024FY_maison_mentions_standardized_verified.xlsx" {
		t.Fatalf("path = %s", path)
	}
}

func TestResolveMentionsFileMissing(t *testing.T) {
	t.Parallel()

	_, _, ok := ResolveMentionsFile(t.TempDir(), "2021")
	if ok {
		t.Fatal("expected no file")
	}
}

func TestResolveDetailsFileStandardizedFirst(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	touch(t, dir, "lvmh_2023FY_maison_details.xlsx")

	path, ok := ResolveDetailsFile(dir, "2023")
	if !ok || filepath.Base(path) != "lvmh_2023FY_maison_details.xlsx" {
		t.Fatalf("path = %s, ok = %v", path, ok)
	}

	touch(t, dir, "lvmh_2023FY_maison_details_standardized.xlsx")

	path, ok = ResolveDetailsFile(dir, "2023")
	if !ok || filepath.Base(path) != "lvmh_2023FY_maison_details_standardized.xlsx" {
		t.Fatalf("path = %s, ok = %v", path, ok)
	}
}
