package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	c := Default()
	if c.Addr != "127.0.0.1:8080" {
		t.Fatalf("Addr: got %q", c.Addr)
	}
	if c.JikanBaseURL != "https://api.jikan.moe/v4/" {
		t.Fatalf("JikanBaseURL: got %q", c.JikanBaseURL)
	}
	if c.JikanTimeout != 0 {
		t.Fatalf("JikanTimeout: want none, got %s", c.JikanTimeout)
	}
	if c.RotationInterval != 7*time.Second {
		t.Fatalf("RotationInterval: want 7s, got %s", c.RotationInterval)
	}
	if c.HeroLimit != 5 || c.SynopsisLimit != 200 || c.ResultLimit != 24 {
		t.Fatalf("limits: got hero=%d synopsis=%d results=%d", c.HeroLimit, c.SynopsisLimit, c.ResultLimit)
	}
	if !c.EllipsisAlways {
		t.Fatalf("EllipsisAlways: want true")
	}
	if c.CarouselWidth != 1200 {
		t.Fatalf("CarouselWidth: want 1200, got %v", c.CarouselWidth)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SHOWCASE_ADDR", ":9090")
	t.Setenv("SHOWCASE_JIKAN_BASE_URL", "http://localhost:4000/v4/")
	t.Setenv("SHOWCASE_HERO_ROTATION_INTERVAL", "3s")
	t.Setenv("SHOWCASE_HERO_ELLIPSIS_ALWAYS", "false")

	c, err := Load(New(), "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Addr != ":9090" || c.JikanBaseURL != "http://localhost:4000/v4/" {
		t.Fatalf("env overrides: got addr=%q base=%q", c.Addr, c.JikanBaseURL)
	}
	if c.RotationInterval != 3*time.Second {
		t.Fatalf("RotationInterval: want 3s, got %s", c.RotationInterval)
	}
	if c.EllipsisAlways {
		t.Fatalf("EllipsisAlways: want false from env")
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "showcase.toml")
	if err := os.WriteFile(path, []byte("[hero]\nlimit = 8\n\n[catalog]\naffiliate_id = \"partner\"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c, err := Load(New(), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.HeroLimit != 8 || c.AffiliateID != "partner" {
		t.Fatalf("file values: got hero=%d affiliate=%q", c.HeroLimit, c.AffiliateID)
	}
	if c.SynopsisLimit != 200 {
		t.Fatalf("SynopsisLimit: default lost, got %d", c.SynopsisLimit)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("SHOWCASE_HERO_LIMIT", "0")
	_, err := Load(New(), "")
	if err == nil || !strings.Contains(err.Error(), "hero.limit") {
		t.Fatalf("want hero.limit error, got %v", err)
	}

	if _, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("want error for missing file")
	}
}

func TestEnvKeyReplacer(t *testing.T) {
	if got := EnvKeyReplacer.Replace(KeyJikanBaseURL); got != "jikan_base_url" {
		t.Fatalf("EnvKeyReplacer: got %q", got)
	}
}
