package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rushteam/artrec/core"
)

func TestLoadSettings_Defaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	s, err := LoadSettings("")
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	want := DefaultSettings()
	if s.Recommend != want.Recommend || s.Store != want.Store || s.Logging != want.Logging || s.Data != want.Data {
		t.Errorf("settings = %+v, want %+v", s, want)
	}
	if s.DefaultSimilarPerArticle() != 2 {
		t.Errorf("DefaultSimilarPerArticle = %d", s.DefaultSimilarPerArticle())
	}
}

func TestLoadSettings_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artrec.yaml")
	content := `
data:
  interactions: /srv/interactions.csv
recommend:
  top_n: 5
  user_recs: 7
logging:
  level: debug
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ARTREC_RECOMMEND_TOP_N", "3")
	t.Setenv("ARTREC_STORE_POPULAR_KEY", "custom:popular")

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.Recommend.TopN != 3 {
		t.Errorf("TopN = %d, want env override 3", s.Recommend.TopN)
	}
	if s.Recommend.UserRecs != 7 || s.Data.Interactions != "/srv/interactions.csv" {
		t.Errorf("file values not applied: %+v", s)
	}
	if s.Recommend.ContentRecs != 10 || s.Data.Articles != "data/articles_community.csv" {
		t.Errorf("defaults lost: %+v", s)
	}
	if s.Store.PopularKey != "custom:popular" || s.Logging.Level != "debug" {
		t.Errorf("unexpected: %+v", s)
	}
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"bad backend", func(s *Settings) { s.Store.Backend = "etcd" }},
		{"redis without addr", func(s *Settings) { s.Store.Backend = "redis"; s.Store.RedisAddr = "" }},
		{"negative top_n", func(s *Settings) { s.Recommend.TopN = -1 }},
		{"bad level", func(s *Settings) { s.Logging.Level = "loud" }},
		{"missing articles", func(s *Settings) { s.Data.Articles = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(s)
			if err := s.Validate(); !core.IsInvalidInput(err) {
				t.Errorf("Validate err = %v, want INVALID_INPUT", err)
			}
		})
	}
	if err := DefaultSettings().Validate(); err != nil {
		t.Errorf("defaults should be valid: %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := map[string]string{
		"ARTREC_RECOMMEND_TOP_N":               "recommend.top_n",
		"ARTREC_STORE_REDIS_ADDR":              "store.redis_addr",
		"ARTREC_LOGGING_LEVEL":                 "logging.level",
		"ARTREC_CONFIG":                        "config",
		"ARTREC_RECOMMEND_SIMILAR_PER_ARTICLE": "recommend.similar_per_article",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}
