package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

const interactionsCSV = `article_id,title,email
10,data wrangling at slack,a@x.com
20,data pipelines,a@x.com
10,data wrangling at slack,b@x.com
30,recipes,b@x.com
10,data wrangling at slack,c@x.com
`

const articlesCSV = `doc_body,doc_description,doc_full_name,doc_status,article_id
,data wrangling pipelines,Data Wrangling at Slack,Live,10
,data pipelines at scale,Data Pipelines,Live,20
,cooking recipes,Recipes,Live,30
`

const pipelineYAML = `pipeline:
  name: demo
  nodes:
    - type: recall.fanout
      config:
        sources:
          - type: user_user
          - type: popular
    - type: filter
      config:
        filters:
          - type: seen
    - type: rerank.topn
      config:
        n: 5
`

func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"interactions.csv": interactionsCSV,
		"articles.csv":     articlesCSV,
		"pipeline.yaml":    pipelineYAML,
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	cfg := "data:\n" +
		"  interactions: " + filepath.Join(dir, "interactions.csv") + "\n" +
		"  articles: " + filepath.Join(dir, "articles.csv") + "\n" +
		"logging:\n  level: disabled\n" +
		"pipeline:\n  path: " + filepath.Join(dir, "pipeline.yaml") + "\n"
	path := filepath.Join(dir, "artrec.yaml")
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestRun_JSON(t *testing.T) {
	cfgPath := writeFixtures(t)
	var out bytes.Buffer
	opts := options{configPath: cfgPath, userID: 1, article: "Data Wrangling at Slack", asJSON: true}
	if err := run(context.Background(), opts, &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	var r Report
	if err := json.Unmarshal(out.Bytes(), &r); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out.String())
	}
	if len(r.TopArticles) != 3 || r.TopArticles[0].ArticleID != 10 {
		t.Fatalf("top articles = %+v", r.TopArticles)
	}
	if len(r.UserUserRecs) != 1 || r.UserUserRecs[0].ArticleID != 30 {
		t.Fatalf("user-user recs = %+v", r.UserUserRecs)
	}
	for _, rec := range r.ContentRecs {
		if rec.ArticleID == 10 || rec.ArticleID == 20 {
			t.Fatalf("content recs contain seen article %d", rec.ArticleID)
		}
	}
	if len(r.SimilarArticles) == 0 || r.SimilarArticles[0].ArticleID != 20 {
		t.Fatalf("similar articles = %+v", r.SimilarArticles)
	}
	if len(r.Pipeline) == 0 {
		t.Fatal("expected pipeline results")
	}
	for _, it := range r.Pipeline {
		if it.ArticleID == 10 || it.ArticleID == 20 {
			t.Fatalf("pipeline returned seen article %d", it.ArticleID)
		}
	}
}

func TestRun_Text(t *testing.T) {
	cfgPath := writeFixtures(t)
	var out bytes.Buffer
	opts := options{configPath: cfgPath, userID: 1, article: "10"}
	if err := run(context.Background(), opts, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{
		"The top 3 popular articles are:",
		"recommended articles for user 1 are:",
		"Data Pipelines",
		"Pipeline results for user 1:",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRun_UnknownUser(t *testing.T) {
	cfgPath := writeFixtures(t)
	var out bytes.Buffer
	opts := options{configPath: cfgPath, userID: 99, article: "Recipes"}
	err := run(context.Background(), opts, &out)
	if err == nil || !strings.Contains(err.Error(), "unknown user 99") {
		t.Fatalf("err = %v, want unknown user", err)
	}
}

func TestArticleRef(t *testing.T) {
	if id, ok := articleRef("1430").ID(); !ok || id != 1430 {
		t.Errorf("articleRef(1430) = %d, %v", id, ok)
	}
	if id, ok := articleRef("1430.0").ID(); !ok || id != 1430 {
		t.Errorf("articleRef(1430.0) = %d, %v", id, ok)
	}
	if title, ok := articleRef("Data Wrangling at Slack").Title(); !ok || title != "Data Wrangling at Slack" {
		t.Errorf("articleRef(title) = %q, %v", title, ok)
	}
}
