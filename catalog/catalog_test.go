package catalog

import (
	"reflect"
	"strings"
	"testing"

	"github.com/rushteam/artrec/core"
)

func testCatalog() *Catalog {
	return New([]Record{
		{ArticleID: 1, Title: "Data Wrangling at Slack", Description: "slack data"},
		{ArticleID: 2, Title: "Intro to Spark", Description: "spark"},
		{ArticleID: 1, Title: "duplicate", Description: "ignored"},
		{ArticleID: 3, Title: "Intro to Spark", Description: "spark again"},
	})
}

func TestNew_DedupKeepsFirst(t *testing.T) {
	c := testCatalog()
	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", c.Len())
	}
	if got, want := c.IDs(), []int64{1, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
	if title, _ := c.Title(1); title != "Data Wrangling at Slack" {
		t.Errorf("Title(1) = %q, want first occurrence", title)
	}
}

func TestResolve(t *testing.T) {
	c := testCatalog()

	tests := []struct {
		name    string
		ref     Ref
		want    int64
		checkFn func(error) bool
	}{
		{name: "by id", ref: ByID(2), want: 2},
		{name: "by unknown id passes through", ref: ByID(42), want: 42},
		{name: "by title", ref: ByTitle("Data Wrangling at Slack"), want: 1},
		{name: "ambiguous title takes first", ref: ByTitle("Intro to Spark"), want: 2},
		{name: "unknown title", ref: ByTitle("nope"), checkFn: core.IsArticleNotFound},
		{name: "zero ref", ref: Ref{}, checkFn: core.IsInvalidArticleRef},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Resolve(tt.ref)
			if tt.checkFn != nil {
				if !tt.checkFn(err) {
					t.Fatalf("Resolve() error = %v, unexpected kind", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRefFromAny(t *testing.T) {
	if id, ok := RefFromAny(7).ID(); !ok || id != 7 {
		t.Errorf("int ref = %d,%v", id, ok)
	}
	if id, ok := RefFromAny(float64(8)).ID(); !ok || id != 8 {
		t.Errorf("float ref = %d,%v", id, ok)
	}
	if title, ok := RefFromAny("x").Title(); !ok || title != "x" {
		t.Errorf("string ref = %q,%v", title, ok)
	}
	if RefFromAny(1.5).IsValid() || RefFromAny([]int{1}).IsValid() {
		t.Errorf("unsupported values must give invalid ref")
	}
}

func TestLoadCSV(t *testing.T) {
	data := `doc_body,doc_description,doc_full_name,doc_status,article_id
"body","Detect bad readings in real time","Detect Malfunctioning IoT Sensors",Live,0
"body","See the forest","Communicating data science",Live,1
"body","dup","Dup",Live,0
`
	c, err := LoadCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	r, _ := c.Get(0)
	if r.Title != "Detect Malfunctioning IoT Sensors" || r.Description != "Detect bad readings in real time" {
		t.Errorf("record = %+v", r)
	}
}
