package text

import (
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestTokenize(t *testing.T) {
	got := Tokenize("The Articles, and the Libraries we use!")
	want := []string{"article", "library", "use"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestLemmatize(t *testing.T) {
	tests := map[string]string{
		"libraries": "library",
		"articles":  "article",
		"boxes":     "box",
		"models":    "model",
		"model":     "model",
		"xqzvbw":    "xqzvbw",
	}
	for in, want := range tests {
		if got := Lemmatize(in); got != want {
			t.Errorf("Lemmatize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTFIDF_FitTransform(t *testing.T) {
	docs := []string{
		"spark streaming",
		"spark sql",
		"",
	}
	v := NewTFIDF()
	v.Tokenizer = strings.Fields
	vecs := v.FitTransform(docs)

	if got, want := v.Vocabulary(), []string{"spark", "sql", "streaming"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Vocabulary() = %v, want %v", got, want)
	}
	for i, vec := range vecs[:2] {
		var norm float64
		for _, x := range vec {
			norm += x * x
		}
		if math.Abs(norm-1) > 1e-12 {
			t.Errorf("doc %d not L2-normalized: %v", i, norm)
		}
	}
	for _, x := range vecs[2] {
		if x != 0 {
			t.Errorf("empty doc should produce a zero vector, got %v", vecs[2])
		}
	}
	// spark 出现在两篇文档中，idf 小于只出现一次的 streaming
	if !(vecs[0][0] < vecs[0][2]) {
		t.Errorf("expected common term to weigh less: %v", vecs[0])
	}
}
