package text

import (
	"math"
	"sort"
)

// TFIDF 是 TF-IDF 向量化器。
//
// 权重与常见实现保持一致：tf 为词频计数，idf = ln((1+N)/(1+df)) + 1，
// 最终向量做 L2 归一化；词表按字典序排列，保证向量各维含义确定。
type TFIDF struct {
	// Tokenizer 为空时使用 Tokenize
	Tokenizer func(string) []string

	vocabulary []string
	index      map[string]int
	idf        []float64
}

// NewTFIDF 创建使用默认分词的向量化器。
func NewTFIDF() *TFIDF {
	return &TFIDF{Tokenizer: Tokenize}
}

// Vocabulary 返回 Fit 之后的词表（字典序）。
func (v *TFIDF) Vocabulary() []string {
	return append([]string(nil), v.vocabulary...)
}

// Fit 从文档集合学习词表与 idf。
func (v *TFIDF) Fit(docs []string) {
	tokenize := v.tokenizer()
	df := make(map[string]int)
	for _, doc := range docs {
		uniq := make(map[string]struct{})
		for _, tok := range tokenize(doc) {
			uniq[tok] = struct{}{}
		}
		for tok := range uniq {
			df[tok]++
		}
	}

	v.vocabulary = make([]string, 0, len(df))
	for tok := range df {
		v.vocabulary = append(v.vocabulary, tok)
	}
	sort.Strings(v.vocabulary)

	n := float64(len(docs))
	v.index = make(map[string]int, len(v.vocabulary))
	v.idf = make([]float64, len(v.vocabulary))
	for i, tok := range v.vocabulary {
		v.index[tok] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[tok]))) + 1
	}
}

// Transform 把文档转换为定长向量，未见过的词被忽略。
func (v *TFIDF) Transform(docs []string) [][]float64 {
	tokenize := v.tokenizer()
	out := make([][]float64, len(docs))
	for d, doc := range docs {
		vec := make([]float64, len(v.vocabulary))
		for _, tok := range tokenize(doc) {
			if i, ok := v.index[tok]; ok {
				vec[i]++
			}
		}
		var norm float64
		for i := range vec {
			vec[i] *= v.idf[i]
			norm += vec[i] * vec[i]
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for i := range vec {
				vec[i] /= norm
			}
		}
		out[d] = vec
	}
	return out
}

// FitTransform 等价于 Fit 后 Transform。
func (v *TFIDF) FitTransform(docs []string) [][]float64 {
	v.Fit(docs)
	return v.Transform(docs)
}

func (v *TFIDF) tokenizer() func(string) []string {
	if v.Tokenizer != nil {
		return v.Tokenizer
	}
	return Tokenize
}
