// Package text 把文章描述转换为定长的 TF-IDF 特征向量，供相似度索引使用。
//
// 预处理流程：小写 → 分词 → 去停用词 → 词形还原（golem 英文词典）→ TF-IDF 加权 → L2 归一化。
package text

import (
	"regexp"
	"strings"
	"sync"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

// 至少两个字母/数字组成的词
var tokenRegex = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize 把文本切成小写词，并去掉停用词、做词形还原。
func Tokenize(s string) []string {
	raw := tokenRegex.FindAllString(strings.ToLower(s), -1)
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		if _, stop := stopWords[tok]; stop {
			continue
		}
		out = append(out, Lemmatize(tok))
	}
	return out
}

// lemmatizer 懒加载英文词典，进程内只加载一次。
var lemmatizer = sync.OnceValues(func() (*golem.Lemmatizer, error) {
	return golem.New(en.New())
})

// Lemmatize 用英文词典把词还原为词元（例如 libraries -> library），
// 词典中没有的词或词典加载失败时原样返回。
func Lemmatize(w string) string {
	l, err := lemmatizer()
	if err != nil {
		return w
	}
	return l.Lemma(w)
}

// stopWords 取自 NLTK 英文停用词表；单字母词与带撇号的形式不会被 Tokenize 切出，已省略。
var stopWords = func() map[string]struct{} {
	words := strings.Fields(`
i me my myself we our ours ourselves you your yours yourself yourselves he him his himself
she her hers herself it its itself they them their theirs themselves what which who whom
this that these those am is are was were be been being have has had having do does did
doing a an the and but if or because as until while of at by for with about against
between into through during before after above below to from up down in out on off over
under again further then once here there when where why how all any both each few more
most other some such no nor not only own same so than too very can will just don should
now ll re ve ain aren couldn didn doesn hadn hasn haven isn ma mightn mustn needn shan
shouldn wasn weren won wouldn`)
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()
