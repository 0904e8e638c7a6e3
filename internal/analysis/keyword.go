package analysis

import (
	"Threadpulse/internal/pkg/util"
	"regexp"
	"sort"
	"strings"

	"github.com/go-ego/gse"
	"github.com/liuzl/gocc"
)

// wordRegex 只保留中英文词元，过滤表情、标点与混合符号
var wordRegex = regexp.MustCompile(`^[a-zA-Z\x{4e00}-\x{9fff}]+$`)

// KeywordExtractor 负责分词与每篇贴文的候选关键词抽取。
// 纯本地、确定性：同样的文本与停用词集永远产出同样的结果。
type KeywordExtractor struct {
	seg         gse.Segmenter
	t2s         *gocc.OpenCC
	stopwords   map[string]struct{}
	maxKeywords int
}

// NewKeywordExtractor 加载分词词典与繁转简转换器。
// gocc 词典缺失时退化为不转换，与整体"坏数据不致命"的策略一致。
func NewKeywordExtractor(maxKeywords int, extraStopwords []string) (*KeywordExtractor, error) {
	e := &KeywordExtractor{
		stopwords:   make(map[string]struct{}, len(defaultStopwords)+len(extraStopwords)),
		maxKeywords: maxKeywords,
	}

	if err := e.seg.LoadDict(); err != nil {
		return nil, err
	}

	if t2s, err := gocc.New("t2s"); err == nil {
		e.t2s = t2s
	}

	for _, w := range defaultStopwords {
		e.stopwords[w] = struct{}{}
	}
	for _, w := range extraStopwords {
		e.stopwords[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}

	return e, nil
}

// Annotate 填充贴文的词元、内容长度与候选关键词
func (e *KeywordExtractor) Annotate(p *NormalizedPost) {
	p.Tokens = e.Tokenize(p.Content)
	p.ContentLength = len(p.Tokens)
	p.Keywords = e.topKeywords(p)
}

// Tokenize 繁转简 -> 分词 -> 停用词与低信息词过滤
func (e *KeywordExtractor) Tokenize(content string) []string {
	if strings.TrimSpace(content) == "" {
		return nil
	}

	text := strings.ToLower(content)
	if e.t2s != nil {
		if converted, err := e.t2s.Convert(text); err == nil {
			text = converted
		}
	}

	words := e.seg.Cut(text, true)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if len([]rune(w)) < 2 {
			continue
		}
		if _, ok := e.stopwords[w]; ok {
			continue
		}
		if !wordRegex.MatchString(w) {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// topKeywords 按词频降序取前 N 个词元；话题标签视为最强信号排在最前。
// 同频词按首次出现顺序排序，保证结果可复现。
func (e *KeywordExtractor) topKeywords(p *NormalizedPost) []string {
	freq := make(map[string]int, len(p.Tokens))
	first := make(map[string]int, len(p.Tokens))
	uniq := make([]string, 0, len(p.Tokens))

	for _, tag := range util.ExtractTags(p.Content) {
		tag = strings.ToLower(tag)
		if e.t2s != nil {
			if converted, err := e.t2s.Convert(tag); err == nil {
				tag = converted
			}
		}
		if !wordRegex.MatchString(tag) {
			continue
		}
		if _, ok := first[tag]; !ok {
			first[tag] = len(first) - len(p.Tokens) // 标签排序永远先于普通词元
			uniq = append(uniq, tag)
		}
		freq[tag] += 2
	}

	for i, t := range p.Tokens {
		if _, ok := first[t]; !ok {
			first[t] = i
			uniq = append(uniq, t)
		}
		freq[t]++
	}

	sort.SliceStable(uniq, func(i, j int) bool {
		if freq[uniq[i]] != freq[uniq[j]] {
			return freq[uniq[i]] > freq[uniq[j]]
		}
		return first[uniq[i]] < first[uniq[j]]
	})

	if len(uniq) > e.maxKeywords {
		uniq = uniq[:e.maxKeywords]
	}
	return uniq
}
