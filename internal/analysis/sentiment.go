package analysis

import (
	"Threadpulse/internal/model"
	"math"
)

// sentimentAlpha 归一化常数，词量小时避免分数饱和
const sentimentAlpha = 15.0

// SentimentScorer 基于词典的情感打分器。
// 纯本地、确定性；分数落在 [-1, 1]，标签阈值来自配置而非算法。
type SentimentScorer struct {
	PositiveThreshold float64
	NegativeThreshold float64
}

func NewSentimentScorer(positiveThreshold, negativeThreshold float64) *SentimentScorer {
	return &SentimentScorer{
		PositiveThreshold: positiveThreshold,
		NegativeThreshold: negativeThreshold,
	}
}

// Score 对已分词的贴文计算极性分数。
// 命中词典的词元计 ±1，前一词元是否定词则翻转，最后做有界归一化。
func (s *SentimentScorer) Score(tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}

	raw := 0.0
	for i, t := range tokens {
		v := 0.0
		if _, ok := positiveLexicon[t]; ok {
			v = 1
		} else if _, ok := negativeLexicon[t]; ok {
			v = -1
		}
		if v == 0 {
			continue
		}
		if i > 0 {
			if _, ok := negators[tokens[i-1]]; ok {
				v = -v
			}
		}
		raw += v
	}

	return raw / math.Sqrt(raw*raw+sentimentAlpha)
}

// Label 固定阈值三分类，默认 ±0.1
func (s *SentimentScorer) Label(score float64) string {
	switch {
	case score > s.PositiveThreshold:
		return model.SentimentPositive
	case score < s.NegativeThreshold:
		return model.SentimentNegative
	default:
		return model.SentimentNeutral
	}
}

// Annotate 填充贴文的情感分数与标签
func (s *SentimentScorer) Annotate(p *NormalizedPost) {
	p.SentimentScore = s.Score(p.Tokens)
	p.SentimentLabel = s.Label(p.SentimentScore)
}

var negators = toSet([]string{
	"不", "没", "没有", "别", "无", "非", "未", "不要", "不会", "不能",
	"not", "no", "never", "without", "hardly",
})

var positiveLexicon = toSet([]string{
	"好", "棒", "赞", "喜欢", "爱", "开心", "高兴", "快乐", "幸福", "优秀", "精彩", "漂亮", "美",
	"厉害", "强", "满意", "惊艳", "推荐", "支持", "感谢", "谢谢", "期待", "成功", "顺利", "进步",
	"有趣", "好玩", "好看", "好吃", "给力", "优质", "值得", "温暖", "感动", "可爱", "完美", "享受",
	"good", "great", "awesome", "amazing", "excellent", "love", "happy", "best", "nice",
	"wonderful", "fantastic", "cool", "perfect", "beautiful", "enjoy", "win", "success",
})

var negativeLexicon = toSet([]string{
	"差", "烂", "糟", "糟糕", "讨厌", "恨", "难过", "伤心", "失望", "生气", "愤怒", "垃圾", "恶心",
	"崩溃", "无聊", "麻烦", "问题", "担心", "害怕", "恐怖", "可怕", "难看", "难吃", "骗", "假",
	"失败", "亏", "跌", "贵", "慢", "卡", "难受", "痛苦", "遗憾", "错", "坏",
	"bad", "terrible", "awful", "horrible", "hate", "sad", "angry", "worst", "fail",
	"broken", "boring", "annoying", "disappointed", "wrong", "poor", "ugly", "scam",
})

func toSet(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
