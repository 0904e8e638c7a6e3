package analysis

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// TrendPoint 一个 (关键词, 自然日) 桶的聚合结果
type TrendPoint struct {
	Keyword           string
	Date              time.Time
	PostCount         int
	TotalInteractions int
	AverageSentiment  float64
	MomentumScore     float64
}

type trendBucket struct {
	postCount    int
	interactions int
	sentiments   []float64
}

// AggregateTrends 把 (贴文, 关键词) 对按关键词与 UTC 自然日分桶聚合。
// 每次全量重算，重复运行对同一天收敛到同一结果，不做增量累加。
//
// 动量取观察窗口内日贴文数序列的端点斜率 (v[n-1]-v[0])/(n-1)，
// 单日序列动量为 0。刻意不用回归拟合：便宜、确定，但对端点噪声敏感。
func AggregateTrends(posts []*NormalizedPost) []TrendPoint {
	type key struct {
		keyword string
		date    time.Time
	}

	buckets := make(map[key]*trendBucket)
	keywords := make([]string, 0)
	seenKeyword := make(map[string]struct{})

	for _, p := range posts {
		day := midnightUTC(p.Timestamp)
		seenInPost := make(map[string]struct{}, len(p.Keywords))
		for _, kw := range p.Keywords {
			// 同一贴文同一关键词只计一次
			if _, dup := seenInPost[kw]; dup {
				continue
			}
			seenInPost[kw] = struct{}{}

			k := key{keyword: kw, date: day}
			b, ok := buckets[k]
			if !ok {
				b = &trendBucket{}
				buckets[k] = b
			}
			b.postCount++
			b.interactions += p.TotalInteractions
			b.sentiments = append(b.sentiments, p.SentimentScore)

			if _, ok := seenKeyword[kw]; !ok {
				seenKeyword[kw] = struct{}{}
				keywords = append(keywords, kw)
			}
		}
	}

	sort.Strings(keywords)

	points := make([]TrendPoint, 0, len(buckets))
	for _, kw := range keywords {
		var days []time.Time
		for k := range buckets {
			if k.keyword == kw {
				days = append(days, k.date)
			}
		}
		sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

		momentum := 0.0
		if len(days) > 1 {
			first := buckets[key{kw, days[0]}].postCount
			last := buckets[key{kw, days[len(days)-1]}].postCount
			momentum = float64(last-first) / float64(len(days)-1)
		}

		for _, day := range days {
			b := buckets[key{kw, day}]
			points = append(points, TrendPoint{
				Keyword:           kw,
				Date:              day,
				PostCount:         b.postCount,
				TotalInteractions: b.interactions,
				AverageSentiment:  stat.Mean(b.sentiments, nil),
				MomentumScore:     momentum,
			})
		}
	}

	return points
}

// KeywordMomentum 提取关键词到动量分数的映射，供主题趋势分使用
func KeywordMomentum(points []TrendPoint) map[string]float64 {
	m := make(map[string]float64, len(points))
	for _, p := range points {
		m[p.Keyword] = p.MomentumScore
	}
	return m
}

func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
