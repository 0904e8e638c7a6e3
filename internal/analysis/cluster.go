package analysis

import (
	"Threadpulse/internal/model"
	"math"
	"math/rand"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
)

const (
	maxKMeansIterations = 100
	topicKeywordCount   = 10
)

// ClusterConfig 聚类参数，随机种子显式传入保证可复现
type ClusterConfig struct {
	K    int
	Seed int64
}

// TopicResult 单个主题的摘要统计
type TopicResult struct {
	TopicID            int
	TopicName          string
	Keywords           []string
	PostCount          int
	TotalInteractions  int
	AverageHeatDensity float64
	DominantSentiment  string
	TrendingScore      float64
}

// TopicAssignment 贴文到主题的硬分配，relevance 恒为 1.0
type TopicAssignment struct {
	PostID         string
	TopicID        int
	RelevanceScore float64
}

// ClusterTopics 对关键词非空的贴文做 TF-IDF 向量化 + K-means 聚类。
// 退化输入策略：文档数不足 k 时收缩 k；零篇有效文档时返回空结果而非报错。
func ClusterTopics(
	posts []*NormalizedPost,
	heats map[string]HeatResult,
	momentum map[string]float64,
	cfg ClusterConfig,
) ([]TopicResult, []TopicAssignment) {
	docs := make([]*NormalizedPost, 0, len(posts))
	for _, p := range posts {
		if len(p.Keywords) > 0 {
			docs = append(docs, p)
		}
	}
	if len(docs) == 0 {
		return nil, nil
	}

	vocab, vectors := buildTFIDF(docs)

	k := cfg.K
	if k > len(docs) {
		k = len(docs)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	labels, centroids := kmeans(vectors, k, rng)

	totalInteractions := 0
	for _, d := range docs {
		totalInteractions += d.TotalInteractions
	}

	topics := make([]TopicResult, 0, k)
	assignments := make([]TopicAssignment, 0, len(docs))

	for c := 0; c < k; c++ {
		var members []*NormalizedPost
		for i, label := range labels {
			if label == c {
				members = append(members, docs[i])
			}
		}
		if len(members) == 0 {
			continue
		}

		topicID := len(topics) + 1
		keywords := centroidKeywords(centroids[c], vocab)

		clusterInteractions := 0
		heatSum := 0.0
		sentimentVotes := map[string]int{}
		for _, m := range members {
			clusterInteractions += m.TotalInteractions
			if h, ok := heats[m.PostID]; ok {
				heatSum += h.HeatDensity
			}
			sentimentVotes[m.SentimentLabel]++
			assignments = append(assignments, TopicAssignment{
				PostID:         m.PostID,
				TopicID:        topicID,
				RelevanceScore: 1.0,
			})
		}

		topics = append(topics, TopicResult{
			TopicID:            topicID,
			TopicName:          topicName(keywords),
			Keywords:           keywords,
			PostCount:          len(members),
			TotalInteractions:  clusterInteractions,
			AverageHeatDensity: heatSum / float64(len(members)),
			DominantSentiment:  dominantSentiment(sentimentVotes),
			TrendingScore:      trendingScore(keywords, momentum, clusterInteractions, totalInteractions),
		})
	}

	return topics, assignments
}

// buildTFIDF 以各贴文的候选关键词为词表构建 L2 归一化的 TF-IDF 向量。
// 词表按文档内出现顺序编号，保证同输入同输出。
func buildTFIDF(docs []*NormalizedPost) ([]string, [][]float64) {
	index := make(map[string]int)
	vocab := make([]string, 0)
	df := make(map[string]int)

	for _, d := range docs {
		for _, kw := range d.Keywords {
			if _, ok := index[kw]; !ok {
				index[kw] = len(vocab)
				vocab = append(vocab, kw)
			}
		}
		seen := make(map[string]struct{}, len(d.Keywords))
		for _, kw := range d.Keywords {
			if _, dup := seen[kw]; !dup {
				seen[kw] = struct{}{}
				df[kw]++
			}
		}
	}

	n := float64(len(docs))
	idf := make([]float64, len(vocab))
	for kw, i := range index {
		idf[i] = math.Log((1+n)/(1+float64(df[kw]))) + 1
	}

	vectors := make([][]float64, len(docs))
	for di, d := range docs {
		vec := make([]float64, len(vocab))
		for _, kw := range d.Keywords {
			vec[index[kw]] += 1 / float64(len(d.Keywords))
		}
		for i := range vec {
			vec[i] *= idf[i]
		}
		if norm := floats.Norm(vec, 2); norm > 0 {
			floats.Scale(1/norm, vec)
		}
		vectors[di] = vec
	}

	return vocab, vectors
}

// kmeans 经典 Lloyd 迭代，空簇重新随机播种
func kmeans(vectors [][]float64, k int, rng *rand.Rand) ([]int, [][]float64) {
	dim := len(vectors[0])

	centroids := make([][]float64, k)
	for i, di := range rng.Perm(len(vectors))[:k] {
		centroids[i] = append([]float64(nil), vectors[di]...)
	}

	labels := make([]int, len(vectors))
	for iter := 0; iter < maxKMeansIterations; iter++ {
		changed := false
		for i, vec := range vectors {
			best, bestDist := 0, math.MaxFloat64
			for c, centroid := range centroids {
				if d := floats.Distance(vec, centroid, 2); d < bestDist {
					best, bestDist = c, d
				}
			}
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		counts := make([]int, k)
		next := make([][]float64, k)
		for c := range next {
			next[c] = make([]float64, dim)
		}
		for i, vec := range vectors {
			floats.Add(next[labels[i]], vec)
			counts[labels[i]]++
		}
		for c := range next {
			if counts[c] == 0 {
				next[c] = append([]float64(nil), vectors[rng.Intn(len(vectors))]...)
				continue
			}
			floats.Scale(1/float64(counts[c]), next[c])
		}
		centroids = next
	}

	return labels, centroids
}

// centroidKeywords 取质心权重最高的词作为主题关键词，代表性降序
func centroidKeywords(centroid []float64, vocab []string) []string {
	type weighted struct {
		index  int
		weight float64
	}
	ws := make([]weighted, 0, len(centroid))
	for i, w := range centroid {
		if w > 0 {
			ws = append(ws, weighted{index: i, weight: w})
		}
	}
	sort.SliceStable(ws, func(i, j int) bool {
		if ws[i].weight != ws[j].weight {
			return ws[i].weight > ws[j].weight
		}
		return ws[i].index < ws[j].index
	})

	if len(ws) > topicKeywordCount {
		ws = ws[:topicKeywordCount]
	}
	keywords := make([]string, len(ws))
	for i, w := range ws {
		keywords[i] = vocab[w.index]
	}
	return keywords
}

// dominantSentiment 成员多数票，平票偏向 neutral
func dominantSentiment(votes map[string]int) string {
	pos, neg, neu := votes[model.SentimentPositive], votes[model.SentimentNegative], votes[model.SentimentNeutral]
	if pos > neg && pos > neu {
		return model.SentimentPositive
	}
	if neg > pos && neg > neu {
		return model.SentimentNegative
	}
	return model.SentimentNeutral
}

// trendingScore 组合主题关键词的平均动量与互动占比，压到 [0,1]
func trendingScore(keywords []string, momentum map[string]float64, clusterInteractions, totalInteractions int) float64 {
	avgMomentum := 0.0
	if len(keywords) > 0 {
		for _, kw := range keywords {
			avgMomentum += momentum[kw]
		}
		avgMomentum /= float64(len(keywords))
	}
	if avgMomentum < 0 {
		avgMomentum = 0
	}
	momentumNorm := avgMomentum / (1 + avgMomentum)

	share := 0.0
	if totalInteractions > 0 {
		share = float64(clusterInteractions) / float64(totalInteractions)
	}

	return clamp01(0.6*momentumNorm + 0.4*share)
}

var topicCategories = []struct {
	label    string
	keywords []string
}{
	{"科技趋势", []string{"ai", "人工智能", "科技", "技术", "软件", "程序", "数据", "模型"}},
	{"财经动态", []string{"投资", "股票", "金融", "经济", "市场", "价格", "利率"}},
	{"社会议题", []string{"社会", "政治", "新闻", "事件", "讨论", "观点"}},
	{"生活分享", []string{"生活", "健康", "美食", "旅行", "娱乐", "电影", "音乐"}},
}

// topicName 由首位关键词推导展示用主题名
func topicName(keywords []string) string {
	if len(keywords) == 0 {
		return "未知主题"
	}
	primary := keywords[0]
	for _, cat := range topicCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(primary, kw) {
				return cat.label + " - " + primary
			}
		}
	}
	return "热门话题 - " + primary
}
