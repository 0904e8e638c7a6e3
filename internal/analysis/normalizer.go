package analysis

import (
	"Threadpulse/internal/model"
	"context"
	log "log/slog"
	"sort"
	"time"
)

// NormalizedPost 原始贴文的单次运行视图，附带派生特征。
// 管道各阶段在内存中逐步填充，不落库。
type NormalizedPost struct {
	PostID            string
	Username          string
	Content           string
	PostURL           string
	Timestamp         time.Time
	Likes             int
	Replies           int
	Reposts           int
	TotalInteractions int
	HoursSincePost    float64
	ContentLength     int
	Tokens            []string
	Keywords          []string
	SentimentScore    float64
	SentimentLabel    string
}

// Normalize 按 post_id 去重（保留最近抓取的一份），过滤结构非法的行，
// 计算发布至今的小时数（时钟漂移取 0），按发布时间倒序返回。
// 单行数据问题只计数、不致命。
func Normalize(ctx context.Context, raw []*model.RawPost, runTime time.Time) ([]*NormalizedPost, int) {
	skipped := 0
	latest := make(map[string]*model.RawPost, len(raw))
	order := make([]string, 0, len(raw))

	for _, p := range raw {
		if p.PostID == "" || p.Timestamp.IsZero() {
			skipped++
			log.WarnContext(ctx, "跳过非法贴文行", "post_id", p.PostID, "username", p.Username)
			continue
		}
		exist, ok := latest[p.PostID]
		if !ok {
			latest[p.PostID] = p
			order = append(order, p.PostID)
			continue
		}
		if p.ScrapedAt.After(exist.ScrapedAt) {
			latest[p.PostID] = p
		}
	}

	posts := make([]*NormalizedPost, 0, len(latest))
	for _, id := range order {
		p := latest[id]
		hours := runTime.Sub(p.Timestamp).Hours()
		if hours < 0 {
			hours = 0
		}
		posts = append(posts, &NormalizedPost{
			PostID:            p.PostID,
			Username:          p.Username,
			Content:           p.Content,
			PostURL:           p.PostURL,
			Timestamp:         p.Timestamp,
			Likes:             p.Likes,
			Replies:           p.Replies,
			Reposts:           p.Reposts,
			TotalInteractions: p.Likes + p.Replies + p.Reposts,
			HoursSincePost:    hours,
			SentimentLabel:    model.SentimentNeutral,
		})
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Timestamp.After(posts[j].Timestamp)
	})

	return posts, skipped
}
