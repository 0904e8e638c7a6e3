package model

// PostTopicRelation 贴文到主题的归属桥表，硬聚类下 relevance 恒为 1.0
type PostTopicRelation struct {
	ID             uint64  `gorm:"primaryKey" json:"id"`
	RunID          string  `gorm:"type:varchar(64);not null;uniqueIndex:idx_run_post" json:"run_id"`
	PostID         string  `gorm:"type:varchar(64);not null;uniqueIndex:idx_run_post" json:"post_id"`
	TopicID        int     `gorm:"not null" json:"topic_id"`
	RelevanceScore float64 `gorm:"not null;default:1" json:"relevance_score"`
}

func (PostTopicRelation) TableName() string {
	return "post_topic_relations"
}
