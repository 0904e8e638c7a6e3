package consts

const (
	// RiverFeedMaxKeywords 河流图单次返回的关键词上限
	RiverFeedMaxKeywords = 20
	// BubbleFeedDefaultLimit 气泡图默认返回的贴文数量
	BubbleFeedDefaultLimit = 100
)
