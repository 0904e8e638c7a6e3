package analysis

// defaultStopwords 内置停用词：常用中文虚词（简体，分词前已繁转简）、
// 英文功能词与社交平台噪声词。可通过配置追加。
var defaultStopwords = []string{
	// 中文虚词
	"的", "了", "在", "是", "我", "有", "和", "就", "不", "人", "都", "一", "这", "上", "也", "很", "到",
	"说", "要", "去", "你", "会", "着", "没有", "看", "好", "自己", "这个", "现在", "可以", "没", "就是",
	"还", "把", "从", "给", "对", "时候", "那", "来", "因为", "什么", "那个", "他", "她", "它", "我们",
	"你们", "他们", "这样", "那样", "怎么", "为什么", "多少", "哪里", "什么时候", "怎样", "多么",
	"非常", "最", "更", "太", "特别", "真的", "确实", "当然", "或者", "但是", "然而", "所以", "因此",
	"如果", "虽然", "尽管", "不过", "而且", "另外", "此外", "总之", "首先", "其次", "最后", "另一方面",
	"一个", "一些", "大家", "觉得", "知道", "应该", "已经", "还是", "其实", "这些", "那些",
	// 英文功能词
	"the", "a", "an", "and", "or", "but", "if", "then", "than", "that", "this", "these", "those",
	"is", "are", "was", "were", "be", "been", "being", "am", "do", "does", "did", "have", "has", "had",
	"of", "to", "in", "on", "for", "with", "at", "by", "from", "as", "it", "its", "my", "your", "our",
	"his", "her", "their", "we", "you", "they", "he", "she", "me", "him", "them", "us", "so", "not",
	"no", "yes", "all", "any", "can", "will", "would", "should", "could", "just", "about", "more",
	"most", "some", "such", "only", "very", "too", "also", "there", "here", "what", "when", "where",
	"who", "how", "why", "which", "up", "out", "into", "over", "under", "again", "once",
	// 社交平台噪声
	"threads", "instagram", "meta", "facebook", "twitter",
	"like", "follow", "share", "comment", "post", "thread", "repost",
	"http", "https", "www", "com", "html", "jpg", "png", "gif",
}
