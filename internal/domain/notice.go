package domain

type CrawlCategory string

const (
	CrawlCategorySWNotice CrawlCategory = "CAU_SW_NOTICE"
)

type CrawledNotice struct {
	ID           string        `json:"id"`
	Category     CrawlCategory `json:"category"`
	NoticeType   string        `json:"notice_type"`
	Title        string        `json:"title"`
	Content      string        `json:"content"`
	Link         string        `json:"link"`
	Author       string        `json:"author"`
	AnnounceDate string        `json:"announce_date"`
	CreatedAt    string        `json:"created_at"`
}

// LatestCrawl stores the most recent notice URL per category so a crawl can
// stop as soon as it reaches already-seen content.
type LatestCrawl struct {
	Category  CrawlCategory `json:"category"`
	LatestURL string        `json:"latest_url"`
	UpdatedAt string        `json:"updated_at"`
}
