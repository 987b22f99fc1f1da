package jobs

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"campus-community-backend/internal/domain"
	"campus-community-backend/internal/logger"
	"campus-community-backend/internal/metrics"
)

// CrawlSWNotices walks the software-department notice board newest-first and
// stores every notice it has not seen before. The crawl stops at the first
// link matching the stored high-water mark, so a run after downtime catches up
// without re-fetching old pages.
func (jr *JobRunner) CrawlSWNotices() {
	jr.runWithRecovery("CrawlSWNotices", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if err := jr.crawlSWNotices(ctx); err != nil {
			metrics.CrawlErrors.Inc()
			logger.Error("notice crawl failed", "error", err)
		}
	})
}

func (jr *JobRunner) crawlSWNotices(ctx context.Context) error {
	client := &http.Client{Timeout: 30 * time.Second}

	latest, err := jr.store.GetLatestCrawl(ctx, domain.CrawlCategorySWNotice)
	if err != nil {
		return err
	}
	var highWater string
	if latest != nil {
		highWater = latest.LatestURL
	}

	var newestLink string
	for page := 1; page <= jr.config.Crawler.MaxPages; page++ {
		listURL := fmt.Sprintf("%s%d", jr.config.Crawler.SWNoticeURL, page)
		doc, err := fetchDocument(ctx, client, listURL)
		if err != nil {
			return err
		}

		rows := doc.Find("table.table-basic tbody tr")
		if rows.Length() == 0 {
			break
		}

		notices, reachedKnown, err := jr.collectNotices(ctx, client, rows, highWater)
		if err != nil {
			return err
		}

		if len(notices) > 0 {
			if err := jr.store.CreateBatch(ctx, notices); err != nil {
				return err
			}
			metrics.CrawledNotices.Add(float64(len(notices)))
			if newestLink == "" {
				newestLink = notices[0].Link
			}
		}

		if reachedKnown || len(notices) == 0 {
			break
		}
	}

	if newestLink != "" {
		if err := jr.store.UpsertLatestCrawl(ctx, &domain.LatestCrawl{
			Category:  domain.CrawlCategorySWNotice,
			LatestURL: newestLink,
		}); err != nil {
			return err
		}
		logger.Info("notice crawl finished", "latest_url", newestLink)
	}
	return nil
}

// collectNotices parses one listing page. It returns the new notices in page
// order and whether the high-water mark was reached.
func (jr *JobRunner) collectNotices(ctx context.Context, client *http.Client, rows *goquery.Selection, highWater string) ([]domain.CrawledNotice, bool, error) {
	var notices []domain.CrawledNotice
	reachedKnown := false
	var loopErr error

	rows.EachWithBreak(func(_ int, row *goquery.Selection) bool {
		noticeType := row.Find("td span.tag").Text()
		titleLink := row.Find("td.aleft a").First()
		href, ok := titleLink.Attr("href")
		if !ok || href == "" {
			return true
		}

		if href == highWater {
			reachedKnown = true
			return false
		}

		detail, err := fetchDocument(ctx, client, href)
		if err != nil {
			loopErr = err
			return false
		}

		headerSpans := detail.Find("div.header > div > span")
		notice := domain.CrawledNotice{
			Category:   domain.CrawlCategorySWNotice,
			NoticeType: noticeType,
			Title:      detail.Find("div.header > h3").Text(),
			Link:       href,
		}
		if headerSpans.Length() > 1 {
			notice.AnnounceDate = headerSpans.Eq(1).Text()
		}
		if headerSpans.Length() > 3 {
			notice.Author = headerSpans.Eq(3).Text()
		}
		if body, err := detail.Find("div.fr-view").Html(); err == nil {
			notice.Content = body
		}

		notices = append(notices, notice)
		return true
	})

	return notices, reachedKnown, loopErr
}

func fetchDocument(ctx context.Context, client *http.Client, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}
