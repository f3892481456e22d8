package auction

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/jaydipmangukiya/Prop-valuer-sub000/config"
	"github.com/jaydipmangukiya/Prop-valuer-sub000/models"
	"github.com/jaydipmangukiya/Prop-valuer-sub000/utils"
)

// Scraper crawls an auction-property listing site.
type Scraper struct {
	cfg     *config.Config
	logger  *utils.Logger
	pool    *utils.WorkerPool
	visited *utils.KeySet
	retry   *utils.RetryConfig

	mu       sync.Mutex
	listings []*models.RawAuctionListing
}

// New creates a ready-to-use auction Scraper.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:     cfg,
		logger:  logger,
		pool:    utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs),
		visited: utils.NewKeySet(),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		listings: make([]*models.RawAuctionListing, 0),
	}
}

// Scrape walks the listing pages starting at cfg.AuctionURL.
func (s *Scraper) Scrape(ctx context.Context) ([]*models.RawAuctionListing, error) {
	if s.cfg.AuctionURL == "" {
		return nil, fmt.Errorf("auction: no start URL configured")
	}

	s.logger.Info("[auction] Starting scrape — target: %d pages, %d listings/page",
		s.cfg.PagesToScrape, s.cfg.ListingsPerPage)

	chromeBin := s.cfg.ChromeBin
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	s.logger.Info("[auction] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	currentURL := s.cfg.AuctionURL
	for page := 1; page <= s.cfg.PagesToScrape; page++ {
		s.logger.Info("[auction] Scraping page %d — URL: %s", page, currentURL)

		pageListings, nextURL, err := s.scrapePage(browserCtx, currentURL, page)
		if err != nil {
			s.logger.Error("[auction] Page %d failed: %v", page, err)
			break
		}

		if len(pageListings) == 0 {
			s.logger.Warn("[auction] Page %d returned 0 listings — stopping", page)
			break
		}

		s.enrichListings(browserCtx, pageListings)

		s.mu.Lock()
		s.listings = append(s.listings, pageListings...)
		total := len(s.listings)
		s.mu.Unlock()

		s.logger.Info("[auction] Page %d done — collected %d listings so far", page, total)

		if page >= s.cfg.PagesToScrape {
			break
		}
		if nextURL == "" {
			nextURL = withPage(currentURL, page+1)
		}
		currentURL = nextURL

		select {
		case <-ctx.Done():
			return s.listings, ctx.Err()
		case <-time.After(time.Duration(s.cfg.RateLimitMs) * time.Millisecond):
		}
	}

	s.logger.Info("[auction] Scrape complete — total raw listings: %d", len(s.listings))
	return s.listings, nil
}

type cardData struct {
	Title    string `json:"title"`
	Price    string `json:"price"`
	Location string `json:"location"`
	Area     string `json:"area"`
	URL      string `json:"url"`
}

// scrapePage loads a results page and extracts auction cards.
func (s *Scraper) scrapePage(browserCtx context.Context, pageURL string, pageNum int) ([]*models.RawAuctionListing, string, error) {
	var rawListings []*models.RawAuctionListing
	var nextURL string

	err := s.retry.DoContext(browserCtx, fmt.Sprintf("scrape-page-%d", pageNum), func() error {
		ctx, cancel := chromedp.NewContext(browserCtx)
		defer cancel()

		ctx, cancelTimeout := context.WithTimeout(ctx, 90*time.Second)
		defer cancelTimeout()

		var cards []cardData
		var nextPageURL string

		err := chromedp.Run(ctx,
			chromedp.Navigate(pageURL),
			chromedp.Sleep(4*time.Second),

			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(2*time.Second),

			chromedp.Evaluate(fmt.Sprintf(cardScript, s.cfg.ListingsPerPage), &cards),
			chromedp.Evaluate(nextPageScript, &nextPageURL),
		)
		if err != nil {
			return fmt.Errorf("chromedp page scrape: %w", err)
		}

		s.logger.Debug("[auction] Page %d — found %d cards", pageNum, len(cards))

		rawListings = rawListings[:0]
		for _, c := range cards {
			if c.URL == "" {
				continue
			}
			if !s.visited.Add(c.URL) {
				s.logger.Debug("[auction] Skipping duplicate: %s", c.URL)
				continue
			}

			rawListings = append(rawListings, &models.RawAuctionListing{
				Title:        c.Title,
				ReservePrice: c.Price,
				Location:     c.Location,
				AreaText:     c.Area,
				URL:          c.URL,
				ScrapedAt:    time.Now(),
			})
		}

		nextURL = nextPageURL
		return nil
	})

	return rawListings, nextURL, err
}

// enrichListings visits detail pages to fill in descriptions and any area
// figure the card left out.
func (s *Scraper) enrichListings(browserCtx context.Context, listings []*models.RawAuctionListing) {
	for _, listing := range listings {
		l := listing
		s.pool.Submit(func() {
			detail, err := s.scrapeDetailPage(browserCtx, l.URL)
			if err != nil {
				s.logger.Warn("[auction] Detail page failed for %s: %v", l.URL, err)
				return
			}

			if l.AreaText == "" {
				l.AreaText = detail.Area
			}
			if l.ReservePrice == "" {
				l.ReservePrice = detail.Price
			}
			l.Description = detail.Description

			s.logger.Debug("[auction] Enriched: %s", l.Title)
		})
	}
	s.pool.Wait()
}

type detailData struct {
	Price       string `json:"price"`
	Area        string `json:"area"`
	Description string `json:"description"`
}

func (s *Scraper) scrapeDetailPage(browserCtx context.Context, pageURL string) (*detailData, error) {
	var details detailData

	err := s.retry.DoContext(browserCtx, "detail-page", func() error {
		ctx, cancel := chromedp.NewContext(browserCtx)
		defer cancel()

		ctx, cancelTimeout := context.WithTimeout(ctx, 60*time.Second)
		defer cancelTimeout()

		err := chromedp.Run(ctx,
			chromedp.Navigate(pageURL),
			chromedp.Sleep(3*time.Second),
			chromedp.Evaluate(detailScript, &details),
		)
		if err != nil {
			return fmt.Errorf("chromedp detail extract: %w", err)
		}
		return nil
	})

	return &details, err
}

// withPage sets the page query parameter on rawURL. It is the fallback when
// the site exposes no "next" link.
func withPage(rawURL string, page int) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String()
}

// findChromeBinary locates Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
