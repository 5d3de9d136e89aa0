package importer

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/url"
	"strings"
	"time"

	"skillswap/internal/repository"

	"github.com/gocolly/colly/v2"
)

// CatalogImporter pulls a public skill catalog page and upserts every
// listed skill so new users have something to put on their ledgers.
type CatalogImporter struct {
	skills      repository.SkillRepository
	logger      *log.Logger
	allowedHost string
}

type catalogItem struct {
	Name     string
	Category string
}

func NewCatalogImporter(skills repository.SkillRepository, logger *log.Logger) *CatalogImporter {
	if logger == nil {
		logger = log.Default()
	}
	return &CatalogImporter{skills: skills, logger: logger}
}

// Import scrapes catalogURL and writes the skills it finds through a
// bounded worker pool. Returns the number of skills stored.
func (i *CatalogImporter) Import(ctx context.Context, catalogURL string, workers int) (int, error) {
	if i == nil || i.skills == nil {
		return 0, fmt.Errorf("nil importer/repository")
	}
	catalogURL = strings.TrimSpace(catalogURL)
	if catalogURL == "" {
		return 0, fmt.Errorf("catalog url is required")
	}
	i.allowedHost = hostFromURL(catalogURL)

	items, err := i.scrapeCatalog(ctx, catalogURL)
	if err != nil {
		return 0, err
	}
	i.logger.Printf("catalog scraped | url=%s items=%d", catalogURL, len(items))

	pool := NewWorkerPool(workers, workers*2)
	pool.SetRateLimit(50)
	results := pool.Run(ctx)

	for _, it := range items {
		it := it
		pool.Submit(func(ctx context.Context) error {
			_, err := i.skills.UpsertByName(ctx, it.Name, it.Category)
			return err
		})
	}
	pool.Close()

	stored := 0
	for res := range results {
		if res.Err != nil {
			i.logger.Printf("catalog upsert error | err=%v", res.Err)
			continue
		}
		stored++
	}
	return stored, nil
}

func (i *CatalogImporter) scrapeCatalog(ctx context.Context, catalogURL string) ([]catalogItem, error) {
	c := colly.NewCollector(
		colly.AllowedDomains(i.allowedHost),
	)
	c.SetRequestTimeout(15 * time.Second)
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 2, Delay: 200 * time.Millisecond})

	items := make([]catalogItem, 0)
	seen := make(map[string]bool)

	// Catalog pages group skills under category sections:
	//   <section data-category="music"> <li class="skill">Guitar</li> ... </section>
	c.OnHTML("[data-category]", func(e *colly.HTMLElement) {
		category := strings.TrimSpace(e.Attr("data-category"))
		e.ForEach("li.skill, .skill-item", func(_ int, el *colly.HTMLElement) {
			name := strings.TrimSpace(el.Text)
			if name == "" || len(name) > 120 {
				return
			}
			key := strings.ToLower(name)
			if seen[key] {
				return
			}
			seen[key] = true
			items = append(items, catalogItem{Name: name, Category: category})
		})
	})

	var scrapeErr error
	c.OnError(func(r *colly.Response, err error) {
		scrapeErr = fmt.Errorf("catalog fetch %s: %w", r.Request.URL, err)
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.Visit(catalogURL); err != nil {
		return nil, err
	}
	c.Wait()

	if scrapeErr != nil && len(items) == 0 {
		return nil, scrapeErr
	}
	return items, nil
}

func hostFromURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}
	host := u.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return host
}
