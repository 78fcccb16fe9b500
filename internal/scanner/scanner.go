package scanner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Sla0ui/linkrisk/internal/analyzer"
	"github.com/Sla0ui/linkrisk/internal/detector"
	"github.com/Sla0ui/linkrisk/internal/models"
	"github.com/Sla0ui/linkrisk/internal/normalizer"
	"github.com/schollz/progressbar/v3"
)

// Scanner analyzes batches of URLs
type Scanner struct {
	config   *models.Config
	analyzer *analyzer.Analyzer
}

// New creates a new Scanner instance
func New(config *models.Config, a *analyzer.Analyzer) (*Scanner, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &Scanner{config: config.Clone(), analyzer: a}, nil
}

// ScanURL analyzes a single URL
func (s *Scanner) ScanURL(url string) *models.ScanRecord {
	host := normalizer.Normalize(url).Host

	return &models.ScanRecord{
		URL:               url,
		Host:              host,
		RegistrableDomain: RegistrableDomain(host),
		Result:            s.analyzer.Analyze(url),
		CheckedAt:         time.Now(),
	}
}

// ScanURLs analyzes urls on a bounded worker pool. Records come back in input
// order. If ctx ends early the finished records are returned with ctx.Err().
func (s *Scanner) ScanURLs(ctx context.Context, urls []string) ([]*models.ScanRecord, error) {
	numWorkers := min(s.config.MaxConcurrentChecks, max(len(urls), 1))
	workCh := make(chan int)
	records := make([]*models.ScanRecord, len(urls))

	var bar *progressbar.ProgressBar
	if !s.config.Quiet && !s.config.NoProgress && len(urls) > 0 {
		bar = progressbar.NewOptions(len(urls),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(50),
			progressbar.OptionSetDescription("[cyan]Analyzing URLs[reset]"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))
	}

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for {
				select {
				case idx, ok := <-workCh:
					if !ok {
						return
					}

					records[idx] = s.ScanURL(urls[idx])

					if bar != nil {
						bar.Add(1)
					}

				case <-ctx.Done():
					return
				}
			}
		}()
	}

	// Send work to workers
	go func() {
		defer close(workCh)
		for idx := range urls {
			select {
			case workCh <- idx:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	if bar != nil {
		bar.Finish()
	}

	if err := ctx.Err(); err != nil {
		done := make([]*models.ScanRecord, 0, len(records))
		for _, r := range records {
			if r != nil {
				done = append(done, r)
			}
		}
		return done, err
	}

	return records, nil
}

// RegistrableDomain returns the eTLD+1 of host, or "" when none can be derived
func RegistrableDomain(host string) string {
	return detector.RegistrableDomain(host)
}
