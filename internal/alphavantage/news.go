package alphavantage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/moznion/go-optional"

	"marketbrain/internal/provider"
)

const (
	publishedLayout  = "20060102T150405"
	defaultNewsLimit = 50
)

type newsItem struct {
	Title          string  `json:"title"`
	URL            string  `json:"url"`
	TimePublished  string  `json:"time_published"`
	Summary        string  `json:"summary"`
	Source         string  `json:"source"`
	SentimentScore float64 `json:"overall_sentiment_score"`
	Tickers        []struct {
		Ticker string `json:"ticker"`
	} `json:"ticker_sentiment"`
}

type NewsSentimentResponse struct {
	notice
	Feed []newsItem `json:"feed"`
}

// News returns the latest articles, for one ticker or the whole market.
func (p *Provider) News(ctx context.Context, params provider.NewsParams) (optional.Option[[]provider.NewsArticle], error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultNewsLimit
	}

	q := map[string]string{
		"limit": strconv.Itoa(limit),
		"sort":  "LATEST",
	}
	if params.Symbol != "" {
		q["tickers"] = params.Symbol
	}

	var result NewsSentimentResponse
	if err := p.query(ctx, "NEWS_SENTIMENT", q, &result); err != nil {
		return optional.None[[]provider.NewsArticle](), fmt.Errorf("failed to fetch news: %w", err)
	}
	if len(result.Feed) == 0 {
		return optional.None[[]provider.NewsArticle](), nil
	}

	feed := result.Feed
	if len(feed) > limit {
		feed = feed[:limit]
	}

	articles := make([]provider.NewsArticle, 0, len(feed))
	for _, item := range feed {
		a := provider.NewsArticle{
			Title:     item.Title,
			URL:       item.URL,
			Source:    item.Source,
			Summary:   item.Summary,
			Sentiment: item.SentimentScore,
		}
		if ts, err := time.Parse(publishedLayout, item.TimePublished); err == nil {
			a.PublishedAt = ts
		}
		for _, t := range item.Tickers {
			a.Symbols = append(a.Symbols, t.Ticker)
		}
		articles = append(articles, a)
	}
	return optional.Some(articles), nil
}
