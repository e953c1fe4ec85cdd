// Package wiki implements the encyclopedia backend on top of the MediaWiki Action API.
package wiki

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kapu/wiki-answer-bot-go/internal/constants"
	"github.com/kapu/wiki-answer-bot-go/internal/domain"
	"github.com/kapu/wiki-answer-bot-go/pkg/errors"
)

// Client answers Search, Summary and Page calls for one wiki.
type Client struct {
	requester   Requester
	articleBase string
	logger      *zap.Logger
}

// NewClient derives article URLs from apiURL: https://en.wikipedia.org/w/api.php
// yields https://en.wikipedia.org/wiki/<Title>.
func NewClient(requester Requester, apiURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		requester:   requester,
		articleBase: articleBaseFor(apiURL),
		logger:      logger,
	}
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

type searchResponse struct {
	Error *apiError `json:"error"`
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type summaryResponse struct {
	Error *apiError `json:"error"`
	Query struct {
		Pages []summaryPage `json:"pages"`
	} `json:"query"`
}

type summaryPage struct {
	Title     string            `json:"title"`
	Missing   bool              `json:"missing"`
	Invalid   bool              `json:"invalid"`
	Extract   string            `json:"extract"`
	FullURL   string            `json:"fullurl"`
	PageProps map[string]string `json:"pageprops"`
}

type parseResponse struct {
	Error *apiError `json:"error"`
	Parse struct {
		Title         string   `json:"title"`
		Text          string   `json:"text"`
		ExternalLinks []string `json:"externallinks"`
	} `json:"parse"`
}

// Search returns matching article titles in relevance order.
func (c *Client) Search(ctx context.Context, term string, limit int) ([]string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", term)
	params.Set("srlimit", strconv.Itoa(limit))
	params.Set("srprop", "")

	var resp searchResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", term, err)
	}
	if resp.Error != nil {
		return nil, c.apiFailure("search", term, resp.Error)
	}

	titles := make([]string, 0, len(resp.Query.Search))
	for _, hit := range resp.Query.Search {
		titles = append(titles, hit.Title)
	}

	c.logger.Debug("Search completed",
		zap.String("term", term),
		zap.Int("results", len(titles)),
	)
	return titles, nil
}

// Summary returns the first sentences of the article's lead section. Missing pages
// fail with a NotFoundError and disambiguation pages with an AmbiguousError.
func (c *Client) Summary(ctx context.Context, title string, sentences int) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "extracts|pageprops|info")
	params.Set("exintro", "1")
	params.Set("explaintext", "1")
	params.Set("exsentences", strconv.Itoa(sentences))
	params.Set("ppprop", "disambiguation")
	params.Set("inprop", "url")
	params.Set("redirects", "1")
	params.Set("titles", title)

	var resp summaryResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return "", fmt.Errorf("summary %q: %w", title, err)
	}
	if resp.Error != nil {
		return "", c.apiFailure("summary", title, resp.Error)
	}
	if len(resp.Query.Pages) == 0 {
		return "", errors.NewPageNotFoundError(title)
	}

	page := resp.Query.Pages[0]
	if page.Missing || page.Invalid {
		return "", errors.NewPageNotFoundError(title)
	}
	if _, ok := page.PageProps["disambiguation"]; ok {
		return "", errors.NewAmbiguousError(title, c.disambiguationOptions(ctx, page.Title))
	}

	return strings.TrimSpace(page.Extract), nil
}

// Page returns the article's paragraphs as plain text together with its references.
func (c *Client) Page(ctx context.Context, title string) (*domain.Page, error) {
	resp, err := c.parse(ctx, title)
	if err != nil {
		return nil, err
	}

	article, err := ParseArticle(resp.Parse.Text, constants.ExtractLimits.DisambiguationMax)
	if err != nil {
		return nil, fmt.Errorf("page %q: %w", title, err)
	}
	if article.IsDisambiguation {
		return nil, errors.NewAmbiguousError(title, article.Options)
	}

	resolved := resp.Parse.Title
	if resolved == "" {
		resolved = title
	}

	refs := make([]string, 0, len(article.References)+len(resp.Parse.ExternalLinks))
	refs = append(refs, article.References...)
	refs = append(refs, resp.Parse.ExternalLinks...)

	return &domain.Page{
		Title:      resolved,
		Content:    article.Content,
		URL:        c.PageURL(resolved),
		References: refs,
	}, nil
}

// PageURL is the canonical article address for title.
func (c *Client) PageURL(title string) string {
	if c.articleBase == "" || title == "" {
		return ""
	}
	return c.articleBase + url.PathEscape(strings.ReplaceAll(title, " ", "_"))
}

func (c *Client) parse(ctx context.Context, title string) (*parseResponse, error) {
	params := url.Values{}
	params.Set("action", "parse")
	params.Set("page", title)
	params.Set("prop", "text|externallinks")
	params.Set("redirects", "1")

	var resp parseResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, fmt.Errorf("page %q: %w", title, err)
	}
	if resp.Error != nil {
		return nil, c.apiFailure("page", title, resp.Error)
	}
	return &resp, nil
}

func (c *Client) disambiguationOptions(ctx context.Context, title string) []string {
	resp, err := c.parse(ctx, title)
	if err != nil {
		c.logger.Warn("Failed to load disambiguation options", zap.String("title", title), zap.Error(err))
		return []string{}
	}
	article, err := ParseArticle(resp.Parse.Text, constants.ExtractLimits.DisambiguationMax)
	if err != nil {
		c.logger.Warn("Failed to parse disambiguation page", zap.String("title", title), zap.Error(err))
		return []string{}
	}
	if len(article.Options) == 0 {
		return []string{}
	}
	return article.Options
}

func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	body, err := c.requester.DoRequest(ctx, params)
	if err != nil {
		var apiErr *errors.APIError
		if stderrors.As(err, &apiErr) && apiErr.StatusCode == 404 {
			notFound := errors.NewPageNotFoundError(params.Get("titles") + params.Get("page"))
			notFound.Cause = err
			return notFound
		}
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", params.Get("action"), err)
	}
	return nil
}

func (c *Client) apiFailure(op, title string, e *apiError) error {
	switch e.Code {
	case "missingtitle", "invalidtitle", "nosuchpageid":
		return errors.NewPageNotFoundError(title)
	}
	c.logger.Warn("Wiki API error",
		zap.String("op", op),
		zap.String("title", title),
		zap.String("code", e.Code),
		zap.String("info", e.Info),
	)
	return errors.NewAPIError(fmt.Sprintf("%s failed: %s", op, e.Info), 200, map[string]any{
		"code":  e.Code,
		"title": title,
	})
}

func articleBaseFor(apiURL string) string {
	u, err := url.Parse(apiURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host + "/wiki/"
}
