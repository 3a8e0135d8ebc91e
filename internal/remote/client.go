package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"adventctl/internal/telemetry"

	"golang.org/x/net/html"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://adventofcode.com"
	defaultUserAgent = "adventctl/0.1 (single-user puzzle runner)"
	maxBodyBytes     = 4 << 20
)

type Options struct {
	BaseURL   string
	Year      int
	Token     string
	UserAgent string

	HTTPClient *http.Client
	// Limiter throttles every request. Nil means one request per second.
	Limiter *rate.Limiter
	Logger  *telemetry.Logger
}

// Client talks to the puzzle service for a single year. It is not safe for
// concurrent use.
type Client struct {
	baseURL   string
	year      int
	token     string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
	logger    *telemetry.Logger
	maxBody   int64

	pages map[int]*html.Node
}

func New(opts Options) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		year:      opts.Year,
		token:     strings.TrimSpace(opts.Token),
		userAgent: opts.UserAgent,
		http:      opts.HTTPClient,
		limiter:   opts.Limiter,
		logger:    opts.Logger,
		maxBody:   maxBodyBytes,
		pages:     map[int]*html.Node{},
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.userAgent == "" {
		c.userAgent = defaultUserAgent
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 30 * time.Second}
	}
	if c.limiter == nil {
		c.limiter = rate.NewLimiter(rate.Every(time.Second), 1)
	}
	return c
}

func (c *Client) Year() int { return c.year }

// URL builds {base}/{year}/day/{day}[/suffix].
func (c *Client) URL(day int, suffix string) string {
	u := fmt.Sprintf("%s/%d/day/%d", c.baseURL, c.year, day)
	if suffix != "" {
		u += "/" + suffix
	}
	return u
}

// FetchInput downloads the personal puzzle input. Failures are logged here
// and returned; the text is empty on error.
func (c *Client) FetchInput(ctx context.Context, day int) (string, error) {
	body, err := c.do(ctx, http.MethodGet, c.URL(day, "input"), nil)
	if err != nil {
		c.logger.Error("remote.input_failed", map[string]any{"day": day, "error": err.Error()})
		return "", err
	}
	return strings.Trim(body, "\n"), nil
}

// FetchPuzzlePage returns the parsed puzzle page, reusing an earlier fetch
// of the same day until Forget is called or an answer is posted.
func (c *Client) FetchPuzzlePage(ctx context.Context, day int) (*html.Node, error) {
	if doc, ok := c.pages[day]; ok {
		return doc, nil
	}
	body, err := c.do(ctx, http.MethodGet, c.URL(day, ""), nil)
	if err != nil {
		c.logger.Error("remote.page_failed", map[string]any{"day": day, "error": err.Error()})
		return nil, err
	}
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil, &ParseError{Day: day, Reason: err.Error()}
	}
	c.pages[day] = doc
	return doc, nil
}

// Forget drops the cached page for day.
func (c *Client) Forget(day int) {
	delete(c.pages, day)
}

func (c *Client) FetchTestFixture(ctx context.Context, day int) (string, error) {
	doc, err := c.FetchPuzzlePage(ctx, day)
	if err != nil {
		return "", err
	}
	fixture := ExtractTestFixture(doc)
	if fixture == "" {
		c.logger.Info("remote.no_fixture", map[string]any{"day": day})
	}
	return fixture, nil
}

func (c *Client) FetchExpectedAnswer(ctx context.Context, day, part int) (string, error) {
	if part != 1 && part != 2 {
		return "", ErrInvalidPart
	}
	doc, err := c.FetchPuzzlePage(ctx, day)
	if err != nil {
		return "", err
	}
	if ArticleCount(doc) < part {
		c.logger.Info("remote.no_article", map[string]any{"day": day, "part": part})
		return "", nil
	}
	answer := ExtractExpectedAnswer(doc, part)
	if answer == "" {
		c.logger.Info("remote.no_test_answer", map[string]any{"day": day, "part": part})
	}
	return answer, nil
}

func (c *Client) FetchStatement(ctx context.Context, day int) (string, error) {
	doc, err := c.FetchPuzzlePage(ctx, day)
	if err != nil {
		return "", err
	}
	if ArticleCount(doc) == 0 {
		return "", nil
	}
	return ExtractStatement(doc), nil
}

// CurrentSolvedLevel returns how many parts of day are already accepted:
// 0, 1 or 2.
func (c *Client) CurrentSolvedLevel(ctx context.Context, day int) (int, error) {
	doc, err := c.FetchPuzzlePage(ctx, day)
	if err != nil {
		return 0, err
	}
	return SolvedLevel(doc, day)
}

// Submit posts answer for day/part. Parts the service already accepted are
// reported as AlreadySolved without posting anything.
func (c *Client) Submit(ctx context.Context, day, part int, answer string) (Outcome, error) {
	if part != 1 && part != 2 {
		return Outcome{}, ErrInvalidPart
	}
	solved, err := c.CurrentSolvedLevel(ctx, day)
	if err != nil {
		return Outcome{}, err
	}
	if solved >= part {
		c.logger.Info("remote.submit_skipped", map[string]any{"day": day, "part": part, "solved": solved})
		return Outcome{Verdict: AlreadySolved}, nil
	}

	form := url.Values{}
	form.Set("level", strconv.Itoa(part))
	form.Set("answer", answer)
	body, err := c.do(ctx, http.MethodPost, c.URL(day, "answer"), form)
	c.Forget(day)
	if err != nil {
		c.logger.Error("remote.submit_failed", map[string]any{"day": day, "part": part, "error": err.Error()})
		return Outcome{}, err
	}
	out := ClassifyResponse(body)
	c.logger.Info("remote.submitted", map[string]any{"day": day, "part": part, "verdict": out.Verdict.String(), "cooldown": out.Cooldown})
	return out, nil
}

func (c *Client) do(ctx context.Context, method, target string, form url.Values) (string, error) {
	if c.token == "" {
		return "", ErrAuthMissing
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.AddCookie(&http.Cookie{Name: "session", Value: c.token})
	req.Header.Set("User-Agent", c.userAgent)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	c.logger.Debug("remote.request", map[string]any{"method": method, "url": target})
	resp, err := c.http.Do(req)
	if err != nil {
		return "", &RemoteError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &RemoteError{URL: target, Status: resp.StatusCode}
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return "", &RemoteError{URL: target, Status: resp.StatusCode, Err: err}
	}
	if int64(len(b)) > c.maxBody {
		return "", &RemoteError{URL: target, Status: resp.StatusCode, Err: fmt.Errorf("%w: over %d bytes", ErrBodyTooLarge, c.maxBody)}
	}
	return string(b), nil
}
