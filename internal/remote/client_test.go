package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/time/rate"
)

// fakeService mimics the puzzle site for one day of 2025.
type fakeService struct {
	page       string
	input      string
	inputCode  int
	answerBody string

	gets    map[string]int
	posts   []map[string]string
	cookies []string
	agents  []string
}

func (f *fakeService) handler(t *testing.T) http.Handler {
	f.gets = map[string]int{}
	mux := http.NewServeMux()
	mux.HandleFunc("/2025/day/1", func(w http.ResponseWriter, r *http.Request) {
		f.gets[r.URL.Path]++
		f.recordCookie(r)
		_, _ = w.Write([]byte(f.page))
	})
	mux.HandleFunc("/2025/day/1/input", func(w http.ResponseWriter, r *http.Request) {
		f.gets[r.URL.Path]++
		f.recordCookie(r)
		if f.inputCode != 0 {
			w.WriteHeader(f.inputCode)
			return
		}
		_, _ = w.Write([]byte(f.input))
	})
	mux.HandleFunc("/2025/day/1/answer", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		f.posts = append(f.posts, map[string]string{"level": r.PostForm.Get("level"), "answer": r.PostForm.Get("answer")})
		_, _ = w.Write([]byte(f.answerBody))
	})
	return mux
}

func (f *fakeService) recordCookie(r *http.Request) {
	if c, err := r.Cookie("session"); err == nil {
		f.cookies = append(f.cookies, c.Value)
	}
	f.agents = append(f.agents, r.UserAgent())
}

func newTestClient(t *testing.T, f *fakeService, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(f.handler(t))
	t.Cleanup(srv.Close)
	return New(Options{
		BaseURL: srv.URL,
		Year:    2025,
		Token:   token,
		Limiter: rate.NewLimiter(rate.Inf, 0),
	})
}

const unsolvedPage = `<html><body><main>
<article class="day-desc"><h2>--- Day 1 ---</h2><pre><code>R10</code></pre><p>Answer: <code><em>60</em></code></p></article>
<form method="post" action="1/answer"><input type="hidden" name="level" value="1"/><input type="text" name="answer"/></form>
</main></body></html>`

const partOneSolvedPage = `<html><body><main>
<article class="day-desc"><pre><code>R10</code></pre><p><code><em>60</em></code></p></article>
<article class="day-desc"><p><code><em>6</em></code></p></article>
<form method="post" action="1/answer"><input type="hidden" name="level" value="2"/><input type="text" name="answer"/></form>
</main></body></html>`

const solvedPage = `<html><body><main>
<article class="day-desc"><p>one</p></article><article class="day-desc"><p>two</p></article>
<p>Both parts of this puzzle are complete! They provide two gold stars: **</p>
</main></body></html>`

func TestFetchInputSendsSessionCookie(t *testing.T) {
	f := &fakeService{input: "L68\nR48\n\n"}
	c := newTestClient(t, f, "secret")
	got, err := c.FetchInput(context.Background(), 1)
	if err != nil {
		t.Fatalf("fetch input: %v", err)
	}
	if got != "L68\nR48" {
		t.Fatalf("expected trailing newlines trimmed, got %q", got)
	}
	if len(f.cookies) != 1 || f.cookies[0] != "secret" {
		t.Fatalf("expected session cookie, got %v", f.cookies)
	}
	if len(f.agents) != 1 || f.agents[0] != defaultUserAgent {
		t.Fatalf("expected default user agent, got %v", f.agents)
	}
}

func TestFetchInputWithoutTokenFails(t *testing.T) {
	f := &fakeService{input: "x"}
	c := newTestClient(t, f, "")
	_, err := c.FetchInput(context.Background(), 1)
	if !errors.Is(err, ErrAuthMissing) {
		t.Fatalf("expected ErrAuthMissing, got %v", err)
	}
	if f.gets["/2025/day/1/input"] != 0 {
		t.Fatalf("expected no request without a token")
	}
}

func TestFetchInputNon200IsRemoteError(t *testing.T) {
	f := &fakeService{inputCode: http.StatusBadRequest}
	c := newTestClient(t, f, "secret")
	got, err := c.FetchInput(context.Background(), 1)
	var re *RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("expected RemoteError, got %v", err)
	}
	if re.Status != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", re.Status)
	}
	if got != "" {
		t.Fatalf("expected empty input on failure, got %q", got)
	}
}

func TestOversizedBodyIsRejected(t *testing.T) {
	f := &fakeService{input: strings.Repeat("1\n", 10)}
	c := newTestClient(t, f, "secret")
	c.maxBody = 19
	got, err := c.FetchInput(context.Background(), 1)
	if !errors.Is(err, ErrBodyTooLarge) {
		t.Fatalf("expected ErrBodyTooLarge, got %v", err)
	}
	var re *RemoteError
	if !errors.As(err, &re) || re.Status != http.StatusOK {
		t.Fatalf("expected RemoteError with status 200, got %v", err)
	}
	if got != "" {
		t.Fatalf("truncated body must not be returned, got %q", got)
	}

	c.maxBody = 20
	if got, err := c.FetchInput(context.Background(), 1); err != nil || got != strings.TrimRight(f.input, "\n") {
		t.Fatalf("body at the limit should be accepted, got %q, %v", got, err)
	}
}

func TestPuzzlePageIsFetchedOnce(t *testing.T) {
	f := &fakeService{page: unsolvedPage}
	c := newTestClient(t, f, "secret")
	ctx := context.Background()

	fixture, err := c.FetchTestFixture(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	answer, err := c.FetchExpectedAnswer(ctx, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if fixture != "R10" || answer != "60" {
		t.Fatalf("unexpected fixture/answer %q/%q", fixture, answer)
	}
	if n := f.gets["/2025/day/1"]; n != 1 {
		t.Fatalf("expected one page fetch, got %d", n)
	}

	c.Forget(1)
	if _, err := c.FetchPuzzlePage(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if n := f.gets["/2025/day/1"]; n != 2 {
		t.Fatalf("expected refetch after Forget, got %d", n)
	}
}

func TestFetchExpectedAnswerForLockedPart(t *testing.T) {
	f := &fakeService{page: unsolvedPage}
	c := newTestClient(t, f, "secret")
	got, err := c.FetchExpectedAnswer(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("locked part should not be an error: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty answer, got %q", got)
	}
}

func TestCurrentSolvedLevel(t *testing.T) {
	for page, want := range map[string]int{unsolvedPage: 0, partOneSolvedPage: 1, solvedPage: 2} {
		f := &fakeService{page: page}
		c := newTestClient(t, f, "secret")
		got, err := c.CurrentSolvedLevel(context.Background(), 1)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("expected solved level %d, got %d", want, got)
		}
	}
}

func TestSubmitAlreadySolvedSkipsPost(t *testing.T) {
	f := &fakeService{page: partOneSolvedPage, answerBody: "<article><p>That's the right answer!</p></article>"}
	c := newTestClient(t, f, "secret")
	out, err := c.Submit(context.Background(), 1, 1, "73")
	if err != nil {
		t.Fatal(err)
	}
	if out.Verdict != AlreadySolved {
		t.Fatalf("expected AlreadySolved, got %s", out.Verdict)
	}
	if len(f.posts) != 0 {
		t.Fatalf("expected no POST for a solved part, got %v", f.posts)
	}

	f2 := &fakeService{page: solvedPage}
	c2 := newTestClient(t, f2, "secret")
	for _, part := range []int{1, 2} {
		out, err := c2.Submit(context.Background(), 1, part, "anything")
		if err != nil {
			t.Fatal(err)
		}
		if out.Verdict != AlreadySolved {
			t.Fatalf("part %d: expected AlreadySolved, got %s", part, out.Verdict)
		}
	}
	if len(f2.posts) != 0 {
		t.Fatalf("expected no POST, got %v", f2.posts)
	}
}

func TestSubmitPostsAndClassifies(t *testing.T) {
	f := &fakeService{
		page:       unsolvedPage,
		answerBody: "<main><article><p>That's not the right answer; your answer is too high. Please wait one minute before trying again.</p></article></main>",
	}
	c := newTestClient(t, f, "secret")
	out, err := c.Submit(context.Background(), 1, 1, "73")
	if err != nil {
		t.Fatal(err)
	}
	if out.Verdict != Incorrect || out.Cooldown != "one minute" {
		t.Fatalf("unexpected outcome %+v", out)
	}
	if len(f.posts) != 1 || f.posts[0]["level"] != "1" || f.posts[0]["answer"] != "73" {
		t.Fatalf("unexpected posts %v", f.posts)
	}

	// The page is refetched after posting.
	if _, err := c.CurrentSolvedLevel(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if n := f.gets["/2025/day/1"]; n != 2 {
		t.Fatalf("expected page refetch after submit, got %d fetches", n)
	}
}

func TestSubmitRejectsBadPart(t *testing.T) {
	c := New(Options{Year: 2025, Token: "x"})
	if _, err := c.Submit(context.Background(), 1, 3, "1"); !errors.Is(err, ErrInvalidPart) {
		t.Fatalf("expected ErrInvalidPart, got %v", err)
	}
}

func TestURL(t *testing.T) {
	c := New(Options{BaseURL: "https://example.test/", Year: 2024})
	if got := c.URL(7, "input"); got != "https://example.test/2024/day/7/input" {
		t.Fatalf("unexpected url %q", got)
	}
	if got := c.URL(7, ""); !strings.HasSuffix(got, "/2024/day/7") {
		t.Fatalf("unexpected url %q", got)
	}
}
