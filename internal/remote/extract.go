package remote

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// The puzzle page has no structured markers for examples, so everything in
// this file is a best-effort heuristic that returns "" when it finds nothing.

// ExtractTestFixture returns the longest <code> block of the first article.
// Ties keep the earliest block.
func ExtractTestFixture(doc *html.Node) string {
	articles := findAll(doc, "article")
	if len(articles) == 0 {
		return ""
	}
	var (
		best    string
		bestLen = -1
	)
	for _, code := range findAll(articles[0], "code") {
		text := nodeText(code)
		if n := utf8.RuneCountInString(text); n > bestLen {
			best, bestLen = text, n
		}
	}
	return strings.TrimSpace(best)
}

// ExtractExpectedAnswer returns the example answer for part from article
// number part. Answers are usually highlighted as <code><em>42</em></code>,
// sometimes as <em><code>42</code></em>; the last match wins.
func ExtractExpectedAnswer(doc *html.Node, part int) string {
	if part < 1 {
		return ""
	}
	articles := findAll(doc, "article")
	if part > len(articles) {
		return ""
	}
	article := articles[part-1]

	codes := findAll(article, "code")
	for i := len(codes) - 1; i >= 0; i-- {
		if em := findFirst(codes[i], "em"); em != nil {
			if s := soleText(em); strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	ems := findAll(article, "em")
	for i := len(ems) - 1; i >= 0; i-- {
		if code := findFirst(ems[i], "code"); code != nil {
			if s := soleText(code); strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

// ArticleCount reports how many puzzle parts are visible on the page.
func ArticleCount(doc *html.Node) int {
	return len(findAll(doc, "article"))
}

// SolvedLevel reads the answer form for day. A missing form means both
// parts are done; otherwise the form asks for the next unsolved level.
func SolvedLevel(doc *html.Node, day int) (int, error) {
	action := strconv.Itoa(day) + "/answer"
	var form *html.Node
	for _, f := range findAll(doc, "form") {
		if attr(f, "action") == action {
			form = f
			break
		}
	}
	if form == nil {
		return 2, nil
	}
	for _, in := range findAll(form, "input") {
		if attr(in, "name") != "level" {
			continue
		}
		raw := strings.TrimSpace(attr(in, "value"))
		level, err := strconv.Atoi(raw)
		if err != nil {
			return 0, &ParseError{Day: day, Reason: "non-numeric submission level " + strconv.Quote(raw)}
		}
		return level - 1, nil
	}
	return 0, &ParseError{Day: day, Reason: "could not find submission level in answer form"}
}

// ExtractStatement renders the puzzle articles as lightweight markdown.
func ExtractStatement(doc *html.Node) string {
	var sb strings.Builder
	for _, article := range findAll(doc, "article") {
		writeMarkdown(article, &sb)
		sb.WriteString("\n\n")
	}
	return cleanMarkdown(sb.String())
}

func writeMarkdown(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(collapseSpace(n.Data))
		return
	case html.ElementNode:
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeMarkdown(c, sb)
		}
		return
	}

	switch n.Data {
	case "script", "style":
		return
	case "h2":
		sb.WriteString("\n\n## ")
		sb.WriteString(strings.TrimSpace(nodeText(n)))
		sb.WriteString("\n\n")
		return
	case "pre":
		sb.WriteString("\n\n```\n")
		sb.WriteString(strings.TrimRight(nodeText(n), "\n"))
		sb.WriteString("\n```\n\n")
		return
	case "p":
		sb.WriteString("\n\n")
	case "li":
		sb.WriteString("\n- ")
	case "code":
		sb.WriteString("`" + nodeText(n) + "`")
		return
	case "em":
		sb.WriteString("**")
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeMarkdown(c, sb)
		}
		sb.WriteString("**")
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeMarkdown(c, sb)
	}
}

func cleanMarkdown(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blank++
			if blank > 1 {
				continue
			}
		} else {
			blank = 0
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n")) + "\n"
}

func collapseSpace(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s == "" {
			return ""
		}
		return " "
	}
	out := strings.Join(fields, " ")
	if strings.TrimLeft(s, " \t\n") != s {
		out = " " + out
	}
	if strings.TrimRight(s, " \t\n") != s {
		out += " "
	}
	return out
}

// findAll returns the descendants of n named tag in document order.
func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == tag {
				out = append(out, c)
			}
			walk(c)
		}
	}
	if n != nil {
		walk(n)
	}
	return out
}

func findFirst(n *html.Node, tag string) *html.Node {
	all := findAll(n, tag)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(p *html.Node) {
		if p.Type == html.TextNode {
			sb.WriteString(p.Data)
			return
		}
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// soleText returns the text of n when n wraps exactly one text node,
// possibly through a chain of single-child elements.
func soleText(n *html.Node) string {
	for n != nil {
		c := n.FirstChild
		if c == nil || c.NextSibling != nil {
			return ""
		}
		if c.Type == html.TextNode {
			return c.Data
		}
		n = c
	}
	return ""
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
