package remote

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

type Verdict int

const (
	Unrecognized Verdict = iota
	Correct
	Incorrect
	TooSoon
	AlreadySolved
)

func (v Verdict) String() string {
	switch v {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	case TooSoon:
		return "too_soon"
	case AlreadySolved:
		return "already_solved"
	default:
		return "unrecognized"
	}
}

// Outcome is the classified result of one submission. Cooldown is the
// service's own wording ("one minute", "4m 12s"); it is not parsed.
type Outcome struct {
	Verdict  Verdict
	Cooldown string
	Raw      string
}

func (o Outcome) Message() string {
	wait := o.Cooldown
	if wait == "" {
		wait = "a bit"
	}
	switch o.Verdict {
	case Correct:
		return "Correct answer!"
	case Incorrect:
		return fmt.Sprintf("Incorrect answer. Wait %s.", wait)
	case TooSoon:
		return fmt.Sprintf("Cooldown active. Wait %s.", wait)
	case AlreadySolved:
		return "This part was already solved."
	default:
		return "Unexpected submission response:\n" + o.Raw
	}
}

var (
	tooRecentPattern    = regexp.MustCompile(`(?i)answer(?:ed)? too recently`)
	timeLeftPattern     = regexp.MustCompile(`You have ([^.;]+?) left`)
	wrongAnswerPattern  = regexp.MustCompile(`(?i)not the right answer`)
	retryWaitPattern    = regexp.MustCompile(`(?i)wait ([^.;]+?) before trying again`)
	rightAnswerPattern  = regexp.MustCompile(`(?i)the right answer`)
	wrongLevelPattern   = regexp.MustCompile(`(?i)solving the right level`)
	whitespaceCollapser = regexp.MustCompile(`\s+`)
)

// Classify maps feedback text onto a verdict. Order matters: the first
// matching rule wins.
func Classify(text string) Outcome {
	text = strings.TrimSpace(whitespaceCollapser.ReplaceAllString(text, " "))
	switch {
	case tooRecentPattern.MatchString(text):
		return Outcome{Verdict: TooSoon, Cooldown: firstGroup(timeLeftPattern, text), Raw: text}
	case wrongAnswerPattern.MatchString(text):
		return Outcome{Verdict: Incorrect, Cooldown: firstGroup(retryWaitPattern, text), Raw: text}
	case rightAnswerPattern.MatchString(text):
		return Outcome{Verdict: Correct, Raw: text}
	case wrongLevelPattern.MatchString(text):
		return Outcome{Verdict: AlreadySolved, Raw: text}
	default:
		return Outcome{Verdict: Unrecognized, Raw: text}
	}
}

// ClassifyResponse classifies the text of the first article in body, or of
// the whole document when there is none.
func ClassifyResponse(body string) Outcome {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return Classify(body)
	}
	if article := findFirst(doc, "article"); article != nil {
		return Classify(nodeText(article))
	}
	return Classify(nodeText(doc))
}

func firstGroup(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}
