package notify

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/welcomedesk/visitors/internal/models"
)

// goldmark without html.WithUnsafe drops raw HTML, so visitor text cannot
// inject markup into the leader's inbox.
var md = goldmark.New()

type line struct{ label, value string }

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func visitorLines(v models.Visitor, loc *time.Location) []line {
	return []line{
		{"Name", v.FullName},
		{"Phone", orDefault(v.Phone, "Not provided")},
		{"Email", orDefault(v.Email, "Not provided")},
		{"Age Group", string(v.AgeGroup)},
		{"City", orDefault(v.City, "Not provided")},
		{"How they heard about us", orDefault(v.HearAbout, "Not provided")},
		{"First time visitor", yesNo(v.IsFirstTime)},
		{"Language preference", v.LanguageName()},
		{"Notes", orDefault(v.Notes, "None")},
		{"Submitted on", v.SubmissionDate.In(loc).Format("Mon, 02 Jan 2006 15:04 MST")},
	}
}

// Compose builds the leader notification for a new visitor.
func Compose(v models.Visitor, loc *time.Location) Message {
	if loc == nil {
		loc = time.UTC
	}
	lines := visitorLines(v, loc)

	var text, src strings.Builder
	text.WriteString("A new visitor has submitted their information:\n\n")
	src.WriteString("A new visitor has submitted their information:\n\n")
	for _, l := range lines {
		fmt.Fprintf(&text, "%s: %s\n", l.label, l.value)
		fmt.Fprintf(&src, "- **%s:** %s\n", l.label, escapeMarkdown(l.value))
	}

	m := Message{
		Subject: "New Visitor: " + v.FullName,
		Text:    text.String(),
	}
	var html bytes.Buffer
	if err := md.Convert([]byte(src.String()), &html); err == nil {
		m.HTML = html.String()
	}
	return m
}

var mdEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`, "<", `\<`, ">", `\>`, "#", `\#`,
	"\n", " ",
)

func escapeMarkdown(s string) string {
	return mdEscaper.Replace(s)
}
