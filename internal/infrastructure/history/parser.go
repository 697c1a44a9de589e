package history

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/doeshing/cmdmenu/internal/domain"
)

// zsh extended history lines look like ": 1700000000:0;git status".
var zshExtendedRe = regexp.MustCompile(`^: (\d+):(\d+);(.*)$`)

var spaceRunRe = regexp.MustCompile(`[ \t]+`)

// parseZsh handles both plain and extended zsh history. A trailing backslash
// joins physical lines into one logical multi-line command, with the newline
// kept so re-execution stays faithful.
func parseZsh(text string) domain.ParseOutcome {
	var out domain.ParseOutcome
	lines := strings.Split(text, "\n")
	for i := 0; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		var command string
		var ts time.Time
		if strings.HasPrefix(line, ":") {
			m := zshExtendedRe.FindStringSubmatch(line)
			if m == nil {
				out.Anomalies++
				continue
			}
			if epoch, err := strconv.ParseInt(m[1], 10, 64); err == nil {
				ts = time.Unix(epoch, 0)
			}
			command = m[3]
		} else {
			command = line
		}

		// Continuation: a trailing backslash pulls in the next physical line.
		for strings.HasSuffix(command, "\\") && i+1 < len(lines) {
			i++
			command = strings.TrimSuffix(command, "\\") + "\n" + strings.TrimRight(lines[i], "\r")
		}

		appendRecord(&out, command, ts)
	}
	return out
}

// parseBash handles one command per line; "#<epoch>" comment lines attach a
// timestamp to the following command (HISTTIMEFORMAT convention).
func parseBash(text string) domain.ParseOutcome {
	var out domain.ParseOutcome
	var pending time.Time
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			if epoch, err := strconv.ParseInt(trimmed[1:], 10, 64); err == nil {
				pending = time.Unix(epoch, 0)
			}
			continue
		}
		appendRecord(&out, line, pending)
		pending = time.Time{}
	}
	return out
}

// parseFish decodes fish's structured history: "- cmd:" opens a record and
// "when:" carries its timestamp. Unrelated keys (paths blocks) are skipped;
// anything else inside the file is a non-fatal anomaly.
func parseFish(text string) domain.ParseOutcome {
	var out domain.ParseOutcome
	var current string
	var currentTS time.Time
	var open bool

	flush := func() {
		if open {
			appendRecord(&out, current, currentTS)
		}
		current, currentTS, open = "", time.Time{}, false
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			continue
		case strings.HasPrefix(trimmed, "- cmd:"):
			flush()
			current = unescapeFish(strings.TrimSpace(strings.TrimPrefix(trimmed, "- cmd:")))
			open = true
		case strings.HasPrefix(trimmed, "when:"), strings.HasPrefix(trimmed, "- when:"):
			if !open {
				out.Anomalies++
				continue
			}
			value := strings.TrimSpace(trimmed[strings.Index(trimmed, "when:")+len("when:"):])
			if epoch, err := strconv.ParseInt(value, 10, 64); err == nil {
				currentTS = time.Unix(epoch, 0)
			} else {
				out.Anomalies++
			}
		case strings.HasPrefix(trimmed, "paths:"), strings.HasPrefix(trimmed, "- ") && open:
			// paths block entries, irrelevant here
		default:
			out.Anomalies++
		}
	}
	flush()
	return out
}

// unescapeFish reverses fish's backslash encoding of newlines inside stored
// commands.
func unescapeFish(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				b.WriteByte('\n')
				i++
				continue
			case '\\':
				b.WriteByte('\\')
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// appendRecord normalizes the command and keeps it when non-empty.
func appendRecord(out *domain.ParseOutcome, command string, ts time.Time) {
	normalized := Normalize(command)
	if normalized == "" {
		return
	}
	out.Records = append(out.Records, domain.HistoryRecord{Command: normalized, Timestamp: ts})
}

// Normalize trims the command, strips a leading "sudo " and collapses runs of
// spaces on single-line commands. Multi-line text is kept verbatim so that
// re-execution is faithful. Results shorter than MinCommandLength are dropped
// (returned as "").
func Normalize(command string) string {
	command = strings.TrimSpace(command)
	command = strings.TrimPrefix(command, "sudo ")
	command = strings.TrimSpace(command)
	if !strings.Contains(command, "\n") {
		command = spaceRunRe.ReplaceAllString(command, " ")
	}
	if len(command) < domain.MinCommandLength {
		return ""
	}
	return command
}
