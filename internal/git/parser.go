package git

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// LogFormat renders one commit per line as hash|author|relative time|subject.
const LogFormat = "%h|%an|%cr|%s"

const fieldSeparator = "|"

// LogArgs returns the arguments for one page of history pinned to rev.
func LogArgs(rev string, skip, maxCount int) []string {
	return []string{
		"log",
		"--no-color",
		"--format=" + LogFormat,
		"--skip=" + strconv.Itoa(skip),
		"--max-count=" + strconv.Itoa(maxCount),
		rev,
	}
}

// CountArgs returns the arguments for the full history of rev, one line per
// commit, suitable for piping into a line counter.
func CountArgs(rev string) []string {
	return []string{"log", "--no-color", "--format=" + LogFormat, rev}
}

// ParseLogLine parses one line of LogFormat output.
// The subject is the last field, so any further separators stay in it.
func ParseLogLine(line string) (Commit, bool) {
	parts := strings.SplitN(line, fieldSeparator, 4)
	if len(parts) != 4 || parts[0] == "" {
		return Commit{}, false
	}
	return Commit{
		ShortHash:    parts[0],
		Author:       parts[1],
		RelativeTime: parts[2],
		Subject:      parts[3],
	}, true
}

// ParseLog parses LogFormat output. Empty lines are skipped and malformed lines
// are dropped, reported through onMalformed when it is not nil.
func ParseLog(output string, onMalformed func(lineNum int, line string)) []Commit {
	lines := strings.Split(output, "\n")
	commits := make([]Commit, 0, len(lines))

	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}

		c, ok := ParseLogLine(line)
		if !ok {
			if onMalformed != nil {
				onMalformed(i+1, line)
			}
			continue
		}
		commits = append(commits, c)
	}

	return commits
}

// ParseCount extracts the trailing integer from line counter output such as
// "42\n" or "      42".
func ParseCount(output string) (int, error) {
	fields := strings.Fields(output)
	if len(fields) == 0 {
		return 0, errors.New("empty count output")
	}
	count, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return 0, errors.Wrapf(err, "parse count %q", strings.TrimSpace(output))
	}
	if count < 0 {
		return 0, errors.Newf("negative count %d", count)
	}
	return count, nil
}
