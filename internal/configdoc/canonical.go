package configdoc

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrNoSectionHeader is returned when a key appears before the first
	// section header.
	ErrNoSectionHeader = errors.New("file contains no section headers")
	// ErrMalformedLine is returned for a line that is neither a section
	// header, a key nor a comment.
	ErrMalformedLine = errors.New("key-value delimiter not found")
)

const maxLineSize = 1 << 20

// canonical is a document rewritten into a form the ini parser reads without
// applying its own extensions. Comments, blank lines and continuation lines
// are dropped, values are emptied, every key name is quoted and every section
// header is replaced by its ordinal, which indexes headers.
type canonical struct {
	text    []byte
	headers []string
}

// canonicalize classifies the lines of r. A line indented deeper than the
// line that opened the current key continues that key's value, even after
// blank or comment lines. Section names are kept verbatim, including inner
// padding.
func canonicalize(r io.Reader) (*canonical, error) {
	var (
		c           canonical
		out         bytes.Buffer
		errs        *multierror.Error
		inSection   bool
		inKey       bool
		indentLevel int
		lineno      int
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		lineno++
		line := sc.Text()
		value := strings.TrimSpace(line)
		if value == "" || strings.HasPrefix(value, "#") || strings.HasPrefix(value, ";") {
			continue
		}

		indent := len(line) - len(strings.TrimLeftFunc(line, unicode.IsSpace))
		if inKey && indent > indentLevel {
			continue
		}
		indentLevel = indent

		if name, ok := sectionHeader(value); ok {
			out.WriteString("[" + strconv.Itoa(len(c.headers)) + "]\n")
			c.headers = append(c.headers, name)
			inSection = true
			inKey = false
			continue
		}
		if !inSection {
			return nil, fmt.Errorf("line %d: %w: %q", lineno, ErrNoSectionHeader, line)
		}

		key, ok := keyName(value)
		if !ok {
			errs = multierror.Append(errs, fmt.Errorf("line %d: %w: %q", lineno, ErrMalformedLine, value))
			continue
		}
		quoted, err := quoteKey(key)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("line %d: %w", lineno, err))
			continue
		}
		out.WriteString(quoted + " =\n")
		inKey = true
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if errs != nil {
		errs.ErrorFormat = joinErrors
		return nil, errs
	}

	c.text = out.Bytes()
	return &c, nil
}

// sectionHeader reports whether value is "[name]". The name runs up to the
// last closing bracket and must not be empty.
func sectionHeader(value string) (string, bool) {
	if value[0] != '[' {
		return "", false
	}
	end := strings.LastIndexByte(value, ']')
	if end < 2 {
		return "", false
	}
	return value[1:end], true
}

// keyName returns the text before the first "=" or ":".
func keyName(value string) (string, bool) {
	i := strings.IndexAny(value, "=:")
	if i < 0 {
		return "", false
	}
	key := strings.TrimRightFunc(value[:i], unicode.IsSpace)
	return key, key != ""
}

// quoteKey wraps key in quotes so quote characters that are part of the name
// survive parsing.
func quoteKey(key string) (string, error) {
	switch {
	case !strings.Contains(key, "`"):
		return "`" + key + "`", nil
	case !strings.Contains(key, `"`):
		return `"` + key + `"`, nil
	default:
		return "", fmt.Errorf("key %q mixes backticks and double quotes", key)
	}
}
