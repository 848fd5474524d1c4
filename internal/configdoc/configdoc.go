// Package configdoc parses INI configuration files into an ordered document of
// sections and key names.
//
// In the accepted dialect key names are case-folded, "=" and ":" both
// separate keys from values, indented lines continue the previous value, and
// duplicate sections or keys are rejected. Every key must follow a section
// header. Keys of the [DEFAULT] section are inherited by every other section.
package configdoc

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
	"gopkg.in/ini.v1"
)

// DefaultSection is the name of the section whose keys every other section
// inherits. It never appears in Document.Sections.
const DefaultSection = "DEFAULT"

// Stdin is the path that makes Load read from standard input.
const Stdin = "-"

// Document is a parsed configuration file. It is not modified after Parse
// returns.
type Document struct {
	Sections []Section
}

// Section is a named block of keys, in file order.
type Section struct {
	Name string
	Keys []string
}

// NumKeys returns the total number of keys over all sections.
func (d *Document) NumKeys() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Keys)
	}
	return n
}

type options struct {
	log   *zap.Logger
	stdin io.Reader
}

// Option configures Load and Parse.
type Option func(*options)

// WithLogger makes the parser log debug statistics to l.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithStdin replaces os.Stdin as the source for the "-" path.
func WithStdin(r io.Reader) Option {
	return func(o *options) { o.stdin = r }
}

func buildOptions(opts []Option) options {
	o := options{log: zap.NewNop(), stdin: os.Stdin}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Load opens the file at path and parses it. The file is closed before Load
// returns. A path of "-" reads standard input, so a file literally named "-"
// has to be given as "./-".
func Load(path string, opts ...Option) (*Document, error) {
	o := buildOptions(opts)

	var (
		doc *Document
		err error
	)
	if path == Stdin {
		doc, err = Parse(o.stdin, opts...)
		if err != nil {
			return nil, fmt.Errorf("parse standard input: %w", err)
		}
	} else {
		doc, err = loadFile(path, opts)
		if err != nil {
			return nil, err
		}
	}

	o.log.Debug("configuration loaded",
		zap.String("path", path),
		zap.Int("sections", len(doc.Sections)),
		zap.Int("keys", doc.NumKeys()))
	return doc, nil
}

func loadFile(path string, opts []Option) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := Parse(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

// Parse reads INI text from r.
func Parse(r io.Reader, opts ...Option) (*Document, error) {
	o := buildOptions(opts)

	c, err := canonicalize(r)
	if err != nil {
		return nil, err
	}

	f, err := ini.LoadSources(ini.LoadOptions{
		InsensitiveKeys:            true,
		AllowNonUniqueSections:     true,
		AllowShadows:               true,
		AllowDuplicateShadowValues: true,
		KeyValueDelimiters:         "=",
	}, c.text)
	if err != nil {
		return nil, err
	}

	raw := f.Sections()
	o.log.Debug("ini parsed",
		zap.Int("headers", len(c.headers)),
		zap.Int("raw_sections", len(raw)))
	return build(raw, c.headers)
}

// build folds the parsed sections into a Document. Sections arrive named by
// their ordinal in headers; the parser's own implicit default section is
// always empty and skipped. Repeated [DEFAULT] blocks merge, any other
// repeated section is an error.
func build(raw []*ini.Section, headers []string) (*Document, error) {
	var (
		errs        *multierror.Error
		defaults    []string
		seenDefault = map[string]bool{}
		seen        = map[string]bool{}
		doc         = &Document{}
	)

	for _, sec := range raw {
		idx, err := strconv.Atoi(sec.Name())
		if err != nil || idx < 0 || idx >= len(headers) {
			continue
		}
		name := headers[idx]
		keys, dups := keyNames(sec)
		for _, k := range dups {
			errs = multierror.Append(errs, duplicateKeyError(name, k))
		}

		if name == DefaultSection {
			for _, k := range keys {
				if seenDefault[k] {
					errs = multierror.Append(errs, duplicateKeyError(name, k))
					continue
				}
				seenDefault[k] = true
				defaults = append(defaults, k)
			}
			continue
		}

		if seen[name] {
			errs = multierror.Append(errs, duplicateSectionError(name))
			continue
		}
		seen[name] = true
		doc.Sections = append(doc.Sections, Section{Name: name, Keys: keys})
	}

	if errs != nil {
		errs.ErrorFormat = joinErrors
		return nil, errs
	}

	if len(defaults) > 0 {
		for i := range doc.Sections {
			doc.Sections[i].Keys = inherit(doc.Sections[i].Keys, defaults)
		}
	}
	return doc, nil
}

// keyNames lists the keys of sec in order along with the names that occur
// more than once. The parser renames a key spelled "-" to "#<n>"; no other
// key can start with "#" since such a line is a comment.
func keyNames(sec *ini.Section) (keys, dups []string) {
	seen := map[string]bool{}
	for _, k := range sec.Keys() {
		name := k.Name()
		if strings.HasPrefix(name, "#") {
			name = "-"
		}
		if seen[name] || len(k.ValueWithShadows()) > 1 {
			dups = append(dups, name)
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		keys = append(keys, name)
	}
	return keys, dups
}

// inherit appends the default keys a section does not define itself.
func inherit(keys, defaults []string) []string {
	own := make(map[string]bool, len(keys))
	for _, k := range keys {
		own[k] = true
	}
	out := keys
	for _, k := range defaults {
		if !own[k] {
			out = append(out, k)
		}
	}
	return out
}

func joinErrors(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

func duplicateSectionError(section string) error {
	return fmt.Errorf("section %q already exists", section)
}

func duplicateKeyError(section, key string) error {
	return fmt.Errorf("option %q in section %q already exists", key, section)
}
