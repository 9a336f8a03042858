package source

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/flanksource/commons/logger"
	"github.com/flanksource/decks/cache"
	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"
)

// Document is the plain text of a PDF, one page after another.
type Document struct {
	Path  string `json:"path" yaml:"path"`
	Pages int    `json:"pages" yaml:"pages"`
	Text  string `json:"text" yaml:"text"`
}

// Extractor reads PDF text, reusing earlier extractions of identical files
// when a cache is set.
type Extractor struct {
	Cache *cache.Cache
}

// Extract reads every page of a PDF without caching.
func Extract(path string) (*Document, error) {
	return (&Extractor{}).Extract(path)
}

func (e *Extractor) Extract(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	key := cache.Key(data)
	if e.Cache != nil {
		if entry, err := e.Cache.Get(key); err == nil {
			return &Document{Path: path, Pages: entry.Pages, Text: entry.Text}, nil
		}
	}

	start := time.Now()
	doc, err := parse(path, data)
	if err != nil {
		return nil, err
	}
	logger.Debugf("extracted %d pages from %s in %s", doc.Pages, path, time.Since(start))

	if e.Cache != nil {
		err := e.Cache.Set(&cache.Entry{
			CacheKey:   key,
			Path:       path,
			Pages:      doc.Pages,
			Text:       doc.Text,
			SizeBytes:  int64(len(data)),
			DurationMS: time.Since(start).Milliseconds(),
		})
		if err != nil {
			logger.Warnf("failed to cache %s: %v", path, err)
		}
	}
	return doc, nil
}

func parse(path string, data []byte) (doc *Document, err error) {
	// the pdf reader panics on some malformed cross reference tables
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to parse %s: %v", path, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF %s: %w", path, err)
	}

	var text strings.Builder
	pages := r.NumPage()
	for i := 1; i <= pages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		content, err := p.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to read page %d of %s: %w", i, path, err)
		}
		text.WriteString(content)
		text.WriteString("\n")
	}
	return &Document{Path: path, Pages: pages, Text: clean(text.String())}, nil
}

// clean composes Hangul syllables and drops control characters that cannot
// be stored in slide XML.
func clean(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) || r == unicode.ReplacementChar {
			return -1
		}
		return r
	}, text)
	return norm.NFC.String(text)
}
