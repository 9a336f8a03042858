package formatters

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Formats lists every outline format, the first one is the default.
var Formats = []string{"pretty", "json", "yaml", "csv", "markdown", "html", "xlsx", "pdf"}

// FormatOptions contains options for formatting operations
type FormatOptions struct {
	Format  string
	NoColor bool
	Output  string
	// Font is a TrueType font embedded in PDF handouts
	Font string

	// Format-specific boolean flags (mutually exclusive)
	JSON     bool
	YAML     bool
	CSV      bool
	Markdown bool
	Pretty   bool
	HTML     bool
	XLSX     bool
	PDF      bool
}

// BindPFlags adds formatting flags to the provided pflag set (for cobra)
func BindPFlags(flags *pflag.FlagSet, options *FormatOptions) {
	flags.StringVar(&options.Format, "format", "pretty", "Output format: pretty, json, yaml, csv, markdown, html, xlsx, pdf")
	flags.StringVarP(&options.Output, "output", "o", "", "Output file (optional, uses stdout if not specified)")
	flags.BoolVar(&options.NoColor, "no-color", false, "Disable colored output")
	flags.StringVar(&options.Font, "pdf-font", "", "TrueType font for PDF output, needed for Korean and Chinese text")

	// Format-specific flags (mutually exclusive)
	flags.BoolVar(&options.JSON, "json", false, "Output in JSON format")
	flags.BoolVar(&options.YAML, "yaml", false, "Output in YAML format")
	flags.BoolVar(&options.CSV, "csv", false, "Output in CSV format")
	flags.BoolVar(&options.Markdown, "markdown", false, "Output in Markdown format")
	flags.BoolVar(&options.Pretty, "pretty", false, "Output in pretty format (default)")
	flags.BoolVar(&options.HTML, "html", false, "Output in HTML format")
	flags.BoolVar(&options.XLSX, "xlsx", false, "Output as an Excel workbook")
	flags.BoolVar(&options.PDF, "pdf", false, "Output as a PDF handout")
}

// ResolveFormat resolves the output format from format-specific flags
func (options *FormatOptions) ResolveFormat() error {
	formatCount := 0
	selectedFormat := ""
	for format, set := range map[string]bool{
		"json":     options.JSON,
		"yaml":     options.YAML,
		"csv":      options.CSV,
		"markdown": options.Markdown,
		"pretty":   options.Pretty,
		"html":     options.HTML,
		"xlsx":     options.XLSX,
		"pdf":      options.PDF,
	} {
		if set {
			formatCount++
			selectedFormat = format
		}
	}

	// Check for mutual exclusivity
	if formatCount > 1 {
		return fmt.Errorf("multiple format flags specified; please use only one format flag")
	}
	if formatCount == 1 {
		options.Format = selectedFormat
	}
	if options.Format == "" {
		options.Format = Formats[0]
	}

	switch options.Format {
	case "yml":
		options.Format = "yaml"
	case "md":
		options.Format = "markdown"
	}
	for _, f := range Formats {
		if f == options.Format {
			return nil
		}
	}
	return fmt.Errorf("unsupported format: %s", options.Format)
}

// IsBinary reports whether the resolved format is not printable text.
func (options FormatOptions) IsBinary() bool {
	return options.Format == "xlsx" || options.Format == "pdf"
}
