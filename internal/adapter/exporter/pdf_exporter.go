package exporter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"mcq-generator/internal/domain"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const DefaultTitle = "Generated MCQs"

type Config struct {
	PageSize   string
	MarginsMM  float64
	FontFamily string
	// Dir receives files written by Export. Empty means os.TempDir().
	Dir string
}

type LineKind int

const (
	LineTitle LineKind = iota
	LineSummary
	LineQuestionHeading
	LineQuestionText
	LineOption
	LineExplanation
)

// Line is one rendered unit of the document, in output order.
type Line struct {
	Kind    LineKind
	Text    string
	Correct bool
}

// Layout produces the ordered document lines for set. Questions and options
// keep their positional order and option labels follow option indices.
func Layout(set domain.QuestionSet, title string) []Line {
	if strings.TrimSpace(title) == "" {
		title = DefaultTitle
	}
	lines := []Line{
		{Kind: LineTitle, Text: title},
		{Kind: LineSummary, Text: fmt.Sprintf("Total Questions: %d", len(set))},
	}
	for i, q := range set {
		lines = append(lines,
			Line{Kind: LineQuestionHeading, Text: fmt.Sprintf("Question %d:", i+1)},
			Line{Kind: LineQuestionText, Text: q.Question},
		)
		for j, opt := range q.Options {
			label := fmt.Sprintf("%c", 'A'+j)
			if j < len(domain.OptionLabels) {
				label = domain.OptionLabels[j]
			}
			text := fmt.Sprintf("%s) %s", label, opt.Text)
			if opt.IsCorrect {
				text += " (Correct)"
			}
			lines = append(lines, Line{Kind: LineOption, Text: text, Correct: opt.IsCorrect})
		}
		if strings.TrimSpace(q.Explanation) != "" {
			lines = append(lines, Line{Kind: LineExplanation, Text: "Explanation: " + q.Explanation})
		}
	}
	return lines
}

// PDFExporter renders question sets with fpdf core fonts.
type PDFExporter struct {
	cfg Config
}

func NewPDFExporter(cfg Config) *PDFExporter {
	if cfg.PageSize == "" {
		cfg.PageSize = "A4"
	}
	if cfg.FontFamily == "" {
		cfg.FontFamily = "Arial"
	}
	if cfg.MarginsMM <= 0 {
		cfg.MarginsMM = 15
	}
	if cfg.Dir == "" {
		cfg.Dir = os.TempDir()
	}
	return &PDFExporter{cfg: cfg}
}

func (p *PDFExporter) render(set domain.QuestionSet, title string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", p.cfg.PageSize, "")
	pdf.SetMargins(p.cfg.MarginsMM, p.cfg.MarginsMM, p.cfg.MarginsMM)
	pdf.SetAutoPageBreak(true, p.cfg.MarginsMM)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	lines := Layout(set, title)
	pdf.SetTitle(lines[0].Text, true)
	pdf.SetCreator("mcq-generator", false)
	pdf.AddPage()

	for _, line := range lines {
		switch line.Kind {
		case LineTitle:
			pdf.SetFont(p.cfg.FontFamily, "B", 18)
			pdf.CellFormat(0, 12, tr(line.Text), "", 1, "C", false, 0, "")
		case LineSummary:
			pdf.SetFont(p.cfg.FontFamily, "", 11)
			pdf.CellFormat(0, 8, tr(line.Text), "", 1, "C", false, 0, "")
			pdf.Ln(4)
		case LineQuestionHeading:
			pdf.Ln(3)
			pdf.SetFont(p.cfg.FontFamily, "B", 12)
			pdf.CellFormat(0, 8, tr(line.Text), "", 1, "L", false, 0, "")
		case LineQuestionText:
			pdf.SetFont(p.cfg.FontFamily, "", 12)
			pdf.MultiCell(0, 6, tr(line.Text), "", "L", false)
			pdf.Ln(1)
		case LineOption:
			style := ""
			if line.Correct {
				style = "B"
			}
			pdf.SetFont(p.cfg.FontFamily, style, 11)
			pdf.SetX(p.cfg.MarginsMM + 5)
			pdf.MultiCell(0, 6, tr(line.Text), "", "L", false)
		case LineExplanation:
			pdf.SetFont(p.cfg.FontFamily, "I", 10)
			pdf.MultiCell(0, 6, tr(line.Text), "", "L", false)
		}
	}
	return pdf
}

// Write renders the document into w.
func (p *PDFExporter) Write(w io.Writer, set domain.QuestionSet, title string) error {
	if err := p.render(set, title).Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// Export writes the document to a new file under the configured directory
// and returns its path.
func (p *PDFExporter) Export(set domain.QuestionSet, title string) (string, error) {
	if err := os.MkdirAll(p.cfg.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	stem := strings.TrimSuffix(DownloadName(title), ".pdf")
	tmp, err := os.CreateTemp(p.cfg.Dir, stem+"_*.pdf")
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	path := tmp.Name()
	tmp.Close()

	if err := p.render(set, title).OutputFileAndClose(path); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("render pdf: %w", err)
	}
	return path, nil
}

// DownloadName is the attachment file name for title: spaces become
// underscores and ".pdf" is appended. Path separators are removed.
func DownloadName(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultTitle
	}
	title = strings.NewReplacer("/", "", "\\", "", "\"", "").Replace(title)
	return strings.ReplaceAll(title, " ", "_") + ".pdf"
}

// TitleFromFileName derives a document title from an uploaded file name,
// e.g. "cell_biology-notes.pdf" becomes "Cell Biology Notes".
func TitleFromFileName(name string) string {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	stem = strings.Join(strings.FieldsFunc(stem, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	}), " ")
	if stem == "" {
		return DefaultTitle
	}
	return cases.Title(language.English).String(stem)
}

var _ domain.Exporter = (*PDFExporter)(nil)
