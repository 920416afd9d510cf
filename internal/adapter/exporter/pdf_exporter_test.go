package exporter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"mcq-generator/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSet() domain.QuestionSet {
	return domain.QuestionSet{
		{
			Question: "Which organelle produces ATP?",
			Options: []domain.Option{
				{Text: "Ribosome"},
				{Text: "Mitochondria", IsCorrect: true},
				{Text: "Golgi apparatus"},
				{Text: "Nucleus"},
			},
			Explanation: "Mitochondria run cellular respiration.",
		},
		{
			Question: "What is H2O?",
			Options: []domain.Option{
				{Text: "Water", IsCorrect: true},
				{Text: "Salt"},
				{Text: "Sugar"},
				{Text: "Café crème"},
			},
		},
	}
}

func texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func TestLayout_PreservesOrderAndLabels(t *testing.T) {
	lines := Layout(sampleSet(), "Biology Quiz")

	assert.Equal(t, []string{
		"Biology Quiz",
		"Total Questions: 2",
		"Question 1:",
		"Which organelle produces ATP?",
		"A) Ribosome",
		"B) Mitochondria (Correct)",
		"C) Golgi apparatus",
		"D) Nucleus",
		"Explanation: Mitochondria run cellular respiration.",
		"Question 2:",
		"What is H2O?",
		"A) Water (Correct)",
		"B) Salt",
		"C) Sugar",
		"D) Café crème",
	}, texts(lines))

	assert.Equal(t, LineTitle, lines[0].Kind)
	assert.True(t, lines[5].Correct)
	assert.False(t, lines[4].Correct)
}

func TestLayout_DefaultTitleAndEmptySet(t *testing.T) {
	lines := Layout(nil, "  ")

	assert.Equal(t, []string{DefaultTitle, "Total Questions: 0"}, texts(lines))
}

func TestWrite_ProducesPDF(t *testing.T) {
	var buf bytes.Buffer

	err := NewPDFExporter(Config{}).Write(&buf, sampleSet(), "Biology Quiz")

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestExport_WritesFileInDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	e := NewPDFExporter(Config{Dir: dir, PageSize: "Letter", FontFamily: "Helvetica"})

	path, err := e.Export(sampleSet(), "Unit 3 Review")

	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.Contains(t, filepath.Base(path), "Unit_3_Review_")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestDownloadName(t *testing.T) {
	assert.Equal(t, "Generated_MCQs.pdf", DownloadName(""))
	assert.Equal(t, "Chapter_1_Quiz.pdf", DownloadName("Chapter 1 Quiz"))
	assert.Equal(t, "etcpasswd.pdf", DownloadName("etc/passwd"))
}

func TestTitleFromFileName(t *testing.T) {
	assert.Equal(t, "Cell Biology Notes", TitleFromFileName("/tmp/cell_biology-notes.pdf"))
	assert.Equal(t, "Lecture", TitleFromFileName("LECTURE.docx"))
	assert.Equal(t, DefaultTitle, TitleFromFileName(""))
}
