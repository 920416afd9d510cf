package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"mcq-generator/internal/adapter/exporter"
	"mcq-generator/internal/domain"
	"mcq-generator/internal/logger"
	"mcq-generator/internal/service"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// stdinName is the file argument that reads source text from standard input.
const stdinName = "-"

type options struct {
	Count       int
	Difficulty  string
	Title       string
	PDFPath     string // file for a single input, directory for several
	ExportDir   bool   // also save each PDF into export.dir
	Concurrency int
}

// fileResult is one line of output.
type fileResult struct {
	File   string                    `json:"file"`
	Result *service.GenerationResult `json:"result,omitempty"`
	PDF    string                    `json:"pdf,omitempty"`
	Error  *fileError                `json:"error,omitempty"`
}

type fileError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func toFileError(err error) *fileError {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return &fileError{Code: string(domainErr.Code), Message: domainErr.Message, Details: domainErr.Context}
	}
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		return &fileError{Code: string(domain.CodeValidation), Message: verrs.Error()}
	}
	return &fileError{Code: string(domain.CodeInternal), Message: err.Error()}
}

// runner processes input files with bounded concurrency.
type runner struct {
	generation service.GenerationService
	export     service.ExportService
	stdin      io.Reader
	out        io.Writer
}

// run writes one JSON line per file in argument order and reports how many
// files failed.
func (r *runner) run(ctx context.Context, opts options, files []string) (int, error) {
	if len(files) == 0 {
		return 0, errors.New("no input files")
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}

	var stdinText string
	for _, f := range files {
		if f == stdinName {
			data, err := io.ReadAll(r.stdin)
			if err != nil {
				return 0, fmt.Errorf("failed to read stdin: %w", err)
			}
			stdinText = string(data)
			break
		}
	}

	targets := make([]string, len(files))
	if opts.PDFPath != "" {
		if len(files) > 1 {
			if err := os.MkdirAll(opts.PDFPath, 0o755); err != nil {
				return 0, fmt.Errorf("failed to create %s: %w", opts.PDFPath, err)
			}
			for i, name := range pdfNames(files) {
				targets[i] = filepath.Join(opts.PDFPath, name)
			}
		} else {
			targets[0] = opts.PDFPath
		}
	}

	results := make([]fileResult, len(files))
	var (
		mu     sync.Mutex
		failed int
	)

	g := new(errgroup.Group)
	g.SetLimit(opts.Concurrency)
	for i, file := range files {
		g.Go(func() error {
			res := r.process(ctx, opts, file, stdinText, targets[i])
			results[i] = res
			if res.Error != nil {
				mu.Lock()
				failed++
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	for _, res := range results {
		if err := enc.Encode(res); err != nil {
			return failed, fmt.Errorf("failed to write result: %w", err)
		}
	}
	return failed, nil
}

// process handles one input. opts is a copy owned by this call. A non-empty
// pdfPath is where the rendered set is written.
func (r *runner) process(ctx context.Context, opts options, file, stdinText, pdfPath string) fileResult {
	l := logger.Get()
	res := fileResult{File: file}

	title := opts.Title
	if title == "" && file != stdinName {
		title = exporter.TitleFromFileName(file)
	}

	var (
		result *service.GenerationResult
		err    error
	)
	if file == stdinName {
		difficulty, perr := domain.ParseDifficulty(opts.Difficulty)
		if perr != nil {
			res.Error = toFileError(perr)
			return res
		}
		result, err = r.generation.GenerateFromText(ctx,
			service.Source{Name: "stdin", Title: title},
			domain.GenerationRequest{SourceText: stdinText, Count: opts.Count, Difficulty: difficulty})
	} else {
		result, err = r.generation.GenerateFromFile(ctx, service.FileInput{
			Path:       file,
			Name:       filepath.Base(file),
			Title:      title,
			Count:      opts.Count,
			Difficulty: opts.Difficulty,
		})
	}
	if err != nil {
		l.Warn("Generation failed", zap.String("file", file), zap.Error(err))
		res.Error = toFileError(err)
		return res
	}
	res.Result = result

	if pdfPath != "" {
		path, err := r.writePDF(ctx, pdfPath, title, result.Questions)
		if err != nil {
			res.Error = toFileError(err)
			return res
		}
		res.PDF = path
	}
	if opts.ExportDir {
		path, err := r.export.SaveToDir(ctx, title, result.Questions)
		if err != nil {
			res.Error = toFileError(err)
			return res
		}
		if res.PDF == "" {
			res.PDF = path
		}
	}
	return res
}

func (r *runner) writePDF(ctx context.Context, path, title string, set domain.QuestionSet) (string, error) {
	doc, err := r.export.Render(ctx, title, set)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, doc.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// pdfNames derives one PDF file name per input from the input's base name,
// suffixing repeats so no two inputs share an output file.
func pdfNames(files []string) []string {
	names := make([]string, len(files))
	used := make(map[string]bool, len(files))
	for i, file := range files {
		stem := "stdin"
		if file != stdinName {
			stem = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		}
		name := stem + ".pdf"
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s_%d.pdf", stem, n)
		}
		used[name] = true
		names[i] = name
	}
	return names
}
