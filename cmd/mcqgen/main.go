// Command mcqgen generates multiple-choice questions from local documents.
//
//	mcqgen -n 5 -difficulty medium [-pdf out.pdf] [-title T] file...
//
// A file argument of "-" reads source text from standard input. With
// -token SUBJECT it prints an API token signed with auth.jwt_secret instead.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mcq-generator/internal/app"
	"mcq-generator/internal/config"
	"mcq-generator/internal/logger"
	"mcq-generator/internal/service"

	"go.uber.org/zap"
)

func main() {
	var opts options
	flag.IntVar(&opts.Count, "n", 0, "number of questions per file (default from config)")
	flag.StringVar(&opts.Difficulty, "difficulty", "medium", "easy, medium or hard")
	flag.StringVar(&opts.Title, "title", "", "title for the question sets (default derived from the file name)")
	flag.StringVar(&opts.PDFPath, "pdf", "", "write a PDF to this path, or into this directory when several files are given")
	flag.BoolVar(&opts.ExportDir, "export", false, "also save each PDF into export.dir")
	flag.IntVar(&opts.Concurrency, "concurrency", 2, "number of files processed in parallel")
	configPath := flag.String("config", "", "path to config file (default: ./config.yaml)")
	tokenSubject := flag.String("token", "", "print an API access token for this subject and exit")
	tokenTTL := flag.Duration("token-ttl", 24*time.Hour, "lifetime of the token printed by -token")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] file...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadConfigFile(*configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *tokenSubject != "" {
		authService, err := service.NewAuthService(cfg.Auth.JWTSecret)
		if err != nil {
			l.Fatal("Cannot issue token", zap.Error(err))
		}
		token, err := authService.CreateJWT(ctx, *tokenSubject, *tokenTTL)
		if err != nil {
			l.Fatal("Failed to create token", zap.Error(err))
		}
		fmt.Println(token)
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	components, err := app.New(ctx, cfg)
	if err != nil {
		l.Fatal("Failed to initialize components", zap.Error(err))
	}

	r := &runner{
		generation: components.Generation,
		export:     components.Export,
		stdin:      os.Stdin,
		out:        os.Stdout,
	}
	failed, err := r.run(ctx, opts, flag.Args())
	components.Close()
	if err != nil {
		l.Error("mcqgen failed", zap.Error(err))
		os.Exit(1)
	}
	if failed > 0 {
		l.Warn("Some files failed", zap.Int("failed", failed), zap.Int("total", flag.NArg()))
		os.Exit(1)
	}
}
