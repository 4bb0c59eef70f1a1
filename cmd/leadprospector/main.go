package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"LeadProspector/internal/app"
	"LeadProspector/internal/config"
	"LeadProspector/internal/logging"
)

const usage = `usage: leadprospector <command> [args]

commands:
  survey                 run one crawl-and-review pass (default)
  schedule               run surveys on the configured cron schedule
  analyze <articleID>    deep-analyze one prospect
  analyze-all            deep-analyze every prospect
  counts                 print collection counts
  export                 write the kept collection as CSV to stdout
  criteria <feedback>    generate rubric criteria from feedback
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)
	application := app.New(cfg, logger)

	command := "survey"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	if err := run(ctx, application, command, os.Args[2:]); err != nil {
		logger.Error("application stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, application *app.Application, command string, args []string) error {
	switch command {
	case "survey":
		return application.RunSurvey(ctx)

	case "schedule":
		return application.RunScheduled(ctx)

	case "analyze":
		if len(args) == 0 {
			return fmt.Errorf("analyze requires an article id")
		}
		article, err := application.Analyze(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s  compatibility=%d  %s\n", article.ArticleID, article.Compatibility, article.Title)
		return nil

	case "analyze-all":
		return application.AnalyzeAll(ctx)

	case "counts":
		counts, err := application.Counts()
		if err != nil {
			return err
		}
		fmt.Printf("prospects=%d analyzed=%d kept=%d\n", counts.Prospects, counts.Analyzed, counts.Kept)
		return nil

	case "export":
		return application.ExportKept(os.Stdout)

	case "criteria":
		if len(args) == 0 {
			return fmt.Errorf("criteria requires feedback text")
		}
		generated, err := application.GenerateCriteria(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		for _, c := range generated {
			fmt.Println("* " + c.Criteria)
		}
		return nil

	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil

	default:
		fmt.Print(usage)
		return fmt.Errorf("unknown command %q", command)
	}
}
