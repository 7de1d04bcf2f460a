// Command forecast prints the predicted consumption and the recommended par
// level for one input, either from local artifacts or from a running server.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/okian/parcast/internal/adapters/client"
	"github.com/okian/parcast/internal/adapters/http/api"
	app "github.com/okian/parcast/internal/app"
	"github.com/okian/parcast/internal/config"
	"github.com/okian/parcast/internal/domain/features"
	"github.com/okian/parcast/pkg/logger"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const defaultTimeout = 30 * time.Second

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			os.Stderr.WriteString("forecast failed: " + err.Error() + "\n")
		}
		cancel()
		os.Exit(exitCode(err))
	}
}

// exitCode returns 2 for usage errors and 1 otherwise.
func exitCode(err error) int {
	if errors.Is(err, flag.ErrHelp) || errors.Is(err, app.ErrInvalidInput) {
		return 2
	}
	return 1
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("forecast", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		in       features.Input
		url      = fs.String("url", "", "Base URL of a running server; local artifacts are used when empty")
		model    = fs.String("model", cfg.ModelPath, "Model artifact path")
		template = fs.String("template", cfg.TemplatePath, "Feature template path")
		asJSON   = fs.Bool("json", false, "Print the forecast as JSON")
		verbose  = fs.Bool("verbose", false, "Enable debug logging on stderr")
	)
	fs.StringVar(&in.Bar, "bar", "", "Bar name")
	fs.StringVar(&in.Brand, "brand", "", "Brand name")
	fs.StringVar(&in.Alcohol, "alcohol", "", "Alcohol type")
	fs.Float64Var(&in.OpeningBalance, "opening", 0, "Opening balance")
	fs.Float64Var(&in.Purchase, "purchase", 0, "Purchase")
	fs.Float64Var(&in.ClosingBalance, "closing", 0, "Closing balance")
	fs.IntVar(&in.DayOfWeek, "day", 0, "Day of week, 0 is Monday")
	fs.IntVar(&in.Month, "month", 1, "Month, 1-12")
	fs.IntVar(&in.Hour, "hour", 0, "Hour, 0-23")
	fs.Float64Var(&in.Lag1, "lag1", 0, "Previous period consumption")
	fs.Float64Var(&in.Lag2, "lag2", 0, "Consumption two periods ago")
	fs.Float64Var(&in.Roll3, "roll3", 0, "Three period rolling mean")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	if err := logger.InitWithOptions(logger.WithWriter(stderr)); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	_ = logger.SetLevelString(level)

	var deps api.Dependencies
	if *url != "" {
		deps = client.New(*url)
	} else {
		svc := app.New(
			app.WithArtifactPaths(*model, *template),
			app.WithVolumeUnit(cfg.VolumeUnit),
			app.WithLogger(logger.Named("forecast")),
		)
		if err := svc.Start(ctx); err != nil {
			return err
		}
		defer svc.Stop()
		deps = svc
	}

	res, err := deps.Forecast(ctx, in)
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)
	_, err = fmt.Fprint(stdout, p.Sprintf("Predicted consumption: %.2f %s\nRecommended par level: %d\n",
		res.Predicted, res.Unit, res.Recommended))
	return err
}
