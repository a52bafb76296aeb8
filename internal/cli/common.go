package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/mrlokans/madinah-companion/internal/api"
	"github.com/mrlokans/madinah-companion/internal/config"
	"github.com/mrlokans/madinah-companion/internal/entities"
)

// catalogFlags are shared by the commands that read the remote catalog.
type catalogFlags struct {
	BaseURL string
	Lang    string
	Timeout time.Duration
	Verbose bool

	out io.Writer
}

func (f *catalogFlags) register(fs *flag.FlagSet) {
	cfg := config.NewConfig()
	fs.StringVar(&f.BaseURL, "api", cfg.API.BaseURL, "Backend API base URL")
	fs.StringVar(&f.Lang, "lang", entities.LangEnglish, "Display language: ar or en")
	fs.DurationVar(&f.Timeout, "timeout", cfg.API.Timeout, "Request timeout")
	fs.BoolVar(&f.Verbose, "verbose", false, "Log backend failures")
}

func (f *catalogFlags) client() *api.Client {
	return api.NewClient(api.Config{BaseURL: f.BaseURL, Timeout: f.Timeout}, newLogger(f.Verbose))
}

func (f *catalogFlags) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), f.Timeout+5*time.Second)
}

func (f *catalogFlags) writer() io.Writer {
	if f.out == nil {
		return os.Stdout
	}
	return f.out
}

// newLogger returns a development logger when verbose and a no-op otherwise.
func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func usage(fs *flag.FlagSet, synopsis, description string, examples ...string) func() {
	return func() {
		fmt.Fprintf(os.Stderr, "Usage: %s %s\n\n", os.Args[0], synopsis)
		fmt.Fprintf(os.Stderr, "%s\n\n", description)
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		if len(examples) > 0 {
			fmt.Fprintf(os.Stderr, "\nExamples:\n")
			for _, example := range examples {
				fmt.Fprintf(os.Stderr, "  %s %s\n", os.Args[0], example)
			}
		}
	}
}
