package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"hn-scraper/config"
	"hn-scraper/fetcher"
	"hn-scraper/output"
	"hn-scraper/scraper"

	"github.com/spf13/cobra"
)

type options struct {
	posts      int
	configPath string
	fixture    string
	verbose    bool
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command line and returns the process exit code
func execute(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "hn-scraper",
		Short: "Hacker News HTML -> JSON post scraper",
		Long: `hn-scraper downloads the Hacker News front page and prints its posts
as a JSON array on stdout.

Pipeline: fetch → parse → serialize`,
		Version:       config.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.verbose {
				log.SetOutput(stderr)
			} else {
				log.SetOutput(io.Discard)
			}

			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			return run(cfg, stdout)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.IntVar(&opts.posts, "posts", config.DefaultPosts, fmt.Sprintf("Number of posts to fetch between 0 & %d", config.MaxPosts))
	flags.StringVar(&opts.configPath, "config", "", "Path to YAML configuration file")
	flags.StringVar(&opts.fixture, "fixture", "", "Read the page from a local HTML file instead of the network")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log progress to stderr")
	flags.BoolP("version", "V", false, "Print version information and exit")

	return cmd
}

// loadConfig merges defaults, the optional config file and command line flags
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.GetDefaultConfig()
	if opts.configPath != "" {
		var err error
		cfg, err = config.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
		log.Printf("Loaded configuration from %s\n", opts.configPath)
	}

	if cmd.Flags().Changed("posts") {
		cfg.Posts = opts.posts
	}
	if opts.fixture != "" {
		cfg.Fetcher = config.FetcherFixture
		cfg.Fixture = opts.fixture
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newFetcher picks the Fetcher implementation named in the config.
// The returned func releases whatever the fetcher holds.
func newFetcher(cfg *config.Config) (fetcher.Fetcher, func(), error) {
	switch cfg.Fetcher {
	case config.FetcherFixture:
		return fetcher.NewFixtureFetcher(cfg.Fixture), func() {}, nil
	case config.FetcherBrowser:
		rf, err := fetcher.NewRodFetcher(cfg.UserAgent, cfg.Timeout)
		if err != nil {
			return nil, nil, err
		}
		return rf, func() {
			if err := rf.Close(); err != nil {
				log.Printf("Warning: Failed to close browser: %v\n", err)
			}
		}, nil
	default:
		return fetcher.NewCollyFetcher(cfg.UserAgent, cfg.Timeout), func() {}, nil
	}
}

// run fetches, parses and prints. Nothing reaches stdout unless every stage succeeds.
func run(cfg *config.Config, stdout io.Writer) error {
	f, closeFetcher, err := newFetcher(cfg)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	defer closeFetcher()

	posts, err := scraper.NewScraper(f).Scrape(cfg.URL, cfg.Posts)
	if err != nil {
		return err
	}

	return output.WriteJSON(stdout, posts)
}
