// Package cli implements the gh-pulls command tree on top of package pulls.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/cli/go-gh/v2/pkg/repository"
	"github.com/spf13/cobra"

	"github.com/ryo246912/gh-pulls/internal/config"
	"github.com/ryo246912/gh-pulls/internal/github"
	"github.com/ryo246912/gh-pulls/internal/logger"
	"github.com/ryo246912/gh-pulls/internal/service"
	"github.com/ryo246912/gh-pulls/internal/ui"
	"github.com/ryo246912/gh-pulls/pkg/connector"
	"github.com/ryo246912/gh-pulls/pkg/models"
	"github.com/ryo246912/gh-pulls/pkg/pulls"
)

// App holds the collaborators shared by every command. Zero fields are
// filled with the real implementations when the command runs.
type App struct {
	Stdout io.Writer
	Stderr io.Writer

	// Connector replaces the go-gh backed connector.
	Connector connector.Connector
	Searcher  github.PRSearcher
	Prompter  ui.Prompter
	Now       func() time.Time

	repoFlag   string
	configPath string
	debug      bool
	verbose    bool

	cfg    *config.Config
	repo   repository.Repository
	prs    *pulls.Service
	styler ui.Styler
	logger *slog.Logger
}

// New returns an App bound to the process stdio.
func New() *App {
	return &App{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Prompter: &ui.DefaultPrompter{},
		Now:      time.Now,
	}
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := New().RootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// RootCommand builds the command tree.
func (a *App) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "pulls",
		Short: "Work with GitHub pull requests",
		Long: `gh pulls lists, inspects and acts on the pull requests of a repository.

Commands that take a pull request number prompt with the open pull
requests assigned to you when the number is left out.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(a.Stdout)
	root.SetErr(a.Stderr)

	root.PersistentFlags().StringVarP(&a.repoFlag, "repo", "R", "", "Select another repository using the [HOST/]OWNER/REPO format")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file path (default ~/.config/gh-pulls/config.toml)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Log every API request")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log progress information")

	root.AddCommand(
		a.listCommand(),
		a.viewCommand(),
		a.diffCommand(),
		a.checksCommand(),
		a.filesCommand(),
		a.commitsCommand(),
		a.mergeCommand(),
		a.stateCommand("close", "Close a pull request", (*pulls.PullRequest).Close),
		a.stateCommand("reopen", "Reopen a closed pull request", (*pulls.PullRequest).Reopen),
		a.stateCommand("ready", "Mark a draft pull request as ready for review", (*pulls.PullRequest).MarkReady),
		a.stateCommand("draft", "Convert a pull request to draft", (*pulls.PullRequest).MarkDraft),
		a.reviewCommand(),
		a.commentCommand(),
		a.labelCommand(),
		a.assignCommand(),
		a.milestoneCommand(),
		a.milestonesCommand(),
		a.reassignCommand(),
	)
	return root
}

func (a *App) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg

	level := logger.ParseLevel(cfg.LogLevel)
	if a.debug || a.verbose {
		level = logger.Level(a.debug, a.verbose)
	}
	a.logger = logger.Initialize(a.Stderr, level)
	cmd.SetContext(logger.WithLogger(cmd.Context(), a.logger))

	repo, err := a.resolveRepository()
	if err != nil {
		return err
	}
	a.repo = repo
	a.styler = ui.Styler{Color: cfg.Color && ui.IsTerminal(a.Stdout)}
	if a.Now == nil {
		a.Now = time.Now
	}
	if a.Prompter == nil {
		a.Prompter = &ui.DefaultPrompter{}
	}

	conn := a.Connector
	if conn == nil {
		conn, err = connector.NewHTTPConnector(connector.Options{Host: repo.Host, Logger: a.logger})
		if err != nil {
			return err
		}
	}
	a.prs = pulls.New(conn, pulls.WithLogger(a.logger), pulls.WithMaxPages(cfg.MaxPages))

	logger.Debug(cmd.Context(), "configured", "repo", a.fullName(), "host", repo.Host, "config", cfg.ConfigPath)
	return nil
}

// resolveRepository picks the --repo flag, then the configured repo, then
// the repository of the current directory.
func (a *App) resolveRepository() (repository.Repository, error) {
	name := a.repoFlag
	if name == "" {
		name = a.cfg.Repo
	}
	if name == "" {
		repo, err := repository.Current()
		if err != nil {
			return repository.Repository{}, fmt.Errorf("failed to get current repository: %w", err)
		}
		return repo, nil
	}

	var (
		repo repository.Repository
		err  error
	)
	if a.cfg.Host != "" {
		repo, err = repository.ParseWithHost(name, a.cfg.Host)
	} else {
		repo, err = repository.Parse(name)
	}
	if err != nil {
		return repository.Repository{}, fmt.Errorf("invalid repository %q: %w", name, err)
	}
	return repo, nil
}

func (a *App) fullName() string {
	return a.repo.Owner + "/" + a.repo.Name
}

// RepositoryAdapter adapts repository.Repository to github.RepositoryInfo
type RepositoryAdapter struct {
	repo repository.Repository
}

func (r *RepositoryAdapter) GetOwner() string {
	return r.repo.Owner
}

func (r *RepositoryAdapter) GetName() string {
	return r.repo.Name
}

// searcher returns the GraphQL search client, creating it on first use.
func (a *App) searcher() (github.PRSearcher, error) {
	if a.Searcher != nil {
		return a.Searcher, nil
	}
	client, err := github.NewClient(a.repo.Host)
	if err != nil {
		return nil, err
	}
	a.Searcher = client
	return client, nil
}

// prNumber reads the pull request number from args or prompts for it.
func (a *App) prNumber(ctx context.Context, args []string) (int, error) {
	var searcher github.PRSearcher
	if len(args) == 0 {
		var err error
		if searcher, err = a.searcher(); err != nil {
			return 0, err
		}
	}
	return service.NewPicker(searcher, &RepositoryAdapter{repo: a.repo}, a.Prompter).PRNumber(ctx, args)
}

// bind resolves the pull request number without fetching it, for actions
// that only need the number.
func (a *App) bind(ctx context.Context, args []string) (*pulls.PullRequest, error) {
	number, err := a.prNumber(ctx, args)
	if err != nil {
		return nil, err
	}
	return a.prs.Wrap(a.fullName(), models.PullRequest{Number: number})
}

// fetch resolves and fetches the pull request.
func (a *App) fetch(ctx context.Context, args []string) (*pulls.PullRequest, error) {
	number, err := a.prNumber(ctx, args)
	if err != nil {
		return nil, err
	}
	return a.prs.Find(ctx, a.fullName(), number)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.Stdout, format, args...)
}
