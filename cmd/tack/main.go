package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/evanschultz/tack/internal/adapters/storage/jsonfile"
	"github.com/evanschultz/tack/internal/adapters/storage/sqlite"
	"github.com/evanschultz/tack/internal/app"
	"github.com/evanschultz/tack/internal/config"
	"github.com/evanschultz/tack/internal/modal"
	"github.com/evanschultz/tack/internal/platform"
	"github.com/evanschultz/tack/internal/tui"
	"github.com/spf13/cobra"
)

// version is stamped at build time.
var version = "dev"

// program is the part of tea.Program the CLI depends on.
type program interface {
	Run() (tea.Model, error)
}

// programFactory builds the TUI program; tests swap it out.
var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m)
}

// executeCommand runs the root command; tests swap it for plain cobra execution.
var executeCommand = func(ctx context.Context, root *cobra.Command) error {
	return fang.Execute(ctx, root, fang.WithVersion(version))
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// run builds the command tree and executes it with args.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	root := newRootCommand(&cli{stdin: stdin, stdout: stdout, stderr: stderr})
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return executeCommand(ctx, root)
}

// cli carries global flags and IO for one invocation.
type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath string
	appName    string
	backend    string
	devMode    bool
}

// newRootCommand constructs the tack command tree.
func newRootCommand(c *cli) *cobra.Command {
	defaultDevMode := version == "dev"
	if envDev, ok := parseBoolEnv("TACK_DEV_MODE"); ok {
		defaultDevMode = envDev
	}
	defaultApp := platform.DefaultAppName
	if envApp := strings.TrimSpace(os.Getenv("TACK_APP_NAME")); envApp != "" {
		defaultApp = envApp
	}

	root := &cobra.Command{
		Use:           "tack [file]",
		Short:         "A terminal kanban board backed by a single file",
		Long:          "tack edits a kanban board stored as JSON (or in SQLite). Missing board files are created empty.",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBoard(cmd.Context(), args)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "path to config TOML")
	flags.StringVar(&c.appName, "app", defaultApp, "application name for config/data path resolution")
	flags.BoolVar(&c.devMode, "dev", defaultDevMode, "use dev mode paths (<app>-dev)")
	flags.StringVar(&c.backend, "backend", "", "board storage backend: json or sqlite")

	var title string
	newCmd := &cobra.Command{
		Use:   "new <file>",
		Short: "Create a new empty board file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runNew(cmd.Context(), args[0], title)
		},
	}
	newCmd.Flags().StringVar(&title, "title", "", "board title")

	root.AddCommand(
		newCmd,
		&cobra.Command{
			Use:   "paths",
			Short: "Print resolved config and data paths",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				return c.runPaths()
			},
		},
		&cobra.Command{
			Use:   "show [file]",
			Short: "Print a board as plain text",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.runShow(cmd.Context(), args)
			},
		},
	)
	return root
}

// session holds the resolved runtime state shared by commands.
type session struct {
	paths      platform.Paths
	configPath string
	cfg        config.Config
	logger     *runtimeLogger
}

// Close releases the logger.
func (s *session) Close() error {
	return s.logger.Close()
}

// openSession resolves paths, loads config, and builds the logger.
func (c *cli) openSession() (*session, error) {
	paths, err := platform.DefaultPaths(platform.Options{AppName: c.appName, DevMode: c.devMode})
	if err != nil {
		return nil, err
	}
	configPath := strings.TrimSpace(c.configPath)
	if configPath == "" {
		if envPath := strings.TrimSpace(os.Getenv("TACK_CONFIG")); envPath != "" {
			configPath = envPath
		} else {
			configPath = paths.ConfigPath
		}
	}

	cfg, err := config.Load(configPath, config.Default(paths.DBPath, paths.BoardPath))
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", configPath, err)
	}
	if backend := strings.TrimSpace(c.backend); backend != "" {
		cfg.Storage.Backend = config.Backend(strings.ToLower(backend))
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	logger, err := newRuntimeLogger(c.stderr, c.appName, c.devMode, cfg.Logging, time.Now)
	if err != nil {
		return nil, err
	}
	logger.Debug("session resolved", "config", configPath, "backend", string(cfg.Storage.Backend))
	return &session{paths: paths, configPath: configPath, cfg: cfg, logger: logger}, nil
}

// openStore constructs the configured persistence adapter.
func (s *session) openStore() (app.Store, func() error, error) {
	switch s.cfg.Storage.Backend {
	case config.BackendSQLite:
		repo, err := sqlite.Open(s.cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	default:
		return jsonfile.New(), func() error { return nil }, nil
	}
}

// boardPath returns the board location from args or the configured default.
func (s *session) boardPath(args []string) (string, bool) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return args[0], false
	}
	return s.cfg.Board.DefaultFile, true
}

// runBoard opens or creates a board and runs the TUI on it.
func (c *cli) runBoard(ctx context.Context, args []string) (err error) {
	s, err := c.openSession()
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, s.Close()) }()
	s.logger.SetConsoleEnabled(false)
	defer s.logger.SetConsoleEnabled(true)

	store, closeStore, err := s.openStore()
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, closeStore()) }()

	path, isDefault := s.boardPath(args)
	board, err := c.openOrCreate(ctx, s, store, path, s.cfg.Board.CreateMissingDirs || isDefault)
	if err != nil {
		return err
	}

	model := tui.NewModel(board,
		tui.WithDescriptionPreview(s.cfg.UI.ShowDescriptionPreview),
		tui.WithControllerOptions(
			modal.WithLogger(s.logger),
			modal.WithKeyConfig(toKeyConfig(s.cfg.Keys)),
		),
	)
	s.logger.Info("starting tui program loop", "path", path, "dev_log", s.logger.DevLogPath())
	_, runErr := programFactory(model).Run()
	if runErr != nil {
		s.logger.Error("tui program loop failed", "err", runErr)
		return fmt.Errorf("run tui program: %w", runErr)
	}
	s.logger.Info("tui program loop exited", "path", path)
	return nil
}

// runNew creates a new empty board and refuses to overwrite an existing one.
func (c *cli) runNew(ctx context.Context, path, title string) (err error) {
	s, err := c.openSession()
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, s.Close()) }()

	store, closeStore, err := s.openStore()
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, closeStore()) }()

	if s.cfg.Storage.Backend == config.BackendJSON {
		if err := c.ensureBoardDir(path, s.cfg.Board.CreateMissingDirs); err != nil {
			return err
		}
	}
	if _, err := app.Create(ctx, store, path, title); err != nil {
		return err
	}
	s.logger.Info("board created", "path", path, "title", title)
	_, _ = fmt.Fprintf(c.stdout, "created %s\n", path)
	return nil
}

// runPaths prints resolved locations.
func (c *cli) runPaths() (err error) {
	s, err := c.openSession()
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, s.Close()) }()

	_, _ = fmt.Fprintf(c.stdout, "app: %s\n", c.appName)
	_, _ = fmt.Fprintf(c.stdout, "dev_mode: %t\n", c.devMode)
	_, _ = fmt.Fprintf(c.stdout, "config: %s\n", s.configPath)
	_, _ = fmt.Fprintf(c.stdout, "data_dir: %s\n", s.paths.DataDir)
	_, _ = fmt.Fprintf(c.stdout, "db: %s\n", s.cfg.Storage.SQLitePath)
	_, _ = fmt.Fprintf(c.stdout, "board: %s\n", s.cfg.Board.DefaultFile)
	_, _ = fmt.Fprintf(c.stdout, "backend: %s\n", s.cfg.Storage.Backend)
	return nil
}

// runShow prints a board without opening the TUI.
func (c *cli) runShow(ctx context.Context, args []string) (err error) {
	s, err := c.openSession()
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, s.Close()) }()

	store, closeStore, err := s.openStore()
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, closeStore()) }()

	path, _ := s.boardPath(args)
	board, err := app.Open(ctx, store, path)
	if err != nil {
		return fmt.Errorf("open board: %w", err)
	}
	return writeBoard(c.stdout, board)
}

// writeBoard renders board as indented plain text.
func writeBoard(w io.Writer, board *app.Board) error {
	title := board.Title()
	if strings.TrimSpace(title) == "" {
		title = filepath.Base(board.Path())
	}
	var b strings.Builder
	b.WriteString(title + "\n")
	for _, col := range board.Columns() {
		fmt.Fprintf(&b, "\n%s (%d)\n", col.Title, col.Len())
		for _, row := range col.Rows {
			fmt.Fprintf(&b, "  - %s\n", row.Title)
			for _, line := range strings.Split(strings.TrimRight(row.Description, "\n"), "\n") {
				if line != "" {
					fmt.Fprintf(&b, "      %s\n", line)
				}
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// openOrCreate loads the board at path, creating an empty one when none exists.
func (c *cli) openOrCreate(ctx context.Context, s *session, store app.Store, path string, createMissingDirs bool) (*app.Board, error) {
	if s.cfg.Storage.Backend == config.BackendJSON {
		if err := c.ensureBoardDir(path, createMissingDirs); err != nil {
			return nil, err
		}
	}
	board, err := app.Open(ctx, store, path)
	switch {
	case err == nil:
		s.logger.Info("board opened", "path", path, "columns", len(board.Columns()))
		return board, nil
	case errors.Is(err, os.ErrNotExist):
		board, err = app.Create(ctx, store, path, "")
		if err != nil {
			return nil, err
		}
		s.logger.Info("board created", "path", path)
		return board, nil
	default:
		return nil, fmt.Errorf("open board: %w", err)
	}
}

// ensureBoardDir confirms and creates a missing board directory.
func (c *cli) ensureBoardDir(path string, createMissing bool) error {
	err := jsonfile.CheckDir(path)
	if err == nil || !errors.Is(err, app.ErrDirectoryMissing) {
		return err
	}
	if !createMissing {
		prompt := fmt.Sprintf("Create directory %s? [y/N] ", filepath.Dir(path))
		ok, promptErr := promptYesNo(bufio.NewReader(c.stdin), c.stdout, prompt, false)
		if promptErr != nil {
			return promptErr
		}
		if !ok {
			return err
		}
	}
	return jsonfile.EnsureDir(path)
}

// promptYesNo reads a y/n answer; empty input and EOF take the default.
func promptYesNo(reader *bufio.Reader, output io.Writer, prompt string, defaultYes bool) (bool, error) {
	for {
		value, err := readLine(reader, output, prompt)
		if errors.Is(err, io.EOF) {
			return defaultYes, nil
		}
		if err != nil {
			return false, err
		}
		switch strings.ToLower(value) {
		case "":
			return defaultYes, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			_, _ = fmt.Fprintln(output, "please answer y or n")
		}
	}
}

// readLine renders one prompt and returns the trimmed response.
func readLine(reader *bufio.Reader, output io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(output, prompt); err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}
	line, err := reader.ReadString('\n')
	switch {
	case err == nil:
		return strings.TrimSpace(line), nil
	case errors.Is(err, io.EOF):
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			return "", io.EOF
		}
		return trimmed, nil
	default:
		return "", fmt.Errorf("read prompt value: %w", err)
	}
}

// parseBoolEnv parses a boolean environment variable; ok is false when unset or invalid.
func parseBoolEnv(name string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

// toKeyConfig maps config key overrides onto controller bindings.
func toKeyConfig(cfg config.KeyConfig) modal.KeyConfig {
	return modal.KeyConfig{
		CreateRow:    cfg.CreateRow,
		EditRow:      cfg.EditRow,
		DeleteRow:    cfg.DeleteRow,
		CreateColumn: cfg.CreateColumn,
		EditColumn:   cfg.EditColumn,
		DeleteColumn: cfg.DeleteColumn,
		SubmitRow:    cfg.SubmitRow,
		Quit:         cfg.Quit,
		Yank:         cfg.Yank,
	}
}
