package cli

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path"
	"time"

	log "github.com/sirupsen/logrus"
	urfave "github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/tapilab/featscale/pkg/config"
	"github.com/tapilab/featscale/pkg/data"
	"github.com/tapilab/featscale/pkg/logging"
)

const (
	name         = "featscale"
	appConfigKey = "app-config"

	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

var (
	version = "v0.0.1-default"
	commit  = ""
	date    = ""

	outputFormat = formatTable

	debugFlag = &urfave.BoolFlag{
		Name:  "debug",
		Usage: "Prints verbose logs (optional, default: false)",
	}

	dbFilePathFlag = &urfave.StringFlag{
		Name:  "db",
		Usage: "Path to the Sqlite corpus cache file (optional, defaults to $HOME/.featscale/data.db)",
	}

	formatFlag = &urfave.StringFlag{
		Name:  "format",
		Usage: "Output format [table, json, yaml]",
		Value: formatTable,
	}
)

// Execute creates and runs the CLI application.
func Execute() {
	initLogging(false)

	app := newApp()
	if err := app.Run(os.Args); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

type appConfig struct {
	Conf   *config.Config
	DBPath string
	Debug  bool
	DB     *sql.DB
}

func getConfig(c *urfave.Context) *appConfig {
	return c.App.Metadata[appConfigKey].(*appConfig)
}

func newApp() *urfave.App {
	return &urfave.App{
		Name:                 name,
		Version:              fmt.Sprintf("%s (%s - %s)", version, commit, date),
		Compiled:             time.Now(),
		EnableBashCompletion: true,
		HideHelpCommand:      true,
		Usage:                "Explore how feature scaling trades off against L2 regularization in logistic regression",
		Flags: []urfave.Flag{
			debugFlag,
			dbFilePathFlag,
			formatFlag,
		},
		Commands: []*urfave.Command{
			fetchCmd,
			runCmd,
			vocabCmd,
		},
		Before: func(c *urfave.Context) error {
			if c.Bool(debugFlag.Name) {
				initLogging(true)
			}

			switch f := c.String(formatFlag.Name); f {
			case formatYAML, "yml":
				outputFormat = formatYAML
			case formatJSON:
				outputFormat = formatJSON
			case formatTable, "":
				outputFormat = formatTable
			default:
				return fmt.Errorf("unknown output format: %s", f)
			}

			home, _, err := config.GetOrCreateHomeDir(name)
			if err != nil {
				return fmt.Errorf("resolving app home dir: %w", err)
			}

			conf, err := config.ReadOrCreate(home)
			if err != nil {
				return fmt.Errorf("reading config: %w", err)
			}

			dbPath := c.String(dbFilePathFlag.Name)
			if dbPath == "" {
				dbPath = path.Join(home, data.DataFileName)
			}

			if err := data.Init(dbPath); err != nil {
				return fmt.Errorf("initializing database: %w", err)
			}

			db, err := data.GetDB(dbPath)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}

			c.App.Metadata[appConfigKey] = &appConfig{
				Conf:   conf,
				DBPath: dbPath,
				Debug:  c.Bool(debugFlag.Name),
				DB:     db,
			}
			return nil
		},
		After: func(c *urfave.Context) error {
			if cfg, ok := c.App.Metadata[appConfigKey].(*appConfig); ok && cfg.DB != nil {
				cfg.DB.Close()
			}
			return nil
		},
	}
}

func initLogging(debug bool) {
	level := "info"
	if debug {
		level = "debug"
		log.SetLevel(log.DebugLevel)
	}
	log.SetOutput(os.Stderr)
	logging.SetDefaultCLILogger(level)
}

func encode(v any) error {
	if outputFormat == formatYAML {
		return yaml.NewEncoder(os.Stdout).Encode(v)
	}
	e := json.NewEncoder(os.Stdout)
	e.SetIndent("", "  ")
	return e.Encode(v)
}
