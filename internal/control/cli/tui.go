package cli

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ja-he/touchkey/internal/config"
	"github.com/ja-he/touchkey/internal/eventlog"
	"github.com/ja-he/touchkey/internal/tui"
)

// TuiCommand is the command `tui`, which starts the keyboard playground.
type TuiCommand struct {
	ConfigOpts

	LogOutputFile string `short:"l" long:"log-output-file" description:"specify a log output file (otherwise logs dropped)"`
	LogPretty     bool   `short:"p" long:"log-pretty" description:"prettify logs to file"`
	NoWatch       bool   `long:"no-watch" description:"do not reload the config file when it changes"`
}

// Execute executes the tui command.
func (command *TuiCommand) Execute(args []string) error {
	// set up stderr logger until TUI set up
	stderrLogger := log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// create TUI logger
	memoryLog := eventlog.NewWriter(eventlog.DefaultCapacity)
	var logWriter io.Writer
	if command.LogOutputFile != "" {
		var fileLogger io.Writer
		file, err := os.OpenFile(command.LogOutputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			stderrLogger.Fatal().Err(err).Str("file", command.LogOutputFile).Msg("could not open file for logging")
		}
		defer file.Close()
		if command.LogPretty {
			fileLogger = zerolog.ConsoleWriter{Out: file, NoColor: true}
		} else {
			fileLogger = file
		}
		logWriter = zerolog.MultiLevelWriter(fileLogger, memoryLog)
	} else {
		logWriter = memoryLog
	}
	tuiLogger := zerolog.New(logWriter).With().Timestamp().Logger()

	// temporarily log to both (in case the TUI doesn't get set we want the info
	// on the stderr logger, otherwise the TUI logger is relevant)
	log.Logger = log.Output(zerolog.MultiLevelWriter(stderrLogger, tuiLogger))

	configData, err := command.load()
	if err != nil {
		stderrLogger.Fatal().Err(err).Msg("can't load config")
	}

	screenHandler, err := tui.NewTUIScreenHandler()
	if err != nil {
		return err
	}
	defer screenHandler.Fini()

	playground, err := tui.NewPlayground(screenHandler, configData, memoryLog, tuiLogger)
	if err != nil {
		screenHandler.Fini()
		stderrLogger.Fatal().Err(err).Msg("can't set up playground")
	}

	// now that the screen is initialized, we'll always want the TUI logger, so
	// we're making it the global logger
	log.Logger = tuiLogger

	if !command.NoWatch {
		path, _ := command.path()
		watcher := config.NewWatcher(path, command.theme(), tuiLogger)
		watcher.OnChange(playground.NotifyConfigChanged)
		if err := watcher.Watch(); err != nil {
			log.Warn().Err(err).Msg("not watching config file")
		} else {
			defer watcher.Close()
		}
	}

	playground.Run()
	return nil
}
