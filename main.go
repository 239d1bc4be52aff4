package main

import (
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"

	"github.com/llehouerou/wavenote/internal/config"
	"github.com/llehouerou/wavenote/internal/errmsg"
	"github.com/llehouerou/wavenote/internal/icons"
	"github.com/llehouerou/wavenote/internal/logger"
	"github.com/llehouerou/wavenote/internal/mpris"
	"github.com/llehouerou/wavenote/internal/playback"
	"github.com/llehouerou/wavenote/internal/player"
	"github.com/llehouerou/wavenote/internal/state"
	"github.com/llehouerou/wavenote/internal/stderr"
	"github.com/llehouerou/wavenote/internal/tags"
	"github.com/llehouerou/wavenote/internal/ui/audiocontrol"
)

var (
	app = kingpin.New("wavenote", "Terminal player for short audio messages.")

	autoPlay    = app.Flag("autoplay", "Start playing as soon as the audio is ready.").IsSetByUser(&autoPlaySet).Bool()
	mimeType    = app.Flag("type", "MIME type of the source (e.g. audio/flac).").Short('t').String()
	caption     = app.Flag("caption", "Text shown below the controls. Defaults to the file tags or name.").Short('c').String()
	iconStyle   = app.Flag("icons", "Glyph style.").Enum("nerd", "unicode", "none")
	configPath  = app.Flag("config", "Configuration file.").PlaceHolder("PATH").String()
	logLevel    = app.Flag("log-level", "Log level.").Enum("trace", "debug", "info", "warn", "error", "disabled")
	noMPRIS     = app.Flag("no-mpris", "Do not register media key controls on the session bus.").Bool()
	noHistory   = app.Flag("no-history", "Do not record which notes were heard.").Bool()
	sourceValue = app.Arg("source", "Path or URL of the audio message.").String()

	autoPlaySet bool
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))

	if err := run(); err != nil {
		stderr.WriteOriginal(errmsg.Format(errmsg.OpInitialize, err) + "\n")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return errors.Wrap(err, string(errmsg.OpConfigLoad))
	}
	applyFlags(cfg)

	closer, err := initLogging(cfg)
	if err != nil {
		return errors.Wrap(err, string(errmsg.OpLogOpen))
	}
	defer closer.Close()

	if cfg.Log.Output != logger.OutputStderr {
		if err := stderr.Start(); err != nil {
			log.Warn().Err(err).Msg("stderr capture unavailable")
		} else {
			defer stderr.Stop()
			go stderr.Forward(stderr.Messages, log.Logger)
		}
	}

	icons.Init(cfg.Icons)

	mime := *mimeType
	if mime == "" {
		mime = cfg.DefaultMIMEType
	}
	src := player.NewSource(*sourceValue, mime)

	el := player.NewBeepElement(
		player.WithTimeUpdateInterval(cfg.TimeUpdateInterval()),
		player.WithVolume(cfg.Volume),
	)
	initial := captionFor(src)
	ctrl := playback.New(player.NewBinding(el), playback.WithCaption(initial))
	describe := func(s player.Source) string {
		if s.Equal(src) {
			return initial
		}
		return sourceCaption(s)
	}
	go logEvents(ctrl.Watch())

	var heard func(player.Source) bool
	if cfg.History {
		if store, err := openState(cfg); err != nil {
			log.Warn().Msg(errmsg.Format(errmsg.OpStateOpen, err))
		} else {
			defer store.Close()
			go state.Track(store, ctrl.Watch())
			heard = func(s player.Source) bool {
				l, err := store.Listen(s)
				if err != nil {
					log.Warn().Err(err).Str("source", s.String()).Msg("read listen")
				}
				return l.Heard()
			}
		}
	}

	// Subscribed before Mount so the adapter sees the mounted source.
	var remoteSub *playback.Subscription
	if cfg.MPRIS {
		remoteSub = ctrl.Watch()
	}

	log.Info().
		Str("source", src.String()).
		Bool("autoplay", cfg.AutoPlay).
		Msg("starting")
	ctrl.Mount(src, cfg.AutoPlay)

	m := audiocontrol.New(ctrl, audiocontrol.Options{
		SeekStep: cfg.SeekStep(),
		Focused:  true,
		Describe: describe,
		Heard:    heard,
	})
	p := tea.NewProgram(m, tea.WithMouseCellMotion())

	if cfg.MPRIS {
		remote, err := mpris.New(remoteSub, func(msg audiocontrol.RemoteMsg) { p.Send(msg) }, describe)
		if err != nil {
			log.Warn().Err(err).Msg("media keys unavailable")
		} else {
			defer remote.Close()
		}
	}

	_, runErr := p.Run()

	if err := ctrl.Unmount(); err != nil {
		log.Warn().Err(err).Msg("unmount")
	}
	if runErr != nil {
		return errors.Wrap(runErr, "run program")
	}
	return nil
}

// applyFlags lets command line flags override the loaded configuration.
func applyFlags(cfg *config.Config) {
	if autoPlaySet {
		cfg.AutoPlay = *autoPlay
	}
	if *iconStyle != "" {
		cfg.Icons = *iconStyle
	}
	if *noHistory {
		cfg.History = false
	}
	if *noMPRIS {
		cfg.MPRIS = false
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
}

func initLogging(cfg *config.Config) (io.Closer, error) {
	lc := logger.Config{Level: cfg.Log.Level, Output: cfg.Log.Output}
	if cfg.Log.Output == logger.OutputFile {
		path, err := cfg.LogPath()
		if err != nil {
			return nil, err
		}
		lc.File = path
	}
	return logger.Init(lc)
}

func openState(cfg *config.Config) (*state.Manager, error) {
	path, err := state.DefaultPath()
	if err != nil {
		return nil, err
	}
	return state.Open(path, cfg.HistoryKeep)
}

func captionFor(src player.Source) string {
	if *caption != "" {
		return *caption
	}
	return sourceCaption(src)
}

// sourceCaption reads tags of local files and falls back to the source name.
func sourceCaption(src player.Source) string {
	if path, ok := src.LocalPath(); ok {
		return tags.Caption(path)
	}
	return src.Name()
}

func logEvents(sub *playback.Subscription) {
	for {
		select {
		case <-sub.Done:
			return
		case e := <-sub.StateChanged:
			if e.PhaseChanged() {
				log.Debug().
					Stringer("from", e.Previous.Phase).
					Stringer("to", e.Current.Phase).
					Dur("position", e.Current.Position).
					Msg("phase changed")
			}
		case e := <-sub.Error:
			log.Info().Err(e.Err).Str("op", e.Operation).Str("source", e.Source.Name()).Msg("surfaced error")
		}
	}
}
