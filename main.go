package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"go-leapchord/config"
	"go-leapchord/debug"
	"go-leapchord/engine"
	"go-leapchord/gesture"
	"go-leapchord/midi"
	"go-leapchord/source"
	"go-leapchord/theme"
	"go-leapchord/tui"
)

type flags struct {
	config     string
	source     string
	serial     string
	baud       int
	port       string
	channel    int
	record     string
	steps      int
	headless   bool
	debugPath  string
	logLevel   string
	listSerial bool
	saveConfig bool
}

func parseFlags() (flags, map[string]bool) {
	var f flags
	flag.StringVar(&f.config, "config", "", "config file (default ~/.config/go-leapchord/config.json)")
	flag.StringVar(&f.source, "source", "", "sample source: serial, stdin or sweep")
	flag.StringVar(&f.serial, "serial", "", "serial device of the tracker bridge")
	flag.IntVar(&f.baud, "baud", 0, "serial baud rate")
	flag.StringVar(&f.port, "port", "", `MIDI output port (substring), "none" to discard`)
	flag.IntVar(&f.channel, "channel", 0, "MIDI channel 1-16")
	flag.StringVar(&f.record, "record", "", "also write played MIDI to this .mid file")
	flag.IntVar(&f.steps, "steps", 0, "stop after this many samples (0 = run until stopped)")
	flag.BoolVar(&f.headless, "headless", false, "run without the dashboard, logging to stderr")
	flag.StringVar(&f.debugPath, "debug", "", "write debug log to this file")
	flag.StringVar(&f.logLevel, "log", "info", "stderr log level in headless mode")
	flag.BoolVar(&f.listSerial, "list-serial", false, "list serial ports and exit")
	flag.BoolVar(&f.saveConfig, "save-config", false, "write the effective config (file + flags) and exit")
	flag.Parse()

	set := map[string]bool{}
	flag.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	return f, set
}

func loadConfig(f flags, set map[string]bool) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if f.config != "" {
		cfg, err = config.LoadFile(f.config)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if set["source"] {
		cfg.Source.Kind = config.SourceKind(strings.ToLower(f.source))
	}
	if set["serial"] {
		cfg.Source.SerialPort = f.serial
	}
	if set["baud"] {
		cfg.Source.Baud = f.baud
	}
	if set["port"] {
		cfg.MIDI.PortName = f.port
	}
	if set["channel"] {
		cfg.MIDI.Channel = f.channel
	}
	if set["record"] {
		cfg.MIDI.Record = f.record
	}
	return cfg, cfg.Validate()
}

func openSource(cfg *config.Config) (gesture.SampleSource, func() error, error) {
	switch cfg.Source.Kind {
	case config.SourceSerial:
		ls, err := source.OpenSerial(cfg.Source.SerialPort, cfg.Source.Baud, time.Now)
		if err != nil {
			return nil, nil, err
		}
		return ls, ls.Close, nil
	case config.SourceStdin:
		ls := source.NewLineSource(os.Stdin, time.Now)
		return ls, func() error { return nil }, nil
	default:
		sw := source.NewSweep(cfg.Tracking.X, cfg.Tracking.Y, cfg.Tracking.Z,
			cfg.Source.SweepSteps, cfg.SweepInterval(), time.Now())
		sw.Realtime = true
		return sw, func() error { return nil }, nil
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func main() {
	f, set := parseFlags()

	switch {
	case f.debugPath != "":
		if err := debug.Enable(f.debugPath); err != nil {
			fail("debug log: %v", err)
		}
		defer debug.Disable()
	case f.headless:
		if err := debug.EnableStderr(f.logLevel); err != nil {
			fail("%v", err)
		}
	}

	if f.listSerial {
		ports, err := source.SerialPorts()
		if err != nil {
			fail("%v", err)
		}
		for _, p := range ports {
			fmt.Println(p)
		}
		return
	}

	cfg, err := loadConfig(f, set)
	if err != nil {
		fail("config: %v", err)
	}

	if f.saveConfig {
		path := f.config
		if path == "" {
			err = cfg.Save()
			path, _ = config.ConfigPath()
		} else {
			err = cfg.SaveFile(path)
		}
		if err != nil {
			fail("save config: %v", err)
		}
		fmt.Println("config written to", path)
		return
	}

	palette, err := theme.LoadOrDefault(cfg.UI.Palette)
	if err != nil {
		fail("%v", err)
	}
	th := theme.New(palette)

	// MIDI output, optionally teed into a recording
	var sink midi.Sink = midi.Discard{}
	var port *midi.PortSink
	outName := "none"
	if !strings.EqualFold(cfg.MIDI.PortName, "none") {
		port, err = midi.OpenOut(cfg.MIDI.PortName)
		if err != nil {
			fail("midi: %v", err)
		}
		sink, outName = port, port.Name()
	}
	var rec *midi.Recorder
	if cfg.MIDI.Record != "" {
		rec = midi.NewRecorder(time.Now)
		sink = midi.Tee{sink, rec}
	}

	src, closeSource, err := openSource(cfg)
	if err != nil {
		fail("source: %v", err)
	}

	session, err := gesture.NewSession(cfg.Options(), sink, gesture.NopPointer{}, time.Now())
	if err != nil {
		closeSource()
		fail("%v", err)
	}
	eng := engine.New(src, session,
		engine.WithPollTimeout(cfg.PollTimeout()),
		engine.WithMaxSteps(f.steps),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	debug.Info("main", "starting",
		"source", cfg.Source.Kind, "output", outName, "channel", cfg.MIDI.Channel,
		"scale", strings.Join(midi.PitchNames(session.Scale()), " "))

	var runErr error
	if f.headless {
		runErr = eng.Run(ctx)
	} else {
		errCh := make(chan error, 1)
		go func() { errCh <- eng.Run(ctx) }()

		info := tui.Info{Source: string(cfg.Source.Kind), Output: outName}
		opts := []tea.ProgramOption{tea.WithAltScreen()}
		if cfg.Source.Kind == config.SourceStdin {
			// samples own stdin; keys come from the terminal
			opts = append(opts, tea.WithInputTTY())
		}
		p := tea.NewProgram(tui.NewModel(eng, th, info), opts...)
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		cancel()
		runErr = <-errCh
	}

	if err := closeSource(); err != nil {
		debug.Warn("main", "closing source", "err", err)
	}
	if rec != nil {
		if err := rec.WriteFile(cfg.MIDI.Record); err != nil {
			fmt.Fprintf(os.Stderr, "Error: recording: %v\n", err)
		} else {
			debug.Info("main", "recording written", "path", cfg.MIDI.Record, "events", rec.Events())
		}
	}

	snap := eng.Snapshot()
	fmt.Printf("%d samples, %d chords, %d instrument changes\n", snap.Steps, snap.Emissions, snap.ProgramChanges)

	if port != nil {
		port.Close()
	}
	midi.CloseDriver()
	if runErr != nil {
		debug.Logger().Error("engine stopped", "err", runErr)
		fail("%v", runErr)
	}
}
