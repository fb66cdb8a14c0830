// PlexAutoSkip Go - automatic intro/credit skipping and volume leveling for Plex

// SPDX-License-Identifier: AGPL-3.0-or-later


package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mdhiggins-go/plexautoskip-go/internal/alertlistener"
	"github.com/mdhiggins-go/plexautoskip-go/internal/binge"
	"github.com/mdhiggins-go/plexautoskip-go/internal/commander"
	"github.com/mdhiggins-go/plexautoskip-go/internal/config"
	"github.com/mdhiggins-go/plexautoskip-go/internal/customentries"
	"github.com/mdhiggins-go/plexautoskip-go/internal/logging"
	"github.com/mdhiggins-go/plexautoskip-go/internal/mediaserver"
	"github.com/mdhiggins-go/plexautoskip-go/internal/notify"
	"github.com/mdhiggins-go/plexautoskip-go/internal/skipengine"
	"github.com/mdhiggins-go/plexautoskip-go/internal/supervisor"
	"github.com/mdhiggins-go/plexautoskip-go/internal/supervisor/services"
)

func main() {
	var configPath string
	var metricsAddr string
	var notifyWebhook string
	flag.StringVar(&configPath, "config", "", "path to the INI config file (overrides PAS_CONFIG)")
	flag.StringVar(&metricsAddr, "metrics-addr", ":9090", "address the Prometheus /metrics endpoint listens on")
	flag.StringVar(&notifyWebhook, "notify-webhook", "", "webhook URL for fatal-condition operator notifications")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  levelFromVerbose(),
		Format: "",
	})

	logging.Info().Msg("starting skipper")

	if cfg.Plex.Token == "" {
		logging.Fatal().Msg("no Plex.tv token configured; authentication bootstrap is required at startup")
	}
	if cfg.Server.Address == "" {
		logging.Fatal().Msg("no Server.address configured")
	}

	baseURL := serverBaseURL(cfg)
	server := mediaserver.NewClient(baseURL, cfg.Plex.Token, cfg.Security.IgnoreCerts)

	notifier := notify.New(notifyWebhook)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	doc := loadCustomEntries(ctx, server, configPath)

	bingeTable := buildBingeTable(cfg)
	cmd := commander.New(server)
	settings := settingsFromConfig(cfg)
	engine := skipengine.New(server, cmd, doc, bingeTable, settings)

	listener := alertlistener.New(
		baseURL,
		cfg.Plex.Token,
		alertlistener.Options{IgnoreCerts: cfg.Security.IgnoreCerts},
		engine.HandleAlert,
		func(err error) {
			logging.Error().Err(err).Msg("alert listener error")
		},
	)

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to create supervisor tree")
	}
	tree.AddAlertService(serveFunc{name: "alert-listener", fn: listener.Run})
	tree.AddTickService(serveFunc{name: "tick-loop", fn: engine.Run})
	tree.AddCommandService(services.NewStartStopService("metrics-server", newMetricsServer(metricsAddr)))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("supervisor tree error")
			notifier.NotifyFatal(context.Background(), "supervisor_exit", err.Error())
		}
	}

	if unstopped, err := tree.UnstoppedServiceReport(); err == nil && len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("service failed to stop within timeout")
		}
	}

	logging.Info().Msg("skipper stopped")
}

// serveFunc adapts a func(context.Context) error — the shape Listener.Run
// and Engine.Run already have — to suture.Service; String names the service
// in suture's event logging.
type serveFunc struct {
	name string
	fn   func(context.Context) error
}

func (s serveFunc) String() string                 { return s.name }
func (s serveFunc) Serve(ctx context.Context) error { return s.fn(ctx) }

func levelFromVerbose() string {
	if config.Verbose() {
		return "trace"
	}
	return "info"
}

func serverBaseURL(cfg *config.Config) string {
	scheme := "http"
	if cfg.Server.SSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, cfg.Server.Address, cfg.Server.Port)
}

// customEntriesPath resolves custom.json alongside the config file, the
// original's convention of keeping both files in the same data directory.
func customEntriesPath(configPath string) string {
	if configPath == "" {
		configPath = os.Getenv(config.ConfigPathEnvVar)
	}
	if configPath == "" {
		configPath = config.DefaultConfigPath
	}
	return filepath.Join(filepath.Dir(configPath), "custom.json")
}

// loadCustomEntries reads custom.json and resolves any GUID-keyed
// identifiers to rating keys by walking the server's libraries, per
// §4.B: "the engine itself only calls convertToRatingKeys at startup."
func loadCustomEntries(ctx context.Context, server *mediaserver.Client, configPath string) *customentries.Document {
	path := customEntriesPath(configPath)
	doc, err := customentries.LoadFile(path)
	if err != nil {
		logging.Error().Err(err).Str("path", path).Msg("failed to load custom entries, continuing with defaults")
		doc, _ = customentries.Decode(nil)
	}

	if !doc.NeedsGUIDResolution() {
		return doc
	}

	sections, err := server.Sections(ctx)
	if err != nil {
		logging.Error().Err(err).Msg("failed to enumerate library sections for GUID resolution")
		return doc
	}
	sectionIDs := make([]string, 0, len(sections))
	for _, sec := range sections {
		sectionIDs = append(sectionIDs, sec.Key)
	}

	lookup, err := mediaserver.BuildGUIDLookup(ctx, server, sectionIDs)
	if err != nil {
		logging.Error().Err(err).Msg("failed to build GUID lookup, custom entries with GUID keys will be dropped")
		return doc
	}
	doc.ConvertToRatingKeys(lookup)
	return doc
}

func buildBingeTable(cfg *config.Config) *binge.Table {
	if cfg.Skip.Binge <= 0 {
		return nil
	}
	return binge.NewTable(cfg.Skip.Binge, cfg.Skip.BingeSafeTagsList(), cfg.Skip.BingeSameShowOnly)
}

func settingsFromConfig(cfg *config.Config) skipengine.Settings {
	return skipengine.Settings{
		LeftOffset:               int64(cfg.Offsets.Start),
		RightOffset:              int64(cfg.Offsets.End),
		Tags:                     lowercased(cfg.Skip.TagsList()),
		Mode:                     cfg.Skip.Mode,
		CommandDelay:             int64(cfg.Offsets.Command),
		VolumeLow:                cfg.Volume.Low,
		VolumeHigh:               cfg.Volume.High,
		SkipLastChapterThreshold: cfg.Skip.LastChapter,
		SkipUnwatched:            cfg.Skip.Unwatched,
		FirstEpisodeSeries:       skipengine.ParseSkipMode(cfg.Skip.FirstEpisodeSeries),
		FirstEpisodeSeason:       skipengine.ParseSkipMode(cfg.Skip.FirstEpisodeSeason),
		Types:                    lowercased(cfg.Skip.TypesList()),
		IgnoredLibraries:         lowercased(cfg.Skip.IgnoredLibrariesList()),
		DurationTolerance:        cfg.Skip.DurationTolerance,
		Next:                     cfg.Skip.Next,
		SkipNextMax:              cfg.Skip.SkipNextMax,
	}
}

func lowercased(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

// metricsServer adapts an http.Server exposing /metrics to
// services.StartStopManager, so it runs under the supervisor tree's
// command layer alongside the rest of the daemon's long-running work.
type metricsServer struct {
	srv *http.Server
}

func newMetricsServer(addr string) *metricsServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &metricsServer{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

func (m *metricsServer) Start(ctx context.Context) error {
	go func() {
		if err := m.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error().Err(err).Msg("metrics server failed")
		}
	}()
	logging.Info().Str("addr", m.srv.Addr).Msg("metrics server listening")
	return nil
}

func (m *metricsServer) Stop(ctx context.Context) error {
	return m.srv.Shutdown(ctx)
}
