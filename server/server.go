package server

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/rickb777/srcsetlint/config"
	"github.com/rickb777/srcsetlint/logger"
	"github.com/rickb777/srcsetlint/validator"
	"github.com/rickb777/servefiles/v3"
	sloghttp "github.com/samber/slog-http"
	"github.com/spf13/afero"
)

// set more mime types in the browser, this fixes .asp files not being
// served but handled as html.
var mimeTypes = map[string]string{
	".asp":   "text/html; charset=utf-8",
	".xhtml": "application/xhtml+xml; charset=utf-8",
}

// maxBodySize limits the documents that can be posted for checking.
const maxBodySize = 10 << 20

//-------------------------------------------------------------------------------------------------

func Serve(ctx context.Context, cfg config.Config, fs afero.Fs, port int) error {
	server, errChan, err := LaunchWebserver(cfg, fs, port)
	if err != nil {
		return err
	}

	return AwaitWebserver(ctx, server, errChan)
}

func LaunchWebserver(cfg config.Config, fs afero.Fs, port int) (*http.Server, chan error, error) {
	logger.Info("Serving",
		slog.String("path", cfg.OutputDirectory),
		slog.String("address", fmt.Sprintf("http://%s:%d", hostname(), port)))

	handler := NewHandler(cfg, fs)
	handler = sloghttp.NewWithConfig(logger.Logger, logger.HttpLogConfig())(handler)
	handler = handlers.RecoveryHandler()(handler)
	server := newWebserver(port, handler)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.ListenAndServe()
	}()
	return server, errChan, nil
}

func AwaitWebserver(ctx context.Context, server *http.Server, errChan chan error) error {
	if server == nil {
		return nil
	}

	select {
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("shutting down webserver: %w", err)
		}
		return nil

	case err := <-errChan:
		return fmt.Errorf("webserver: %w", err)
	}
}

// NewHandler routes the checking endpoints. Anything else is served from the
// output directory, if there is one.
func NewHandler(cfg config.Config, fs afero.Fs) http.Handler {
	c := &checker{
		validator: validator.New(validator.Options{WarnMixedDescriptors: cfg.WarnMixedDescriptors}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /srcset", c.parseSrcset)
	mux.HandleFunc("POST /srcset", c.parseSrcset)
	mux.HandleFunc("POST /validate", c.validate)
	mux.Handle("/", constructAssetServer(fs, cfg.OutputDirectory))
	return mux
}

func newWebserver(port int, handler http.Handler) *http.Server {
	addr := fmt.Sprintf(":%d", port)
	return &http.Server{Addr: addr, Handler: handler}
}

func constructAssetServer(fs afero.Fs, path string) http.Handler {
	if path == "" {
		return http.NotFoundHandler()
	}
	return servefiles.NewAssetHandlerFS(afero.NewBasePathFs(fs, path))
}

func hostname() string {
	hostname := "localhost"
	if h, err := os.Hostname(); err == nil {
		hostname = h
	}
	return hostname
}

func addMoreMIMETypes() {
	for ext, mt := range mimeTypes {
		if err := mime.AddExtensionType(ext, mt); err != nil {
			panic(fmt.Errorf("adding mime type '%s': %w", ext, err))
		}
	}
}

func init() { addMoreMIMETypes() }
