// SPDX-License-Identifier: MIT

package portfolio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	xlog "github.com/ManuGH/folio/internal/log"
	"github.com/ManuGH/folio/internal/metrics"
	"github.com/ManuGH/folio/internal/platform/httpx"
	pnet "github.com/ManuGH/folio/internal/platform/net"
	"github.com/ManuGH/folio/internal/telemetry"
	"github.com/rs/zerolog"
)

// Origin tells where the active document came from.
type Origin string

const (
	OriginFile     Origin = "file"
	OriginRemote   Origin = "remote"
	OriginStorage  Origin = "storage"
	OriginUpdate   Origin = "update"
	OriginFallback Origin = "fallback"
)

// RequiredSections must be present and truthy for a document to be complete.
var RequiredSections = []string{"personal", "links", "experience", "projects", "skills"}

// maxDocumentBytes caps remote and file reads.
const maxDocumentBytes = 4 << 20

// Loader reads the document from a file path or an http(s) URL.
type Loader struct {
	source string
	client *http.Client
	logger zerolog.Logger
}

// NewLoader creates a loader for source. fetchTimeout bounds remote fetches.
func NewLoader(source string, fetchTimeout time.Duration) *Loader {
	return &Loader{
		source: source,
		client: httpx.NewTracedClient(fetchTimeout),
		logger: xlog.WithComponent("portfolio"),
	}
}

// Source returns the configured location.
func (l *Loader) Source() string { return l.source }

// Remote reports whether the source is fetched over HTTP.
func (l *Loader) Remote() bool {
	return pnet.IsHTTPURL(l.source)
}

// displaySource is the source with credentials and query removed.
func (l *Loader) displaySource() string {
	return pnet.Redact(l.source)
}

func (l *Loader) origin() Origin {
	if l.Remote() {
		return OriginRemote
	}
	return OriginFile
}

// Fetch reads and parses the source without falling back.
func (l *Loader) Fetch(ctx context.Context) (map[string]any, error) {
	var (
		data []byte
		err  error
	)
	if l.Remote() {
		data, err = l.fetchRemote(ctx)
	} else {
		data, err = l.readFile()
	}
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a JSON document. The top level must be an object.
func Parse(data []byte) (map[string]any, error) {
	var tree map[string]any
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&tree); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	if tree == nil {
		return nil, errors.New("parse document: top level is not an object")
	}
	return tree, nil
}

func (l *Loader) readFile() ([]byte, error) {
	f, err := os.Open(l.source)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(io.LimitReader(f, maxDocumentBytes))
}

func (l *Loader) fetchRemote(ctx context.Context) ([]byte, error) {
	u, err := pnet.ParseHTTPURL(l.source)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch document: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, statusText(resp))
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
}

// statusText is the reason phrase the server sent, e.g. "Not Found".
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

// Result is the outcome of Load.
type Result struct {
	Tree    map[string]any
	Origin  Origin
	Missing []string
	// Err is the load failure that caused the fallback, if any.
	Err error
}

// Load fetches the document once. Any failure is logged and answered with
// the fallback document; it is never retried.
func (l *Loader) Load(ctx context.Context) Result {
	ctx, span := telemetry.Tracer("folio/portfolio").Start(ctx, "portfolio.load")
	defer span.End()

	origin := l.origin()
	tree, err := l.Fetch(ctx)
	if err != nil {
		telemetry.RecordError(span, err, "load")
		metrics.IncPortfolioLoad(string(origin), metrics.ResultFallback)
		l.logger.Warn().
			Err(err).
			Str(xlog.FieldEvent, "portfolio.load_failed").
			Str(xlog.FieldSource, l.displaySource()).
			Msg("failed to load portfolio document, using fallback")
		return Result{Tree: Fallback(), Origin: OriginFallback, Err: err}
	}
	span.SetAttributes(telemetry.LoadAttributes(string(origin), l.displaySource(), 0)...)
	metrics.IncPortfolioLoad(string(origin), metrics.ResultSuccess)

	l.logger.Info().
		Str(xlog.FieldEvent, "portfolio.loaded").
		Str(xlog.FieldSource, l.displaySource()).
		Msg("portfolio document loaded")

	return Result{Tree: tree, Origin: origin, Missing: Validate(l.logger, tree)}
}

// MissingSections lists required sections that are absent or falsy.
func MissingSections(tree map[string]any) []string {
	var missing []string
	for _, s := range RequiredSections {
		if !Truthy(tree[s]) {
			missing = append(missing, s)
		}
	}
	return missing
}

// Validate logs one warning naming every missing section. The document is
// used either way.
func Validate(logger zerolog.Logger, tree map[string]any) []string {
	missing := MissingSections(tree)
	if len(missing) > 0 {
		logger.Warn().
			Str(xlog.FieldEvent, "portfolio.sections_missing").
			Strs(xlog.FieldMissing, missing).
			Msgf("Missing sections in config: %s", strings.Join(missing, ", "))
	}
	return missing
}
