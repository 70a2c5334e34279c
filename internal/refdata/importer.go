// Package refdata keeps the species reference table in step with a remote
// CSV file.
package refdata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mesh-intelligence/huntbook/internal/logging"
	"github.com/mesh-intelligence/huntbook/pkg/types"
)

// DefaultTimeout bounds one fetch when the caller sets no other limit.
const DefaultTimeout = 30 * time.Second

// maxBody caps the downloaded CSV size.
const maxBody = 8 << 20

// DefaultUserAgent is sent with every fetch unless WithUserAgent overrides it.
const DefaultUserAgent = "huntbook"

// Connection-level limits for NewHTTPClient.
const (
	dialTimeout           = 10 * time.Second
	tlsHandshakeTimeout   = 10 * time.Second
	responseHeaderTimeout = 10 * time.Second
	idleConnTimeout       = 90 * time.Second
)

// NewHTTPClient returns a client with connection-level timeouts. The limit
// on a whole fetch is applied per request by the importer.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           (&net.Dialer{Timeout: dialTimeout}).DialContext,
			TLSHandshakeTimeout:   tlsHandshakeTimeout,
			ResponseHeaderTimeout: responseHeaderTimeout,
			IdleConnTimeout:       idleConnTimeout,
		},
	}
}

// SpeciesStore is the part of the backend the importer writes to.
type SpeciesStore interface {
	CountSpecies(ctx context.Context) (int, error)
	ReplaceSpecies(ctx context.Context, rows []*types.GameAnimal) (int, error)
}

// Status reports the outcome of a refresh. Failures are reported here, not
// returned, so callers can carry on without reference data.
type Status struct {
	OK      bool   `json:"ok"`
	Skipped bool   `json:"skipped"`
	Rows    int    `json:"rows"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Importer downloads the species CSV and replaces the reference table.
type Importer struct {
	store     SpeciesStore
	url       string
	client    *http.Client
	timeout   time.Duration
	userAgent string
	maxBody   int64
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures an Importer.
type Option func(*Importer)

// WithHTTPClient sets the client used for the download.
func WithHTTPClient(c *http.Client) Option {
	return func(i *Importer) {
		if c != nil {
			i.client = c
		}
	}
}

// WithTimeout sets the overall download timeout. The client itself is
// left unchanged.
func WithTimeout(d time.Duration) Option {
	return func(i *Importer) {
		if d > 0 {
			i.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header sent with the download.
func WithUserAgent(ua string) Option {
	return func(i *Importer) {
		if ua != "" {
			i.userAgent = ua
		}
	}
}

// WithLogger sets the logger for refresh outcomes.
func WithLogger(l *slog.Logger) Option {
	return func(i *Importer) {
		if l != nil {
			i.logger = l
		}
	}
}

// NewImporter returns an importer that reads the CSV at rawURL.
func NewImporter(store SpeciesStore, rawURL string, opts ...Option) *Importer {
	i := &Importer{
		store:     store,
		url:       rawURL,
		client:    http.DefaultClient,
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
		maxBody:   maxBody,
		logger:    logging.Discard(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Refresh reloads the species table. Unless force is set, a table that
// already has rows is left alone and nothing is downloaded. The table is
// only replaced when the download parses into at least one row.
func (i *Importer) Refresh(ctx context.Context, force bool) Status {
	if !force {
		n, err := i.store.CountSpecies(ctx)
		if err != nil {
			return i.fail("counting species", err)
		}
		if n > 0 {
			return Status{OK: true, Skipped: true, Rows: n, Message: fmt.Sprintf("species reference already loaded (%d rows)", n)}
		}
	}

	data, err := i.Fetch(ctx)
	if err != nil {
		return i.fail("downloading species list", err)
	}
	rows, err := Parse(data)
	if err != nil {
		return i.fail("reading species list", err)
	}
	n, err := i.store.ReplaceSpecies(ctx, rows)
	if err != nil {
		return i.fail("saving species list", err)
	}
	i.logger.Info("species reference refreshed", "rows", n, "url", i.url)
	return Status{OK: true, Rows: n, Message: fmt.Sprintf("species reference updated (%d rows)", n)}
}

func (i *Importer) fail(step string, err error) Status {
	i.logger.Warn("species refresh failed", "step", step, "error", err)
	return Status{Message: fmt.Sprintf("%s: %v", step, err), Err: err}
}

// Fetch downloads the CSV. A cache-busting query parameter keeps proxies
// and caches from serving a stale copy.
func (i *Importer) Fetch(ctx context.Context) ([]byte, error) {
	if i.url == "" {
		return nil, fmt.Errorf("%w: no species CSV URL configured", types.ErrFetchFailed)
	}
	u, err := url.Parse(i.url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrFetchFailed, err)
	}
	q := u.Query()
	q.Set("_", strconv.FormatInt(i.now().UnixMilli(), 10))
	u.RawQuery = q.Encode()

	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrFetchFailed, err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("User-Agent", i.userAgent)

	resp, err := i.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %w", types.ErrFetchFailed, err)
		}
		return nil, fmt.Errorf("%w: %v", types.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %d", types.ErrFetchFailed, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, i.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", types.ErrFetchFailed, err)
	}
	if int64(len(data)) > i.maxBody {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", types.ErrFetchFailed, i.maxBody)
	}
	return data, nil
}
