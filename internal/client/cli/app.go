// Package cli is the terminal view layer of the CloudSync client: a REPL
// with one command set per page of the web UI. Views call the typed API
// (directly or through the query cache) and render state; session lifecycle
// and cross-cutting error handling live below in their own packages.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/cloudsync/internal/client/api"
	"github.com/dmitrijs2005/cloudsync/internal/client/config"
	"github.com/dmitrijs2005/cloudsync/internal/client/notify"
	"github.com/dmitrijs2005/cloudsync/internal/client/querycache"
	"github.com/dmitrijs2005/cloudsync/internal/client/realtime"
	"github.com/dmitrijs2005/cloudsync/internal/client/session"
	"github.com/dmitrijs2005/cloudsync/internal/client/storage"
	"github.com/dmitrijs2005/cloudsync/internal/logging"
)

// Cache keys used by the views.
const (
	keyGroups        = "groups"
	keyFiles         = "files"
	keyMessages      = "messages"
	keyNotifications = "notifications"
	keyActivity      = "activity"
	keyStats         = "stats"
)

type App struct {
	config  *config.Config
	client  *api.Client
	sess    *session.Manager
	cache   *querycache.Cache
	channel *realtime.Channel
	store   *storage.Store
	log     logging.Logger
	toast   notify.Notifier

	reader *bufio.Reader
	out    io.Writer
}

// NewApp wires the full client stack: local store, transport, session,
// cache and realtime channel. The session registers itself as the
// transport's 401 hook; the channel binds to session transitions in Run.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.NewDefault()

	store, err := storage.Open(ctx, c.StorePath)
	if err != nil {
		return nil, err
	}

	toast := notify.NewWriter(os.Stderr)

	// The token source reads through to the session, which does not exist
	// yet when the transport is built; the indirection breaks the cycle.
	var sess *session.Manager
	tokens := api.TokenSourceFunc(func() string {
		if sess == nil {
			return ""
		}
		return sess.Token()
	})

	client := api.New(c.APIBaseURL, tokens, log, api.WithNotifier(toast))
	sess = session.NewManager(client, store, log)
	client.OnUnauthorized(sess.HandleUnauthorized)

	channel := realtime.New(c.SocketURL, tokens, log)

	return &App{
		config:  c,
		client:  client,
		sess:    sess,
		cache:   querycache.New(),
		channel: channel,
		store:   store,
		log:     log,
		toast:   toast,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run restores the session, starts the background workers and enters the
// REPL. Blocks until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer a.store.Close()
	defer a.channel.Stop()

	// Restore must finish before any protected view renders.
	if err := a.sess.Restore(ctx); err != nil {
		return err
	}

	a.channel.Bind(ctx, a.sess)
	go a.sess.StartTokenWatcher(ctx, a.config.TokenRefreshInterval)
	go a.cache.StartGC(ctx, querycache.DefaultMaxIdle)

	a.Root(ctx)
	return nil
}
