package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/schema"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/shell"
)

const writeWait = 5 * time.Second

var errBinaryFrame = errors.New("binary frames are not supported")

type GameHandler struct {
	log      *logrus.Entry
	ws       *config.WebSocket
	boards   shell.BoardFactory
	defaults mines.GameParams
	tick     time.Duration
	dec      *schema.Decoder
}

func NewGameHandler(
	log *logrus.Entry,
	ws *config.WebSocket,
	boards shell.BoardFactory,
	defaults mines.GameParams,
	tick time.Duration,
) *GameHandler {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)

	return &GameHandler{
		log:      log.WithField("component", "game"),
		ws:       ws,
		boards:   boards,
		defaults: defaults,
		tick:     tick,
		dec:      dec,
	}
}

// ParseGameParams overlays rows, cols and mines from the query on the
// configured defaults.
func (g GameHandler) ParseGameParams(src map[string][]string) (mines.GameParams, error) {
	params := g.defaults
	if err := g.dec.Decode(&params, src); err != nil {
		return params, err
	}
	return params, params.Validate()
}

// Play opens a game window over a websocket. Every command frame and every
// timer tick while the clock runs is answered with the window's view.
func (g GameHandler) Play(w http.ResponseWriter, r *http.Request) {
	params, err := g.ParseGameParams(r.URL.Query())
	if err != nil {
		badRequest(w, g.log, err)
		return
	}

	win, err := shell.New(params, g.boards, g.log)
	if err != nil {
		internalError(w, g.log, "unable to open a game window", err)
		return
	}
	log := g.log.WithField("session", win.ID.String())

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		log.WithError(err).Error("unable to upgrade")
		return
	}
	defer conn.Close()

	log.Debug("established ws connection")

	err = g.run(r.Context(), conn, win, log)
	if err == nil || websocket.IsCloseError(err,
		websocket.CloseNormalClosure, websocket.CloseGoingAway,
	) {
		log.Debug("ws connection closed")
		return
	}
	log.WithError(err).Warn("abnormal ws break")
}

func (g GameHandler) run(
	ctx context.Context, conn *websocket.Conn, win *shell.Window, log *logrus.Entry,
) error {
	grp, ctx := errgroup.WithContext(ctx)
	frames := make(chan string)

	grp.Go(func() error {
		defer close(frames)
		for {
			mt, buf, err := conn.ReadMessage()
			if err != nil {
				return err
			}
			if mt != websocket.TextMessage {
				return errBinaryFrame
			}
			select {
			case frames <- string(buf):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	grp.Go(func() error {
		// unblocks the reader when the loop gives up first
		defer conn.Close()
		return g.loop(ctx, conn, win, frames, log)
	})

	return grp.Wait()
}

func (g GameHandler) loop(
	ctx context.Context,
	conn *websocket.Conn,
	win *shell.Window,
	frames <-chan string,
	log *logrus.Entry,
) error {
	ticker := time.NewTicker(g.tick)
	defer ticker.Stop()

	if err := send(conn, win.View()); err != nil {
		return err
	}

	lastElapsed := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case text, ok := <-frames:
			if !ok {
				return nil
			}
			log.Debugf("\t> %s", text)
			err := executeAll(win, text)
			view := win.View()
			if err != nil {
				log.WithError(err).Info("rejected command")
				view.Error = err.Error()
			}
			lastElapsed = view.Elapsed
			if err := send(conn, view); err != nil {
				return err
			}
		case <-ticker.C:
			if !win.TimerRunning() {
				continue
			}
			view := win.View()
			if view.Elapsed == lastElapsed {
				continue
			}
			lastElapsed = view.Elapsed
			if err := send(conn, view); err != nil {
				return err
			}
		}
	}
}

func send(conn *websocket.Conn, view shell.View) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(view)
}
