package app

import (
	"hash/maphash"
	"math/rand/v2"
	"net/http"

	"github.com/vancomm/minesweeper/internal/handlers"
	"github.com/vancomm/minesweeper/internal/shell"
	"github.com/vancomm/minesweeper/web"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(
		a.log.WithField("component", "game"),
		a.ws,
		shell.RandomBoards(createRand()),
		a.config.Game,
		a.config.TickInterval.Duration,
	)

	a.router.Handle("GET /", http.FileServer(web.StaticFS()))
	a.router.HandleFunc("GET /status", handlers.Status)
	a.router.HandleFunc("GET /play", game.Play)
}
