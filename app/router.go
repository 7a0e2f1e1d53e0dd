package app

import (
	"errors"
	"fmt"
	"log"

	"github.com/phanxgames/showcase"
	"github.com/phanxgames/showcase/cards"
	"github.com/phanxgames/showcase/collage"
	"github.com/phanxgames/showcase/flame"
)

// SceneID names a top-level view.
type SceneID int

const (
	SceneMenu SceneID = iota
	SceneCards
	SceneCollage
	SceneFlame
)

func (id SceneID) String() string {
	switch id {
	case SceneMenu:
		return "menu"
	case SceneCards:
		return "cards"
	case SceneCollage:
		return "collage"
	case SceneFlame:
		return "flame"
	}
	return fmt.Sprintf("SceneID(%d)", int(id))
}

// ErrUnknownScene is returned by ShowScene for an id with no setup routine.
var ErrUnknownScene = errors.New("router: unknown scene")

// setupFunc builds a scene into ctx and returns its state object.
type setupFunc func(a *App, ctx *showcase.SceneContext) (any, error)

var scenes = map[SceneID]setupFunc{
	SceneCards: func(a *App, ctx *showcase.SceneContext) (any, error) {
		return cards.New(ctx, a.Config.Cards)
	},
	SceneCollage: func(a *App, ctx *showcase.SceneContext) (any, error) {
		return collage.New(ctx, a.Config.Collage)
	},
	SceneFlame: func(a *App, ctx *showcase.SceneContext) (any, error) {
		return flame.New(ctx, a.Config.Flame)
	},
}

// Router switches between the menu and the scenes. Exactly one view is
// active. Everything a scene registers goes through the router's current
// TickerGroup, so switching away stops it.
type Router struct {
	app    *App
	active SceneID
	state  any
	group  *showcase.TickerGroup

	// OnChange, when set, runs after every successful switch.
	OnChange func(SceneID)
}

func newRouter(a *App) *Router {
	return &Router{app: a, group: a.Stage.Ticker().NewGroup()}
}

// Active returns the current view.
func (r *Router) Active() SceneID {
	return r.active
}

// State returns the active scene's state object (*cards.Table,
// *collage.Board or *flame.Fire), or nil on the menu.
func (r *Router) State() any {
	return r.state
}

// Timers returns the group scene callbacks are registered through.
func (r *Router) Timers() *showcase.TickerGroup {
	return r.group
}

// ShowMenu tears down the current view and installs the menu.
func (r *Router) ShowMenu() {
	r.teardown()
	r.app.Stage.Root().AddChild(r.app.buildMenu())
	r.activate(SceneMenu)
}

// ShowScene tears down the current view, builds scene id and adds the back
// button. An unknown id leaves the current view untouched. If the scene
// fails to build, the menu is shown instead and the error returned.
func (r *Router) ShowScene(id SceneID) error {
	setup, ok := scenes[id]
	if !ok {
		if r.app.Stage.Debug() {
			log.Printf("[router] ignoring unknown scene %v", id)
		}
		return fmt.Errorf("%w: %v", ErrUnknownScene, id)
	}

	r.teardown()
	root := r.app.Stage.Root()
	layer := showcase.NewContainer(id.String())
	root.AddChild(layer)

	state, err := setup(r.app, r.app.sceneContext(layer, r.group))
	if err != nil {
		r.ShowMenu()
		return fmt.Errorf("router: build %v: %w", id, err)
	}
	r.state = state

	_, h := r.app.Stage.ScreenSize()
	root.AddChild(r.app.newButton("Back to Menu", h-100, r.ShowMenu))
	r.activate(id)
	return nil
}

// teardown cancels the active scene's callbacks, drops its state and
// disposes every root child except the FPS overlay.
func (r *Router) teardown() {
	r.group.CancelAll()
	r.state = nil
	for _, n := range r.app.Stage.Root().RemoveChildrenExcept(r.app.FPS) {
		n.Dispose()
	}
}

// activate records id and keeps the FPS overlay drawn above the new view.
func (r *Router) activate(id SceneID) {
	r.active = id
	root := r.app.Stage.Root()
	root.AddChild(r.app.FPS)
	if r.app.Stage.Debug() {
		log.Printf("[router] show %v (%d root children)", id, root.NumChildren())
	}
	if r.OnChange != nil {
		r.OnChange(id)
	}
}
