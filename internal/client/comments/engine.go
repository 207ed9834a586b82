// Package comments maintains the per-post comment thread state machine:
// loading the two-level tree, optimistic inserts, and the fallback refetch
// when the backend's response is not recognizable.
package comments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/nearby/internal/client/api"
	"github.com/dmitrijs2005/nearby/internal/client/cache"
	"github.com/dmitrijs2005/nearby/internal/client/guard"
	"github.com/dmitrijs2005/nearby/internal/client/session"
	"github.com/dmitrijs2005/nearby/internal/logging"
)

// State is the lifecycle of one post's comment thread.
type State int

const (
	StateUnloaded State = iota
	StateLoading
	StateLoaded
	StateMutating
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateMutating:
		return "mutating"
	default:
		return "unknown"
	}
}

// Engine drives comment threads. Failures never leave a thread stuck in
// Loading or Mutating: every operation resolves the state back to Loaded or
// Unloaded and retains the error per post until the next attempt on that
// post supersedes it.
type Engine struct {
	api      api.Client
	cache    *cache.Cache
	sessions *session.Store
	guard    *guard.Guard
	log      logging.Logger

	mu      sync.Mutex
	states  map[string]State
	lastErr map[string]error
	viewing string
}

func NewEngine(c api.Client, store *cache.Cache, sessions *session.Store, g *guard.Guard, log logging.Logger) *Engine {
	return &Engine{
		api:      c,
		cache:    store,
		sessions: sessions,
		guard:    g,
		log:      log.With("component", "comments"),
		states:   make(map[string]State),
		lastErr:  make(map[string]error),
	}
}

// Reset drops all thread state. Wired as a session-clear hook.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.states = make(map[string]State)
	e.lastErr = make(map[string]error)
	e.viewing = ""
}

// SetViewing records which post is currently displayed. Responses that
// resolve for any other post are discarded instead of merged. An empty id
// disables the check (no post is being tracked).
func (e *Engine) SetViewing(postID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.viewing = postID
}

// Viewing returns the currently displayed post id, if any.
func (e *Engine) Viewing() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewing
}

// StateOf returns the thread state of the post; unknown posts are Unloaded.
func (e *Engine) StateOf(postID string) State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.states[postID]
}

// LastError returns the retained error of the last failed operation on the
// post, or nil after a successful one.
func (e *Engine) LastError(postID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr[postID]
}

// Load fetches and replaces the full two-level tree of the post, in server
// order. On failure the thread returns to its prior state and the error is
// retained; the operation is retryable.
func (e *Engine) Load(ctx context.Context, postID string) error {
	if postID == "" {
		return fmt.Errorf("%w: post id required", api.ErrValidation)
	}
	e.clearErr(postID)
	if _, ok := e.sessions.Token(); !ok {
		return e.record(postID, api.ErrUnauthorized)
	}

	prev := e.begin(postID, StateLoading)
	roots, err := e.api.Comments(ctx, postID)
	if err != nil {
		e.finish(postID, prev, err)
		return err
	}
	if !e.isCurrent(postID) {
		// The user navigated away while the fetch was in flight; drop the
		// response rather than merging a tree nobody is looking at.
		e.finish(postID, prev, nil)
		return nil
	}
	e.cache.MergeCommentTree(postID, roots)
	e.finish(postID, StateLoaded, nil)
	e.log.Debug(ctx, "comment tree loaded", "post", postID, "roots", len(roots))
	return nil
}

// PostRoot creates a root comment on the post. Requires trimmed non-empty
// content and an authenticated session; both are checked before any network
// call.
func (e *Engine) PostRoot(ctx context.Context, postID, content string) error {
	return e.post(ctx, postID, "", content)
}

// PostReply creates a reply under the given root comment. Replying to a
// reply is flattened onto the enclosing root; nesting depth is fixed at one.
func (e *Engine) PostReply(ctx context.Context, postID, parentID, content string) error {
	if strings.TrimSpace(parentID) == "" {
		err := fmt.Errorf("%w: parent comment id required", api.ErrValidation)
		e.clearErr(postID)
		return e.record(postID, err)
	}
	return e.post(ctx, postID, parentID, content)
}

func (e *Engine) post(ctx context.Context, postID, parentID, content string) error {
	if postID == "" {
		return fmt.Errorf("%w: post id required", api.ErrValidation)
	}
	e.clearErr(postID)
	content = strings.TrimSpace(content)
	if content == "" {
		return e.record(postID, fmt.Errorf("%w: comment text is empty", api.ErrValidation))
	}
	if _, ok := e.sessions.Token(); !ok {
		return e.record(postID, api.ErrUnauthorized)
	}

	if parentID != "" {
		if rootID, ok := e.cache.ResolveRoot(postID, parentID); ok {
			parentID = rootID
		}
	}

	// One comment mutation per post at a time; interleaved optimistic
	// patches would desynchronize the tree.
	key := guard.Key{Kind: guard.KindCommentMutate, TargetID: postID}
	if !e.guard.TryAcquire(key) {
		return e.record(postID, api.ErrConflict)
	}
	defer e.guard.Release(key)

	prev := e.begin(postID, StateMutating)
	created, err := e.api.CreateComment(ctx, postID, parentID, content)

	if !e.isCurrent(postID) {
		e.finish(postID, prev, nil)
		return nil
	}

	switch {
	case err == nil:
		if e.cache.PatchCommentOptimistic(postID, created) {
			e.finish(postID, StateLoaded, nil)
			return nil
		}
		// The addressed parent is gone locally, or no tree was ever loaded.
		e.log.Warn(ctx, "optimistic patch not applicable, resynchronizing", "post", postID)
		return e.resync(ctx, postID, prev)
	case errors.Is(err, api.ErrMalformedResponse):
		// The mutation may well have succeeded; only the payload shape is
		// unrecognizable. Refetch instead of surfacing the error.
		e.log.Warn(ctx, "unrecognizable create-comment response, resynchronizing", "post", postID)
		return e.resync(ctx, postID, prev)
	default:
		e.finish(postID, prev, err)
		return err
	}
}

// resync replaces the tree with a fresh fetch after an ambiguous mutation
// outcome. Its error, if any, is the one surfaced to the caller.
func (e *Engine) resync(ctx context.Context, postID string, prev State) error {
	e.setState(postID, StateLoading)
	roots, err := e.api.Comments(ctx, postID)
	if err != nil {
		e.finish(postID, prev, err)
		return err
	}
	if !e.isCurrent(postID) {
		e.finish(postID, prev, nil)
		return nil
	}
	e.cache.MergeCommentTree(postID, roots)
	e.finish(postID, StateLoaded, nil)
	return nil
}

func (e *Engine) isCurrent(postID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewing == "" || e.viewing == postID
}

// begin transitions the post to next and returns the state to fall back to
// on failure: Loaded threads stay Loaded, anything else resolves to
// Unloaded.
func (e *Engine) begin(postID string, next State) State {
	e.mu.Lock()
	defer e.mu.Unlock()
	prev := e.states[postID]
	e.states[postID] = next
	if prev == StateLoaded || prev == StateMutating {
		return StateLoaded
	}
	return StateUnloaded
}

func (e *Engine) setState(postID string, s State) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.states[postID] = s
}

func (e *Engine) finish(postID string, s State, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.states[postID] = s
	if err != nil {
		e.lastErr[postID] = err
	} else {
		delete(e.lastErr, postID)
	}
}

func (e *Engine) record(postID string, err error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastErr[postID] = err
	return err
}

func (e *Engine) clearErr(postID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.lastErr, postID)
}
