package render

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// maxPools bounds how many option sets keep renderers around. Resizing the
// chat produces a new width on almost every frame.
const maxPools = 16

// rendererPool hands out glamour renderers per option set.
// A TermRenderer must not be shared by concurrent Render calls, so each
// caller borrows one from a sync.Pool and returns it.
type rendererPool struct {
	mu    sync.Mutex
	pools map[Options]*sync.Pool
	order []Options // oldest first
}

var globalPool = newRendererPool()

func newRendererPool() *rendererPool {
	return &rendererPool{pools: make(map[Options]*sync.Pool)}
}

// getPool returns the pool for opts, creating it and evicting the oldest
// option set when the limit is reached.
func (p *rendererPool) getPool(opts Options) *sync.Pool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pool, ok := p.pools[opts]; ok {
		return pool
	}

	if len(p.order) >= maxPools {
		oldest := p.order[0]
		p.order = p.order[1:]
		delete(p.pools, oldest)
	}

	pool := &sync.Pool{
		New: func() any {
			renderer, err := createRenderer(opts)
			if err != nil {
				return nil
			}
			return renderer
		},
	}
	p.pools[opts] = pool
	p.order = append(p.order, opts)
	return pool
}

func (p *rendererPool) get(opts Options) (*glamour.TermRenderer, error) {
	if r, ok := p.getPool(opts).Get().(*glamour.TermRenderer); ok && r != nil {
		return r, nil
	}
	// New failed; build directly so the caller sees the error
	return createRenderer(opts)
}

func (p *rendererPool) put(opts Options, renderer *glamour.TermRenderer) {
	if renderer == nil {
		return
	}
	p.mu.Lock()
	pool, ok := p.pools[opts]
	p.mu.Unlock()
	// evicted option sets drop their renderers
	if ok {
		pool.Put(renderer)
	}
}

func (p *rendererPool) size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pools)
}

func (p *rendererPool) clear() {
	p.mu.Lock()
	p.pools = make(map[Options]*sync.Pool)
	p.order = nil
	p.mu.Unlock()
}

// createRenderer builds a TermRenderer for opts. Style is either a built-in
// theme name or a path to a glamour JSON style file.
func createRenderer(opts Options) (*glamour.TermRenderer, error) {
	rendererOpts := []glamour.TermRendererOption{
		glamour.WithWordWrap(opts.Width),
		glamour.WithTableWrap(opts.TableWrap),
		glamour.WithInlineTableLinks(opts.InlineTableLinks),
	}

	if style, ok := resolveStyle(opts.Style, opts.CodeTheme); ok {
		rendererOpts = append(rendererOpts, glamour.WithStyles(style))
	} else {
		rendererOpts = append(rendererOpts, glamour.WithStylePath(opts.Style))
	}
	if opts.EnableEmoji {
		rendererOpts = append(rendererOpts, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		rendererOpts = append(rendererOpts, glamour.WithPreservedNewLines())
	}

	return glamour.NewTermRenderer(rendererOpts...)
}
