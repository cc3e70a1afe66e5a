// Package catalog implements the section navigation core for the public
// catalog page. It tracks which category section is active as the visitor
// scrolls, resolves navigation targets from the URL, and drives smooth
// scrolling to a section once its anchor exists.
//
// The package is view-agnostic: the embedding frontend supplies a View for
// DOM measurements and a Frames source for animation-frame scheduling, so
// the logic here stays plain Go and fully testable. All methods must be
// called from the single event goroutine that owns the page.
package catalog

import (
	"net/url"
	"strings"
	"time"
)

const (
	// HeaderOffset is the height in pixels of the sticky site header.
	// Scroll targets land this far below the real section top so the
	// header does not cover the section title.
	HeaderOffset = 64

	// ScrollLookahead shifts the active-section boundary below the exact
	// scroll position, so a section becomes active slightly before its
	// top reaches the header. Tunable; not a contract.
	ScrollLookahead = 200

	// resolveTimeout bounds how long a navigation waits for its target
	// section to appear after a data load.
	resolveTimeout = 3 * time.Second
)

// View is the minimal surface the navigator needs from the rendered page.
type View interface {
	// SectionTop returns the document-space top offset of the section
	// anchor for a category slug. ok is false while the section has not
	// rendered yet (or the slug is unknown).
	SectionTop(slug string) (top float64, ok bool)

	// ScrollTo smooth-scrolls the page to the given document offset.
	ScrollTo(offset float64)

	// ReplaceHash rewrites the URL fragment without triggering navigation.
	ReplaceHash(slug string)
}

// Frames schedules work on successive animation frames and supplies the
// clock used for retry deadlines.
type Frames interface {
	RequestFrame(fn func())
	Now() time.Time
}

// Section is a navigable anchor derived from one category.
type Section struct {
	Slug string
	Name string
}

// pendingNav is a navigation whose target section has not rendered yet.
type pendingNav struct {
	slug     string
	gen      uint64
	deadline time.Time
}

// Navigator keeps the active-section state for the catalog page.
type Navigator struct {
	view   View
	frames Frames

	sections []Section
	active   string

	// gen increments on every ScrollToSection call; a retry loop whose
	// generation is stale stops, so the latest navigation always wins.
	gen     uint64
	pending *pendingNav
}

// New creates a navigator with no sections. Call SetSections once the
// category list has loaded.
func New(view View, frames Frames) *Navigator {
	return &Navigator{view: view, frames: frames}
}

// SetSections replaces the section anchors with one per category, in the
// given order, and resets the active section to the first one. A pending
// navigation is retried immediately, since the data it was waiting for has
// now arrived.
func (n *Navigator) SetSections(sections []Section) {
	n.sections = append([]Section(nil), sections...)
	if len(n.sections) == 0 {
		n.active = ""
	} else {
		n.active = n.sections[0].Slug
	}

	if p := n.pending; p != nil {
		n.attempt(p.slug, p.gen, p.deadline)
	}
}

// Sections returns the current anchors in category order.
func (n *Navigator) Sections() []Section {
	return n.sections
}

// Active returns the slug of the active section, or "" before data loads.
func (n *Navigator) Active() string {
	return n.active
}

// ResolveTarget picks the navigation target from URL state: the fragment
// wins over a "section" query parameter, and both are percent-decoded.
// Returns "" when neither is present.
func ResolveTarget(fragment string, query url.Values) string {
	if slug := decodeFragment(fragment); slug != "" {
		return slug
	}
	if raw := query.Get("section"); raw != "" {
		if slug, err := url.QueryUnescape(raw); err == nil {
			return slug
		}
		return raw
	}
	return ""
}

// decodeFragment strips a leading "#" and percent-decodes the rest. A
// fragment that fails to decode is used as-is.
func decodeFragment(fragment string) string {
	raw := strings.TrimPrefix(fragment, "#")
	if raw == "" {
		return ""
	}
	if slug, err := url.PathUnescape(raw); err == nil {
		return slug
	}
	return raw
}

// ScrollToSection navigates to a section by slug. If the section has not
// rendered yet, the lookup retries on successive animation frames until it
// appears or the timeout elapses; an unknown slug is a silent no-op. A
// newer call supersedes any retry loop still in flight.
func (n *Navigator) ScrollToSection(slug string) {
	if slug == "" {
		return
	}
	n.gen++
	n.attempt(slug, n.gen, n.frames.Now().Add(resolveTimeout))
}

func (n *Navigator) attempt(slug string, gen uint64, deadline time.Time) {
	if gen != n.gen {
		return // superseded by a later navigation
	}

	if top, ok := n.view.SectionTop(slug); ok {
		n.pending = nil
		n.gen++ // invalidate frame callbacks already queued for this navigation
		n.view.ScrollTo(top - HeaderOffset)
		n.view.ReplaceHash(slug)
		n.setActive(slug)
		return
	}

	if !n.frames.Now().Before(deadline) {
		n.pending = nil
		n.gen++
		return // target never appeared; give up silently
	}

	n.pending = &pendingNav{slug: slug, gen: gen, deadline: deadline}
	n.frames.RequestFrame(func() {
		n.attempt(slug, gen, deadline)
	})
}

// HandleScroll recomputes the active section for a scroll position: the
// last section in document order whose top is above scrollY plus the
// lookahead. Positions between two anchors therefore activate the later
// one. Call via a Throttle rather than per scroll event.
func (n *Navigator) HandleScroll(scrollY float64) {
	boundary := scrollY + ScrollLookahead
	for i := len(n.sections) - 1; i >= 0; i-- {
		top, ok := n.view.SectionTop(n.sections[i].Slug)
		if ok && top <= boundary {
			n.active = n.sections[i].Slug
			return
		}
	}
	if len(n.sections) > 0 {
		n.active = n.sections[0].Slug
	}
}

// HandleHashChange scrolls to the fragment's section in a single attempt.
// Sections are assumed rendered by the time a hash change fires, so there
// is no retry loop, and the hash is already in the URL so it is not
// rewritten.
func (n *Navigator) HandleHashChange(fragment string) {
	slug := decodeFragment(fragment)
	if slug == "" {
		return
	}
	if top, ok := n.view.SectionTop(slug); ok {
		n.view.ScrollTo(top - HeaderOffset)
		n.setActive(slug)
	}
}

// Throttle rate-limits scroll handling. Allow reports whether enough time
// has passed since the last permitted call; callers skip the event
// otherwise.
type Throttle struct {
	interval time.Duration
	last     time.Time
}

// NewThrottle creates a throttle with the given minimum interval.
func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{interval: interval}
}

// Allow reports whether an event at now should be handled, and if so
// records it.
func (t *Throttle) Allow(now time.Time) bool {
	if !t.last.IsZero() && now.Sub(t.last) < t.interval {
		return false
	}
	t.last = now
	return true
}

func (n *Navigator) setActive(slug string) {
	for _, s := range n.sections {
		if s.Slug == slug {
			n.active = slug
			return
		}
	}
}
