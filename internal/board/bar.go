package board

import (
	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/timeline"
)

// Bar is the visual handle of one allocation. Drag sessions patch it
// directly; once its board is rebuilt the bar is detached and further
// patches are ignored.
type Bar struct {
	allocation domain.Allocation
	style      timeline.Style
	detached   bool
}

// Allocation returns the committed allocation behind the bar.
func (b *Bar) Allocation() domain.Allocation { return b.allocation }

// Style returns the bar's current style, provisional while dragged.
func (b *Bar) Style() timeline.Style { return b.style }

// Detached reports whether the bar was re-rendered away.
func (b *Bar) Detached() bool { return b.detached }

// Patch replaces the bar's style. A no-op on a detached bar.
func (b *Bar) Patch(s timeline.Style) {
	if b == nil || b.detached {
		return
	}
	b.style = s
}

func (b *Bar) detach() { b.detached = true }
