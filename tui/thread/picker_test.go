package thread

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CrestNiraj12/feedthread/domain"
)

func TestPicker_HoverLifecycle(t *testing.T) {
	p := newPicker(0)
	require.Equal(t, DefaultHoverHideDelay, p.Delay())
	tgt := domain.PostTarget("p1")

	p.EnterTrigger(tgt)
	require.Equal(t, PickerHoveringTrigger, p.State())
	require.True(t, p.ShownFor(tgt))

	gen, armed := p.Leave()
	require.True(t, armed)
	require.Equal(t, PickerVisible, p.State())

	_, armed = p.Leave()
	require.False(t, armed, "already armed")

	p.EnterPanel()
	require.Equal(t, PickerHoveringPanel, p.State())
	require.False(t, p.Expire(gen), "re-entry cancels the pending hide")
	require.True(t, p.Shown())

	gen, armed = p.Leave()
	require.True(t, armed)
	require.True(t, p.Expire(gen))
	require.Equal(t, PickerHidden, p.State())
}

func TestPicker_ReenterTriggerCancelsHide(t *testing.T) {
	p := newPicker(0)
	tgt := domain.CommentTarget("c1")
	p.EnterTrigger(tgt)
	gen, _ := p.Leave()
	p.EnterTrigger(tgt)
	require.False(t, p.Expire(gen))
	require.Equal(t, PickerHoveringTrigger, p.State())
}

func TestPicker_PanelIgnoredWhileHidden(t *testing.T) {
	p := newPicker(0)
	p.EnterPanel()
	require.Equal(t, PickerHidden, p.State())
	_, armed := p.Leave()
	require.False(t, armed)
}

func TestPicker_ClickOpensThenReacts(t *testing.T) {
	p := newPicker(0)
	tgt := domain.PostTarget("p1")

	require.Equal(t, ClickOpened, p.Click(tgt))
	require.True(t, p.ShownFor(tgt))
	require.Equal(t, ClickDefaultReaction, p.Click(tgt))
	require.False(t, p.Shown())
}

func TestPicker_ClickOtherTargetRetargets(t *testing.T) {
	p := newPicker(0)
	a, b := domain.CommentTarget("a"), domain.CommentTarget("b")
	p.EnterTrigger(a)
	require.Equal(t, ClickOpened, p.Click(b))
	require.True(t, p.ShownFor(b))
}

func TestPicker_PickHides(t *testing.T) {
	p := newPicker(0)
	_, _, ok := p.Pick(domain.ReactionLove)
	require.False(t, ok)

	tgt := domain.CommentTarget("c1")
	p.EnterTrigger(tgt)
	got, kind, ok := p.Pick(domain.ReactionLove)
	require.True(t, ok)
	require.Equal(t, tgt, got)
	require.Equal(t, domain.ReactionLove, kind)
	require.False(t, p.Shown())
}

func TestPicker_KeyboardOpenedArmsOnPointerLeave(t *testing.T) {
	p := newPicker(0)
	p.Click(domain.PostTarget("p1"))
	gen, armed := p.Leave()
	require.True(t, armed)
	require.True(t, p.Expire(gen))
}
