package hooking

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type recordingHook struct {
	positions []string
}

func (h *recordingHook) Func(ctx HookCtx) {
	h.positions = append(h.positions, ctx.Pos.Name)
}

var _ = Describe("HookableBase", func() {
	var (
		base *HookableBase
		pos  *HookPos
	)

	BeforeEach(func() {
		base = &HookableBase{}
		pos = &HookPos{Name: "Test"}
	})

	It("should invoke hooks in registration order", func() {
		var order []int
		base.AcceptHook(HookFunc(func(HookCtx) { order = append(order, 1) }))
		base.AcceptHook(HookFunc(func(HookCtx) { order = append(order, 2) }))

		base.InvokeHook(HookCtx{Pos: pos})

		Expect(order).To(Equal([]int{1, 2}))
		Expect(base.NumHooks()).To(Equal(2))
	})

	It("should pass the item through", func() {
		var item interface{}
		base.AcceptHook(HookFunc(func(ctx HookCtx) { item = ctx.Item }))

		base.InvokeHook(HookCtx{Pos: pos, Item: 42})

		Expect(item).To(Equal(42))
	})

	It("should reject the same hook twice", func() {
		hook := &recordingHook{}
		base.AcceptHook(hook)

		Expect(func() { base.AcceptHook(hook) }).To(Panic())
	})

	It("should record positions", func() {
		hook := &recordingHook{}
		base.AcceptHook(hook)

		base.InvokeHook(HookCtx{Pos: pos})
		base.InvokeHook(HookCtx{Pos: &HookPos{Name: "Other"}})

		Expect(hook.positions).To(Equal([]string{"Test", "Other"}))
		Expect(base.Hooks()).To(HaveLen(1))
	})
})
