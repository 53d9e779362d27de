package lower

// LabelFrame tracks one enclosing breakable (and, for loops, continuable)
// construct while its body is being lowered: a loop, a switch, or a plain
// LabeledStatement wrapping neither. Name is "" unless the construct was
// itself the direct child of a LabeledStatement, in which case Name is
// that label and both an unlabeled and a `break Name`/`continue Name`
// jump may target this frame.
type LabelFrame struct {
	Name string

	// continuable is true for while/do-while/for frames; false for switch
	// and bare labeled-block frames, which accept break but never
	// continue.
	continuable bool

	// continueLabel is the block a continue targeting this frame jumps
	// to. While and do-while know it before their body is lowered (the
	// test, respectively the body's own entry, is already open), so it
	// is set at push time and continue resolves immediately. A for loop
	// does not know it until its update block is opened after the body,
	// so it starts empty and every continue collected in the meantime is
	// queued in pendingContinues instead.
	continueLabel string

	pendingContinues []*Goto
	pendingBreaks    []*Goto
}

func (ctx *Context) pushFrame(name string, continuable bool, continueLabel string) *LabelFrame {
	f := &LabelFrame{Name: name, continuable: continuable, continueLabel: continueLabel}
	ctx.labelStack = append(ctx.labelStack, f)
	return f
}

func (ctx *Context) popFrame() {
	ctx.labelStack = ctx.labelStack[:len(ctx.labelStack)-1]
}

// resolveBreaks patches every break collected against f to target label,
// once f's construct has an exit block to send them to.
func (ctx *Context) resolveBreaks(f *LabelFrame, label string) {
	for _, g := range f.pendingBreaks {
		g.ResolveTo(label)
	}
}

// resolveContinues patches every continue collected against f before its
// continue target was known, once a for loop's update block has opened.
func (ctx *Context) resolveContinues(f *LabelFrame, label string) {
	for _, g := range f.pendingContinues {
		g.ResolveTo(label)
	}
}

// findBreakFrame returns the frame a `break` (optionally naming label)
// should target: the innermost frame when label == "", or the frame with
// a matching Name otherwise. ok is false if no matching frame exists.
func (ctx *Context) findBreakFrame(label string) (*LabelFrame, bool) {
	if label == "" {
		if len(ctx.labelStack) == 0 {
			return nil, false
		}
		return ctx.labelStack[len(ctx.labelStack)-1], true
	}
	for i := len(ctx.labelStack) - 1; i >= 0; i-- {
		if ctx.labelStack[i].Name == label {
			return ctx.labelStack[i], true
		}
	}
	return nil, false
}

// findContinueFrame returns the frame a `continue` (optionally naming
// label) should target. Unlabeled continue skips any switch/plain-label
// frame (continuable == false) to find the nearest enclosing loop.
// Labeled continue must name a frame directly; naming a non-loop frame is
// reported as an InvalidContinue error at the call site, not here.
func (ctx *Context) findContinueFrame(label string) (*LabelFrame, bool) {
	if label == "" {
		for i := len(ctx.labelStack) - 1; i >= 0; i-- {
			if ctx.labelStack[i].continuable {
				return ctx.labelStack[i], true
			}
		}
		return nil, false
	}
	for i := len(ctx.labelStack) - 1; i >= 0; i-- {
		if ctx.labelStack[i].Name == label {
			return ctx.labelStack[i], true
		}
	}
	return nil, false
}
