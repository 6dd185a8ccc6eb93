package document

type pageAccumulator struct {
	texts []TextBox
	lines []Line
	rects []Rect
}

// place 将片段内容平移到页面纵坐标 y 处并收集。
func (p *pageAccumulator) place(f fragment, y float64) {
	for _, tb := range f.texts {
		tb.Y += y
		p.texts = append(p.texts, tb)
	}
	for _, ln := range f.lines {
		ln.Y1 += y
		ln.Y2 += y
		p.lines = append(p.lines, ln)
	}
	for _, rc := range f.rects {
		rc.Y += y
		p.rects = append(p.rects, rc)
	}
}

type pageCollector struct {
	width   float64
	height  float64
	margin  Margin
	accs    []*pageAccumulator
	current int
}

func newPageCollector(width, height float64, margin Margin) *pageCollector {
	pc := &pageCollector{
		width:  width,
		height: height,
		margin: margin,
	}
	pc.newPage()
	return pc
}

func (pc *pageCollector) newPage() *pageAccumulator {
	acc := &pageAccumulator{}
	pc.accs = append(pc.accs, acc)
	pc.current = len(pc.accs) - 1
	return acc
}

func (pc *pageCollector) curr() *pageAccumulator {
	if len(pc.accs) == 0 {
		return pc.newPage()
	}
	return pc.accs[pc.current]
}

func (pc *pageCollector) contentTop() float64 { return pc.margin.Top }

func (pc *pageCollector) contentBottom() float64 { return pc.height - pc.margin.Bottom }

func (pc *pageCollector) contentHeight() float64 { return pc.contentBottom() - pc.contentTop() }

func (pc *pageCollector) pages() []Page {
	out := make([]Page, len(pc.accs))
	for i, acc := range pc.accs {
		out[i] = Page{
			Width:  pc.width,
			Height: pc.height,
			Margin: pc.margin,
			Texts:  acc.texts,
			Lines:  acc.lines,
			Rects:  acc.rects,
		}
	}
	return out
}

// flowContext 记录主内容流的游标。fresh 表示当前页尚未放置任何内容，
// 此时片段的前置间距被吞掉。
type flowContext struct {
	collector *pageCollector
	x         float64
	width     float64
	cursorY   float64
	fresh     bool
}

func newFlowContext(pc *pageCollector) *flowContext {
	return &flowContext{
		collector: pc,
		x:         pc.margin.Left,
		width:     pc.width - pc.margin.Left - pc.margin.Right,
		cursorY:   pc.contentTop(),
	}
}

func (ctx *flowContext) atTop() bool { return ctx.cursorY <= ctx.collector.contentTop() }

// ensureSpace 在剩余空间不足且当前页已有内容时换页。
func (ctx *flowContext) ensureSpace(height float64) {
	if ctx.cursorY+height <= ctx.collector.contentBottom() {
		return
	}
	if ctx.atTop() {
		return
	}
	ctx.pageBreak()
}

func (ctx *flowContext) pageBreak() {
	ctx.collector.newPage()
	ctx.cursorY = ctx.collector.contentTop()
	ctx.fresh = true
}

func (ctx *flowContext) acc() *pageAccumulator { return ctx.collector.curr() }

// place 将片段放入流中，放不下时先换页。
func (ctx *flowContext) place(f fragment) {
	if !ctx.fresh {
		ctx.cursorY += f.before
	}
	if f.height <= 0 && len(f.texts) == 0 && len(f.lines) == 0 && len(f.rects) == 0 {
		return
	}
	ctx.ensureSpace(f.height)
	ctx.acc().place(f, ctx.cursorY)
	ctx.cursorY += f.height
	ctx.fresh = false
}

// keepTogether 在整组片段放不下当前页、但能放进一张新页时提前换页。
func (ctx *flowContext) keepTogether(frs []fragment) {
	total := 0.0
	for i, f := range frs {
		if i > 0 || !ctx.fresh {
			total += f.before
		}
		total += f.height
	}
	if total > ctx.collector.contentHeight() {
		return
	}
	ctx.ensureSpace(total)
}

// advance 推进游标（元素的下边距）；新页顶部不累计。
func (ctx *flowContext) advance(v float64) {
	if ctx.fresh || v <= 0 {
		return
	}
	ctx.cursorY += v
}
