package presenter

import (
	"fmt"
	"io"
	"os"

	"github.com/gosuri/uilive"
)

// Progress shows one "<message> ..." line per step and rewrites it in place
// with the step's outcome.
type Progress struct {
	Out io.Writer
	w   *uilive.Writer
	msg string
}

func NewProgress(out io.Writer) *Progress {
	if out == nil {
		out = os.Stdout
	}

	return &Progress{Out: out}
}

func (p *Progress) Start(msg string) {
	p.msg = msg
	p.w = uilive.New()
	p.w.Out = p.Out

	fmt.Fprintf(p.w, "%s ...\n", msg)
	_ = p.w.Flush()
}

func (p *Progress) Done(err error) {
	if p.w == nil {
		return
	}

	status := okStyle.Render("DONE")
	if err != nil {
		status = failStyle.Render("FAILED")
	}

	fmt.Fprintf(p.w, "%s ... %s\n", p.msg, status)
	_ = p.w.Flush()
	p.w = nil
}
