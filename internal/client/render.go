package client

import (
	"fmt"
	"io"
)

// TextRenderer prints views for terminal use.
type TextRenderer struct {
	out     io.Writer
	baseURL string
}

func NewTextRenderer(out io.Writer, baseURL string) *TextRenderer {
	return &TextRenderer{out: out, baseURL: baseURL}
}

func (r *TextRenderer) ShowLoader() { fmt.Fprintln(r.out, "loading...") }

func (r *TextRenderer) HideLoader() {}

func (r *TextRenderer) Render(v View) {
	switch {
	case v.Phase == PhaseErrored:
		fmt.Fprintf(r.out, "error: %s\n", v.Message)
		if v.Retry {
			fmt.Fprintln(r.out, "[r] retry")
		}
		return
	case v.Empty:
		fmt.Fprintln(r.out, v.Message)
	default:
		for i, it := range v.Items {
			fmt.Fprintf(r.out, "%3d. %-40s %s%s\n", i+1, it.Label, r.baseURL, it.URL)
		}
	}

	if p := v.Pagination; p != nil {
		prev, next := "[p] previous", "[n] next"
		if p.PrevDisabled {
			prev = "(previous)"
		}
		if p.NextDisabled {
			next = "(next)"
		}
		fmt.Fprintf(r.out, "%s   %s   %s\n", prev, p.Indicator, next)
	}
}
