package rod

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/postdoc"
	"github.com/go-rod/rod/lib/proto"
)

var _ postdoc.Printer = (*Printer)(nil)

// DefaultPrintTimeout bounds loading and printing one document.
const DefaultPrintTimeout = 60 * time.Second

// Printer renders standalone HTML documents to PDF in a blank tab.
type Printer struct {
	manager *BrowserManager
	timeout time.Duration
}

// NewPrinter returns a Printer using bm. The caller keeps ownership of bm.
func NewPrinter(bm *BrowserManager) *Printer {
	return &Printer{manager: bm, timeout: DefaultPrintTimeout}
}

// Print loads html and returns the PDF with backgrounds printed.
func (p *Printer) Print(ctx context.Context, html string) ([]byte, error) {
	if html == "" {
		return nil, postdoc.Errorf(postdoc.EINVALID, "html document required")
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	page, err := p.manager.Browser().Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, postdoc.Errorf(postdoc.EPRINT, "open print tab: %v", err)
	}
	defer page.Close()
	defer p.manager.IncrementPageCount()

	page = page.Context(ctx)

	if err := page.SetDocumentContent(html); err != nil {
		return nil, postdoc.Errorf(postdoc.EPRINT, "load document: %v", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, postdoc.Errorf(postdoc.EPRINT, "load document: %v", err)
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground:   true,
		PreferCSSPageSize: true,
	})
	if err != nil {
		return nil, postdoc.Errorf(postdoc.EPRINT, "print to pdf: %v", err)
	}

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, postdoc.Errorf(postdoc.EPRINT, "read pdf stream: %v", err)
	}
	if len(data) == 0 {
		return nil, postdoc.Errorf(postdoc.EPRINT, "browser returned an empty pdf")
	}
	return data, nil
}
