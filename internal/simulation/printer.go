package simulation

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/vogiaan1904/ticketbottle-marketplace/internal/models"
)

// Printer writes purchase lines. The lines of one receipt are never
// interleaved with another receipt's.
type Printer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) PrintReceipt(rc *models.Receipt) error {
	if len(rc.Products) == 0 {
		return nil
	}

	var b strings.Builder
	for _, prod := range rc.Products {
		fmt.Fprintf(&b, "%s bought %s\n", rc.Consumer, prod)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	_, err := io.WriteString(p.w, b.String())
	return err
}
