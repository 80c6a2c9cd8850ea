package export

import "time"

// KV is a labelled value rendered on its own line (generation
// metadata, applied filters).
type KV struct {
	Key   string
	Value string
}

// Block is one titled table of a report document.
type Block struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// Document is the renderer-independent layout of a report: banner
// lines, metadata, applied filters, then the tabular blocks in order.
// Every renderer walks the same structure so the three formats stay in
// agreement about content.
type Document struct {
	Banner      []string
	Meta        []KV
	Filters     []KV
	Blocks      []Block
	GeneratedAt time.Time
}
