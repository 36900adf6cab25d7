package jsongen

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// Options controls document synthesis.
type Options struct {
	MaxDepth int
	MaxNodes int
	// AnchorKey, if set, is injected once into each object at AnchorLevel
	// until AnchorCount occurrences have been placed across the document;
	// objects at that depth visited after the budget is spent get no
	// anchor. This is what lets
	// generated documents exercise the speculation table's single-level,
	// high-occurrence anchor qualification rule (spec §3).
	AnchorKey   string
	AnchorLevel int
	AnchorCount int
	AnchorValue string
}

// Generator synthesizes nested JSON documents.
type Generator struct {
	dict *Dictionary
	opts Options
	rng  *rand.Rand
}

// New constructs a Generator.
func New(dict *Dictionary, opts Options, rng *rand.Rand) *Generator {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = 4
	}
	if opts.MaxNodes <= 0 {
		opts.MaxNodes = 6
	}
	return &Generator{dict: dict, opts: opts, rng: rng}
}

// Generate writes a single JSON document to sb: a root array of objects,
// each recursively nested up to MaxDepth, with AnchorKey injected at
// AnchorLevel, once per object visited there, until AnchorCount is spent.
// The anchor budget is shared across the whole document (not per root
// object), and a visit to an ancestor level forces one guaranteed descent
// toward AnchorLevel while the budget remains, so the target level is
// actually reached rather than left to the random nesting chance.
func (g *Generator) Generate(sb *strings.Builder, rootObjects int) {
	sb.WriteByte('[')
	remaining := g.opts.AnchorCount
	for i := 0; i < rootObjects; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		g.object(sb, 0, &remaining)
	}
	sb.WriteByte(']')
}

func (g *Generator) object(sb *strings.Builder, level int, remaining *int) {
	sb.WriteByte('{')
	nodeCount := g.rng.Intn(g.opts.MaxNodes) + 1
	first := true
	writeField := func(key string, writeValue func()) {
		if !first {
			sb.WriteByte(',')
		}
		first = false
		sb.WriteString(strconv.Quote(key))
		sb.WriteByte(':')
		writeValue()
	}

	if g.opts.AnchorKey != "" && level == g.opts.AnchorLevel && *remaining > 0 {
		writeField(g.opts.AnchorKey, func() {
			sb.WriteString(strconv.Quote(g.opts.AnchorValue))
		})
		*remaining = *remaining - 1
	}

	needsDescent := g.opts.AnchorKey != "" && level < g.opts.AnchorLevel && *remaining > 0

	for i := 0; i < nodeCount; i++ {
		key := g.dict.RandomWord(g.rng)
		descend := level < g.opts.MaxDepth-1 && (needsDescent || g.rng.Float32() < 0.35)
		writeField(key, func() {
			if descend {
				g.object(sb, level+1, remaining)
				needsDescent = false
			} else {
				sb.WriteString(strconv.Quote(g.dict.RandomWord(g.rng)))
			}
		})
	}
	sb.WriteByte('}')
}

// GenerateDocument is a convenience wrapper returning the document as a
// string with rootObjects top-level array entries.
func (g *Generator) GenerateDocument(rootObjects int) string {
	var sb strings.Builder
	g.Generate(&sb, rootObjects)
	return sb.String()
}

// String implements a readable summary, useful in test failure output.
func (o Options) String() string {
	return fmt.Sprintf("depth=%d nodes=%d anchor=%q@%d x%d", o.MaxDepth, o.MaxNodes, o.AnchorKey, o.AnchorLevel, o.AnchorCount)
}
