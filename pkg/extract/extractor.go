package extract

import (
	"context"

	log "github.com/sirupsen/logrus"

	"musafir/pkg/ai"
)

// Extraction holds both model answers for one block of travel notes.
// Nothing in it has been persisted.
type Extraction struct {
	Document    string
	DocumentErr error
	Structured  Result
}

type Extractor struct {
	llm   ai.Client
	model string
}

func New(llm ai.Client, model string) *Extractor {
	return &Extractor{llm: llm, model: model}
}

// Extract asks for the display document first and then the structured
// object. A failed call never aborts the other one.
func (e *Extractor) Extract(ctx context.Context, text string) Extraction {
	var out Extraction

	doc, err := e.llm.Complete(ctx, e.model, DocumentPrompt(text))
	if err != nil {
		log.WithError(err).Warn("display document unavailable")
		out.DocumentErr = err
	} else {
		out.Document = doc
	}

	raw, err := e.llm.Complete(ctx, e.model, StructuredPrompt(text))
	if err != nil {
		out.Structured = failed("", "completion failed: "+err.Error(), err)
		return out
	}
	out.Structured = Parse(raw)
	if !out.Structured.OK() {
		log.WithField("reason", out.Structured.Err.Reason).Warn("structured itinerary rejected")
	}
	return out
}
