// Package newsletter assembles generated section blocks into one issue and
// renders it as an HTML email document.
package newsletter

import (
	"fmt"
	"time"

	"github.com/briteco/brief/internal/core"
	"github.com/google/uuid"
)

// Sections carries the generated blocks for one issue. Any pointer may be
// nil; assembly includes whatever is present.
type Sections struct {
	Introduction string
	BriteSpot    *core.BriteSpot
	Spotlight    *core.Spotlight
	Claims       *core.CuriousClaims
	Roundup      *core.NewsRoundup
	Advantage    *core.AgentAdvantage
}

// Assemble combines section blocks into a Newsletter. subject may be empty,
// in which case the dated default is used. An issue without an introduction
// and without any section is rejected.
func Assemble(subject, preheader string, sections Sections) (*core.Newsletter, error) {
	if sections.Introduction == "" &&
		sections.BriteSpot == nil && sections.Spotlight == nil &&
		sections.Claims == nil && sections.Roundup == nil && sections.Advantage == nil {
		return nil, fmt.Errorf("cannot assemble an empty newsletter")
	}

	now := time.Now()
	if subject == "" {
		subject = fmt.Sprintf("The BriteCo Brief - %s %d", now.Month(), now.Year())
	}

	return &core.Newsletter{
		ID:           uuid.New().String(),
		Subject:      subject,
		Preheader:    preheader,
		Introduction: sections.Introduction,
		BriteSpot:    sections.BriteSpot,
		Spotlight:    sections.Spotlight,
		Claims:       sections.Claims,
		Roundup:      sections.Roundup,
		Advantage:    sections.Advantage,
		GeneratedAt:  now,
	}, nil
}
