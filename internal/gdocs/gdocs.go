// Package gdocs exports an assembled newsletter to Google Docs for team
// review: it creates the document from the content tree, applies heading
// styles, shares it by link, and returns the shareable URL.
package gdocs

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf16"

	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/briteco/brief/internal/core"
	"github.com/briteco/brief/internal/logger"
)

// ErrMissingCredentials is returned when no service account JSON is set.
var ErrMissingCredentials = errors.New("Google Docs credentials not configured. Set GOOGLE_DOCS_CREDENTIALS to service account JSON")

// Exporter writes newsletters into Google Docs.
type Exporter struct {
	docsService  *docs.Service
	driveService *drive.Service
	folderID     string
}

// NewExporter creates an exporter from service account credentials. folderID
// is the Drive folder documents are filed under and may be empty.
func NewExporter(ctx context.Context, credentialsJSON []byte, folderID string) (*Exporter, error) {
	if len(credentialsJSON) == 0 {
		return nil, ErrMissingCredentials
	}

	docsService, err := docs.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(docs.DocumentsScope, drive.DriveScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create Docs client: %w", err)
	}

	driveService, err := drive.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(drive.DriveScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive client: %w", err)
	}

	return &Exporter{docsService: docsService, driveService: driveService, folderID: folderID}, nil
}

// Export creates a document from the issue, shares it by link, and returns
// the document URL.
func (e *Exporter) Export(ctx context.Context, issue *core.Newsletter, title string) (string, error) {
	if title == "" {
		title = fmt.Sprintf("BriteCo Brief - %s", issue.GeneratedAt.Format("2006-01-02"))
	}

	doc, err := e.docsService.Documents.Create(&docs.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create document: %w", err)
	}

	requests := buildDocRequests(issue)
	if len(requests) > 0 {
		_, err = e.docsService.Documents.BatchUpdate(doc.DocumentId,
			&docs.BatchUpdateDocumentRequest{Requests: requests}).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("failed to write document content: %w", err)
		}
	}

	// Anyone on the team can open the review link.
	_, err = e.driveService.Permissions.Create(doc.DocumentId, &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to share document: %w", err)
	}

	if e.folderID != "" {
		_, err = e.driveService.Files.Update(doc.DocumentId, nil).
			AddParents(e.folderID).Context(ctx).Do()
		if err != nil {
			logger.Warn("Failed to move document into folder", "folder_id", e.folderID, "error", err.Error())
		}
	}

	url := fmt.Sprintf("https://docs.google.com/document/d/%s/edit", doc.DocumentId)
	logger.Info("Newsletter exported to Google Docs", "document_id", doc.DocumentId, "title", title)
	return url, nil
}

// docLine is one paragraph of the exported document.
type docLine struct {
	text    string
	heading string // named style, empty for body text
}

// collectLines flattens the issue into ordered document paragraphs.
func collectLines(issue *core.Newsletter) []docLine {
	var lines []docLine
	add := func(heading, text string) {
		if text != "" {
			lines = append(lines, docLine{text: text, heading: heading})
		}
	}

	add("HEADING_1", issue.Subject)
	add("", issue.Introduction)

	if s := issue.BriteSpot; s != nil {
		add("HEADING_2", "The Brite Spot")
		add("HEADING_3", s.Title)
		add("", s.Body)
	}
	if s := issue.Spotlight; s != nil {
		add("HEADING_2", "InsurNews Spotlight")
		add("HEADING_3", s.Title)
		add("", s.Intro)
		for _, sub := range s.Sections {
			add("HEADING_3", sub.Heading)
			add("", sub.Content)
		}
		add("HEADING_3", "Implications for Agents")
		add("", s.AgentImplications)
	}
	if s := issue.Claims; s != nil {
		add("HEADING_2", "Curious Claims")
		add("HEADING_3", s.Title)
		for _, p := range s.Paragraphs {
			add("", p)
		}
		add("HEADING_3", s.Subheading)
		add("", s.SubheadingContent)
	}
	if s := issue.Roundup; s != nil {
		add("HEADING_2", "Insurance News Roundup")
		for _, item := range s.Items {
			add("", fmt.Sprintf("- %s (%s)", item.Headline, item.URL))
		}
	}
	if s := issue.Advantage; s != nil {
		add("HEADING_2", "Agent Advantage")
		add("HEADING_3", s.Title)
		add("", s.Intro)
		for i, tip := range s.Tips {
			add("", fmt.Sprintf("%d. %s: %s", i+1, tip.MiniTitle, tip.Content))
		}
		add("", s.Closing)
	}

	return lines
}

// utf16Len returns the Docs API index length of a string.
func utf16Len(s string) int64 {
	return int64(len(utf16.Encode([]rune(s))))
}

// buildDocRequests emits one InsertText per paragraph plus paragraph-style
// updates for headings. Document body indexes start at 1.
func buildDocRequests(issue *core.Newsletter) []*docs.Request {
	var requests []*docs.Request
	index := int64(1)

	for _, line := range collectLines(issue) {
		text := line.text + "\n"
		length := utf16Len(text)

		requests = append(requests, &docs.Request{
			InsertText: &docs.InsertTextRequest{
				Location: &docs.Location{Index: index},
				Text:     text,
			},
		})
		if line.heading != "" {
			requests = append(requests, &docs.Request{
				UpdateParagraphStyle: &docs.UpdateParagraphStyleRequest{
					Range:          &docs.Range{StartIndex: index, EndIndex: index + length},
					ParagraphStyle: &docs.ParagraphStyle{NamedStyleType: line.heading},
					Fields:         "namedStyleType",
				},
			})
		}
		index += length
	}

	return requests
}
