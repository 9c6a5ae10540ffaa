package handlers

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/briteco/brief/internal/brand"
	"github.com/briteco/brief/internal/core"
	"github.com/briteco/brief/internal/logger"
	"github.com/spf13/cobra"
)

// NewSendCmd creates the parent send command with subcommands
func NewSendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Deliver a rendered issue",
		Long: `Deliver an issue produced by "brief generate": email a preview to the
team, export to Google Docs for review, or push a draft campaign to
Ontraport.`,
	}

	cmd.AddCommand(NewSendPreviewCmd())
	cmd.AddCommand(NewSendDocsCmd())
	cmd.AddCommand(NewSendOntraportCmd())

	return cmd
}

// NewSendPreviewCmd creates the preview email subcommand
func NewSendPreviewCmd() *cobra.Command {
	var (
		htmlFile   string
		subject    string
		recipients []string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Email a preview to the review team",
		RunE: func(cmd *cobra.Command, args []string) error {
			sender := buildSender()
			if sender == nil {
				return fmt.Errorf("email is not configured: set SMTP_USER and SMTP_PASSWORD")
			}

			html, err := os.ReadFile(htmlFile)
			if err != nil {
				return fmt.Errorf("failed to read HTML file: %w", err)
			}

			to := recipients
			if len(to) == 0 {
				for _, member := range brand.TeamMembers {
					to = append(to, member.Email)
				}
			}

			report, err := sender.Send(to, subject, string(html))
			if err != nil {
				return err
			}
			logger.Info("Preview sent", "sent", len(report.Sent), "failed", len(report.Failed))
			for _, failure := range report.Failed {
				fmt.Fprintf(os.Stderr, "failed: %s: %s\n", failure.Recipient, failure.Reason)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&htmlFile, "html", "", "rendered newsletter HTML file")
	cmd.Flags().StringVar(&subject, "subject", "BriteCo Brief Preview", "preview email subject")
	cmd.Flags().StringSliceVar(&recipients, "to", nil, "recipients (default: the review team)")
	cmd.MarkFlagRequired("html")

	return cmd
}

// NewSendDocsCmd creates the Google Docs export subcommand
func NewSendDocsCmd() *cobra.Command {
	var (
		issueFile string
		title     string
	)

	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Export an issue to Google Docs",
		Long:  `Export a saved issue (from "brief generate --save-issue") as a shareable Google Doc.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			exporter := buildExporter(ctx)
			if exporter == nil {
				return fmt.Errorf("google docs is not configured: set GOOGLE_DOCS_CREDENTIALS")
			}

			issue, err := loadIssue(issueFile)
			if err != nil {
				return err
			}

			url, err := exporter.Export(ctx, issue, title)
			if err != nil {
				return err
			}
			fmt.Println(url)
			return nil
		},
	}

	cmd.Flags().StringVar(&issueFile, "issue", "", "saved issue JSON file")
	cmd.Flags().StringVar(&title, "title", "", "document title (defaults to the issue subject)")
	cmd.MarkFlagRequired("issue")

	return cmd
}

// NewSendOntraportCmd creates the Ontraport push subcommand
func NewSendOntraportCmd() *cobra.Command {
	var (
		htmlFile string
		subject  string
	)

	cmd := &cobra.Command{
		Use:   "ontraport",
		Short: "Push a draft campaign to Ontraport",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := buildCRM()
			if client == nil {
				return fmt.Errorf("ontraport is not configured: set ONTRAPORT_APP_ID and ONTRAPORT_API_KEY")
			}

			html, err := os.ReadFile(htmlFile)
			if err != nil {
				return fmt.Errorf("failed to read HTML file: %w", err)
			}

			result, err := client.Push(cmd.Context(), subject, string(html))
			if err != nil {
				return err
			}
			logger.Info("Pushed draft campaign",
				"message_id", result.MessageID,
				"campaign_id", result.CampaignID,
				"status", result.Status)
			fmt.Println(result.PreviewURL)
			return nil
		},
	}

	cmd.Flags().StringVar(&htmlFile, "html", "", "rendered newsletter HTML file")
	cmd.Flags().StringVar(&subject, "subject", "", "message subject line")
	cmd.MarkFlagRequired("html")
	cmd.MarkFlagRequired("subject")

	return cmd
}

func loadIssue(path string) (*core.Newsletter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read issue file: %w", err)
	}
	var issue core.Newsletter
	if err := json.Unmarshal(data, &issue); err != nil {
		return nil, fmt.Errorf("failed to parse issue file: %w", err)
	}
	return &issue, nil
}
