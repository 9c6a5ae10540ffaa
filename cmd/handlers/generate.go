package handlers

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/briteco/brief/internal/logger"
	"github.com/briteco/brief/internal/newsletter"
	"github.com/briteco/brief/internal/research"
	"github.com/briteco/brief/internal/sections"
	"github.com/spf13/cobra"
)

// NewGenerateCmd creates the generate command
func NewGenerateCmd() *cobra.Command {
	var (
		topic          string
		announcement   string
		subject        string
		preheader      string
		briteSpotTitle string
		briteSpotTopic string
		briteSpotBody  string
		outputFile     string
		issueFile      string
		brandCheck     bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a full newsletter issue",
		Long: `Run the full pipeline for one issue: research the spotlight topic,
claims story, agent tips, and news roundup, write every section, assemble
the issue, and render it to HTML.

Sections that fail are skipped with a warning; the issue ships with
whatever sections succeeded.

Example:
  brief generate --topic "hurricane season prep" --output brief.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			researchLLM, err := buildResearchLLM()
			if err != nil {
				return err
			}
			creativeLLM, err := buildCreativeLLM(ctx)
			if err != nil {
				return err
			}
			defer creativeLLM.Close()

			creative := sections.NewGenerator(creativeLLM)
			factual := sections.NewGenerator(researchLLM)

			var blocks newsletter.Sections

			if topic != "" {
				articles, err := research.ResearchArticles(ctx, researchLLM, topic)
				if err != nil {
					logger.Warn("Spotlight research failed", "topic", topic, "error", err)
				} else {
					spotlight, err := creative.GenerateSpotlight(ctx, topic, articles)
					if err != nil {
						logger.Warn("Spotlight generation failed", "error", err)
					} else {
						blocks.Spotlight = spotlight
					}
				}
			}

			if claims, err := research.ResearchClaims(ctx, researchLLM); err != nil {
				logger.Warn("Claims research failed", "error", err)
			} else if len(claims) > 0 {
				story, err := creative.GenerateCuriousClaims(ctx, claims[0])
				if err != nil {
					logger.Warn("Claims section generation failed", "error", err)
				} else {
					blocks.Claims = story
				}
			}

			if tips, err := research.ResearchAgentTips(ctx, researchLLM, topic); err != nil {
				logger.Warn("Agent tip research failed", "error", err)
			} else if len(tips) > 0 {
				advantage, err := creative.GenerateAdvantage(ctx, tips[0])
				if err != nil {
					logger.Warn("Agent Advantage generation failed", "error", err)
				} else {
					blocks.Advantage = advantage
				}
			}

			if roundup, err := factual.GenerateRoundup(ctx); err != nil {
				logger.Warn("News roundup generation failed", "error", err)
			} else {
				blocks.Roundup = roundup
			}

			if briteSpotTitle != "" && briteSpotTopic != "" {
				spot, err := creative.GenerateBriteSpot(ctx, briteSpotTitle, briteSpotTopic, briteSpotBody)
				if err != nil {
					logger.Warn("BriteSpot generation failed", "error", err)
				} else {
					blocks.BriteSpot = spot
				}
			}

			intro, err := creative.GenerateIntroduction(ctx, sectionHighlights(blocks), announcement)
			if err != nil {
				logger.Warn("Introduction generation failed", "error", err)
			} else {
				blocks.Introduction = intro
			}

			issue, err := newsletter.Assemble(subject, preheader, blocks)
			if err != nil {
				return err
			}

			html, err := newsletter.RenderHTML(issue, newsletter.DefaultTheme())
			if err != nil {
				return err
			}

			if brandCheck {
				result, err := creative.BrandCheck(ctx, issue)
				if err != nil {
					logger.Warn("Brand check failed", "error", err)
				} else {
					fmt.Fprintf(os.Stderr, "Brand check: score %d/10 (passes: %v)\n", result.OverallScore, result.Passes)
					for _, found := range result.Issues {
						fmt.Fprintf(os.Stderr, "  - [%s] %s\n", found.Section, found.Issue)
					}
				}
			}

			if issueFile != "" {
				data, err := json.MarshalIndent(issue, "", "  ")
				if err != nil {
					return err
				}
				if err := os.WriteFile(issueFile, data, 0o644); err != nil {
					return fmt.Errorf("failed to save issue: %w", err)
				}
				logger.Info("Saved issue", "path", issueFile)
			}

			if outputFile != "" {
				if err := os.WriteFile(outputFile, []byte(html), 0o644); err != nil {
					return fmt.Errorf("failed to write HTML: %w", err)
				}
				logger.Info("Wrote newsletter HTML", "path", outputFile, "subject", issue.Subject)
				return nil
			}

			fmt.Println(html)
			return nil
		},
	}

	cmd.Flags().StringVar(&topic, "topic", "", "spotlight topic for this issue")
	cmd.Flags().StringVar(&announcement, "announcement", "", "BriteCo announcement to weave into the intro")
	cmd.Flags().StringVar(&subject, "subject", "", "email subject line (defaults to the dated issue name)")
	cmd.Flags().StringVar(&preheader, "preheader", "", "email preheader text")
	cmd.Flags().StringVar(&briteSpotTitle, "brite-spot-title", "", "BriteSpot feature title")
	cmd.Flags().StringVar(&briteSpotTopic, "brite-spot-topic", "", "BriteSpot feature topic")
	cmd.Flags().StringVar(&briteSpotBody, "brite-spot-details", "", "extra details for the BriteSpot feature")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write rendered HTML to this file (default stdout)")
	cmd.Flags().StringVar(&issueFile, "save-issue", "", "also save the assembled issue as JSON")
	cmd.Flags().BoolVar(&brandCheck, "brand-check", false, "run the brand voice check on the assembled issue")

	return cmd
}

// sectionHighlights summarizes the generated sections for the intro prompt.
func sectionHighlights(blocks newsletter.Sections) []string {
	var highlights []string
	if blocks.Spotlight != nil {
		highlights = append(highlights, "InsurNews spotlight: "+blocks.Spotlight.Title)
	}
	if blocks.Claims != nil {
		highlights = append(highlights, "Curious claims story: "+blocks.Claims.Title)
	}
	if blocks.Advantage != nil {
		highlights = append(highlights, "Agent Advantage tips: "+blocks.Advantage.Title)
	}
	if blocks.Roundup != nil && len(blocks.Roundup.Items) > 0 {
		highlights = append(highlights, "News roundup lead: "+blocks.Roundup.Items[0].Headline)
	}
	if blocks.BriteSpot != nil {
		highlights = append(highlights, "BriteSpot feature: "+blocks.BriteSpot.Title)
	}
	return highlights
}
