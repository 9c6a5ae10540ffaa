package newsletter

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"

	"github.com/briteco/brief/internal/core"
)

// Theme holds the visual configuration of the rendered email.
type Theme struct {
	HeaderColor     string
	AccentColor     string
	BackgroundColor string
	TextColor       string
	LinkColor       string
	BorderColor     string
	MaxWidth        string
	FontFamily      string
}

// DefaultTheme is the BriteCo palette: teal headers, coral accents.
func DefaultTheme() *Theme {
	return &Theme{
		HeaderColor:     "#037E7F", // BriteCo teal
		AccentColor:     "#FE8916", // BriteCo coral
		BackgroundColor: "#f8fafc",
		TextColor:       "#1e293b",
		LinkColor:       "#037E7F",
		BorderColor:     "#e2e8f0",
		MaxWidth:        "640px",
		FontFamily:      "system-ui, -apple-system, 'Segoe UI', Roboto, sans-serif",
	}
}

// markdownLinkRe matches [text](url) links embedded in generated prose.
var markdownLinkRe = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\s)]+)\)`)

// richText escapes generated prose and converts its Markdown links into
// anchors. Everything except the links stays escaped.
func richText(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	linked := markdownLinkRe.ReplaceAllString(escaped, `<a href="$2">$1</a>`)
	return template.HTML(linked)
}

// getNewsletterCSS returns the inline stylesheet for the email document.
func getNewsletterCSS(theme *Theme) string {
	return fmt.Sprintf(`
<style type="text/css">
  body, table, td, p, a, li {
    -webkit-text-size-adjust: 100%%;
    -ms-text-size-adjust: 100%%;
  }
  body {
    margin: 0;
    padding: 0;
    background-color: %s;
    font-family: %s;
    color: %s;
    line-height: 1.6;
  }
  .container {
    max-width: %s;
    margin: 0 auto;
    background-color: #ffffff;
  }
  .header {
    background-color: %s;
    color: #ffffff;
    padding: 28px 32px;
  }
  .header h1 { margin: 0; font-size: 26px; }
  .header .date { margin: 6px 0 0; opacity: 0.85; font-size: 14px; }
  .content { padding: 24px 32px; }
  .section { margin-bottom: 28px; }
  .section h2 {
    color: %s;
    font-size: 20px;
    border-bottom: 2px solid %s;
    padding-bottom: 6px;
  }
  .section h3 { color: %s; font-size: 16px; margin-bottom: 4px; }
  a { color: %s; }
  ul.roundup { padding-left: 20px; }
  ul.roundup li { margin-bottom: 10px; }
  .tip-title { font-weight: 700; }
  .footer {
    padding: 20px 32px;
    font-size: 12px;
    color: #64748b;
    border-top: 1px solid %s;
  }
</style>`,
		theme.BackgroundColor, theme.FontFamily, theme.TextColor, theme.MaxWidth,
		theme.HeaderColor, theme.HeaderColor, theme.AccentColor, theme.HeaderColor,
		theme.LinkColor, theme.BorderColor)
}

const newsletterTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Data.Subject}}</title>
    {{.CSS}}
</head>
<body>
    {{if .Data.Preheader}}<div style="display:none;max-height:0;overflow:hidden;">{{.Data.Preheader}}</div>{{end}}
    <table role="presentation" cellspacing="0" cellpadding="0" border="0" width="100%">
        <tr>
            <td align="center">
                <div class="container">
                    <div class="header">
                        <h1>{{.Data.Subject}}</h1>
                        <p class="date">{{.Date}}</p>
                    </div>
                    <div class="content">
                        {{if .Data.Introduction}}
                        <div class="section"><p>{{rich .Data.Introduction}}</p></div>
                        {{end}}

                        {{with .Data.BriteSpot}}
                        <div class="section">
                            <h2>The Brite Spot</h2>
                            <h3>{{.Title}}</h3>
                            <p>{{rich .Body}}</p>
                        </div>
                        {{end}}

                        {{with .Data.Spotlight}}
                        <div class="section">
                            <h2>InsurNews Spotlight</h2>
                            <h3>{{.Title}}</h3>
                            <p>{{rich .Intro}}</p>
                            {{range .Sections}}
                            <h3>{{.Heading}}</h3>
                            <p>{{rich .Content}}</p>
                            {{end}}
                            {{if .AgentImplications}}
                            <h3>Implications for Agents</h3>
                            <p>{{rich .AgentImplications}}</p>
                            {{end}}
                        </div>
                        {{end}}

                        {{with .Data.Claims}}
                        <div class="section">
                            <h2>Curious Claims</h2>
                            <h3>{{.Title}}</h3>
                            {{range .Paragraphs}}
                            <p>{{rich .}}</p>
                            {{end}}
                            {{if .Subheading}}
                            <h3>{{.Subheading}}</h3>
                            <p>{{rich .SubheadingContent}}</p>
                            {{end}}
                        </div>
                        {{end}}

                        {{with .Data.Roundup}}
                        <div class="section">
                            <h2>Insurance News Roundup</h2>
                            <ul class="roundup">
                                {{range .Items}}
                                <li>{{rich .Headline}} <a href="{{.URL}}">({{if .Source}}{{.Source}}{{else}}source{{end}})</a></li>
                                {{end}}
                            </ul>
                        </div>
                        {{end}}

                        {{with .Data.Advantage}}
                        <div class="section">
                            <h2>Agent Advantage</h2>
                            <h3>{{.Title}}</h3>
                            <p>{{rich .Intro}}</p>
                            <ul>
                                {{range .Tips}}
                                <li><span class="tip-title">{{.MiniTitle}}.</span> {{rich .Content}}</li>
                                {{end}}
                            </ul>
                            {{if .Closing}}<p>{{rich .Closing}}</p>{{end}}
                        </div>
                        {{end}}
                    </div>
                    <div class="footer">
                        <p>The BriteCo Brief &middot; {{.Date}}</p>
                        <p>BriteCo is an insurtech company backed by an AM Best A+ rated Insurance Carrier.</p>
                    </div>
                </div>
            </td>
        </tr>
    </table>
</body>
</html>`

// RenderHTML renders one assembled issue as a standalone HTML email document.
func RenderHTML(issue *core.Newsletter, theme *Theme) (string, error) {
	if theme == nil {
		theme = DefaultTheme()
	}

	tmpl, err := template.New("newsletter").Funcs(template.FuncMap{"rich": richText}).Parse(newsletterTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse newsletter template: %w", err)
	}

	templateData := struct {
		Data *core.Newsletter
		Date string
		CSS  template.HTML
	}{
		Data: issue,
		Date: issue.GeneratedAt.Format("January 2, 2006"),
		CSS:  template.HTML(getNewsletterCSS(theme)),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, templateData); err != nil {
		return "", fmt.Errorf("failed to execute newsletter template: %w", err)
	}
	return buf.String(), nil
}
