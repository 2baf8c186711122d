package generator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/akulov/shot2site/internal/describer"
)

const packageJSON = `{
  "name": "cloned-website",
  "version": "1.0.0",
  "private": true,
  "scripts": {
    "dev": "next dev",
    "build": "next build",
    "start": "next start"
  },
  "dependencies": {
    "next": "14",
    "react": "^18",
    "react-dom": "^18"
  }
}`

const nextConfig = `/** @type {import('next').NextConfig} */
const nextConfig = {};

export default nextConfig;`

// globalsCSS derives the base stylesheet from the assembled page
// description; the first color doubles as the page background.
func globalsCSS(page describer.Section) string {
	background := "#ffffff"
	text := "#111111"
	if len(page.Colors) > 0 {
		background = page.Colors[0]
	}
	if len(page.Colors) > 1 {
		text = page.Colors[1]
	}

	var b strings.Builder
	b.WriteString(":root {\n")
	fmt.Fprintf(&b, "  --background: %s;\n", background)
	fmt.Fprintf(&b, "  --foreground: %s;\n", text)
	for i, c := range page.Colors {
		fmt.Fprintf(&b, "  --color-%d: %s;\n", i+1, c)
	}
	b.WriteString("}\n\n")
	b.WriteString("body {\n  margin: 0;\n  background: var(--background);\n  color: var(--foreground);\n  font-family: system-ui, sans-serif;\n}\n")
	return b.String()
}

func layoutJSX(page describer.Section) string {
	title := "Cloned Website"
	if page.Summary != "" && len(page.Summary) < 80 {
		title = page.Summary
	}
	return fmt.Sprintf(`import "./globals.css";

export const metadata = {
  title: %q,
};

export default function RootLayout({ children }) {
  return (
    <html lang="en">
      <body>{children}</body>
    </html>
  );
}`, title)
}

func pageJSX(page describer.Section, components []ComponentSpec) string {
	var imports, body strings.Builder
	for _, c := range components {
		name := componentName(c.File)
		fmt.Fprintf(&imports, "import %s from \"@/%s\";\n", name, strings.TrimSuffix(c.File, ".jsx"))
		fmt.Fprintf(&body, "      <%s />\n", name)
	}

	tag := "main"
	if page.Layout == "columns" {
		tag = `main style={{ display: "flex" }}`
	}
	openTag := strings.SplitN(tag, " ", 2)[0]
	return fmt.Sprintf(`%s
export default function Page() {
  return (
    <%s>
%s    </%s>
  );
}`, imports.String(), tag, body.String(), openTag)
}

// componentScaffold is the offline fallback: a static component carrying
// the section's extracted text.
func componentScaffold(c ComponentSpec) string {
	name := componentName(c.File)

	var body strings.Builder
	for _, line := range c.Section.Text {
		fmt.Fprintf(&body, "      <p>%s</p>\n", escapeJSX(line))
	}
	if body.Len() == 0 {
		fmt.Fprintf(&body, "      {/* %s */}\n", c.Section.Summary)
	}

	style := ""
	if len(c.Section.Colors) > 0 {
		style = fmt.Sprintf(" style={{ background: %q }}", c.Section.Colors[0])
	}

	return fmt.Sprintf(`export default function %s() {
  return (
    <section%s>
%s    </section>
  );
}`, name, style, body.String())
}

// ComponentFile maps a suggested component name ("site header",
// "hero-banner") to its project path. Names without usable characters
// yield "" so Emit assigns a positional default instead.
func ComponentFile(name string) string {
	parts := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(strings.ToUpper(p[:1]) + p[1:])
	}
	if b.Len() == 0 {
		return ""
	}
	return "components/" + b.String() + ".jsx"
}

// componentName turns components/site-header.jsx into SiteHeader.
func componentName(file string) string {
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	parts := strings.FieldsFunc(base, func(r rune) bool {
		return r == '-' || r == '_' || r == '.'
	})
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(strings.ToUpper(p[:1]) + p[1:])
	}
	if b.Len() == 0 {
		return "Section"
	}
	return b.String()
}

func escapeJSX(s string) string {
	r := strings.NewReplacer("<", "&lt;", ">", "&gt;", "{", "&#123;", "}", "&#125;")
	return r.Replace(s)
}
