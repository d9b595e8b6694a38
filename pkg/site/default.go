package site

const (
	DefaultTitle       = "Solite"
	DefaultDescription = "A SQLite runtime, CLI, and Jupyter kernel"
)

// Default returns the built-in solite documentation site.
func Default() *Site {
	return &Site{
		Title:       DefaultTitle,
		Description: DefaultDescription,
		ThemeConfig: ThemeConfig{
			Nav: []NavItem{
				{Text: "Home", Link: "/"},
				{Text: "Guide", Link: "/getting-started"},
				{Text: "Reference", Link: "/reference/cli"},
			},
			Sidebar: []SidebarSection{
				{
					Text: "Introduction",
					Items: []NavItem{
						{Text: "Getting Started", Link: "/getting-started"},
						{Text: "Installation", Link: "/installation"},
					},
				},
				{
					Text: "CLI",
					Items: []NavItem{
						{Text: "solite run", Link: "/cli/run"},
						{Text: "solite repl", Link: "/cli/repl"},
						{Text: "solite query", Link: "/cli/query"},
						{Text: "solite execute", Link: "/cli/execute"},
						{Text: "solite snap", Link: "/cli/snap"},
						{Text: "solite docs", Link: "/cli/docs"},
						{Text: "solite bench", Link: "/cli/bench"},
						{Text: "solite mcp", Link: "/cli/mcp"},
						{Text: "solite codegen", Link: "/cli/codegen"},
						{Text: "Reference", Link: "/reference/cli"},
					},
				},
				{
					Text: "Jupyter",
					Items: []NavItem{
						{Text: "Jupyter Kernel", Link: "/jupyter"},
						{Text: "Installing the kernel", Link: "/jupyter#install"},
					},
				},
				{
					Text: "Extensions",
					Items: []NavItem{
						{Text: "Loading extensions", Link: "/extensions"},
						{Text: "Dot commands", Link: "/dot-commands"},
					},
				},
			},
			SocialLinks: []SocialLink{
				{Icon: "github", Link: "https://github.com/asg017/solite"},
			},
		},
	}
}
