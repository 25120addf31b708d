// Package color provides the color theme of testctl reports.
//
// Colors are organized into semantic categories:
//   - Success: checks that ran and passed
//   - Error: checks that ran and failed
//   - Info: checks served from the cache
//   - Primary: headers
//   - Muted: de-emphasized text such as durations
//
// Each color is a lipgloss.AdaptiveColor with light and dark variants;
// the terminal background selects the variant. A Palette binds the styles to
// one writer.
// When that writer is not a terminal, or NO_COLOR is set, rendering emits
// plain text so piped reports and files stay free of escape codes.
//
// # Usage Example
//
//	p := color.NewPalette(os.Stdout)
//	fmt.Println(p.Pass.Render("PASSED"))
//	fmt.Println(p.Fail.Render("FAILED"))
package color
