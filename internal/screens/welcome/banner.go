package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/goabroadai/goabroad/internal/ui/theme"
)

const bannerArt = `
  ____        _    _                         _      _    ___
 / ___| ___  / \  | |__  _ __ ___   __ _  __| |    / \  |_ _|
| |  _ / _ \/ _ \ | '_ \| '__/ _ \ / _` + "`" + ` |/ _` + "`" + ` |   / _ \  | |
| |_| | (_) / ___ \| |_) | | | (_) | (_| | (_| |  / ___ \ | |
 \____|\___/_/   \_\_.__/|_|  \___/ \__,_|\__,_| /_/   \_\___|`

const bannerCompact = "G O A B R O A D  A I"

// bannerWidth is the widest line of bannerArt.
const bannerWidth = 63

// RenderBanner returns the GoAbroadAI banner styled in the primary color.
// Uses a compact fallback for terminals narrower than the art.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
