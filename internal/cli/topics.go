package cli

import (
	"embed"
	"io/fs"
	"os"

	"github.com/arthur-debert/dispatchr/pkg/cobrax/topics"
	"github.com/arthur-debert/dispatchr/pkg/render"
	"github.com/spf13/cobra"
)

//go:embed help/*.md
var helpFS embed.FS

// initTopics installs the topic-aware help command. Markdown is rendered
// with glamour only when stdout is a styled terminal.
func initTopics(rootCmd *cobra.Command) error {
	sub, err := fs.Sub(helpFS, "help")
	if err != nil {
		return err
	}

	var renderer topics.Renderer = &topics.PlainRenderer{}
	if render.DetectFormat(os.Stdout) == render.FormatTerminal {
		renderer = topics.NewGlamourRenderer()
	}

	_, err = topics.Initialize(rootCmd, sub, topics.Options{Renderer: renderer})
	return err
}
