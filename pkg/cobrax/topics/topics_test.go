// pkg/cobrax/topics/topics_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None (testing/fstest)
// PURPOSE: Test topic scanning, lookup, rendering and the help command

package topics_test

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/dispatchr/pkg/cobrax/topics"
)

func topicFS() fstest.MapFS {
	return fstest.MapFS{
		"manifest.md":       {Data: []byte("# Manifests\n\nStores and domains.\n")},
		"routing.txt":       {Data: []byte("Routing order")},
		"nested/waiting.md": {Data: []byte("# Waiting\n")},
		"ignored.json":      {Data: []byte("{}")},
		"nested/notes.txxt": {Data: []byte("custom")},
	}
}

func TestScan(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		tm := topics.New(topicFS(), topics.Options{})
		require.NoError(t, tm.Scan())

		assert.Equal(t, []string{"manifest", "routing", "waiting"}, tm.ListTopics())

		topic, ok := tm.GetTopic("manifest")
		require.True(t, ok)
		assert.Equal(t, "manifest.md", topic.FilePath)
		assert.Equal(t, "# Manifests\n\nStores and domains.\n", topic.Content)

		_, ok = tm.GetTopic("ignored")
		assert.False(t, ok)
	})

	t.Run("custom extensions", func(t *testing.T) {
		tm := topics.New(topicFS(), topics.Options{Extensions: []string{".txxt"}})
		require.NoError(t, tm.Scan())
		assert.Equal(t, []string{"notes"}, tm.ListTopics())
	})
}

func TestRenderers(t *testing.T) {
	plain := &topics.PlainRenderer{}
	assert.Equal(t, "# Title", plain.Render("# Title", ".md"))

	g := &topics.GlamourRenderer{Style: "notty", Width: 40}
	in := "# Title\n\nSome text.\n"
	out := g.Render(in, ".md")
	assert.Contains(t, out, "Title")
	assert.NotEqual(t, in, out)

	// non-markdown topics are passed through
	assert.Equal(t, "# raw", g.Render("# raw", ".txt"))
}

func newRoot(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	root := &cobra.Command{Use: "app", Short: "test app"}
	root.AddCommand(&cobra.Command{Use: "run", Short: "Run things", Run: func(*cobra.Command, []string) {}})

	_, err := topics.Initialize(root, topicFS(), topics.Options{})
	require.NoError(t, err)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	return root, &out
}

func TestHelpCommand(t *testing.T) {
	t.Run("topic", func(t *testing.T) {
		root, out := newRoot(t)
		root.SetArgs([]string{"help", "routing"})
		require.NoError(t, root.Execute())
		assert.Equal(t, "Routing order", out.String())
	})

	t.Run("topic list", func(t *testing.T) {
		root, out := newRoot(t)
		root.SetArgs([]string{"help", "topics"})
		require.NoError(t, root.Execute())
		assert.Contains(t, out.String(), "Available help topics:")
		assert.Contains(t, out.String(), "  manifest\n")
		assert.Contains(t, out.String(), "app help <topic>")
	})

	t.Run("command help still works", func(t *testing.T) {
		root, out := newRoot(t)
		root.SetArgs([]string{"help", "run"})
		require.NoError(t, root.Execute())
		assert.Contains(t, out.String(), "Run things")
	})
}
