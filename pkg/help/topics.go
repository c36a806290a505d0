package help

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/arthur-debert/filemap/pkg/errors"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var embeddedTopics embed.FS

// SyntaxTopic is the name of the script language reference
const SyntaxTopic = "syntax"

// Topic is one help document
type Topic struct {
	Name    string
	Format  string
	Content string
}

// Options configures a TopicManager
type Options struct {
	// Extensions is the list of file extensions to consider as topics,
	// [".txt", ".md"] when empty
	Extensions []string

	// Renderer formats topic content, PlainRenderer when nil
	Renderer Renderer
}

// TopicManager serves topics loaded from a filesystem
type TopicManager struct {
	topics     map[string]*Topic
	extensions []string
	renderer   Renderer
}

// New loads the embedded topics
func New(opts Options) (*TopicManager, error) {
	sub, err := fs.Sub(embeddedTopics, "topics")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "embedded topics missing")
	}
	return NewFromFS(sub, opts)
}

// NewFromFS loads every topic file found in fsys
func NewFromFS(fsys fs.FS, opts Options) (*TopicManager, error) {
	tm := &TopicManager{
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}
	if len(tm.extensions) == 0 {
		tm.extensions = []string{".txt", ".md"}
	}
	if tm.renderer == nil {
		tm.renderer = &PlainRenderer{}
	}
	if err := tm.scan(fsys); err != nil {
		return nil, err
	}
	return tm, nil
}

func (tm *TopicManager) scan(fsys fs.FS) error {
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := path.Ext(p)
		if !tm.supported(ext) {
			return nil
		}

		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(path.Base(p), ext)
		tm.topics[name] = &Topic{Name: name, Format: ext, Content: string(content)}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "failed to scan help topics")
	}
	return nil
}

func (tm *TopicManager) supported(ext string) bool {
	for _, e := range tm.extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// GetTopic retrieves a topic by name; flag-style names such as --replace
// are accepted
func (tm *TopicManager) GetTopic(name string) (*Topic, bool) {
	name = strings.TrimLeft(name, "-")
	topic, ok := tm.topics[name]
	return topic, ok
}

// ListTopics returns all topic names, sorted
func (tm *TopicManager) ListTopics() []string {
	names := make([]string, 0, len(tm.topics))
	for name := range tm.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Write renders the named topic to w
func (tm *TopicManager) Write(w io.Writer, name string) error {
	topic, ok := tm.GetTopic(name)
	if !ok {
		return errors.Newf(errors.ErrInvalidInput, "no help topic named %q", name).
			WithDetail("topic", name)
	}
	_, err := fmt.Fprint(w, tm.renderer.Render(topic.Content, topic.Format))
	return err
}

// Install replaces the root command's help command with one that also
// knows about topics
func (tm *TopicManager) Install(rootCmd *cobra.Command) {
	originalHelp := rootCmd.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + rootCmd.Name() + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + rootCmd.Name() + ` help topics`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range rootCmd.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, tm.ListTopics()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				originalHelp(rootCmd, []string{})
				return nil
			}

			out := cmd.OutOrStdout()
			if args[0] == "topics" {
				_, _ = fmt.Fprintln(out, "Available help topics:")
				for _, name := range tm.ListTopics() {
					_, _ = fmt.Fprintf(out, "  %s\n", name)
				}
				_, _ = fmt.Fprintf(out, "\nUse '%s help <topic>' to read about a specific topic.\n", rootCmd.Name())
				return nil
			}

			if _, ok := tm.GetTopic(args[0]); ok {
				return tm.Write(out, args[0])
			}

			// Not a topic
			if target, _, err := rootCmd.Find(args); err == nil && target != nil {
				originalHelp(target, args)
				return nil
			}
			originalHelp(rootCmd, args)
			return nil
		},
	}

	for _, c := range rootCmd.Commands() {
		if c.Name() == "help" {
			rootCmd.RemoveCommand(c)
			break
		}
	}
	rootCmd.SetHelpCommand(helpCmd)
}
