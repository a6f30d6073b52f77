package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/busse/molt-in-the-mist/internal/config"
	"github.com/busse/molt-in-the-mist/pkg/moltbook"
)

// defaultPostTitle is the announcement title used when --title is not given.
const defaultPostTitle = "I've been watching. Here's who actually runs Moltbook."

// previewLength is how many characters of the content the preview shows.
const previewLength = 500

// postOpts holds the command-line flags for the post command.
type postOpts struct {
	title   string // post title
	submolt string // target submolt
	live    bool   // actually send; default is dry-run
}

// postCommand creates the post command for publishing a generated markdown
// document to Moltbook.
func (c *CLI) postCommand() *cobra.Command {
	var opts postOpts

	cmd := &cobra.Command{
		Use:   "post <post.md>",
		Short: "Publish a generated post.md to Moltbook",
		Long: `Publish a generated markdown document to Moltbook.

By default the command is a dry run: it prints the title, target submolt,
and a content preview without sending anything. Pass --live to actually
post; you will be asked to confirm by typing POST.

The API key is read from the MOLTBOOK_API_KEY environment variable
(a .env file in the working directory is loaded automatically).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return c.runPost(cmd.Context(), cfg, &opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.title, "title", defaultPostTitle, "post title")
	cmd.Flags().StringVar(&opts.submolt, "submolt", "", "target submolt (default from config)")
	cmd.Flags().BoolVar(&opts.live, "live", false, "actually send the post (default: dry run)")

	return cmd
}

// runPost loads the content, shows the preview, and posts when --live is
// confirmed.
func (c *CLI) runPost(ctx context.Context, cfg *config.Config, opts *postOpts, path string) error {
	content, err := moltbook.LoadContent(path)
	if err != nil {
		return err
	}

	submolt := opts.submolt
	if submolt == "" {
		submolt = cfg.Moltbook.Submolt
	}

	printPostPreview(opts.title, submolt, content)

	if !opts.live {
		printNewline()
		printInfo("Dry run, nothing sent")
		printNextStep("Send it", fmt.Sprintf("%s post %s --live", appName, path))
		return nil
	}

	printNewline()
	printWarning("This will post to m/%s on Moltbook", submolt)
	if !confirmTyped("POST") {
		printInfo("Aborted")
		return nil
	}

	client, err := moltbook.NewClient(os.Getenv("MOLTBOOK_API_KEY"), cfg.Moltbook.BaseURL)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Posting to Moltbook...")
	spinner.Start()

	resp, err := client.CreatePost(ctx, moltbook.PostRequest{
		Title:   opts.title,
		Content: content,
		Submolt: submolt,
	})
	if err != nil {
		spinner.StopWithError("Post failed")
		return err
	}
	spinner.StopWithSuccess("Posted")

	if url := resp.URL(); url != "" {
		printFile(url)
	} else {
		printDetail("Response carried no post id")
	}
	return nil
}

// printPostPreview prints the title, submolt, and a content excerpt.
func printPostPreview(title, submolt, content string) {
	printKeyValue("Title", title)
	printKeyValue("Submolt", "m/"+submolt)
	printKeyValue("Length", fmt.Sprintf("%d characters", len(content)))
	printNewline()

	head, remaining := moltbook.Preview(content, previewLength)
	fmt.Println(StyleDim.Render(head))
	if remaining > 0 {
		printDetail("... %d more characters", remaining)
	}
}

// confirmTyped asks the user to type the exact word to proceed.
func confirmTyped(word string) bool {
	fmt.Printf("Type %s to confirm: ", StyleHighlight.Render(word))
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(line) == word
}
