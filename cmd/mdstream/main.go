package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/leandrocp/mdstream/engine"
	"github.com/leandrocp/mdstream/fragment"
	"github.com/leandrocp/mdstream/stream"
	"github.com/spf13/cobra"
)

var (
	flagUnsafe    bool
	flagChunkSize int
)

var rootCmd = &cobra.Command{
	Use:   "mdstream",
	Short: "Incremental markdown parsing and fragment completion",
	Long: `mdstream parses GitHub-flavored markdown, including partially
streamed fragments whose trailing constructs are still open.

Examples:
  mdstream html < doc.md            # render to HTML
  mdstream tree < doc.md            # dump the document tree as JSON
  mdstream complete "**Bold"        # close dangling constructs
  mdstream stream < tokens.txt      # incremental parse, chunk by chunk`,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	SilenceUsage:      true,
}

var htmlCmd = &cobra.Command{
	Use:   "html",
	Short: "Render markdown from stdin to HTML",
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		opts := engine.DefaultOptions()
		opts.Unsafe = flagUnsafe
		out, err := engine.New(opts).HTML(string(src))
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Parse markdown from stdin and dump the document tree as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		doc, err := engine.New(engine.DefaultOptions()).Parse(string(src))
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete [fragment]",
	Short: "Close dangling markdown constructs in a fragment",
	Long: `complete takes a markdown fragment, from the argument or stdin, and
prints it with every unterminated construct closed, so that a strict
parser sees the intended structure.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var src string
		if len(args) == 1 {
			src = args[0]
		} else {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				return err
			}
			src = string(b)
		}
		fmt.Println(fragment.Complete(src))
		return nil
	},
}

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Feed stdin chunk by chunk and dump the final tree as JSON",
	Long: `stream simulates token-by-token ingestion: stdin is read in small
chunks, each chunk is fed through fragment completion and reparsed, and
the reconciled document tree is printed once the input ends. Chunk
boundaries are deliberately arbitrary and may split markdown tokens.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := stream.New()
		r := bufio.NewReader(os.Stdin)
		buf := make([]byte, flagChunkSize)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				if perr := s.Put(string(buf[:n])); perr != nil {
					return perr
				}
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				return err
			}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(s.Document())
	},
}

func init() {
	htmlCmd.Flags().BoolVar(&flagUnsafe, "unsafe", false, "Allow raw HTML in the output")
	streamCmd.Flags().IntVar(&flagChunkSize, "chunk-size", 16, "Bytes per simulated chunk")
	rootCmd.AddCommand(htmlCmd, treeCmd, completeCmd, streamCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
