package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	posts "github.com/lukaszreszke93/posts"
	"github.com/lukaszreszke93/posts/cmd/posts/internal/bootstrap"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runImport(os.Args[1:]); err != nil {
		log.Fatalf("posts import: %v", err)
	}
}

func runImport(args []string) error {
	fs := flag.NewFlagSet("posts-import", flag.ContinueOnError)
	contentDir := fs.String("content-dir", "content", "Path to the markdown content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	recursive := fs.Bool("recursive", true, "Descend into subdirectories of the content root")
	directory := fs.String("directory", ".", "Directory to import, relative to the content root")
	authorFallback := fs.String("author", "", "Author recorded when front matter has none")
	dryRun := fs.Bool("dry-run", false, "Preview changes without persisting articles")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir: *contentDir,
		Pattern:    *pattern,
		Recursive:  *recursive,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Module.Close()

	cmd := posts.ImportDirectoryCommand{
		Directory:      *directory,
		AuthorFallback: *authorFallback,
		DryRun:         *dryRun,
	}
	if err := module.Commands.ImportDirectory.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute import command: %w", err)
	}
	fmt.Fprintln(os.Stdout, "posts import command executed successfully")

	return nil
}
