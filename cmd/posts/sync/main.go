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
	if err := runSync(os.Args[1:]); err != nil {
		log.Fatalf("posts sync: %v", err)
	}
}

func runSync(args []string) error {
	fs := flag.NewFlagSet("posts-sync", flag.ContinueOnError)
	contentDir := fs.String("content-dir", "content", "Path to the markdown content root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering markdown files")
	recursive := fs.Bool("recursive", true, "Descend into subdirectories of the content root")
	directory := fs.String("directory", ".", "Directory to sync, relative to the content root")
	authorFallback := fs.String("author", "", "Author recorded when front matter has none")
	deleteOrphans := fs.Bool("delete-orphans", false, "Remove stored articles whose source file disappeared")
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

	cmd := posts.SyncDirectoryCommand{
		Directory:      *directory,
		AuthorFallback: *authorFallback,
		DeleteOrphaned: *deleteOrphans,
		DryRun:         *dryRun,
	}
	if err := module.Commands.SyncDirectory.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute sync command: %w", err)
	}
	fmt.Fprintln(os.Stdout, "posts sync command executed successfully")

	return nil
}
