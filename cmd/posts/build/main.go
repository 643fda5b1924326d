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
	if err := runBuild(os.Args[1:]); err != nil {
		log.Fatalf("posts build: %v", err)
	}
}

func runBuild(args []string) error {
	fs := flag.NewFlagSet("posts-build", flag.ContinueOnError)
	contentDir := fs.String("content-dir", "content", "Path to the markdown content root")
	outputDir := fs.String("output-dir", "dist", "Directory receiving the generated site")
	syncFirst := fs.Bool("sync", true, "Sync the content directory into the store before building")
	dryRun := fs.Bool("dry-run", false, "Report what would be built without writing files")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir:    *contentDir,
		Recursive:     true,
		OutputDir:     *outputDir,
		EnablePublish: true,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Module.Close()

	ctx := context.Background()

	if *syncFirst {
		if err := module.Commands.SyncDirectory.Execute(ctx, posts.SyncDirectoryCommand{Directory: "."}); err != nil {
			return fmt.Errorf("execute sync command: %w", err)
		}
	}

	if err := module.Commands.BuildSite.Execute(ctx, posts.BuildSiteCommand{DryRun: *dryRun}); err != nil {
		return fmt.Errorf("execute build command: %w", err)
	}
	fmt.Fprintln(os.Stdout, "posts build command executed successfully")

	return nil
}
