package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-docmeta/cmd/docmeta/internal/bootstrap"
	transformcmd "github.com/goliatone/go-docmeta/internal/commands/transform"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runInspect(os.Args[1:]); err != nil {
		log.Fatalf("docmeta inspect: %v", err)
	}
}

func runInspect(args []string) error {
	fs := flag.NewFlagSet("docmeta-inspect", flag.ExitOnError)
	path := fs.String("path", "", "Path to the markdown document to inspect")
	requiredFields := fs.String("required-fields", "", "Comma separated frontmatter fields the document must carry")
	logLevel := fs.String("log-level", "", "Enable logging at the given level (debug, info, warn, error)")
	verbose := fs.Bool("verbose", false, "Enable info-level logging")

	if err := fs.Parse(args); err != nil {
		return err
	}

	target := *path
	if target == "" && fs.NArg() > 0 {
		target = fs.Arg(0)
	}

	module, err := moduleBuilder(bootstrap.Options{
		LogLevel: *logLevel,
		Verbose:  *verbose,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	handler := transformcmd.NewInspectHandler(module.Deps)
	cmd := transformcmd.InspectCommand{
		Path:           target,
		RequiredFields: bootstrap.SplitFields(*requiredFields),
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute inspect command: %w", err)
	}

	return nil
}
