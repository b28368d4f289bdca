package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"github.com/robinjoseph08/golib/logger"
	"github.com/segmentio/encoding/json"
	"github.com/storyloft/storyloft/pkg/ingest"
	"github.com/storyloft/storyloft/pkg/models"
	"github.com/storyloft/storyloft/pkg/pathmeta"
	"github.com/storyloft/storyloft/pkg/records"
	"github.com/storyloft/storyloft/pkg/walker"
)

func main() {
	log := logger.New()

	var opts struct {
		Section   string `short:"s" long:"section" description:"Section name the folder belongs to" default:"Books"`
		MediaType string `short:"m" long:"media-type" description:"Media type override"`
	}

	args, err := flags.Parse(&opts)
	if err != nil {
		log.Err(err).Fatal("flags parse error")
	}

	if len(args) != 1 {
		fmt.Println("go run ./cmd/scripts/debug/parse-folder <path/to/item/folder>")
		os.Exit(1)
	}

	mediaType := opts.MediaType
	if mediaType == "" {
		mediaType = models.MediaTypeBook
	}

	ctx := log.WithContext(context.Background())
	pipeline := ingest.NewPipeline(pathmeta.NewRegistry(pathmeta.DefaultParsers()...))

	book, err := pipeline.ProcessItem(ctx, walker.Item{
		Path:      args[0],
		Section:   opts.Section,
		Category:  filepath.Base(filepath.Dir(args[0])),
		MediaType: mediaType,
	})
	if err != nil {
		log.Err(err).Fatal("process error")
	}

	out, err := json.MarshalIndent(book, "", "  ")
	if err != nil {
		log.Err(err).Fatal("marshal error")
	}
	fmt.Println(string(out))

	provenance, err := records.ParseProvenance(book.Notes)
	if err != nil {
		log.Err(err).Fatal("provenance parse error")
	}
	out, err = json.MarshalIndent(provenance, "", "  ")
	if err != nil {
		log.Err(err).Fatal("marshal error")
	}
	fmt.Println(string(out))
}
