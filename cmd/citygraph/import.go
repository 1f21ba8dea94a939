package main

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/psidex/citygraph/internal/fetch"
	"github.com/psidex/citygraph/internal/store"
	"github.com/psidex/citygraph/internal/ui"
)

var importCmd = &cobra.Command{
	Use:   "import [file ...]",
	Short: "Register graph documents in the import map",
	Long: `Import graph files, or documents downloaded with --url, into static/ under
ids derived from their file names. Every document is checked before anything is
written.`,
	RunE: runImport,
}

var importOpts struct {
	token, model, algorithm, language string
	urls                              []string
	timeout                           time.Duration
}

func init() {
	f := importCmd.Flags()
	f.StringVar(&importOpts.token, "token", "", "API token the graph was generated with")
	f.StringVar(&importOpts.model, "model", "", "model name")
	f.StringVar(&importOpts.algorithm, "algorithm", "", "community detection algorithm")
	f.StringVar(&importOpts.language, "language", "", "document language")
	f.StringSliceVar(&importOpts.urls, "url", nil, "download a graph document from this URL")
	f.DurationVar(&importOpts.timeout, "timeout", 30*time.Second, "download timeout")
}

func runImport(cmd *cobra.Command, args []string) error {
	req := store.ImportRequest{
		Token:     importOpts.token,
		Model:     importOpts.model,
		Algorithm: importOpts.algorithm,
		Language:  importOpts.language,
	}

	for _, name := range args {
		b, err := readInput(name)
		if err != nil {
			return err
		}
		req.Files = append(req.Files, store.UploadedFile{Name: filepath.Base(name), Data: b})
	}

	if len(importOpts.urls) > 0 {
		f := fetch.New(&http.Client{Timeout: importOpts.timeout}, cfg.Limits.MaxUploadMB<<20)
		for _, u := range importOpts.urls {
			file, err := f.Graph(cmd.Context(), u)
			if err != nil {
				return err
			}
			req.Files = append(req.Files, file)
		}
	}

	res, err := openStore().Import(req, time.Now())
	if err != nil {
		return err
	}

	for _, e := range res.Imported {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s -> %s\n", ui.StatusIcon(true), ui.Brand.Sprint(e.ID), e.Path)
	}
	return nil
}
