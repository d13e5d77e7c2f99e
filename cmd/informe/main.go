// Command informe renders the PDF report offline from a transfer-encoded
// response string, the same format the results URL carries.
package main

import (
	"flag"
	"os"

	"github.com/labstack/gommon/log"
	"github.com/peterbourgon/ff/v3"

	"madurez42001/internal/catalog"
	"madurez42001/internal/export"
	"madurez42001/internal/report"
	"madurez42001/internal/scoring"
	"madurez42001/internal/transfer"
)

func main() {
	fs := flag.NewFlagSet("madurez-informe", flag.ExitOnError)
	var (
		query = fs.String("respuestas", "", "transfer-encoded responses, e.g. \"contexto_1=3&liderazgo_1=4\"")
		out   = fs.String("out", "", "output path; defaults to the fixed report filename")
	)
	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("MADUREZ")); err != nil {
		log.Fatalf("cannot parse flags: %v", err)
	}
	if *query == "" {
		log.Fatal("flag -respuestas is required")
	}

	cat, err := catalog.Load()
	if err != nil {
		log.Fatalf("cannot load question catalog: %v", err)
	}
	report.Setup()

	reports := report.NewService(cat, scoring.NewEngine(cat))
	snap := reports.Build(transfer.DecodeQuery(*query))

	artifact, err := export.NewService(cat, reports).Export(snap)
	if err != nil {
		log.Fatalf("cannot export report: %v", err)
	}
	if artifact.Degraded {
		log.Warn("charts unavailable, wrote simplified report")
	}

	path := *out
	if path == "" {
		path = artifact.Filename
	}
	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		log.Fatalf("cannot write %s: %v", path, err)
	}
	log.Infof("wrote %s (%d bytes)", path, len(artifact.Data))
}
