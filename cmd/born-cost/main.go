// Package main provides the born-cost CLI: it evaluates a cost function and
// metrics over network outputs and targets stored as CSV.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"
	"github.com/evilsocket/islazy/fs"
	"github.com/evilsocket/islazy/tui"
	"github.com/pbnjay/memory"
	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/born-ml/costs/internal/config"
	"github.com/born-ml/costs/internal/dataset"
	"github.com/born-ml/costs/internal/evaluate"
)

const version = "v0.1.0"

var (
	app   = kingpin.New("born-cost", "Evaluate costs and metrics over saved network outputs.")
	debug = app.Flag("debug", "Enable debug logging.").Bool()

	evalCmd     = app.Command("eval", "Evaluate predictions against targets.").Default()
	configPath  = evalCmd.Flag("config", "YAML evaluation config (defaults to cross-entropy, top-5 and accuracy).").Short('c').String()
	predictions = evalCmd.Flag("predictions", "CSV of network outputs, one example per row.").Short('p').Required().String()
	targets     = evalCmd.Flag("targets", "CSV of targets, one example per row.").Short('t').Required().String()
	labels      = evalCmd.Flag("labels", "Targets hold one integer class label per row instead of one-hot rows.").Bool()
	header      = evalCmd.Flag("header", "CSV files start with a header row.").Bool()

	versionCmd = app.Command("version", "Show version.")
)

func main() {
	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	switch cmd {
	case versionCmd.FullCommand():
		fmt.Printf("born-cost %s\n", version)
	case evalCmd.FullCommand():
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := run(ctx); err != nil {
			log.Fatalf("%v", err)
		}
	}
}

func run(ctx context.Context) error {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}

	setup, err := cfg.Build()
	if err != nil {
		return err
	}

	y, t, err := load(*predictions, *targets, *header, *labels)
	if err != nil {
		return err
	}
	checkMemory(y)

	batches, err := dataset.Batches(y, t, cfg.BatchSize, setup.Backend)
	if err != nil {
		return err
	}

	ev, err := evaluate.New(setup.Cost, setup.Metrics...)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"backend": setup.Backend.Name(),
		"batches": len(batches),
	}).Debug("evaluating")

	res, err := ev.Run(ctx, batches)
	if err != nil {
		return err
	}

	printResult(os.Stdout, res, setup.Backend.Name())
	return nil
}

// printResult writes the example count and a name/value table of res.
func printResult(w io.Writer, res *evaluate.Result, backend string) {
	fmt.Fprintf(w, "%s examples, %s backend\n\n", humanize.Comma(int64(res.Examples)), backend)
	rows := [][]string{}
	if res.HasCost {
		rows = append(rows, []string{res.CostName, fmt.Sprintf("%.6f", res.Cost)})
	}
	for _, name := range res.Order {
		rows = append(rows, []string{name, fmt.Sprintf("%.6f", res.Metrics[name])})
	}
	tui.Table(w, []string{"name", "value"}, rows)
}

// load reads predictions and targets. With labels set, targets hold one class
// index per row and are one-hot encoded to the width of the predictions.
func load(predictionsPath, targetsPath string, header, labels bool) (y, t *dataset.Table, err error) {
	for _, path := range []string{predictionsPath, targetsPath} {
		if !fs.Exists(path) {
			return nil, nil, fmt.Errorf("%s does not exist", path)
		}
	}

	log.Debugf("loading predictions from %s ...", predictionsPath)
	if y, err = dataset.LoadCSV(predictionsPath, header); err != nil {
		return nil, nil, err
	}

	log.Debugf("loading targets from %s ...", targetsPath)
	if t, err = dataset.LoadCSV(targetsPath, header); err != nil {
		return nil, nil, err
	}

	if labels {
		if t, err = dataset.OneHot(t, y.NumFeatures()); err != nil {
			return nil, nil, err
		}
	}
	return y, t, nil
}

// checkMemory warns when outputs and targets together take more than half of system memory.
func checkMemory(y *dataset.Table) {
	size := uint64(2 * y.NumExamples() * y.NumFeatures() * 8)
	total := memory.TotalMemory()

	log.WithFields(log.Fields{
		"examples": humanize.Comma(int64(y.NumExamples())),
		"data":     humanize.Bytes(size),
		"memory":   humanize.Bytes(total),
	}).Debug("dataset loaded")

	if total > 0 && size > total/2 {
		log.Warnf("dataset needs %s of %s system memory", humanize.Bytes(size), humanize.Bytes(total))
	}
}
