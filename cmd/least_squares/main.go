package main

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/liucxer/confmiddleware/conflogger"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/liucxer/least-squares/pkg/conf"
	"github.com/liucxer/least-squares/pkg/csv"
	"github.com/liucxer/least-squares/pkg/report"
)

type options struct {
	configFile string
	xIndex     int
	yIndex     int
	maxRows    int
	format     string
}

func newCommand(out io.Writer) *cobra.Command {
	opts := options{}

	cmd := &cobra.Command{
		Use:   "least_squares [data.csv]",
		Short: "Fit a least squares regression line through two columns of a csv file",
		Long: `Reads two numeric columns from a csv file, fits y = slope*x + intercept and
prints the fit together with the residual of every observation, the cumulative
sum of residuals and the regression line sampled at each observation.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd, args)
			if err != nil {
				return err
			}

			logger := conflogger.Log{
				Name:  cfg.Log.Name,
				Level: cfg.Log.Level,
			}
			logger.SetDefaults()
			logger.Init()

			return run(cfg, out)
		},
	}

	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "toml config file")
	cmd.Flags().IntVar(&opts.xIndex, "x", 0, "zero-based column of the x series")
	cmd.Flags().IntVar(&opts.yIndex, "y", 0, "zero-based column of the y series")
	cmd.Flags().IntVar(&opts.maxRows, "max-rows", 0, "maximum data rows to read, 0 for all")
	cmd.Flags().StringVar(&opts.format, "format", "", "output format: csv, table or params")
	return cmd
}

// config loads the config file, then applies flags and the positional file
// argument on top of it.
func (opts *options) config(cmd *cobra.Command, args []string) (*conf.Config, error) {
	var (
		cfg *conf.Config
		err error
	)

	if opts.configFile != "" {
		cfg, err = conf.Load(opts.configFile)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = conf.Default()
	}

	flags := cmd.Flags()
	if flags.Changed("x") {
		cfg.Input.XIndex = opts.xIndex
	}
	if flags.Changed("y") {
		cfg.Input.YIndex = opts.yIndex
	}
	if flags.Changed("max-rows") {
		cfg.Input.MaxRows = opts.maxRows
	}
	if flags.Changed("format") {
		cfg.Output.Format = opts.format
	}
	if len(args) == 1 {
		cfg.Input.File = args[0]
	}

	if cfg.Input.File == "" {
		return nil, errors.New("no input file, pass one as argument or set input.file")
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cfg *conf.Config, out io.Writer) error {
	log := logrus.WithField("run", uuid.New().String())
	log.Infof("least squares start. file:%s, x:%d, y:%d, maxRows:%d",
		cfg.Input.File, cfg.Input.XIndex, cfg.Input.YIndex, cfg.Input.MaxRows)

	xs, ys, err := csv.ReadColumnsFile(cfg.Input.File, cfg.ReadOptions())
	if err != nil {
		log.Errorf("csv.ReadColumnsFile err:%v", err)
		return err
	}

	res, err := report.Build(xs, ys)
	if err != nil {
		log.Errorf("report.Build err:%v", err)
		return err
	}
	log.Infof("least squares end. dataCount:%d, formula:%s, rSquared:%f", res.DataCount, res.Formula, res.RSquared)

	switch cfg.Output.Format {
	case conf.FormatTable:
		res.WriteSummary(out, cfg.Output.Precision)
		return nil
	case conf.FormatParams:
		return res.WriteParametersCSV(out)
	default:
		return res.WriteCSV(out)
	}
}

func main() {
	if err := newCommand(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
